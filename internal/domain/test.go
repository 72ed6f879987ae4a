package domain

import "time"

// Test es una entrada del catálogo de instrumentos soportados.
type Test struct {
	Code            string `json:"code"`
	Name            string `json:"name"`
	QuestionCount   int    `json:"question_count"`
	ExpectedMinutes int    `json:"expected_minutes"`
	Active          bool   `json:"active"`
}

const (
	SessionInProgress = "in_progress"
	SessionCompleted  = "completed"
	SessionAbandoned  = "abandoned"
)

// TestSession registra una corrida de un instrumento por un usuario.
type TestSession struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	TestCode         string     `json:"test_code"`
	Status           string     `json:"status"`
	FraudScore       *float64   `json:"fraud_score,omitempty"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	TimeSpentSeconds int        `json:"time_spent_seconds,omitempty"`
}

// RawScores es el mapa de puntajes intermedios, propio de cada
// instrumento, que un motor produce antes de interpretar. Se persiste
// como JSONB, así que al releer los valores llegan como float64 / string
// / map[string]any anidado.
type RawScores map[string]any

// Report es la interpretación estructurada y legible de un resultado.
type Report map[string]any

// ScoringResult es el desenlace tipado de una sesión completada.
type ScoringResult struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id"`
	TestCode   string    `json:"test_code"`
	RawScores  RawScores `json:"raw_scores"`
	ResultType string    `json:"result_type"`
	CreatedAt  time.Time `json:"created_at"`
}
