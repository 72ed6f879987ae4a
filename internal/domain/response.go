package domain

import (
	"encoding/json"
	"time"
)

// Answer envuelve la respuesta cruda del cuestionario, que puede llegar
// como número, string, booleano u objeto según el instrumento.
type Answer struct {
	raw any
}

func NewAnswer(v any) Answer {
	return Answer{raw: v}
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	a.raw = v
	return nil
}

func (a Answer) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.raw)
}

func (a Answer) IsNull() bool {
	return a.raw == nil
}

// Float reporta la respuesta como número. Los enteros decodificados de
// JSON ya llegan como float64; se aceptan ints nativos para respuestas
// construidas en código.
func (a Answer) Float() (float64, bool) {
	switch v := a.raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func (a Answer) String() (string, bool) {
	s, ok := a.raw.(string)
	return s, ok
}

func (a Answer) Bool() (bool, bool) {
	b, ok := a.raw.(bool)
	return b, ok
}

func (a Answer) Object() (map[string]any, bool) {
	m, ok := a.raw.(map[string]any)
	return m, ok
}

// Value expone la respuesta decodificada para persistencia.
func (a Answer) Value() any {
	return a.raw
}

// TypingPattern lleva la telemetría de tecleo del cliente adjunta a
// respuestas de texto libre. Ausente en instrumentos de solo opción.
type TypingPattern struct {
	KeyIntervals []float64 `json:"key_intervals,omitempty"`
	PasteCount   int       `json:"paste_count,omitempty"`
	TabSwitches  int       `json:"tab_switches,omitempty"`
}

// Response es una respuesta registrada, inmutable una vez guardada.
// Weights es la configuración de scoring de la pregunta que contesta,
// desnormalizada al leer para que el núcleo de scoring nunca toque el
// almacén de preguntas.
type Response struct {
	ID             string         `json:"id"`
	SessionID      string         `json:"session_id"`
	QuestionID     string         `json:"question_id"`
	Answer         Answer         `json:"answer"`
	Weights        ScoringWeights `json:"scoring_weights,omitempty"`
	ResponseTimeMs int            `json:"response_time_ms,omitempty"`
	TypingPattern  *TypingPattern `json:"typing_pattern,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// SessionInfo es el recorte de metadata de sesión que necesita el
// detector de fraude.
type SessionInfo struct {
	ExpectedMinutes int `json:"expected_minutes"`
	QuestionCount   int `json:"question_count"`
}
