package domain

const (
	AbilityCategoryMental    = "mental"
	AbilityCategorySocial    = "social"
	AbilityCategoryWork      = "work"
	AbilityCategoryPhysical  = "physical"
	AbilityCategoryPotential = "potential"
)

// AbilityMaxScore es el tope de cada dimensión de habilidad.
const AbilityMaxScore = 20

// AbilityDefinition es una fila del catálogo fijo de 30 habilidades.
type AbilityDefinition struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
	MaxScore int    `json:"max_score"`
}

// AbilityScore es una dimensión agregada del vector de habilidades de un
// usuario. Score queda en [0, MaxScore] y Confidence en [0, 1]; una
// confianza de 0 marca una dimensión a la que ningún instrumento
// completado aportó.
type AbilityScore struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Score       float64  `json:"score"`
	MaxScore    int      `json:"max_score"`
	Confidence  float64  `json:"confidence"`
	SourceTests []string `json:"source_tests"`
}

// AbilityRadarGroup agrupa puntajes por categoría para el render radar.
type AbilityRadarGroup struct {
	Category  string         `json:"category"`
	Abilities []AbilityScore `json:"abilities"`
}

// AbilityProfile es el agregado completo sobre todos los instrumentos
// completados de un usuario.
type AbilityProfile struct {
	TotalScore     float64             `json:"total_score"`
	MaxTotalScore  float64             `json:"max_total_score"`
	Reliability    float64             `json:"reliability"`
	Categories     []AbilityRadarGroup `json:"categories"`
	CompletedTests []string            `json:"completed_tests"`
	PendingTests   []string            `json:"pending_tests"`
}

// SimilarProfile es un vecino de la búsqueda por vector de habilidades.
type SimilarProfile struct {
	UserID   string  `json:"user_id"`
	Distance float64 `json:"distance"`
}
