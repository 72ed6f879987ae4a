package domain

const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// SeverityWeight mapea la severidad de una detección a su aporte al
// fraud score.
var SeverityWeight = map[string]float64{
	SeverityCritical: 30,
	SeverityHigh:     20,
	SeverityMedium:   10,
	SeverityLow:      5,
}

const (
	RiskHigh   = "high"
	RiskMedium = "medium"
	RiskLow    = "low"
	RiskNormal = "normal"
)

// Detection es una anomalía marcada por un analizador.
type Detection struct {
	Type        string         `json:"type"`
	Severity    string         `json:"severity"`
	Description string         `json:"description"`
	Details     map[string]any `json:"details,omitempty"`
}

// FraudAnalysis es el veredicto combinado sobre una sesión.
type FraudAnalysis struct {
	SessionID      string      `json:"session_id"`
	FraudScore     float64     `json:"fraud_score"`
	RiskLevel      string      `json:"risk_level"`
	Detections     []Detection `json:"detections"`
	Recommendation string      `json:"recommendation"`
}

// RiskLevelFor clasifica un fraud score en un nivel de riesgo.
func RiskLevelFor(score float64) string {
	switch {
	case score >= 50:
		return RiskHigh
	case score >= 30:
		return RiskMedium
	case score >= 10:
		return RiskLow
	default:
		return RiskNormal
	}
}
