package engine

import "psymetric/internal/domain"

// DISC rankea las cuatro dimensiones de conducta y compone las dos
// primeras en el tipo de resultado, segunda letra en minúscula
// (ej. "Di", "Cs").
type DISC struct{}

func NewDISC() *DISC { return &DISC{} }

func (*DISC) Code() string { return "disc" }
func (*DISC) Name() string { return "DISC Behavioral Assessment" }

type discType struct {
	Name          string
	Description   string
	Keywords      []string
	Strengths     []string
	Weaknesses    []string
	Communication string
	WorkStyle     string
}

var discTypes = map[string]discType{
	"D": {
		Name:          "Dominance",
		Description:   "Results-oriented, direct and decisive",
		Keywords:      []string{"decisiveness", "confidence", "directness", "competitiveness"},
		Strengths:     []string{"fast decision making", "goal achievement", "leadership", "challenge seeking"},
		Weaknesses:    []string{"impatience", "insensitivity", "dominance", "impulsiveness"},
		Communication: "Gets to the point and focuses on outcomes",
		WorkStyle:     "Acts fast and values results",
	},
	"I": {
		Name:          "Influence",
		Description:   "Enthusiastic, sociable and optimistic",
		Keywords:      []string{"enthusiasm", "sociability", "optimism", "persuasion"},
		Strengths:     []string{"team morale", "networking", "creative ideas", "motivation"},
		Weaknesses:    []string{"overlooking details", "impulsiveness", "disorganization", "overpromising"},
		Communication: "Communicates warmly and emotionally",
		WorkStyle:     "Prefers collaboration and seeks recognition",
	},
	"S": {
		Name:          "Steadiness",
		Description:   "Calm, patient and cooperative",
		Keywords:      []string{"patience", "reliability", "cooperation", "calmness"},
		Strengths:     []string{"teamwork", "listening", "reliability", "patience"},
		Weaknesses:    []string{"resistance to change", "indecision", "conflict avoidance", "passivity"},
		Communication: "Communicates gently and supportively",
		WorkStyle:     "Works steadily in a stable environment",
	},
	"C": {
		Name:          "Conscientiousness",
		Description:   "Analytical, precise and systematic",
		Keywords:      []string{"accuracy", "analysis", "structure", "quality focus"},
		Strengths:     []string{"analysis", "accuracy", "quality control", "problem solving"},
		Weaknesses:    []string{"criticism", "perfectionism", "slow decisions", "inflexibility"},
		Communication: "Communicates logically, backed by data",
		WorkStyle:     "Plans systematically and executes",
	},
}

var discComposites = map[string]string{
	"Di": "Goal-driven leader who carries people along",
	"Dc": "Strategist combining analytical thinking with decisiveness",
	"Id": "Sociable influencer who still chases results",
	"Is": "Warm and supportive team player",
	"Si": "Cooperative and positive helper",
	"Sc": "Careful and meticulous supporter",
	"Cd": "Analytical problem solver with drive",
	"Cs": "Precise and dependable specialist",
}

func (*DISC) Calculate(responses []domain.Response) (domain.RawScores, string, error) {
	if len(responses) == 0 {
		return nil, "", ErrInsufficientData
	}

	scores := map[string]float64{"D": 0, "I": 0, "S": 0, "C": 0}
	accumulate(scores, responses)

	max := 0.0
	for _, v := range scores {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		max = 1
	}

	ranked := rankDesc(scores)
	primary := ranked[0].Code
	secondary := ranked[1].Code
	resultType := primary + lower(secondary)

	raw := domain.RawScores{
		"D": scores["D"], "I": scores["I"], "S": scores["S"], "C": scores["C"],
		"D_normalized": round1(scores["D"] / max * 100),
		"I_normalized": round1(scores["I"] / max * 100),
		"S_normalized": round1(scores["S"] / max * 100),
		"C_normalized": round1(scores["C"] / max * 100),
		"primary":      primary,
		"secondary":    secondary,
	}
	return raw, resultType, nil
}

func lower(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}

func (*DISC) Interpret(raw domain.RawScores, resultType string) domain.Report {
	primary, _ := raw["primary"].(string)
	if primary == "" && resultType != "" {
		primary = resultType[:1]
	}
	info := discTypes[primary]

	scores := domain.Report{}
	for _, code := range []string{"D", "I", "S", "C"} {
		if v, ok := numeric(raw, code+"_normalized"); ok {
			scores[code] = v
		} else {
			scores[code] = 0.0
		}
	}

	return domain.Report{
		"result_type":           resultType,
		"primary_type":          primary,
		"primary_name":          info.Name,
		"description":           info.Description,
		"keywords":              info.Keywords,
		"strengths":             info.Strengths,
		"weaknesses":            info.Weaknesses,
		"communication_style":   info.Communication,
		"work_style":            info.WorkStyle,
		"composite_description": discComposites[resultType],
		"scores":                scores,
	}
}
