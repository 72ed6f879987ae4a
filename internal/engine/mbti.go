package engine

import "psymetric/internal/domain"

// MBTI resuelve cuatro dicotomías independientes (E-I, S-N, T-F, J-P) en
// un tipo de cuatro letras. Los empates van a la primera letra del eje.
type MBTI struct{}

func NewMBTI() *MBTI { return &MBTI{} }

func (*MBTI) Code() string { return "mbti" }
func (*MBTI) Name() string { return "MBTI Personality Type Indicator" }

type mbtiType struct {
	Name        string
	Description string
	Strengths   []string
	Weaknesses  []string
}

var mbtiDimensions = map[string]map[string]string{
	"E-I": {"E": "Extraversion", "I": "Introversion"},
	"S-N": {"S": "Sensing", "N": "Intuition"},
	"T-F": {"T": "Thinking", "F": "Feeling"},
	"J-P": {"J": "Judging", "P": "Perceiving"},
}

var mbtiTypes = map[string]mbtiType{
	"INTJ": {
		Name:        "Architect",
		Description: "Strategic thinker with original ideas and strong willpower",
		Strengths:   []string{"strategic thinking", "independence", "high standards", "decisiveness"},
		Weaknesses:  []string{"limited emotional expression", "overly critical", "perfectionism"},
	},
	"INTP": {
		Name:        "Logician",
		Description: "Innovative inventor with an unquenchable thirst for knowledge",
		Strengths:   []string{"analysis", "objectivity", "originality", "logical thinking"},
		Weaknesses:  []string{"impracticality", "social withdrawal", "indecision"},
	},
	"ENTJ": {
		Name:        "Commander",
		Description: "Bold, imaginative and strong-willed leader",
		Strengths:   []string{"leadership", "confidence", "efficiency", "strategic thinking"},
		Weaknesses:  []string{"impatience", "arrogance", "coldness"},
	},
	"ENTP": {
		Name:        "Debater",
		Description: "Smart and curious thinker who relishes a challenge",
		Strengths:   []string{"intellectual curiosity", "wit", "creativity", "confidence"},
		Weaknesses:  []string{"argumentativeness", "impracticality", "scattered focus"},
	},
	"INFJ": {
		Name:        "Advocate",
		Description: "Quiet, mystical and inspiring idealist",
		Strengths:   []string{"insight", "principle", "passion", "altruism"},
		Weaknesses:  []string{"perfectionism", "burnout risk", "sensitivity"},
	},
	"INFP": {
		Name:        "Mediator",
		Description: "Poetic, kind altruist always ready to help a good cause",
		Strengths:   []string{"empathy", "creativity", "passion", "dedication"},
		Weaknesses:  []string{"unrealistic expectations", "self-criticism", "isolation"},
	},
	"ENFJ": {
		Name:        "Protagonist",
		Description: "Charismatic and inspiring leader able to mesmerize listeners",
		Strengths:   []string{"charisma", "altruism", "reliability", "leadership"},
		Weaknesses:  []string{"excessive idealism", "self-sacrifice", "sensitivity"},
	},
	"ENFP": {
		Name:        "Campaigner",
		Description: "Enthusiastic, creative and sociable free spirit",
		Strengths:   []string{"enthusiasm", "creativity", "sociability", "optimism"},
		Weaknesses:  []string{"scattered focus", "emotional intensity", "impracticality"},
	},
	"ISTJ": {
		Name:        "Logistician",
		Description: "Practical and fact-minded, reliable to the core",
		Strengths:   []string{"responsibility", "reliability", "thoroughness", "patience"},
		Weaknesses:  []string{"stubbornness", "resistance to change", "limited emotional expression"},
	},
	"ISFJ": {
		Name:        "Defender",
		Description: "Devoted and warm protector",
		Strengths:   []string{"supportiveness", "reliability", "patience", "observation"},
		Weaknesses:  []string{"self-sacrifice", "resistance to change", "excessive modesty"},
	},
	"ESTJ": {
		Name:        "Executive",
		Description: "Excellent administrator, unsurpassed at managing things and people",
		Strengths:   []string{"organization", "dedication", "honesty", "willpower"},
		Weaknesses:  []string{"stubbornness", "inflexibility", "status focus"},
	},
	"ESFJ": {
		Name:        "Consul",
		Description: "Caring, social and popular, always eager to help",
		Strengths:   []string{"responsibility", "loyalty", "sociability", "consideration"},
		Weaknesses:  []string{"need for approval", "sensitivity to criticism", "over-helpfulness"},
	},
	"ISTP": {
		Name:        "Virtuoso",
		Description: "Bold and practical experimenter",
		Strengths:   []string{"logic", "problem solving", "crisis handling", "practicality"},
		Weaknesses:  []string{"insensitivity", "risk seeking", "commitment avoidance"},
	},
	"ISFP": {
		Name:        "Adventurer",
		Description: "Flexible and charming artist",
		Strengths:   []string{"charm", "artistry", "curiosity", "passion"},
		Weaknesses:  []string{"unpredictability", "fragile self-esteem", "competition avoidance"},
	},
	"ESTP": {
		Name:        "Entrepreneur",
		Description: "Smart, energetic and perceptive",
		Strengths:   []string{"boldness", "rationality", "directness", "sociability"},
		Weaknesses:  []string{"insensitivity", "impatience", "rule bending"},
	},
	"ESFP": {
		Name:        "Entertainer",
		Description: "Spontaneous, energetic and fun",
		Strengths:   []string{"boldness", "originality", "aesthetics", "practicality"},
		Weaknesses:  []string{"sensitivity", "scattered focus", "weak long-term planning"},
	},
}

func (*MBTI) Calculate(responses []domain.Response) (domain.RawScores, string, error) {
	if len(responses) == 0 {
		return nil, "", ErrInsufficientData
	}

	scores := map[string]float64{
		"E": 0, "I": 0, "S": 0, "N": 0, "T": 0, "F": 0, "J": 0, "P": 0,
	}
	accumulate(scores, responses)

	typeCode := ""
	typeCode += pickLetter(scores, "E", "I")
	typeCode += pickLetter(scores, "S", "N")
	typeCode += pickLetter(scores, "T", "F")
	typeCode += pickLetter(scores, "J", "P")

	raw := domain.RawScores{
		"type": typeCode,
		"E":    scores["E"], "I": scores["I"],
		"S": scores["S"], "N": scores["N"],
		"T": scores["T"], "F": scores["F"],
		"J": scores["J"], "P": scores["P"],
		"E_I_pct": axisPercentage(scores["E"], scores["I"]),
		"S_N_pct": axisPercentage(scores["S"], scores["N"]),
		"T_F_pct": axisPercentage(scores["T"], scores["F"]),
		"J_P_pct": axisPercentage(scores["J"], scores["P"]),
	}
	return raw, typeCode, nil
}

// pickLetter resuelve una dicotomía; la primera letra gana los empates.
func pickLetter(scores map[string]float64, first, second string) string {
	if scores[first] >= scores[second] {
		return first
	}
	return second
}

func axisPercentage(a, b float64) map[string]float64 {
	total := abs(a) + abs(b)
	if total == 0 {
		return map[string]float64{"first": 50, "second": 50}
	}
	return map[string]float64{
		"first":  round1(abs(a) / total * 100),
		"second": round1(abs(b) / total * 100),
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func (*MBTI) Interpret(raw domain.RawScores, resultType string) domain.Report {
	info, ok := mbtiTypes[resultType]
	if !ok {
		info = mbtiType{Name: "Unknown", Strengths: []string{}, Weaknesses: []string{}}
	}

	dims := domain.Report{}
	if len(resultType) == 4 {
		axes := []struct {
			axis          string
			first, second string
			pctKey        string
		}{
			{"E-I", "E", "I", "E_I_pct"},
			{"S-N", "S", "N", "S_N_pct"},
			{"T-F", "T", "F", "T_F_pct"},
			{"J-P", "J", "P", "J_P_pct"},
		}
		for i, ax := range axes {
			dims[ax.axis] = map[string]any{
				"result":       string(resultType[i]),
				ax.first + "_label":  mbtiDimensions[ax.axis][ax.first],
				ax.second + "_label": mbtiDimensions[ax.axis][ax.second],
				"percentage":   raw[ax.pctKey],
			}
		}
	}

	return domain.Report{
		"type":        resultType,
		"type_name":   info.Name,
		"description": info.Description,
		"strengths":   info.Strengths,
		"weaknesses":  info.Weaknesses,
		"dimensions":  dims,
	}
}
