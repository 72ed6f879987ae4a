package engine

import (
	"fmt"
	"strconv"

	"psymetric/internal/domain"
)

// Enneagram rankea los nueve tipos y adjunta un ala: el de mayor puntaje
// entre los dos tipos numéricamente adyacentes en el anillo 1..9.
type Enneagram struct{}

func NewEnneagram() *Enneagram { return &Enneagram{} }

func (*Enneagram) Code() string { return "enneagram" }
func (*Enneagram) Name() string { return "Enneagram Personality Test" }

type enneagramType struct {
	Name            string
	CoreDesire      string
	CoreFear        string
	Description     string
	Strengths       []string
	Weaknesses      []string
	GrowthDirection int
	StressDirection int
}

var enneagramTypes = map[int]enneagramType{
	1: {
		Name:            "The Reformer",
		CoreDesire:      "To live rightly",
		CoreFear:        "Being corrupt or bad",
		Description:     "Principled, idealistic and ethical, with a strong sense of right and wrong.",
		Strengths:       []string{"honesty", "responsibility", "self-discipline", "sense of purpose"},
		Weaknesses:      []string{"criticism", "perfectionism", "inflexibility", "self-criticism"},
		GrowthDirection: 7,
		StressDirection: 4,
	},
	2: {
		Name:            "The Helper",
		CoreDesire:      "To be loved",
		CoreFear:        "Being unloved",
		Description:     "Caring, interpersonal and generous, finding meaning in helping others.",
		Strengths:       []string{"care", "generosity", "empathy", "warmth"},
		Weaknesses:      []string{"self-sacrifice", "possessiveness", "manipulation", "need for approval"},
		GrowthDirection: 4,
		StressDirection: 8,
	},
	3: {
		Name:            "The Achiever",
		CoreDesire:      "To feel valuable",
		CoreFear:        "Being worthless",
		Description:     "Success-oriented, adaptable and driven, valuing achievement and image.",
		Strengths:       []string{"ambition", "confidence", "efficiency", "adaptability"},
		Weaknesses:      []string{"image obsession", "competitiveness", "emotional avoidance", "vanity"},
		GrowthDirection: 6,
		StressDirection: 9,
	},
	4: {
		Name:            "The Individualist",
		CoreDesire:      "To find a unique identity",
		CoreFear:        "Being ordinary",
		Description:     "Sensitive, self-aware and original, seeking depth of feeling and meaning.",
		Strengths:       []string{"creativity", "intuition", "empathy", "authenticity"},
		Weaknesses:      []string{"melancholy", "envy", "self-absorption", "moodiness"},
		GrowthDirection: 1,
		StressDirection: 2,
	},
	5: {
		Name:            "The Investigator",
		CoreDesire:      "To be capable and knowledgeable",
		CoreFear:        "Being helpless or useless",
		Description:     "Analytical, insightful and cerebral, focused on acquiring understanding.",
		Strengths:       []string{"analysis", "objectivity", "insight", "self-reliance"},
		Weaknesses:      []string{"isolation", "stinginess", "detachment", "secrecy"},
		GrowthDirection: 8,
		StressDirection: 7,
	},
	6: {
		Name:            "The Loyalist",
		CoreDesire:      "To have security and support",
		CoreFear:        "Being left without support or guidance",
		Description:     "Committed, responsible and security-oriented, valuing trust and loyalty.",
		Strengths:       []string{"loyalty", "responsibility", "diligence", "courage"},
		Weaknesses:      []string{"anxiety", "suspicion", "defensiveness", "indecision"},
		GrowthDirection: 9,
		StressDirection: 3,
	},
	7: {
		Name:            "The Enthusiast",
		CoreDesire:      "To be satisfied and content",
		CoreFear:        "Being deprived and in pain",
		Description:     "Versatile, optimistic and spontaneous, chasing new experience and joy.",
		Strengths:       []string{"optimism", "versatility", "spontaneity", "adventurousness"},
		Weaknesses:      []string{"distraction", "impulsiveness", "avoidance", "irresponsibility"},
		GrowthDirection: 5,
		StressDirection: 1,
	},
	8: {
		Name:            "The Challenger",
		CoreDesire:      "To protect and control their own life",
		CoreFear:        "Being controlled by others",
		Description:     "Powerful, dominant and confident, valuing independence and influence.",
		Strengths:       []string{"confidence", "decisiveness", "leadership", "protectiveness"},
		Weaknesses:      []string{"domination", "confrontation", "excessive toughness", "need for control"},
		GrowthDirection: 2,
		StressDirection: 5,
	},
	9: {
		Name:            "The Peacemaker",
		CoreDesire:      "To keep peace and harmony",
		CoreFear:        "Loss and separation",
		Description:     "Receptive, trusting and stable, seeking harmony and peace.",
		Strengths:       []string{"peacefulness", "acceptance", "reliability", "supportiveness"},
		Weaknesses:      []string{"passivity", "complacency", "stubbornness", "self-neglect"},
		GrowthDirection: 3,
		StressDirection: 6,
	},
}

var enneagramWings = map[string]string{
	"1w9": "Idealist - peaceful and principled",
	"1w2": "Advocate - helpful and principled",
	"2w1": "Servant - helpful and principled",
	"2w3": "Host - ambitious and charming",
	"3w2": "Charmer - sociable and achievement-driven",
	"3w4": "Professional - serious and achievement-driven",
	"4w3": "Aristocrat - ambitious and creative",
	"4w5": "Bohemian - intellectual and creative",
	"5w4": "Iconoclast - creative and analytical",
	"5w6": "Problem Solver - analytical and careful",
	"6w5": "Defender - careful and loyal",
	"6w7": "Buddy - lively and loyal",
	"7w6": "Entertainer - fun and responsible",
	"7w8": "Realist - bold and energetic",
	"8w7": "Maverick - bold and confident",
	"8w9": "Bear - strong and calm",
	"9w8": "Referee - calm and strong",
	"9w1": "Dreamer - idealistic and peaceful",
}

func (*Enneagram) Calculate(responses []domain.Response) (domain.RawScores, string, error) {
	if len(responses) == 0 {
		return nil, "", ErrInsufficientData
	}

	scores := map[string]float64{}
	for i := 1; i <= 9; i++ {
		scores[strconv.Itoa(i)] = 0
	}
	accumulate(scores, responses)

	ranked := rankDesc(scores)
	primary, _ := strconv.Atoi(ranked[0].Code)

	left := primary - 1
	if left < 1 {
		left = 9
	}
	right := primary + 1
	if right > 9 {
		right = 1
	}
	// Gana el adyacente de mayor puntaje; el de número menor en empates.
	wing := left
	if scores[strconv.Itoa(right)] > scores[strconv.Itoa(left)] ||
		(scores[strconv.Itoa(right)] == scores[strconv.Itoa(left)] && right < left) {
		wing = right
	}

	resultType := fmt.Sprintf("%dw%d", primary, wing)

	raw := domain.RawScores{
		"primary_type": float64(primary),
		"wing":         float64(wing),
		"top_three":    []any{ranked[0].Code, ranked[1].Code, ranked[2].Code},
	}
	for code, v := range scores {
		raw[code] = v
	}
	return raw, resultType, nil
}

func (*Enneagram) Interpret(raw domain.RawScores, resultType string) domain.Report {
	primary := 1
	if v, ok := numeric(raw, "primary_type"); ok {
		primary = int(v)
	}
	info := enneagramTypes[primary]

	scores := domain.Report{}
	for i := 1; i <= 9; i++ {
		key := strconv.Itoa(i)
		if v, ok := numeric(raw, key); ok {
			scores[key] = v
		}
	}

	return domain.Report{
		"result_type":      resultType,
		"primary_type":     primary,
		"type_name":        info.Name,
		"core_desire":      info.CoreDesire,
		"core_fear":        info.CoreFear,
		"description":      info.Description,
		"strengths":        info.Strengths,
		"weaknesses":       info.Weaknesses,
		"growth_direction": info.GrowthDirection,
		"stress_direction": info.StressDirection,
		"wing_description": enneagramWings[resultType],
		"scores":           scores,
		"top_three_types":  raw["top_three"],
	}
}
