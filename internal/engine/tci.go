package engine

import "psymetric/internal/domain"

// TCI puntúa cuatro dimensiones de temperamento y tres de carácter, mapea
// cada una a un T-score comprimido (50 + (pct-50)*0.2) y etiqueta el
// perfil con las dimensiones por encima de su umbral medio.
type TCI struct{}

func NewTCI() *TCI { return &TCI{} }

func (*TCI) Code() string { return "tci" }
func (*TCI) Name() string { return "Temperament and Character Inventory" }

type tciDimension struct {
	Name string
	High string
	Low  string
}

var tciTemperaments = map[string]tciDimension{
	"NS": {
		Name: "Novelty Seeking",
		High: "exploratory, impulsive, disorderly, passionate",
		Low:  "cautious, restrained, systematic, reserved",
	},
	"HA": {
		Name: "Harm Avoidance",
		High: "worried, pessimistic, shy, easily fatigued",
		Low:  "optimistic, daring, outgoing, energetic",
	},
	"RD": {
		Name: "Reward Dependence",
		High: "sentimental, open, warm, devoted",
		Low:  "practical, cool, independent, detached",
	},
	"PS": {
		Name: "Persistence",
		High: "industrious, determined, perfectionistic",
		Low:  "lazy, unstable, quick to quit",
	},
}

var tciCharacters = map[string]tciDimension{
	"SD": {
		Name: "Self-Directedness",
		High: "responsible, goal-oriented, self-accepting",
		Low:  "blaming, aimless, self-deprecating",
	},
	"CO": {
		Name: "Cooperativeness",
		High: "socially tolerant, empathetic, helpful",
		Low:  "socially intolerant, indifferent, hostile",
	},
	"ST": {
		Name: "Self-Transcendence",
		High: "self-forgetful, spiritual, idealistic",
		Low:  "self-conscious, materialistic, pragmatic",
	},
}

var tciMaxScores = map[string]float64{
	"NS": 40, "HA": 35, "RD": 24, "PS": 8,
	"SD": 44, "CO": 42, "ST": 33,
}

// Umbrales medios; una dimensión en o sobre su umbral cuenta como alta.
var tciThresholds = map[string]float64{
	"NS": 20, "HA": 17, "RD": 12, "PS": 4,
	"SD": 22, "CO": 21, "ST": 16,
}

var tciTemperamentOrder = []string{"NS", "HA", "RD", "PS"}
var tciCharacterOrder = []string{"SD", "CO", "ST"}

func (*TCI) Calculate(responses []domain.Response) (domain.RawScores, string, error) {
	if len(responses) == 0 {
		return nil, "", ErrInsufficientData
	}

	scores := map[string]float64{
		"NS": 0, "HA": 0, "RD": 0, "PS": 0,
		"SD": 0, "CO": 0, "ST": 0,
	}
	accumulate(scores, responses)

	tScores := map[string]float64{}
	for dim, score := range scores {
		max := tciMaxScores[dim]
		pct := 50.0
		if max > 0 {
			pct = score / max * 100
		}
		tScores[dim] = round1(50 + (pct-50)*0.2)
	}

	temperamentProfile := tciProfile(scores, tciTemperamentOrder)
	characterProfile := tciProfile(scores, tciCharacterOrder)
	resultType := temperamentProfile + "-" + characterProfile

	raw := domain.RawScores{
		"t_scores":            tScores,
		"temperament_profile": temperamentProfile,
		"character_profile":   characterProfile,
	}
	for dim, v := range scores {
		raw[dim] = v
	}
	return raw, resultType, nil
}

// tciProfile concatena la primera letra de cada dimensión que puntúa en o
// sobre su umbral, en el orden canónico de dimensiones.
func tciProfile(scores map[string]float64, dims []string) string {
	profile := ""
	for _, dim := range dims {
		if scores[dim] >= tciThresholds[dim] {
			profile += dim[:1]
		}
	}
	if profile == "" {
		return "Balanced"
	}
	return profile
}

func (*TCI) Interpret(raw domain.RawScores, resultType string) domain.Report {
	tScores := tciTScores(raw)

	analyze := func(order []string, dims map[string]tciDimension) []any {
		out := make([]any, 0, len(order))
		for _, dim := range order {
			info := dims[dim]
			score, ok := tScores[dim]
			if !ok {
				score = 50
			}
			level, description := "average", "balanced"
			switch {
			case score >= 55:
				level, description = "high", info.High
			case score <= 45:
				level, description = "low", info.Low
			}
			out = append(out, map[string]any{
				"dimension":   dim,
				"name":        info.Name,
				"t_score":     score,
				"level":       level,
				"description": description,
			})
		}
		return out
	}

	return domain.Report{
		"result_type":            resultType,
		"temperament_profile":    raw["temperament_profile"],
		"character_profile":      raw["character_profile"],
		"temperament_analysis":   analyze(tciTemperamentOrder, tciTemperaments),
		"character_analysis":     analyze(tciCharacterOrder, tciCharacters),
		"overall_interpretation": tciOverall(tScores),
	}
}

func tciTScores(raw domain.RawScores) map[string]float64 {
	return anyNumericMap(raw["t_scores"])
}

func tciOverall(tScores map[string]float64) string {
	sd, ok := tScores["SD"]
	if !ok {
		sd = 50
	}
	co, ok := tScores["CO"]
	if !ok {
		co = 50
	}
	switch {
	case sd >= 55 && co >= 55:
		return "A mature and adaptable character, positive toward both self and others."
	case sd >= 55:
		return "Self-directed and goal-oriented, though relationships may benefit from more empathy and cooperation."
	case co >= 55:
		return "Cooperative and empathetic with others, though personal goals and values could be clearer."
	default:
		return "Room remains for character growth through better self-understanding and interpersonal skills."
	}
}
