package engine

import "psymetric/internal/domain"

// Sasang puntúa las cuatro constituciones tradicionales. Las respuestas
// likert multiplican pesos por constitución; las de opción indexan una
// tabla por respuesta cuyos valores son mapas de pesos de constitución.
// Los puntajes también se acumulan por área de pregunta (body,
// personality, health, preference).
type Sasang struct{}

func NewSasang() *Sasang { return &Sasang{} }

func (*Sasang) Code() string { return "sasang" }
func (*Sasang) Name() string { return "Sasang Constitution Test" }

const (
	constTaeyang = "taeyang"
	constTaeeum  = "taeeum"
	constSoyang  = "soyang"
	constSoeum   = "soeum"
)

type sasangConstitution struct {
	OrganStrong string
	OrganWeak   string
	BodyType    string
	Personality string
	Strengths   []string
	Weaknesses  []string
	HealthTips  []string
	FoodsGood   []string
	FoodsBad    []string
	Careers     []string
}

var sasangConstitutions = map[string]sasangConstitution{
	constTaeyang: {
		OrganStrong: "lungs",
		OrganWeak:   "liver",
		BodyType:    "Developed upper body, thick nape, weaker below the waist",
		Personality: "enterprising, creative, original, sociable",
		Strengths:   []string{"leadership", "drive", "creativity", "decisiveness"},
		Weaknesses:  []string{"dogmatism", "quick temper", "lack of stamina"},
		HealthTips:  []string{"support liver function", "lower-body exercise", "plenty of rest"},
		FoodsGood:   []string{"mild vegetables", "seafood", "plain dishes"},
		FoodsBad:    []string{"greasy food", "spicy and stimulating food"},
		Careers:     []string{"politician", "entrepreneur", "artist", "inventor"},
	},
	constTaeeum: {
		OrganStrong: "liver",
		OrganWeak:   "lungs",
		BodyType:    "Large frame, sturdy build, prominent belly",
		Personality: "persistent, composed, conservative, patient",
		Strengths:   []string{"perseverance", "stamina", "reliability", "thoroughness"},
		Weaknesses:  []string{"indecision", "laziness", "resistance to change"},
		HealthTips:  []string{"support lung function", "aerobic exercise", "weight management"},
		FoodsGood:   []string{"beef", "chestnuts", "walnuts", "beans"},
		FoodsBad:    []string{"chicken", "pork", "wheat flour"},
		Careers:     []string{"entrepreneur", "civil servant", "farmer", "architect"},
	},
	constSoyang: {
		OrganStrong: "spleen",
		OrganWeak:   "kidneys",
		BodyType:    "Developed chest, small hips, agile",
		Personality: "lively, hasty, justice-minded, extroverted",
		Strengths:   []string{"judgment", "initiative", "spirit of service", "sense of justice"},
		Weaknesses:  []string{"impatience", "rashness", "lack of persistence"},
		HealthTips:  []string{"support kidney function", "plenty of fluids", "calm the mind"},
		FoodsGood:   []string{"pork", "cucumber", "watermelon", "barley"},
		FoodsBad:    []string{"chicken", "ginseng", "honey"},
		Careers:     []string{"journalist", "teacher", "social activist", "diplomat"},
	},
	constSoeum: {
		OrganStrong: "kidneys",
		OrganWeak:   "spleen",
		BodyType:    "Small build, lower body more developed than upper",
		Personality: "introverted, meticulous, precise, timid",
		Strengths:   []string{"delicacy", "analysis", "responsibility", "prudence"},
		Weaknesses:  []string{"passivity", "worry", "weak stamina"},
		HealthTips:  []string{"support digestion", "warm food", "stress management"},
		FoodsGood:   []string{"chicken", "glutinous rice", "ginseng", "jujubes"},
		FoodsBad:    []string{"pork", "cold noodles", "cold food"},
		Careers:     []string{"researcher", "accountant", "programmer", "writer"},
	},
}

var sasangLifestyleAdvice = map[string][]string{
	constTaeyang: {
		"Avoid overwork and rest well",
		"Keep up lower-body exercise",
		"Put off hasty decisions by a day",
	},
	constTaeeum: {
		"Manage your weight with regular exercise",
		"Try something new",
		"Avoid overeating and eat lightly",
	},
	constSoyang: {
		"Drink plenty of fluids",
		"Calm the mind with meditation or yoga",
		"Think things through before deciding",
	},
	constSoeum: {
		"Eat warm food",
		"Keep up light exercise",
		"Cultivate positive thinking",
	},
}

var sasangExerciseAdvice = map[string]string{
	constTaeyang: "Swimming, walking and lower-body strength work suit you. Steady exercise matters more than intense exercise.",
	constTaeeum:  "Hiking, jogging and aerobic exercise suit you. Exercise that works up a sweat helps.",
	constSoyang:  "Swimming, strolling and meditation suit you. Exercise that calms the mind helps.",
	constSoeum:   "Light walks, stretching and yoga suit you. Exercise within your limits matters.",
}

var sasangAreas = []string{"body", "personality", "health", "preference"}
var sasangConstOrder = []string{constTaeyang, constTaeeum, constSoyang, constSoeum}

func (*Sasang) Calculate(responses []domain.Response) (domain.RawScores, string, error) {
	if len(responses) == 0 {
		return nil, "", ErrInsufficientData
	}

	scores := map[string]float64{
		constTaeyang: 0, constTaeeum: 0, constSoyang: 0, constSoeum: 0,
	}
	areaScores := map[string]map[string]float64{}
	for _, area := range sasangAreas {
		areaScores[area] = map[string]float64{
			constTaeyang: 0, constTaeeum: 0, constSoyang: 0, constSoeum: 0,
		}
	}

	for _, r := range responses {
		if r.Answer.IsNull() {
			continue
		}
		area := r.Weights.Tag("area", "personality")

		if f, ok := r.Answer.Float(); ok {
			for constitution, w := range r.Weights {
				if _, tracked := scores[constitution]; !tracked {
					continue
				}
				if w.Kind != domain.WeightNumber {
					continue
				}
				delta := w.Number * f
				scores[constitution] += delta
				if byArea, ok := areaScores[area]; ok {
					byArea[constitution] += delta
				}
			}
		} else if s, ok := r.Answer.String(); ok {
			// Las preguntas de opción traen una tabla por valor de
			// respuesta que mapea constituciones a sus pesos.
			if w, ok := r.Weights[s]; ok && w.Kind == domain.WeightTable {
				for constitution, delta := range w.Table {
					if _, tracked := scores[constitution]; tracked {
						scores[constitution] += delta
					}
				}
			}
		}
	}

	ranked := rankDesc(scores)
	primary := ranked[0].Code
	secondary := ranked[1].Code

	total := 0.0
	for _, v := range scores {
		total += v
	}
	confidence := 0.0
	if total > 0 {
		confidence = round1(scores[primary] / total * 100)
	}

	areaScoresAny := map[string]any{}
	for area, byArea := range areaScores {
		areaScoresAny[area] = byArea
	}

	raw := domain.RawScores{
		"scores":      scores,
		"area_scores": areaScoresAny,
		"primary":     primary,
		"secondary":   secondary,
		"confidence":  confidence,
	}
	return raw, primary, nil
}

func (*Sasang) Interpret(raw domain.RawScores, resultType string) domain.Report {
	scores := anyNumericMap(raw["scores"])
	primary, _ := raw["primary"].(string)
	if primary == "" {
		primary = constTaeeum
	}
	info := sasangConstitutions[primary]

	total := 0.0
	for _, v := range scores {
		total += v
	}
	normalized := map[string]float64{}
	for _, constitution := range sasangConstOrder {
		if total > 0 {
			normalized[constitution] = round1(scores[constitution] / total * 100)
		} else {
			normalized[constitution] = 25
		}
	}

	return domain.Report{
		"result_type":            resultType,
		"constitution":           primary,
		"confidence":             raw["confidence"],
		"all_scores":             normalized,
		"secondary_constitution": raw["secondary"],
		"body_type":              info.BodyType,
		"organ_info": map[string]any{
			"strong": info.OrganStrong,
			"weak":   info.OrganWeak,
		},
		"personality": info.Personality,
		"strengths":   info.Strengths,
		"weaknesses":  info.Weaknesses,
		"health_tips": info.HealthTips,
		"diet_recommendations": map[string]any{
			"good": info.FoodsGood,
			"bad":  info.FoodsBad,
		},
		"suitable_careers": info.Careers,
		"lifestyle_advice": sasangLifestyleAdvice[primary],
		"exercise_advice":  sasangExerciseAdvice[primary],
	}
}
