package engine

import (
	"sort"

	"psymetric/internal/domain"
)

// Blood busca el grupo sanguíneo reportado en una tabla fija de rasgos y
// puntúa qué tan consistentes son las respuestas de personalidad con el
// perfil esperado de ese grupo.
type Blood struct{}

func NewBlood() *Blood { return &Blood{} }

func (*Blood) Code() string { return "blood" }
func (*Blood) Name() string { return "Blood Type Personality Analysis" }

type bloodType struct {
	Name           string
	BasicTrait     string
	Strengths      []string
	Weaknesses     []string
	WorkStyle      string
	Relationship   string
	StressResponse string
	Compatible     []string
	Careers        []string
}

var bloodTypes = map[string]bloodType{
	"A": {
		Name:           "Type A",
		BasicTrait:     "Meticulous and careful perfectionist",
		Strengths:      []string{"meticulousness", "sincerity", "consideration", "planning", "responsibility"},
		Weaknesses:     []string{"worry", "timidity", "perfectionism", "vulnerability to stress"},
		WorkStyle:      "Works systematically and by plan, strong on detail",
		Relationship:   "Forms relationships carefully and keeps them for a long time",
		StressResponse: "Tends to worry alone and internalize",
		Compatible:     []string{"A", "O"},
		Careers:        []string{"researcher", "accountant", "physician", "teacher", "programmer"},
	},
	"B": {
		Name:           "Type B",
		BasicTrait:     "Free-spirited and creative individualist",
		Strengths:      []string{"creativity", "freedom", "optimism", "adaptability", "curiosity"},
		Weaknesses:     []string{"fickleness", "selfishness", "irresponsibility", "distractibility"},
		WorkStyle:      "Original and free in approach, immersed in areas of interest",
		Relationship:   "Honest and direct; relationships deepen once close",
		StressResponse: "Seeks something new for a change of mood",
		Compatible:     []string{"B", "AB"},
		Careers:        []string{"artist", "planner", "marketer", "chef", "designer"},
	},
	"O": {
		Name:           "Type O",
		BasicTrait:     "Leading and sociable go-getter",
		Strengths:      []string{"leadership", "confidence", "sociability", "realism", "decisiveness"},
		Weaknesses:     []string{"jealousy", "self-centeredness", "stubbornness", "mood swings"},
		WorkStyle:      "Goal-oriented; sees the big picture and drives forward",
		Relationship:   "Wide circle of relationships, strong loyalty",
		StressResponse: "Works it off through exercise or activity",
		Compatible:     []string{"O", "A"},
		Careers:        []string{"executive", "politician", "athlete", "sales", "entrepreneur"},
	},
	"AB": {
		Name:           "Type AB",
		BasicTrait:     "Rational and versatile analyst",
		Strengths:      []string{"analysis", "composure", "versatility", "rationality", "fairness"},
		Weaknesses:     []string{"duality", "cynicism", "indecision", "aloofness"},
		WorkStyle:      "Analytical and logical, approaching from many angles",
		Relationship:   "Selective relationships, close with a deep few",
		StressResponse: "Takes time alone to analyze and sort things out",
		Compatible:     []string{"AB", "B"},
		Careers:        []string{"consultant", "scientist", "writer", "diplomat", "critic"},
	},
}

type bloodCompat struct {
	Score       float64
	Description string
}

// Las claves son los dos grupos en orden, unidos por guion.
var bloodCompatibility = map[string]bloodCompat{
	"A-A":   {80, "A stable relationship built on mutual understanding of caution"},
	"A-B":   {60, "Differences can be an attraction or a source of conflict"},
	"A-O":   {90, "An ideal pairing that brings out each other's strengths"},
	"A-AB":  {70, "A relationship where intellectual conversation flows"},
	"B-B":   {75, "Mutual understanding between free spirits"},
	"B-O":   {65, "Shared passion, but different styles"},
	"AB-B":  {85, "A creative relationship respecting each other's individuality"},
	"O-O":   {80, "Strong leadership may clash, yet they understand each other"},
	"AB-O":  {70, "The harmony of practice and theory"},
	"AB-AB": {85, "An intellectual, composed relationship with deep understanding"},
}

var bloodExpected = map[string]map[string]float64{
	"A":  {"introvert": 0.7, "thinking": 0.4, "planning": 0.8},
	"B":  {"extrovert": 0.6, "feeling": 0.5, "flexible": 0.8},
	"O":  {"extrovert": 0.8, "thinking": 0.5, "planning": 0.6},
	"AB": {"introvert": 0.5, "thinking": 0.8, "flexible": 0.5},
}

var bloodLifestyleTips = map[string][]string{
	"A": {
		"Accept good enough instead of chasing perfection",
		"Practice relaxation to manage stress",
		"Take plenty of time for yourself",
		"Keep a regular daily rhythm",
	},
	"B": {
		"Focus on your interests, but mind your responsibilities",
		"Recharge through a variety of experiences",
		"Enjoy creative hobbies",
		"Making a plan now and then helps too",
	},
	"O": {
		"Chase your goals, but schedule rest as well",
		"Listen to other people's opinions too",
		"Burn off energy with active exercise",
		"Let go of the pressure of always leading",
	},
	"AB": {
		"Make the choice instead of postponing it",
		"Practice expressing your feelings",
		"Balance time alone with social time",
		"Analysis is good, but trust your intuition too",
	},
}

var bloodHealthTips = map[string][]string{
	"A": {
		"A vegetable-centered diet may suit you",
		"Stress can affect your digestion",
		"Relaxing exercise such as meditation or yoga is recommended",
		"Get enough sleep",
	},
	"B": {
		"Eat a balanced variety of foods",
		"Enjoy dairy in moderation",
		"Find exercise you enjoy and keep at it",
		"Try building regular habits",
	},
	"O": {
		"Get enough protein",
		"Aerobic exercise may suit you",
		"Cut back on flour-based foods",
		"Keep an active lifestyle",
	},
	"AB": {
		"Keep a varied, balanced diet",
		"Exercise such as yoga or tai chi suits you",
		"Avoid overeating and eat lightly",
		"Pay attention to stress management",
	},
}

var bloodTypeOrder = []string{"A", "B", "O", "AB"}

func (*Blood) Calculate(responses []domain.Response) (domain.RawScores, string, error) {
	if len(responses) == 0 {
		return nil, "", ErrInsufficientData
	}

	reportedType := "A"
	additional := map[string]any{}
	personality := map[string]float64{
		"introvert": 0, "extrovert": 0,
		"thinking": 0, "feeling": 0,
		"planning": 0, "flexible": 0,
	}

	for _, r := range responses {
		if r.Answer.IsNull() {
			continue
		}
		switch r.Weights.Tag("field", "") {
		case "blood_type":
			if s, ok := r.Answer.String(); ok {
				if _, known := bloodTypes[s]; known {
					reportedType = s
				}
			}
		case "rh_factor":
			additional["rh_factor"] = r.Answer.Value()
		default:
			for trait, w := range r.Weights {
				if _, tracked := personality[trait]; tracked {
					personality[trait] += w.Apply(r.Answer)
				}
			}
		}
	}

	raw := domain.RawScores{
		"blood_type":         reportedType,
		"additional_info":    additional,
		"personality_scores": personality,
		"consistency":        bloodConsistency(reportedType, personality),
	}
	return raw, reportedType, nil
}

// bloodConsistency mide qué tanto siguen las respuestas de personalidad
// los ratios de rasgos esperados del grupo, 0..100.
func bloodConsistency(reportedType string, scores map[string]float64) float64 {
	expected, ok := bloodExpected[reportedType]
	if !ok {
		return 70.0
	}

	const maxScore = 50.0
	totalDiff := 0.0
	count := 0
	for trait, expectedRatio := range expected {
		actual, tracked := scores[trait]
		if !tracked {
			continue
		}
		diff := expectedRatio - actual/maxScore
		if diff < 0 {
			diff = -diff
		}
		totalDiff += diff
		count++
	}
	if count == 0 {
		return 70.0
	}
	return round1(clamp((1-totalDiff/float64(count))*100, 0, 100))
}

func (*Blood) Interpret(raw domain.RawScores, resultType string) domain.Report {
	reportedType, _ := raw["blood_type"].(string)
	if reportedType == "" {
		reportedType = "A"
	}
	info := bloodTypes[reportedType]

	consistency := 70.0
	if v, ok := numeric(raw, "consistency"); ok {
		consistency = v
	}

	compat := make([]map[string]any, 0, len(bloodTypeOrder))
	for _, other := range bloodTypeOrder {
		pair := bloodPairKey(reportedType, other)
		entry, ok := bloodCompatibility[pair]
		if !ok {
			entry = bloodCompat{Score: 70}
		}
		compat = append(compat, map[string]any{
			"type":        other,
			"score":       entry.Score,
			"description": entry.Description,
		})
	}
	sort.SliceStable(compat, func(i, j int) bool {
		return compat[i]["score"].(float64) > compat[j]["score"].(float64)
	})

	compatAny := make([]any, len(compat))
	bestMatch := reportedType
	for i, entry := range compat {
		compatAny[i] = entry
		if i == 0 {
			bestMatch, _ = entry["type"].(string)
		}
	}

	rhFactor := any("Rh+")
	if additional, ok := raw["additional_info"].(map[string]any); ok {
		if v, ok := additional["rh_factor"]; ok {
			rhFactor = v
		}
	}

	return domain.Report{
		"result_type": resultType,
		"blood_type": map[string]any{
			"type":        reportedType,
			"name":        info.Name,
			"basic_trait": info.BasicTrait,
		},
		"rh_factor": rhFactor,
		"personality": map[string]any{
			"strengths":  info.Strengths,
			"weaknesses": info.Weaknesses,
		},
		"work_style":         info.WorkStyle,
		"relationship_style": info.Relationship,
		"stress_response":    info.StressResponse,
		"suitable_careers":   info.Careers,
		"compatibility":      compatAny,
		"best_match":         bestMatch,
		"consistency_score":  consistency,
		"consistency_note":   bloodConsistencyNote(consistency),
		"lifestyle_tips":     bloodLifestyleTips[reportedType],
		"health_tips":        bloodHealthTips[reportedType],
		"disclaimer":         "Blood type personality theory is not scientifically validated; enjoy this for fun only.",
	}
}

func bloodPairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "-" + b
}

func bloodConsistencyNote(consistency float64) string {
	switch {
	case consistency >= 80:
		return "Your answers closely match the typical traits of this blood type."
	case consistency >= 60:
		return "You largely show the traits of this blood type."
	case consistency >= 40:
		return "You have a distinctive personality that differs from the blood type profile."
	default:
		return "Your personality differs from the typical blood type profile."
	}
}
