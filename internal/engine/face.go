package engine

import (
	"strings"

	"psymetric/internal/domain"
)

// Face lee selecciones auto-reportadas de rasgos faciales contra tablas
// de rasgos por parte, clasifica la cara bajo uno de los cinco elementos
// y puntúa cinco áreas de fortuna con deltas sobre base 50.
type Face struct{}

func NewFace() *Face { return &Face{} }

func (*Face) Code() string { return "face" }
func (*Face) Name() string { return "Physiognomy Reading" }

type faceReading struct {
	Trait   string
	Fortune string
}

var faceParts = map[string]map[string]faceReading{
	"forehead": {
		"wide":   {"intellect, planning", "scholar, planner"},
		"narrow": {"execution, focus", "specialist, craftsman"},
		"high":   {"idealism, philosophy", "artist, thinker"},
		"low":    {"realism, practicality", "businessperson, technician"},
	},
	"eyebrows": {
		"thick":    {"strong will, decisiveness", "assertive"},
		"thin":     {"delicacy, sensitivity", "prudent"},
		"straight": {"logic, principle", "cool-headed"},
		"curved":   {"softness, flexibility", "gentle"},
	},
	"eyes": {
		"large": {"sensitivity, expressiveness", "artistic talent"},
		"small": {"observation, analysis", "business acumen"},
		"round": {"curiosity, liveliness", "good relationships"},
		"long":  {"wisdom, insight", "academic achievement"},
	},
	"nose": {
		"high":      {"pride, ambition", "wealth luck"},
		"straight":  {"honesty, trust", "social success"},
		"round_tip": {"warmth, gentleness", "luck with people"},
		"pointed":   {"sharpness, criticism", "analytical power"},
	},
	"mouth": {
		"large":      {"assertiveness, sociability", "expressive power"},
		"small":      {"introversion, prudence", "self-restraint"},
		"thick_lips": {"emotion, passion", "artistry"},
		"thin_lips":  {"reason, restraint", "logical power"},
	},
	"chin": {
		"strong":  {"willpower, patience", "good later years"},
		"weak":    {"flexibility, adaptability", "adapts to change"},
		"round":   {"gentleness, tolerance", "family luck"},
		"pointed": {"sensitivity, intuition", "artistic talent"},
	},
	"face_shape": {
		"oval":   {"balance, harmony", "versatile talent"},
		"round":  {"sociability, optimism", "affability"},
		"square": {"stability, trust", "responsibility"},
		"long":   {"intellect, dignity", "refinement"},
		"heart":  {"creativity, emotion", "artistry"},
	},
}

type faceElement struct {
	Features string
	Trait    string
	Careers  []string
}

var faceElements = map[string]faceElement{
	sajuWood: {
		Features: "Long, slender face, high forehead, thin eyebrows",
		Trait:    "creative, growth-oriented, benevolent",
		Careers:  []string{"educator", "artist", "physician", "clergy"},
	},
	sajuFire: {
		Features: "Pointed forehead, sharp eyes, reddish complexion",
		Trait:    "passionate, expressive, leading",
		Careers:  []string{"politician", "entertainer", "marketer", "athlete"},
	},
	sajuEarth: {
		Features: "Broad, angular face, thick lips, large nose",
		Trait:    "stable, trustworthy, tolerant",
		Careers:  []string{"businessperson", "real estate", "agriculture", "architect"},
	},
	sajuMetal: {
		Features: "Angular jaw, high cheekbones, fair skin",
		Trait:    "decisive, justice-minded, principled",
		Careers:  []string{"lawyer", "soldier", "financier", "engineer"},
	},
	sajuWater: {
		Features: "Round face, deep-set eyes, thick ears",
		Trait:    "wise, adaptable, intuitive",
		Careers:  []string{"scholar", "diplomat", "counselor", "philosopher"},
	},
}

var faceAdvice = map[string]string{
	sajuWood:  "Nurture your creativity and apply it in education or the arts.",
	sajuFire:  "Keep your passion in check and look for chances to lead.",
	sajuEarth: "Build a stable foundation and earn trust over time.",
	sajuMetal: "Hold to your principles, and flexibility will bring greater success.",
	sajuWater: "Apply your wisdom and solve problems with deep thinking.",
}

var faceShapeElements = map[string]string{
	"long": sajuWood, "oval": sajuWood,
	"heart": sajuFire, "pointed": sajuFire,
	"square": sajuEarth, "wide": sajuEarth,
	"angular": sajuMetal, "high_cheekbone": sajuMetal,
	"round": sajuWater, "soft": sajuWater,
}

func (*Face) Calculate(responses []domain.Response) (domain.RawScores, string, error) {
	if len(responses) == 0 {
		return nil, "", ErrInsufficientData
	}

	features := map[string]string{}
	hasImage := false
	for _, r := range responses {
		if r.Answer.IsNull() {
			continue
		}
		featureType := r.Weights.Tag("feature", "")
		if obj, ok := r.Answer.Object(); ok {
			for k, v := range obj {
				if s, ok := v.(string); ok {
					features[k] = s
				}
			}
		} else if s, ok := r.Answer.String(); ok {
			if featureType != "" {
				features[featureType] = s
			} else if strings.HasPrefix(s, "data:image") || strings.HasPrefix(s, "http") {
				hasImage = true
			}
		}
	}

	partAnalysis := map[string]any{}
	for part, value := range features {
		if readings, ok := faceParts[part]; ok {
			if reading, ok := readings[value]; ok {
				partAnalysis[part] = map[string]any{
					"trait":   reading.Trait,
					"fortune": reading.Fortune,
				}
			}
		}
	}

	element := faceDetermineElement(features)
	scores := faceScores(features)

	featuresAny := map[string]any{}
	for k, v := range features {
		featuresAny[k] = v
	}

	raw := domain.RawScores{
		"face_features": featuresAny,
		"part_analysis": partAnalysis,
		"element":       element,
		"scores":        scores,
		"has_image":     hasImage,
	}
	return raw, element + "_face", nil
}

func faceDetermineElement(features map[string]string) string {
	elementScores := map[string]float64{
		sajuWood: 0, sajuFire: 0, sajuEarth: 0, sajuMetal: 0, sajuWater: 0,
	}

	if element, ok := faceShapeElements[features["face_shape"]]; ok {
		elementScores[element] += 2
	}

	switch features["forehead"] {
	case "wide", "high":
		elementScores[sajuWood]++
	case "narrow":
		elementScores[sajuMetal]++
	}

	switch features["eyes"] {
	case "large", "round":
		elementScores[sajuWater]++
	case "small", "long":
		elementScores[sajuMetal]++
	}

	best := sajuElementOrder[0]
	for _, element := range sajuElementOrder {
		if elementScores[element] > elementScores[best] {
			best = element
		}
	}
	return best
}

func faceScores(features map[string]string) map[string]float64 {
	scores := map[string]float64{
		"fortune": 50, "career": 50, "relationship": 50, "health": 50, "wisdom": 50,
	}

	switch features["nose"] {
	case "high", "straight":
		scores["fortune"] += 15
		scores["career"] += 10
	case "round_tip":
		scores["relationship"] += 15
	}

	switch features["forehead"] {
	case "wide", "high":
		scores["wisdom"] += 15
		scores["career"] += 10
	}

	switch features["mouth"] {
	case "large", "thick_lips":
		scores["relationship"] += 15
	}

	switch features["chin"] {
	case "strong", "round":
		scores["health"] += 15
	}

	switch features["eyes"] {
	case "large", "round":
		scores["relationship"] += 10
	case "long", "small":
		scores["wisdom"] += 10
	}

	return scores
}

func (*Face) Interpret(raw domain.RawScores, resultType string) domain.Report {
	element, _ := raw["element"].(string)
	if element == "" {
		element = sajuEarth
	}
	scores := anyNumericMap(raw["scores"])
	elementInfo := faceElements[element]

	partAnalysis, _ := raw["part_analysis"].(map[string]any)
	partOrder := []string{"forehead", "eyebrows", "eyes", "nose", "mouth", "chin", "face_shape"}
	readings := []any{}
	for _, part := range partOrder {
		analysis, ok := partAnalysis[part].(map[string]any)
		if !ok {
			continue
		}
		readings = append(readings, map[string]any{
			"part":    part,
			"trait":   analysis["trait"],
			"fortune": analysis["fortune"],
		})
	}

	return domain.Report{
		"result_type": resultType,
		"element": map[string]any{
			"type":     element,
			"features": elementInfo.Features,
			"trait":    elementInfo.Trait,
		},
		"face_readings":          readings,
		"scores":                 scores,
		"fortune_summary":        faceFortuneSummary(scores),
		"career_recommendations": elementInfo.Careers,
		"strengths":              faceStrengths(scores, partAnalysis, partOrder),
		"advice":                 faceAdvice[element],
		"disclaimer":             "This reading is based on traditional interpretation; use it only as a reference.",
	}
}

func faceFortuneSummary(scores map[string]float64) map[string]any {
	summary := map[string]any{}
	if scores["fortune"] >= 60 {
		summary["wealth"] = "There is luck with wealth, and effort will be rewarded."
	} else {
		summary["wealth"] = "Stable financial management and steady effort are needed."
	}
	if scores["career"] >= 60 {
		summary["career"] = "There is business acumen, with opportunities to show leadership."
	} else {
		summary["career"] = "Results come through cooperation and steady effort."
	}
	if scores["relationship"] >= 60 {
		summary["relationships"] = "Relationships flow smoothly, with help from benefactors."
	} else {
		summary["relationships"] = "Communicate more and pay attention to your relationships."
	}
	if scores["health"] >= 60 {
		summary["health"] = "Healthy energy and plenty of vitality."
	} else {
		summary["health"] = "Take care of your health and keep a regular routine."
	}
	return summary
}

func faceStrengths(scores map[string]float64, partAnalysis map[string]any, partOrder []string) []string {
	strengths := []string{}
	if scores["wisdom"] >= 60 {
		strengths = append(strengths, "outstanding intellect and insight")
	}
	if scores["fortune"] >= 60 {
		strengths = append(strengths, "a gift for accumulating wealth")
	}
	if scores["relationship"] >= 60 {
		strengths = append(strengths, "charm that draws people in")
	}
	if scores["career"] >= 60 {
		strengths = append(strengths, "business acumen and leadership")
	}
	for _, part := range partOrder {
		if len(strengths) >= 5 {
			break
		}
		analysis, ok := partAnalysis[part].(map[string]any)
		if !ok {
			continue
		}
		if trait, ok := analysis["trait"].(string); ok && trait != "" {
			strengths = append(strengths, trait)
		}
	}
	if len(strengths) == 0 {
		return []string{"a well-balanced face"}
	}
	if len(strengths) > 5 {
		strengths = strengths[:5]
	}
	return strengths
}
