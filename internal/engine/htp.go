package engine

import (
	"encoding/json"

	"psymetric/internal/domain"
)

// HTP puntúa los dibujos de casa, árbol y persona desde selecciones de
// rasgos auto-reportadas, aplicando deltas fijos sobre puntajes base 50 y
// derivando rasgos de personalidad globales de promedios entre dibujos.
type HTP struct{}

func NewHTP() *HTP { return &HTP{} }

func (*HTP) Code() string { return "htp" }
func (*HTP) Name() string { return "House-Tree-Person Drawing Test" }

const (
	traitStabilitySeeking = "stability_seeking"
	traitChangeSeeking    = "change_seeking"
	traitSociable         = "sociable"
	traitIntroverted      = "introverted"
	traitConfident        = "confident"
	traitNeedsReflection  = "needs_self_reflection"
	traitGrowthOriented   = "growth_oriented"
	traitBalanced         = "balanced"
)

func (*HTP) Calculate(responses []domain.Response) (domain.RawScores, string, error) {
	if len(responses) == 0 {
		return nil, "", ErrInsufficientData
	}

	drawings := map[string]map[string]any{
		"house": {}, "tree": {}, "person": {},
	}
	for _, r := range responses {
		if r.Answer.IsNull() {
			continue
		}
		drawingType := r.Weights.Tag("type", "house")
		if _, known := drawings[drawingType]; !known {
			continue
		}
		if obj, ok := r.Answer.Object(); ok {
			drawings[drawingType] = obj
		} else if s, ok := r.Answer.String(); ok {
			var decoded map[string]any
			if err := json.Unmarshal([]byte(s), &decoded); err == nil {
				drawings[drawingType] = decoded
			} else {
				drawings[drawingType]["image_data"] = s
			}
		}
	}

	house := htpAnalyzeHouse(htpFeatures(drawings["house"]))
	tree := htpAnalyzeTree(htpFeatures(drawings["tree"]))
	person := htpAnalyzePerson(htpFeatures(drawings["person"]))
	traits := htpTraits(house.scores, tree.scores, person.scores)

	traitsAny := make([]any, len(traits))
	for i, t := range traits {
		traitsAny[i] = t
	}

	raw := domain.RawScores{
		"house_analysis":  house.asMap(),
		"tree_analysis":   tree.asMap(),
		"person_analysis": person.asMap(),
		"overall_traits":  traitsAny,
	}
	return raw, traits[0], nil
}

// htpFeatures extrae las selecciones de rasgos del payload de un dibujo.
func htpFeatures(drawing map[string]any) map[string]string {
	out := map[string]string{}
	features, ok := drawing["features"].(map[string]any)
	if !ok {
		return out
	}
	for k, v := range features {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

type htpAnalysis struct {
	scores         map[string]float64
	interpretation string
}

func (a htpAnalysis) asMap() map[string]any {
	return map[string]any{
		"scores":         a.scores,
		"interpretation": a.interpretation,
	}
}

func htpAnalyzeHouse(features map[string]string) htpAnalysis {
	scores := map[string]float64{"security": 50, "family": 50, "openness": 50}

	switch features["size"] {
	case "large":
		scores["security"] += 15
	case "small":
		scores["security"] -= 15
	}
	switch features["door"] {
	case "large":
		scores["openness"] += 20
	case "small":
		scores["openness"] -= 15
	}
	if features["chimney"] == "present" {
		scores["family"] += 15
	}
	if features["windows"] == "many" {
		scores["openness"] += 10
	}

	var interpretation string
	security, openness := scores["security"], scores["openness"]
	switch {
	case security >= 60 && openness >= 60:
		interpretation = "Feels secure about home life and stays open to the outside world."
	case security >= 60:
		interpretation = "Home is a refuge, but boundaries with the outside matter."
	case openness >= 60:
		interpretation = "Values social relationships but needs more inner stability."
	default:
		interpretation = "More security is needed both at home and in the outside world."
	}
	return htpAnalysis{scores, interpretation}
}

func htpAnalyzeTree(features map[string]string) htpAnalysis {
	scores := map[string]float64{"ego_strength": 50, "growth": 50, "stability": 50}

	switch features["trunk"] {
	case "thick":
		scores["ego_strength"] += 20
	case "thin":
		scores["ego_strength"] -= 15
	}
	switch features["branches"] {
	case "reaching_up":
		scores["growth"] += 20
	case "drooping":
		scores["growth"] -= 20
	}
	switch features["roots"] {
	case "visible":
		scores["stability"] += 15
	case "absent":
		scores["stability"] -= 10
	}
	if features["leaves"] == "many" {
		scores["growth"] += 10
	}

	var interpretation string
	ego, growth := scores["ego_strength"], scores["growth"]
	switch {
	case ego >= 60 && growth >= 60:
		interpretation = "Pursues growth and development on the basis of a healthy ego."
	case ego >= 60:
		interpretation = "Has a stable ego but needs new challenges."
	case growth >= 60:
		interpretation = "Strong drive to grow; strengthening the ego will support it."
	default:
		interpretation = "Attention to inner stability and growth is needed."
	}
	return htpAnalysis{scores, interpretation}
}

func htpAnalyzePerson(features map[string]string) htpAnalysis {
	scores := map[string]float64{"self_concept": 50, "social": 50, "autonomy": 50}

	switch features["size"] {
	case "large":
		scores["self_concept"] += 15
	case "small":
		scores["self_concept"] -= 20
	}
	switch features["arms"] {
	case "outstretched":
		scores["social"] += 20
	case "hidden":
		scores["social"] -= 15
	}
	if features["eyes"] == "detailed" {
		scores["social"] += 10
	}
	if features["legs"] == "long" {
		scores["autonomy"] += 15
	}

	var interpretation string
	selfConcept, social := scores["self_concept"], scores["social"]
	switch {
	case selfConcept >= 60 && social >= 60:
		interpretation = "Holds a positive self-image and active social relationships."
	case selfConcept >= 60:
		interpretation = "Positive about oneself; widening relationships would help."
	case social >= 60:
		interpretation = "Values relationships with others; self-awareness could be stronger."
	default:
		interpretation = "Room to grow in both self-understanding and relationships."
	}
	return htpAnalysis{scores, interpretation}
}

func htpTraits(house, tree, person map[string]float64) []string {
	traits := []string{}

	stability := (house["security"] + tree["stability"]) / 2
	if stability >= 60 {
		traits = append(traits, traitStabilitySeeking)
	} else if stability < 40 {
		traits = append(traits, traitChangeSeeking)
	}

	social := (house["openness"] + person["social"]) / 2
	if social >= 60 {
		traits = append(traits, traitSociable)
	} else if social < 40 {
		traits = append(traits, traitIntroverted)
	}

	ego := (tree["ego_strength"] + person["self_concept"]) / 2
	if ego >= 60 {
		traits = append(traits, traitConfident)
	} else if ego < 40 {
		traits = append(traits, traitNeedsReflection)
	}

	if tree["growth"] >= 60 {
		traits = append(traits, traitGrowthOriented)
	}

	if len(traits) == 0 {
		traits = append(traits, traitBalanced)
	}
	return traits
}

func (*HTP) Interpret(raw domain.RawScores, resultType string) domain.Report {
	house := htpAnalysisMap(raw["house_analysis"])
	tree := htpAnalysisMap(raw["tree_analysis"])
	person := htpAnalysisMap(raw["person_analysis"])
	traits := anyStringList(raw["overall_traits"])

	return domain.Report{
		"result_type": resultType,
		"house_analysis": map[string]any{
			"scores":         house.scores,
			"interpretation": house.interpretation,
			"meaning":        "The house symbolizes home, security and one's own territory.",
		},
		"tree_analysis": map[string]any{
			"scores":         tree.scores,
			"interpretation": tree.interpretation,
			"meaning":        "The tree symbolizes the growth of the ego, vitality and the unconscious.",
		},
		"person_analysis": map[string]any{
			"scores":         person.scores,
			"interpretation": person.interpretation,
			"meaning":        "The person symbolizes self-image, relationships and body image.",
		},
		"overall_traits":         traits,
		"overall_interpretation": htpOverall(traits),
		"recommendations":        htpRecommendations(house.scores, tree.scores, person.scores),
		"disclaimer":             "Drawing analysis requires expert interpretation; treat this result as a reference only.",
	}
}

func htpAnalysisMap(v any) htpAnalysis {
	out := htpAnalysis{scores: map[string]float64{}}
	m, ok := v.(map[string]any)
	if !ok {
		return out
	}
	out.scores = anyNumericMap(m["scores"])
	out.interpretation, _ = m["interpretation"].(string)
	return out
}

func htpOverall(traits []string) string {
	has := func(t string) bool {
		for _, trait := range traits {
			if trait == t {
				return true
			}
		}
		return false
	}
	switch {
	case has(traitStabilitySeeking) && has(traitSociable):
		return "A balanced personality with an active social life built on a stable foundation."
	case has(traitGrowthOriented) && has(traitConfident):
		return "A personality that pursues continuous growth and development grounded in confidence."
	case has(traitIntroverted):
		return "A personality that values the inner world and thinks deeply."
	default:
		return "A personality holding balance across many aspects."
	}
}

func htpRecommendations(house, tree, person map[string]float64) []string {
	recommendations := []string{}
	if house["security"] < 50 {
		recommendations = append(recommendations, "Build routines that bring a sense of stability to daily life.")
	}
	if tree["ego_strength"] < 50 {
		recommendations = append(recommendations, "Recognize your strengths and practice positive self-talk.")
	}
	if person["social"] < 50 {
		recommendations = append(recommendations, "Widen social connections through small gatherings or activities.")
	}
	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Maintain the balanced state you have now.")
	}
	return recommendations
}
