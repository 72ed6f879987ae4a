package engine

import (
	"strconv"
	"strings"

	"psymetric/internal/domain"
)

// Tarot mapea las cartas de arcanos mayores elegidas a elementos y
// palabras clave; el elemento dominante y el nombre de la primera carta
// forman el tipo de resultado.
type Tarot struct{}

func NewTarot() *Tarot { return &Tarot{} }

func (*Tarot) Code() string { return "tarot" }
func (*Tarot) Name() string { return "Tarot Personality Reading" }

const (
	elementFire  = "fire"
	elementWater = "water"
	elementAir   = "air"
	elementEarth = "earth"
)

type tarotCard struct {
	Name     string
	Keywords []string
	Element  string
}

var majorArcana = map[int]tarotCard{
	0:  {"The Fool", []string{"freedom", "adventure", "innocence", "new beginnings"}, elementAir},
	1:  {"The Magician", []string{"creativity", "willpower", "skill", "focus"}, elementFire},
	2:  {"The High Priestess", []string{"intuition", "wisdom", "secrets", "the subconscious"}, elementWater},
	3:  {"The Empress", []string{"abundance", "nurture", "nature", "creation"}, elementEarth},
	4:  {"The Emperor", []string{"authority", "structure", "leadership", "stability"}, elementFire},
	5:  {"The Hierophant", []string{"tradition", "education", "spiritual guidance", "conviction"}, elementEarth},
	6:  {"The Lovers", []string{"love", "choice", "harmony", "relationships"}, elementAir},
	7:  {"The Chariot", []string{"will", "determination", "victory", "control"}, elementWater},
	8:  {"Strength", []string{"courage", "patience", "inner strength", "self-control"}, elementFire},
	9:  {"The Hermit", []string{"reflection", "wisdom", "introspection", "solitude"}, elementEarth},
	10: {"Wheel of Fortune", []string{"change", "fate", "opportunity", "cycles"}, elementFire},
	11: {"Justice", []string{"balance", "fairness", "truth", "responsibility"}, elementAir},
	12: {"The Hanged Man", []string{"sacrifice", "new perspective", "patience", "enlightenment"}, elementWater},
	13: {"Death", []string{"change", "transition", "endings and beginnings", "rebirth"}, elementWater},
	14: {"Temperance", []string{"balance", "harmony", "patience", "adaptation"}, elementFire},
	15: {"The Devil", []string{"bondage", "materialism", "the shadow", "temptation"}, elementEarth},
	16: {"The Tower", []string{"upheaval", "revelation", "liberation", "truth"}, elementFire},
	17: {"The Star", []string{"hope", "inspiration", "peace", "healing"}, elementAir},
	18: {"The Moon", []string{"illusion", "intuition", "the unconscious", "anxiety"}, elementWater},
	19: {"The Sun", []string{"success", "joy", "vitality", "optimism"}, elementFire},
	20: {"Judgement", []string{"resurrection", "renewal", "decision", "self-evaluation"}, elementFire},
	21: {"The World", []string{"completion", "achievement", "integration", "journey"}, elementEarth},
}

type tarotElement struct {
	Trait     string
	Abilities []string
}

var tarotElements = map[string]tarotElement{
	elementFire:  {"passionate and action-oriented", []string{"leadership", "drive", "creativity"}},
	elementWater: {"emotional and intuitive", []string{"empathy", "intuition", "adaptability"}},
	elementAir:   {"intellectual and highly communicative", []string{"analysis", "communication", "objectivity"}},
	elementEarth: {"stable and practical", []string{"patience", "execution", "reliability"}},
}

var tarotCardReadings = map[int]string{
	0:  "Symbolizes a new beginning and a pure spirit of challenge.",
	1:  "It is time to exercise your creative abilities and potential.",
	2:  "Trust your intuition and listen to your inner voice.",
	3:  "The energy of abundance and growth is with you.",
	4:  "It is time to lead and build structure.",
	5:  "It is time to learn traditional values and wisdom.",
	6:  "You stand at an important crossroads.",
	7:  "Strong will can overcome the obstacles ahead.",
	8:  "Inner strength and patience are called for.",
	9:  "A period of self-reflection and introspection.",
	10: "The winds of change are blowing.",
	11: "Pursue fairness and balance.",
	12: "The situation needs to be seen from a new perspective.",
	13: "An ending and a new beginning arrive together.",
	14: "Patience and balance are the key.",
	15: "It is time to break free of what binds you.",
	16: "Unexpected change brings enlightenment.",
	17: "Hope and inspiration guide you.",
	18: "Trust your intuition, but beware of illusions.",
	19: "Success and joy are coming.",
	20: "A time of self-evaluation and renewal.",
	21: "The energy of achievement and completion.",
}

var tarotPositionMeanings = map[string]string{
	"past":    "influence of the past",
	"present": "current situation",
	"future":  "future possibility",
	"advice":  "guidance",
	"general": "overall disposition",
}

var tarotElementOrder = []string{elementFire, elementWater, elementAir, elementEarth}

func (*Tarot) Calculate(responses []domain.Response) (domain.RawScores, string, error) {
	if len(responses) == 0 {
		return nil, "", ErrInsufficientData
	}

	selected := []any{}
	elementCounts := map[string]float64{
		elementFire: 0, elementWater: 0, elementAir: 0, elementEarth: 0,
	}
	keywordFreq := map[string]float64{}
	firstCardName := ""

	for _, r := range responses {
		if r.Answer.IsNull() {
			continue
		}
		position := r.Weights.Tag("position", "general")

		cardID, ok := tarotCardID(r.Answer)
		if !ok {
			continue
		}
		card, known := majorArcana[cardID]
		if !known {
			continue
		}
		if firstCardName == "" {
			firstCardName = card.Name
		}
		selected = append(selected, map[string]any{
			"id":       cardID,
			"name":     card.Name,
			"position": position,
			"keywords": card.Keywords,
		})
		elementCounts[card.Element]++
		for _, kw := range card.Keywords {
			keywordFreq[kw]++
		}
	}

	primaryElement := elementFire
	best := -1.0
	for _, element := range tarotElementOrder {
		if elementCounts[element] > best {
			best = elementCounts[element]
			primaryElement = element
		}
	}

	topKeywords := []any{}
	for i, e := range rankDesc(keywordFreq) {
		if i >= 5 {
			break
		}
		topKeywords = append(topKeywords, e.Code)
	}

	resultType := "Unknown"
	if firstCardName != "" {
		resultType = primaryElement + "-" + firstCardName
	}

	raw := domain.RawScores{
		"selected_cards":  selected,
		"element_counts":  elementCounts,
		"primary_element": primaryElement,
		"top_keywords":    topKeywords,
	}
	return raw, resultType, nil
}

func tarotCardID(a domain.Answer) (int, bool) {
	if f, ok := a.Float(); ok {
		return int(f), true
	}
	if s, ok := a.String(); ok {
		id, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		return id, true
	}
	return 0, false
}

func (*Tarot) Interpret(raw domain.RawScores, resultType string) domain.Report {
	primaryElement, _ := raw["primary_element"].(string)
	if primaryElement == "" {
		primaryElement = elementFire
	}
	elementInfo := tarotElements[primaryElement]
	topKeywords := anyStringList(raw["top_keywords"])

	cards := tarotSelectedCards(raw["selected_cards"])
	readings := make([]any, 0, len(cards))
	cardNames := []string{}
	for _, card := range cards {
		position := card.position
		if meaning, ok := tarotPositionMeanings[position]; ok {
			position = meaning
		}
		interpretation, ok := tarotCardReadings[card.id]
		if !ok {
			interpretation = card.name + " symbolizes " + strings.Join(card.keywords, ", ") + "."
		}
		readings = append(readings, map[string]any{
			"card_name":      card.name,
			"position":       position,
			"keywords":       card.keywords,
			"interpretation": interpretation,
		})
		if len(cardNames) < 3 {
			cardNames = append(cardNames, card.name)
		}
	}

	overall := "No cards were selected."
	if len(cardNames) > 0 {
		overall = "Your inner nature is strongly " + elementInfo.Trait + ". With " +
			strings.Join(cardNames, ", ") + " drawn, the energy of change and growth flows through you now."
	}

	return domain.Report{
		"result_type":          resultType,
		"primary_element":      primaryElement,
		"element_trait":        elementInfo.Trait,
		"related_abilities":    elementInfo.Abilities,
		"element_distribution": raw["element_counts"],
		"card_readings":        readings,
		"core_keywords":        topKeywords,
		"overall_reading":      overall,
		"advice":               tarotAdvice(topKeywords),
	}
}

type tarotSelected struct {
	id       int
	name     string
	position string
	keywords []string
}

func tarotSelectedCards(v any) []tarotSelected {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]tarotSelected, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		card := tarotSelected{}
		switch id := m["id"].(type) {
		case int:
			card.id = id
		case float64:
			card.id = int(id)
		}
		card.name, _ = m["name"].(string)
		card.position, _ = m["position"].(string)
		card.keywords = anyStringList(m["keywords"])
		out = append(out, card)
	}
	return out
}

func tarotAdvice(keywords []string) string {
	has := func(words ...string) bool {
		for _, kw := range keywords {
			for _, w := range words {
				if kw == w {
					return true
				}
			}
		}
		return false
	}
	switch {
	case has("change", "transition"):
		return "Do not fear change; welcome it as a new opportunity."
	case has("intuition", "wisdom"):
		return "Listen to your inner voice and trust your intuition."
	case has("leadership", "authority"):
		return "Take the initiative and lead the situation."
	case has("balance", "harmony"):
		return "Find balance in life and move forward in harmony."
	default:
		return "Trust who you are now and keep moving one step at a time."
	}
}
