package engine

import (
	"strings"

	"psymetric/internal/domain"
)

// Gallup rankea los 34 temas de fortaleza, reporta los cinco primeros y
// etiqueta el resultado con los tres primeros unidos por guiones.
type Gallup struct{}

func NewGallup() *Gallup { return &Gallup{} }

func (*Gallup) Code() string { return "gallup" }
func (*Gallup) Name() string { return "Gallup Strengths Assessment" }

const (
	gallupExecuting    = "executing"
	gallupInfluencing  = "influencing"
	gallupRelationship = "relationship_building"
	gallupStrategic    = "strategic_thinking"
)

type gallupStrength struct {
	Name        string
	Domain      string
	Description string
}

var gallupStrengths = map[string]gallupStrength{
	"achiever":       {"Achiever", gallupExecuting, "Finds satisfaction in constant work and accomplishment."},
	"arranger":       {"Arranger", gallupExecuting, "Finds the best configuration in complex situations."},
	"belief":         {"Belief", gallupExecuting, "Core values set the direction of action."},
	"consistency":    {"Consistency", gallupExecuting, "Strives to treat everyone equally."},
	"deliberative":   {"Deliberative", gallupExecuting, "Examines carefully before deciding."},
	"discipline":     {"Discipline", gallupExecuting, "Imposes order on the world through routine and structure."},
	"focus":          {"Focus", gallupExecuting, "Sets a goal and moves toward it."},
	"responsibility": {"Responsibility", gallupExecuting, "Follows through on every commitment."},
	"restorative":    {"Restorative", gallupExecuting, "Loves solving problems."},

	"activator":      {"Activator", gallupInfluencing, "Turns thoughts into action."},
	"command":        {"Command", gallupInfluencing, "Takes charge of situations and makes decisions."},
	"communication":  {"Communication", gallupInfluencing, "Puts thoughts into words well."},
	"competition":    {"Competition", gallupInfluencing, "Measures progress against the performance of others."},
	"maximizer":      {"Maximizer", gallupInfluencing, "Stimulates strengths in pursuit of excellence."},
	"self_assurance": {"Self-Assurance", gallupInfluencing, "An inner compass gives confidence in decisions."},
	"significance":   {"Significance", gallupInfluencing, "Wants to matter to other people."},
	"woo":            {"Woo", gallupInfluencing, "Wins over new people and captures their hearts."},

	"adaptability":      {"Adaptability", gallupRelationship, "Goes with the flow and lives in the moment."},
	"connectedness":     {"Connectedness", gallupRelationship, "Believes everything is connected."},
	"developer":         {"Developer", gallupRelationship, "Recognizes and cultivates the potential in others."},
	"empathy":           {"Empathy", gallupRelationship, "Senses the feelings of other people."},
	"harmony":           {"Harmony", gallupRelationship, "Looks for consensus rather than conflict."},
	"includer":          {"Includer", gallupRelationship, "Accepts those who feel left out."},
	"individualization": {"Individualization", gallupRelationship, "Is intrigued by the unique qualities of each person."},
	"positivity":        {"Positivity", gallupRelationship, "Contagious enthusiasm lifts others up."},
	"relator":           {"Relator", gallupRelationship, "Finds deep satisfaction in close relationships."},

	"analytical":   {"Analytical", gallupStrategic, "Searches for patterns and connections in data."},
	"context":      {"Context", gallupStrategic, "Understands the present by studying the past."},
	"futuristic":   {"Futuristic", gallupStrategic, "Is inspired by a vision of the future."},
	"ideation":     {"Ideation", gallupStrategic, "Is fascinated by new ideas."},
	"input":        {"Input", gallupStrategic, "Collects and archives information."},
	"intellection": {"Intellection", gallupStrategic, "Enjoys intellectual activity and discussion."},
	"learner":      {"Learner", gallupStrategic, "Enjoys the process of learning itself."},
	"strategic":    {"Strategic", gallupStrategic, "Quickly spots alternative paths."},
}

var gallupDomainInterpretations = map[string]string{
	gallupExecuting:    "Excels at reaching goals and getting things done. Turning plans into execution is the core strength.",
	gallupInfluencing:  "Excels at persuading and influencing others. Leadership and communication are the core strengths.",
	gallupRelationship: "Excels at binding a team together and building relationships. Connection with people is the core strength.",
	gallupStrategic:    "Excels at analyzing information and driving better decisions. Insight is the core strength.",
}

var gallupActionItems = map[string]string{
	"achiever":      "Set daily goals and record your sense of accomplishment",
	"learner":       "Look for opportunities to learn new skills or knowledge",
	"strategic":     "Take on roles that solve complex problems",
	"communication": "Actively use opportunities to present and write",
	"empathy":       "Watch over and support the feelings of teammates",
}

func (*Gallup) Calculate(responses []domain.Response) (domain.RawScores, string, error) {
	if len(responses) == 0 {
		return nil, "", ErrInsufficientData
	}

	scores := make(map[string]float64, len(gallupStrengths))
	for code := range gallupStrengths {
		scores[code] = 0
	}
	accumulate(scores, responses)

	ranked := rankDesc(scores)
	top5 := make([]any, 0, 5)
	for i := 0; i < 5 && i < len(ranked); i++ {
		top5 = append(top5, ranked[i].Code)
	}

	domainScores := map[string]float64{
		gallupExecuting: 0, gallupInfluencing: 0,
		gallupRelationship: 0, gallupStrategic: 0,
	}
	for code, score := range scores {
		domainScores[gallupStrengths[code].Domain] += score
	}

	top3 := make([]string, 0, 3)
	for i := 0; i < 3 && i < len(ranked); i++ {
		top3 = append(top3, ranked[i].Code)
	}
	resultType := strings.Join(top3, "-")

	raw := domain.RawScores{
		"strength_scores": scores,
		"top_5":           top5,
		"domain_scores":   domainScores,
	}
	return raw, resultType, nil
}

func (*Gallup) Interpret(raw domain.RawScores, resultType string) domain.Report {
	scores := anyNumericMap(raw["strength_scores"])
	domainScores := anyNumericMap(raw["domain_scores"])

	top5 := anyStringList(raw["top_5"])
	topStrengths := make([]any, 0, len(top5))
	for i, code := range top5 {
		info := gallupStrengths[code]
		topStrengths = append(topStrengths, map[string]any{
			"rank":        i + 1,
			"code":        code,
			"name":        info.Name,
			"domain":      info.Domain,
			"description": info.Description,
			"score":       scores[code],
		})
	}

	primaryDomain := ""
	for _, e := range rankDesc(domainScores) {
		primaryDomain = e.Code
		break
	}

	top3 := top5
	if len(top3) > 3 {
		top3 = top3[:3]
	}
	actions := make([]string, 0, len(top3))
	for _, code := range top3 {
		if item, ok := gallupActionItems[code]; ok {
			actions = append(actions, item)
		} else {
			name := gallupStrengths[code].Name
			if name == "" {
				name = code
			}
			actions = append(actions, "Find everyday opportunities to apply your "+name+" strength")
		}
	}

	return domain.Report{
		"result_type":           resultType,
		"top_5_strengths":       topStrengths,
		"domain_scores":         domainScores,
		"primary_domain":        primaryDomain,
		"domain_interpretation": gallupDomainInterpretations[primaryDomain],
		"action_items":          actions,
	}
}
