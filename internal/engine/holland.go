package engine

import "psymetric/internal/domain"

// Holland rankea los seis tipos de interés RIASEC; el resultado es el
// código de los tres primeros (ej. "RIA").
type Holland struct{}

func NewHolland() *Holland { return &Holland{} }

func (*Holland) Code() string { return "holland" }
func (*Holland) Name() string { return "Holland Occupational Interest Test" }

type hollandType struct {
	Name           string
	Description    string
	Keywords       []string
	Careers        []string
	WorkActivities []string
}

var hollandTypes = map[string]hollandType{
	"R": {
		Name:           "Realistic",
		Description:    "Prefers machines, tools, animals and the outdoors; enjoys practical, concrete work.",
		Keywords:       []string{"practical", "mechanical", "straightforward", "physical"},
		Careers:        []string{"engineer", "technician", "farmer", "pilot", "mechanic", "architect"},
		WorkActivities: []string{"using tools", "operating machinery", "outdoor work", "physical activity"},
	},
	"I": {
		Name:           "Investigative",
		Description:    "Prefers ideas, thinking and analysis; enjoys research and inquiry.",
		Keywords:       []string{"analytical", "intellectual", "curious", "independent"},
		Careers:        []string{"scientist", "researcher", "physician", "programmer", "data analyst", "mathematician"},
		WorkActivities: []string{"research", "analysis", "problem solving", "experiments"},
	},
	"A": {
		Name:           "Artistic",
		Description:    "Prefers creativity, self-expression and artistic activity; enjoys free, original environments.",
		Keywords:       []string{"creative", "original", "imaginative", "sensitive"},
		Careers:        []string{"designer", "writer", "musician", "actor", "painter", "photographer"},
		WorkActivities: []string{"creation", "design", "artistic work", "self-expression"},
	},
	"S": {
		Name:           "Social",
		Description:    "Prefers working with and helping people; enjoys education, counseling and service.",
		Keywords:       []string{"cooperative", "kind", "understanding", "helpful"},
		Careers:        []string{"teacher", "counselor", "social worker", "nurse", "HR specialist", "coach"},
		WorkActivities: []string{"teaching", "counseling", "service", "collaboration"},
	},
	"E": {
		Name:           "Enterprising",
		Description:    "Prefers leadership, persuasion and influence; pursues goals and success.",
		Keywords:       []string{"ambitious", "leading", "persuasive", "competitive"},
		Careers:        []string{"executive", "sales representative", "lawyer", "politician", "marketer", "founder"},
		WorkActivities: []string{"management", "persuasion", "negotiation", "leadership"},
	},
	"C": {
		Name:           "Conventional",
		Description:    "Prefers structure, order and data management; enjoys accurate, meticulous work.",
		Keywords:       []string{"systematic", "accurate", "practical", "meticulous"},
		Careers:        []string{"accountant", "administrator", "bank clerk", "secretary", "librarian", "tax specialist"},
		WorkActivities: []string{"data management", "paperwork", "organization", "calculation"},
	},
}

var hollandCombinations = map[string][]string{
	"RIA": {"architect", "industrial designer", "technical consultant"},
	"RIS": {"physical therapist", "athletic coach", "vocational trainer"},
	"RIE": {"engineering manager", "technology founder"},
	"IAS": {"psychologist", "anthropologist", "UX researcher"},
	"IAE": {"product developer", "technology strategist"},
	"ASE": {"advertising planner", "event planner", "content planner"},
	"SEC": {"HR manager", "education administrator", "welfare administrator"},
	"ECS": {"sales manager", "franchise operator"},
}

func (*Holland) Calculate(responses []domain.Response) (domain.RawScores, string, error) {
	if len(responses) == 0 {
		return nil, "", ErrInsufficientData
	}

	scores := map[string]float64{"R": 0, "I": 0, "A": 0, "S": 0, "E": 0, "C": 0}
	accumulate(scores, responses)

	ranked := rankDesc(scores)
	hollandCode := ranked[0].Code + ranked[1].Code + ranked[2].Code

	max := ranked[0].Score
	if max <= 0 {
		max = 1
	}
	normalized := map[string]float64{}
	ranking := make([]any, 0, len(ranked))
	for _, e := range ranked {
		normalized[e.Code] = round1(e.Score / max * 100)
		ranking = append(ranking, e.Code)
	}

	raw := domain.RawScores{
		"scores":     scores,
		"normalized": normalized,
		"ranking":    ranking,
	}
	return raw, hollandCode, nil
}

func (*Holland) Interpret(raw domain.RawScores, resultType string) domain.Report {
	normalized := anyNumericMap(raw["normalized"])
	ranking := anyStringList(raw["ranking"])

	topTypes := make([]any, 0, 3)
	for i, code := range ranking {
		if i >= 3 {
			break
		}
		info := hollandTypes[code]
		topTypes = append(topTypes, map[string]any{
			"rank":        i + 1,
			"code":        code,
			"name":        info.Name,
			"description": info.Description,
			"keywords":    info.Keywords,
			"score":       normalized[code],
		})
	}

	top2 := ranking
	if len(top2) > 2 {
		top2 = top2[:2]
	}

	return domain.Report{
		"holland_code":           resultType,
		"top_3_types":            topTypes,
		"all_scores":             normalized,
		"career_recommendations": hollandCareers(resultType),
		"work_environments":      hollandEnvironments(top2),
		"summary":                hollandSummary(top2),
	}
}

func hollandCareers(code string) []any {
	recommendations := make([]any, 0, 6)

	primary := "R"
	if code != "" {
		primary = code[:1]
	}
	careers := hollandTypes[primary].Careers
	for i, career := range careers {
		if i >= 3 {
			break
		}
		recommendations = append(recommendations, map[string]any{
			"career": career, "match": "high", "type": primary,
		})
	}

	combo := code
	if len(combo) > 3 {
		combo = combo[:3]
	}
	for _, career := range hollandCombinations[combo] {
		recommendations = append(recommendations, map[string]any{
			"career": career, "match": "very_high", "type": combo,
		})
	}

	if len(recommendations) > 6 {
		recommendations = recommendations[:6]
	}
	return recommendations
}

// hollandEnvironments mezcla las actividades laborales de los tipos
// líderes, deduplicadas en orden de primera aparición.
func hollandEnvironments(topTypes []string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, code := range topTypes {
		for _, activity := range hollandTypes[code].WorkActivities {
			if _, dup := seen[activity]; dup {
				continue
			}
			seen[activity] = struct{}{}
			out = append(out, activity)
		}
	}
	if len(out) > 6 {
		out = out[:6]
	}
	return out
}

func hollandSummary(topTypes []string) string {
	if len(topTypes) == 0 {
		return ""
	}
	primary := hollandTypes[topTypes[0]].Name
	if len(topTypes) > 1 {
		secondary := hollandTypes[topTypes[1]].Name
		return "You show mainly " + primary + " traits, combined with " + secondary + " traits."
	}
	return "You show mainly " + primary + " traits."
}
