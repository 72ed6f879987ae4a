package engine

import (
	"math"
	"strconv"
	"strings"

	"psymetric/internal/domain"
)

// IQ corrige respuestas contra el correct_answer de cada pregunta,
// convierte la precisión global en un IQ aproximado vía
// clamp(70 + pct*0.6, 70, 145) y desglosa la precisión por dominio
// cognitivo.
type IQ struct{}

func NewIQ() *IQ { return &IQ{} }

func (*IQ) Code() string { return "iq" }
func (*IQ) Name() string { return "IQ Test" }

type iqRange struct {
	Low, High   int
	Label       string
	Description string
}

var iqRanges = []iqRange{
	{130, 200, "very_superior", "Outstanding intellectual ability, top 2%"},
	{120, 129, "superior", "Superior intellectual ability, top 10%"},
	{110, 119, "high_average", "Above-average intellectual ability"},
	{90, 109, "average", "Typical intellectual ability"},
	{80, 89, "low_average", "Below-average intellectual ability"},
	{70, 79, "borderline", "Borderline level of intellectual functioning"},
	{0, 69, "low", "Intellectual functioning may be limited"},
}

type iqDomain struct {
	Name        string
	Description string
}

var iqDomains = map[string]iqDomain{
	"verbal":    {"Verbal Comprehension", "Vocabulary, verbal reasoning, reading comprehension"},
	"numerical": {"Numerical Reasoning", "Mathematical reasoning and calculation"},
	"spatial":   {"Spatial Perception", "Figural reasoning, grasp of spatial relationships"},
	"pattern":   {"Pattern Recognition", "Rule discovery, sequence reasoning"},
	"memory":    {"Working Memory", "Holding and manipulating information"},
	"speed":     {"Processing Speed", "Rapid information processing"},
}

var iqDomainOrder = []string{"verbal", "numerical", "spatial", "pattern", "memory", "speed"}

func (*IQ) Calculate(responses []domain.Response) (domain.RawScores, string, error) {
	if len(responses) == 0 {
		return nil, "", ErrInsufficientData
	}

	type tally struct{ correct, total int }
	domainTallies := map[string]*tally{}
	for _, d := range iqDomainOrder {
		domainTallies[d] = &tally{}
	}

	totalCorrect := 0
	totalTime := 0
	for _, r := range responses {
		dom := r.Weights.Tag("domain", "pattern")
		totalTime += r.ResponseTimeMs

		if t, ok := domainTallies[dom]; ok {
			t.total++
		}
		if iqCorrect(r) {
			totalCorrect++
			if t, ok := domainTallies[dom]; ok {
				t.correct++
			}
		}
	}

	rawScore := float64(totalCorrect) / float64(len(responses)) * 100
	iqScore := clamp(math.Round(70+rawScore*0.6), 70, 145)

	domainPercentages := map[string]float64{}
	for dom, t := range domainTallies {
		if t.total > 0 {
			domainPercentages[dom] = round1(float64(t.correct) / float64(t.total) * 100)
		} else {
			domainPercentages[dom] = 0
		}
	}

	avgResponseTime := math.Round(float64(totalTime) / float64(len(responses)))

	raw := domain.RawScores{
		"iq_score":             iqScore,
		"raw_score":            rawScore,
		"total_correct":        float64(totalCorrect),
		"total_questions":      float64(len(responses)),
		"domain_scores":        domainPercentages,
		"avg_response_time_ms": avgResponseTime,
	}
	return raw, strconv.Itoa(int(iqScore)), nil
}

// iqCorrect compara la respuesta con el peso correct_answer de la
// pregunta. Las respuestas numéricas toleran un epsilon chico; el resto
// compara por forma de string.
func iqCorrect(r domain.Response) bool {
	w, ok := r.Weights["correct_answer"]
	if !ok {
		return false
	}
	switch w.Kind {
	case domain.WeightNumber:
		if f, ok := r.Answer.Float(); ok {
			return math.Abs(f-w.Number) < 0.01
		}
		if s, ok := r.Answer.String(); ok {
			return s == strconv.FormatFloat(w.Number, 'f', -1, 64)
		}
	case domain.WeightTag:
		if s, ok := r.Answer.String(); ok {
			return s == w.Tag
		}
		if f, ok := r.Answer.Float(); ok {
			return strconv.FormatFloat(f, 'f', -1, 64) == w.Tag
		}
	}
	return false
}

func (*IQ) Interpret(raw domain.RawScores, resultType string) domain.Report {
	iqScore := 100.0
	if v, ok := numeric(raw, "iq_score"); ok {
		iqScore = v
	}
	domainScores := anyNumericMap(raw["domain_scores"])

	label, description := "average", "Typical intellectual ability"
	for _, rng := range iqRanges {
		if int(iqScore) >= rng.Low && int(iqScore) <= rng.High {
			label, description = rng.Label, rng.Description
			break
		}
	}

	domainAnalysis := make([]any, 0, len(iqDomainOrder))
	type scored struct {
		name  string
		score float64
	}
	ranked := make([]scored, 0, len(iqDomainOrder))
	for _, dom := range iqDomainOrder {
		pct := domainScores[dom]
		info := iqDomains[dom]
		var level string
		switch {
		case pct >= 80:
			level = "excellent"
		case pct >= 60:
			level = "good"
		case pct >= 40:
			level = "fair"
		default:
			level = "needs_work"
		}
		domainAnalysis = append(domainAnalysis, map[string]any{
			"domain":      dom,
			"name":        info.Name,
			"description": info.Description,
			"score":       pct,
			"level":       level,
		})
		ranked = append(ranked, scored{info.Name, pct})
	}
	for i := 0; i < len(ranked); i++ {
		for j := i + 1; j < len(ranked); j++ {
			if ranked[j].score > ranked[i].score {
				ranked[i], ranked[j] = ranked[j], ranked[i]
			}
		}
	}

	strengths := []string{}
	for i := 0; i < 2 && i < len(ranked); i++ {
		strengths = append(strengths, ranked[i].name)
	}
	weaknesses := []string{}
	for i := len(ranked) - 2; i < len(ranked); i++ {
		if i >= 0 && ranked[i].score < 60 {
			weaknesses = append(weaknesses, ranked[i].name)
		}
	}

	return domain.Report{
		"iq_score":        iqScore,
		"iq_label":        label,
		"iq_description":  description,
		"percentile":      iqPercentile(int(iqScore)),
		"domain_analysis": domainAnalysis,
		"strengths":       strengths,
		"weaknesses":      weaknesses,
		"recommendation":  iqRecommendation(iqScore, weaknesses),
		"disclaimer":      "This is a screening test; a formal assessment by a professional is required for an accurate IQ measurement.",
	}
}

func iqPercentile(iq int) int {
	steps := []struct {
		score, pct int
	}{
		{145, 99}, {140, 99}, {135, 99}, {130, 98},
		{125, 95}, {120, 91}, {115, 84}, {110, 75},
		{105, 63}, {100, 50}, {95, 37}, {90, 25},
		{85, 16}, {80, 9}, {75, 5}, {70, 2},
	}
	for _, s := range steps {
		if iq >= s.score {
			return s.pct
		}
	}
	return 1
}

func iqRecommendation(iq float64, weaknesses []string) string {
	switch {
	case iq >= 120:
		return "You have outstanding intellectual ability and can excel in fields requiring complex problem solving and creative thinking."
	case iq >= 100:
		base := "You show good intellectual ability."
		if len(weaknesses) > 0 {
			return base + " Training in " + strings.Join(weaknesses, ", ") + " could develop it further."
		}
		return base
	default:
		return "Consistent study and practice can improve intellectual ability; start with basic problems and build up step by step."
	}
}
