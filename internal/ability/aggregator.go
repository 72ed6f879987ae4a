package ability

import (
	"math"

	"psymetric/internal/domain"
)

// Aggregate pliega cada resultado completado en el perfil de 30
// dimensiones. Pura sobre su entrada: los mismos resultados siempre dan el
// mismo perfil. Una dimensión sin aportes queda en el puntaje medio con
// confianza cero.
func Aggregate(results []domain.ScoringResult) domain.AbilityProfile {
	samples := map[string][]float64{}
	sources := map[string][]string{}

	completed := []string{}
	seen := map[string]bool{}

	for _, result := range results {
		if result.TestCode == "" {
			continue
		}
		if !seen[result.TestCode] {
			seen[result.TestCode] = true
			completed = append(completed, result.TestCode)
		}
		for _, code := range contributions[result.TestCode] {
			score, ok := contribution(result.TestCode, code, result.RawScores)
			if !ok {
				continue
			}
			samples[code] = append(samples[code], score)
			sources[code] = append(sources[code], result.TestCode)
		}
	}

	groups := map[string][]domain.AbilityScore{}
	totalScore := 0.0
	for _, def := range Definitions {
		score, confidence := 10.0, 0.0
		if values := samples[def.Code]; len(values) > 0 {
			sum := 0.0
			for _, v := range values {
				sum += v
			}
			score = sum / float64(len(values))
			confidence = math.Min(float64(len(values))/3, 1)
		}
		totalScore += score

		sourceTests := sources[def.Code]
		if sourceTests == nil {
			sourceTests = []string{}
		}
		groups[def.Category] = append(groups[def.Category], domain.AbilityScore{
			Code:        def.Code,
			Name:        def.Name,
			Category:    def.Category,
			Score:       round1(score),
			MaxScore:    def.MaxScore,
			Confidence:  round2(confidence),
			SourceTests: sourceTests,
		})
	}

	categories := make([]domain.AbilityRadarGroup, 0, len(categoryOrder))
	for _, category := range categoryOrder {
		categories = append(categories, domain.AbilityRadarGroup{
			Category:  category,
			Abilities: groups[category],
		})
	}

	pending := []string{}
	for _, instrument := range Instruments {
		if !seen[instrument] {
			pending = append(pending, instrument)
		}
	}

	return domain.AbilityProfile{
		TotalScore:     round1(totalScore),
		MaxTotalScore:  float64(len(Definitions) * domain.AbilityMaxScore),
		Reliability:    round2(float64(len(completed)) / float64(len(Instruments))),
		Categories:     categories,
		CompletedTests: completed,
		PendingTests:   pending,
	}
}

// Vector aplana un perfil en el vector de orden fijo que se persiste para
// la búsqueda de similares.
func Vector(profile domain.AbilityProfile) []float32 {
	byCode := map[string]float64{}
	for _, group := range profile.Categories {
		for _, a := range group.Abilities {
			byCode[a.Code] = a.Score
		}
	}
	out := make([]float32, 0, Dimensions)
	for _, def := range Definitions {
		out = append(out, float32(byCode[def.Code]))
	}
	return out
}

// contribution convierte los raw scores de un instrumento en una muestra
// 0..20 para una dimensión de habilidad.
func contribution(testCode, abilityCode string, raw domain.RawScores) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	switch testCode {
	case "mbti":
		typeCode, _ := raw["type"].(string)
		return mbtiContribution(typeCode, abilityCode), true
	case "disc":
		return discContribution(
			rawNumber(raw, "D"), rawNumber(raw, "I"),
			rawNumber(raw, "S"), rawNumber(raw, "C"),
			abilityCode,
		), true
	case "iq":
		iq := 100.0
		if v, ok := numericValue(raw["iq_score"]); ok {
			iq = v
		}
		return clampScore((iq - 70) / 8), true
	}

	if v, ok := numericValue(raw[abilityCode]); ok {
		return clampScore(v), true
	}
	return 0, false
}

// mbtiContribution promedia los valores por letra de las letras presentes
// en el tipo de cuatro letras.
func mbtiContribution(typeCode, abilityCode string) float64 {
	if len(typeCode) != 4 {
		return 10.0
	}
	letterValues, ok := mbtiLetterValues[abilityCode]
	if !ok {
		return 10.0
	}

	sum, count := 0.0, 0
	for i := 0; i < len(typeCode); i++ {
		if v, ok := letterValues[string(typeCode[i])]; ok {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 10.0
	}
	return sum / float64(count)
}

var mbtiLetterValues = map[string]map[string]float64{
	"determination": {"E": 12, "I": 8, "T": 14, "F": 10, "J": 14, "P": 10},
	"composure":     {"I": 14, "E": 10, "T": 14, "F": 10, "J": 12, "P": 10},
	"creativity":    {"N": 16, "S": 10, "P": 14, "J": 10},
	"analytical":    {"T": 16, "F": 10, "N": 12, "S": 12},
	"communication": {"E": 16, "I": 10, "F": 14, "T": 10},
	"teamwork":      {"F": 14, "T": 10, "S": 12, "N": 12},
	"leadership":    {"E": 14, "I": 10, "T": 12, "F": 12, "J": 14, "P": 10},
	"empathy":       {"F": 16, "T": 10, "E": 12, "I": 12},
	"planning":      {"J": 16, "P": 10, "S": 12, "N": 12},
	"adaptability":  {"P": 16, "J": 10, "N": 12, "S": 12},
}

func discContribution(d, i, s, c float64, abilityCode string) float64 {
	var v float64
	switch abilityCode {
	case "determination":
		v = d * 0.8
	case "communication", "influence":
		v = i * 0.8
	case "leadership":
		v = (d + i) * 0.4
	case "execution":
		v = (d + c) * 0.4
	case "teamwork":
		v = s * 0.8
	case "adaptability":
		v = (i + s) * 0.4
	default:
		v = 10
	}
	return clampScore(v)
}

func clampScore(v float64) float64 {
	return math.Min(domain.AbilityMaxScore, math.Max(0, v))
}

func rawNumber(raw domain.RawScores, key string) float64 {
	v, _ := numericValue(raw[key])
	return v
}

// numericValue acepta tanto float64 en memoria como las formas enteras que
// puede producir un round-trip por JSONB.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
