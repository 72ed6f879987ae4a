package engine

import (
	"math"

	"psymetric/internal/domain"
)

// MMPI puntúa tres escalas de validez y nueve clínicas desde ítems
// true/false y comprime cada escala cruda en un T-score acotado a
// [30, 90]. El tipo de perfil son las dos escalas clínicas más altas
// unidas por guion.
type MMPI struct{}

func NewMMPI() *MMPI { return &MMPI{} }

func (*MMPI) Code() string { return "mmpi" }
func (*MMPI) Name() string { return "MMPI Screening Inventory" }

type mmpiScale struct {
	Name        string
	Description string
}

var mmpiValidityScales = map[string]mmpiScale{
	"L": {"Lie", "Tendency to answer in a socially desirable direction"},
	"F": {"Infrequency", "Inconsistent or exaggerated responding"},
	"K": {"Correction", "Degree of defensive attitude"},
}

var mmpiClinicalScales = map[string]mmpiScale{
	"Hs": {"Hypochondriasis", "Excessive worry about physical symptoms"},
	"D":  {"Depression", "Low mood, helplessness, dissatisfaction with life"},
	"Hy": {"Hysteria", "Physical reactions under stress"},
	"Pd": {"Psychopathic Deviate", "Resistance to social norms, impulsivity"},
	"Pa": {"Paranoia", "Suspicion, distrust, hypersensitivity"},
	"Pt": {"Psychasthenia", "Anxiety, worry, obsessive thinking"},
	"Sc": {"Schizophrenia", "Difficulty with reality contact, social alienation"},
	"Ma": {"Hypomania", "Overactivity, grandiosity, impulsivity"},
	"Si": {"Social Introversion", "Social withdrawal, passivity"},
}

var mmpiScaleNotes = map[string]string{
	"Hs": "Concern about physical symptoms may be elevated.",
	"D":  "Feelings of depression or helplessness may be present.",
	"Hy": "Physical reactions may surface in stressful situations.",
	"Pd": "Dissatisfaction with rules or authority may be present.",
	"Pa": "Distrust of others or hypersensitivity may be present.",
	"Pt": "Worry or anxiety may be present.",
	"Sc": "Social alienation or unusual thinking may be present.",
	"Ma": "Energy levels may be high or impulsive.",
	"Si": "Social situations may feel uncomfortable.",
}

var mmpiClinicalOrder = []string{"Hs", "D", "Hy", "Pd", "Pa", "Pt", "Sc", "Ma", "Si"}
var mmpiValidityOrder = []string{"L", "F", "K"}

func (*MMPI) Calculate(responses []domain.Response) (domain.RawScores, string, error) {
	if len(responses) == 0 {
		return nil, "", ErrInsufficientData
	}

	validity := map[string]float64{"L": 0, "F": 0, "K": 0}
	clinical := map[string]float64{}
	for _, scale := range mmpiClinicalOrder {
		clinical[scale] = 0
	}

	for _, r := range responses {
		if r.Answer.IsNull() {
			continue
		}
		answerTrue := mmpiTruthy(r.Answer)
		for scale, w := range r.Weights {
			var weight float64
			switch w.Kind {
			case domain.WeightTable:
				if answerTrue {
					weight = w.Table["true"]
				} else {
					weight = w.Table["false"]
				}
			case domain.WeightNumber:
				if answerTrue {
					weight = w.Number
				}
			}
			if _, ok := validity[scale]; ok {
				validity[scale] += weight
			} else if _, ok := clinical[scale]; ok {
				clinical[scale] += weight
			}
		}
	}

	validityT := map[string]float64{}
	for scale, score := range validity {
		validityT[scale] = mmpiTScore(score)
	}
	clinicalT := map[string]float64{}
	for scale, score := range clinical {
		clinicalT[scale] = mmpiTScore(score)
	}

	ranked := rankDesc(clinicalT)
	profileType := "Normal"
	if len(ranked) >= 2 {
		profileType = ranked[0].Code + "-" + ranked[1].Code
	}
	highest := []any{ranked[0].Code, ranked[1].Code, ranked[2].Code}

	raw := domain.RawScores{
		"validity_raw":   validity,
		"validity_t":     validityT,
		"clinical_raw":   clinical,
		"clinical_t":     clinicalT,
		"highest_scales": highest,
	}
	return raw, profileType, nil
}

func mmpiTruthy(a domain.Answer) bool {
	if b, ok := a.Bool(); ok {
		return b
	}
	if s, ok := a.String(); ok {
		return s == "true" || s == "True" || s == "1" || s == "yes"
	}
	if f, ok := a.Float(); ok {
		return f == 1
	}
	return false
}

// mmpiTScore mapea una escala cruda (sobre 10 ítems) a un T-score comprimido.
func mmpiTScore(raw float64) float64 {
	const maxRaw = 10
	normalized := raw / maxRaw * 100
	t := math.Round(50 + (normalized-50)*0.3)
	return clamp(t, 30, 90)
}

func (*MMPI) Interpret(raw domain.RawScores, resultType string) domain.Report {
	validityT := anyNumericMap(raw["validity_t"])
	clinicalT := anyNumericMap(raw["clinical_t"])
	highest := anyStringList(raw["highest_scales"])

	clinicalAnalysis := make([]any, 0, len(mmpiClinicalOrder))
	for _, scale := range mmpiClinicalOrder {
		t := clinicalT[scale]
		info := mmpiClinicalScales[scale]
		clinicalAnalysis = append(clinicalAnalysis, map[string]any{
			"scale":          scale,
			"name":           info.Name,
			"description":    info.Description,
			"t_score":        t,
			"level":          mmpiLevel(t),
			"interpretation": mmpiScaleInterpretation(scale, t),
		})
	}

	highestOut := make([]any, 0, len(highest))
	for _, scale := range highest {
		t, ok := clinicalT[scale]
		if !ok {
			t = 50
		}
		highestOut = append(highestOut, map[string]any{
			"scale":   scale,
			"name":    mmpiClinicalScales[scale].Name,
			"t_score": t,
		})
	}

	return domain.Report{
		"profile_type":           resultType,
		"validity_analysis":      mmpiValidityAnalysis(validityT),
		"validity_conclusion":    mmpiValidityConclusion(validityT),
		"clinical_analysis":      clinicalAnalysis,
		"profile_interpretation": mmpiProfileInterpretation(highest, clinicalT),
		"highest_scales":         highestOut,
		"recommendations":        mmpiRecommendations(highest, clinicalT),
		"disclaimer":             "This is a screening version; a formal assessment by a professional is required for an accurate psychological evaluation.",
	}
}

func mmpiLevel(t float64) string {
	switch {
	case t >= 70:
		return "elevated"
	case t >= 60:
		return "slightly_elevated"
	case t >= 40:
		return "normal"
	default:
		return "low"
	}
}

func mmpiScaleInterpretation(scale string, t float64) string {
	if t < 60 {
		return "Within the normal range."
	}
	return mmpiScaleNotes[scale]
}

func mmpiValidityAnalysis(validityT map[string]float64) []any {
	out := make([]any, 0, len(mmpiValidityOrder))
	for _, scale := range mmpiValidityOrder {
		t := validityT[scale]
		var interpretation string
		switch scale {
		case "L":
			if t >= 65 {
				interpretation = "There is a tendency to present oneself too favorably."
			} else {
				interpretation = "Responses appear candid."
			}
		case "F":
			if t >= 70 {
				interpretation = "Responses may be inconsistent or exaggerated."
			} else {
				interpretation = "Responses show a consistent pattern."
			}
		case "K":
			if t >= 65 {
				interpretation = "Responses may have been given defensively."
			} else {
				interpretation = "Self-disclosure is at an appropriate level."
			}
		}
		out = append(out, map[string]any{
			"scale":          scale,
			"name":           mmpiValidityScales[scale].Name,
			"t_score":        t,
			"interpretation": interpretation,
		})
	}
	return out
}

func mmpiValidityConclusion(validityT map[string]float64) string {
	l, ok := validityT["L"]
	if !ok {
		l = 50
	}
	f, ok := validityT["F"]
	if !ok {
		f = 50
	}
	switch {
	case f >= 80:
		return "Response consistency may be compromised; interpret the results with caution."
	case l >= 70:
		return "Responses may have been given somewhat defensively."
	default:
		return "Responses are at a trustworthy level."
	}
}

func mmpiProfileInterpretation(highest []string, clinicalT map[string]float64) string {
	if len(highest) == 0 {
		return "The overall profile is within the normal range."
	}
	highCount := 0
	for _, scale := range highest {
		if clinicalT[scale] >= 65 {
			highCount++
		}
	}
	switch highCount {
	case 0:
		return "A normal profile with no clinically significant elevation."
	case 1:
		return "The " + mmpiClinicalScales[highest[0]].Name + " scale is slightly elevated."
	default:
		return "Elevations are observed across several scales; consultation with a professional is recommended."
	}
}

func mmpiRecommendations(highest []string, clinicalT map[string]float64) []string {
	recommendations := []string{}
	limit := len(highest)
	if limit > 2 {
		limit = 2
	}
	for _, scale := range highest[:limit] {
		if clinicalT[scale] < 65 {
			continue
		}
		switch scale {
		case "D":
			recommendations = append(recommendations, "Try managing stress and increasing positive activities.")
		case "Pt":
			recommendations = append(recommendations, "Try relaxation techniques or meditation.")
		case "Si":
			recommendations = append(recommendations, "Start with small-scale social activities.")
		case "Hs", "Hy":
			recommendations = append(recommendations, "Keep up regular exercise and healthy habits.")
		}
	}
	if len(recommendations) == 0 {
		recommendations = append(recommendations, "You are currently in a psychologically stable state. Keep taking care of yourself.")
	}
	return recommendations
}
