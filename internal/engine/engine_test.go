package engine

import (
	"errors"
	"testing"

	"psymetric/internal/domain"
)

func likertResponse(axis string, weight, answer float64) domain.Response {
	return domain.Response{
		Answer:  domain.NewAnswer(answer),
		Weights: domain.ScoringWeights{axis: domain.NumberWeight(weight)},
	}
}

func TestRegistryLookupKnownCode(t *testing.T) {
	reg := NewDefaultRegistry()
	e, ok := reg.Lookup("mbti")
	if !ok {
		t.Fatalf("expected mbti engine registered, got absent")
	}
	if e.Code() != "mbti" {
		t.Fatalf("expected code mbti, got %q", e.Code())
	}
}

func TestRegistryLookupUnknownCode(t *testing.T) {
	reg := NewDefaultRegistry()
	if _, ok := reg.Lookup("unknown"); ok {
		t.Fatalf("expected absent for unknown code, got an engine")
	}
}

func TestRegistryHasAllInstruments(t *testing.T) {
	reg := NewDefaultRegistry()
	codes := []string{
		"mbti", "disc", "enneagram", "tci", "gallup", "holland",
		"mmpi", "iq", "tarot", "htp", "saju", "sasang", "face", "blood",
	}
	for _, code := range codes {
		if _, ok := reg.Lookup(code); !ok {
			t.Fatalf("expected engine for %q, got absent", code)
		}
	}
	if got := len(reg.Codes()); got != len(codes) {
		t.Fatalf("expected %d codes, got %d", len(codes), got)
	}
}

func TestRegistryRejectsDuplicateCodes(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate code, got none")
		}
	}()
	NewRegistry(NewMBTI(), NewMBTI())
}

func TestCalculateEmptyResponses(t *testing.T) {
	reg := NewDefaultRegistry()
	for _, code := range reg.Codes() {
		e, _ := reg.Lookup(code)
		if _, _, err := e.Calculate(nil); !errors.Is(err, ErrInsufficientData) {
			t.Fatalf("expected ErrInsufficientData for %s, got %v", code, err)
		}
	}
}

func TestMBTITieFavorsFirstLetter(t *testing.T) {
	responses := []domain.Response{
		likertResponse("E", 1, 10),
		likertResponse("I", 1, 10),
	}
	_, resultType, err := NewMBTI().Calculate(responses)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if resultType[0] != 'E' {
		t.Fatalf("expected tie to resolve to E, got %q", resultType)
	}
}

func TestMBTIEndToEnd(t *testing.T) {
	scores := map[string]float64{
		"E": 4, "I": 16, "S": 10, "N": 18, "T": 20, "F": 5, "J": 5, "P": 15,
	}
	responses := make([]domain.Response, 0, len(scores))
	for axis, v := range scores {
		responses = append(responses, likertResponse(axis, 1, v))
	}

	raw, resultType, err := NewMBTI().Calculate(responses)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if resultType != "INTP" {
		t.Fatalf("expected INTP, got %q", resultType)
	}
	if raw["type"] != "INTP" {
		t.Fatalf("expected raw type INTP, got %v", raw["type"])
	}

	report := NewMBTI().Interpret(raw, resultType)
	if report["type_name"] != "Logician" {
		t.Fatalf("expected Logician, got %v", report["type_name"])
	}
}

func TestMBTIStringAnswerUsesTable(t *testing.T) {
	responses := []domain.Response{
		{
			Answer: domain.NewAnswer("agree"),
			Weights: domain.ScoringWeights{
				"E": domain.TableWeight(map[string]float64{"agree": 3, "disagree": 0}),
			},
		},
	}
	raw, _, err := NewMBTI().Calculate(responses)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if raw["E"] != 3.0 {
		t.Fatalf("expected E=3 from answer table, got %v", raw["E"])
	}
}

func TestMBTIMismatchedAnswerContributesZero(t *testing.T) {
	responses := []domain.Response{
		likertResponse("I", 1, 5),
		{
			Answer:  domain.NewAnswer("free text"),
			Weights: domain.ScoringWeights{"E": domain.NumberWeight(2)},
		},
	}
	raw, resultType, err := NewMBTI().Calculate(responses)
	if err != nil {
		t.Fatalf("expected mismatches to be skipped, got %v", err)
	}
	if raw["E"] != 0.0 {
		t.Fatalf("expected E=0 for mismatched answer, got %v", raw["E"])
	}
	if resultType[0] != 'I' {
		t.Fatalf("expected I to win, got %q", resultType)
	}
}

func TestDISCTopTwoComposite(t *testing.T) {
	responses := []domain.Response{
		likertResponse("D", 1, 12),
		likertResponse("I", 1, 8),
		likertResponse("S", 1, 3),
		likertResponse("C", 1, 5),
	}
	raw, resultType, err := NewDISC().Calculate(responses)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if resultType != "Di" {
		t.Fatalf("expected Di, got %q", resultType)
	}
	if raw["primary"] != "D" || raw["secondary"] != "I" {
		t.Fatalf("expected primary D secondary I, got %v/%v", raw["primary"], raw["secondary"])
	}
	if raw["D_normalized"] != 100.0 {
		t.Fatalf("expected top score normalized to 100, got %v", raw["D_normalized"])
	}
}

func TestDISCTieBreaksByCode(t *testing.T) {
	responses := []domain.Response{
		likertResponse("D", 1, 7),
		likertResponse("I", 1, 7),
		likertResponse("S", 1, 7),
		likertResponse("C", 1, 7),
	}
	_, resultType, err := NewDISC().Calculate(responses)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	// Todos empatados: los códigos rankean C, D, I, S alfabéticamente.
	if resultType != "Cd" {
		t.Fatalf("expected Cd on full tie, got %q", resultType)
	}
}

func TestEnneagramWingIsAdjacent(t *testing.T) {
	responses := []domain.Response{
		likertResponse("9", 1, 10),
		likertResponse("8", 1, 6),
		likertResponse("1", 1, 4),
	}
	raw, resultType, err := NewEnneagram().Calculate(responses)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if resultType != "9w8" {
		t.Fatalf("expected 9w8, got %q", resultType)
	}
	if raw["primary_type"] != 9.0 || raw["wing"] != 8.0 {
		t.Fatalf("expected primary 9 wing 8, got %v/%v", raw["primary_type"], raw["wing"])
	}
}

func TestEnneagramWingWrapsAroundRing(t *testing.T) {
	responses := []domain.Response{
		likertResponse("1", 1, 10),
		likertResponse("9", 1, 8),
		likertResponse("2", 1, 3),
	}
	_, resultType, err := NewEnneagram().Calculate(responses)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if resultType != "1w9" {
		t.Fatalf("expected wing to wrap to 9, got %q", resultType)
	}
}

func TestTCITScoreTransform(t *testing.T) {
	// NS crudo 40 de un máximo de 40 deja el porcentaje en 100 y el T-score en 60.
	responses := []domain.Response{likertResponse("NS", 1, 40)}
	raw, _, err := NewTCI().Calculate(responses)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	tScores := raw["t_scores"].(map[string]float64)
	if tScores["NS"] != 60.0 {
		t.Fatalf("expected NS t-score 60, got %v", tScores["NS"])
	}
	if tScores["HA"] != 40.0 {
		t.Fatalf("expected HA t-score 40 at zero raw, got %v", tScores["HA"])
	}
}

func TestHollandCodeTopThree(t *testing.T) {
	responses := []domain.Response{
		likertResponse("R", 1, 2),
		likertResponse("I", 1, 9),
		likertResponse("A", 1, 7),
		likertResponse("S", 1, 4),
		likertResponse("E", 1, 6),
		likertResponse("C", 1, 1),
	}
	_, resultType, err := NewHolland().Calculate(responses)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if resultType != "IAE" {
		t.Fatalf("expected IAE, got %q", resultType)
	}
}

func TestIQScoreFromAccuracy(t *testing.T) {
	responses := []domain.Response{}
	for i := 0; i < 10; i++ {
		answer := 7.0
		if i >= 5 {
			answer = 0 // wrong
		}
		responses = append(responses, domain.Response{
			Answer: domain.NewAnswer(answer),
			Weights: domain.ScoringWeights{
				"correct_answer": domain.NumberWeight(7),
				"domain":         domain.TagWeight("numerical"),
			},
		})
	}

	raw, resultType, err := NewIQ().Calculate(responses)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	// Precisión del 50%: 70 + 50*0.6 = 100.
	if raw["iq_score"] != 100.0 {
		t.Fatalf("expected iq 100, got %v", raw["iq_score"])
	}
	if resultType != "100" {
		t.Fatalf("expected result type 100, got %q", resultType)
	}
	domains := raw["domain_scores"].(map[string]float64)
	if domains["numerical"] != 50.0 {
		t.Fatalf("expected numerical accuracy 50, got %v", domains["numerical"])
	}
}

func TestIQClampsToBounds(t *testing.T) {
	responses := []domain.Response{
		{
			Answer: domain.NewAnswer(1.0),
			Weights: domain.ScoringWeights{
				"correct_answer": domain.NumberWeight(1),
			},
		},
	}
	raw, _, err := NewIQ().Calculate(responses)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	// Precisión perfecta: 70 + 100*0.6 = 130, dentro de [70, 145].
	if raw["iq_score"] != 130.0 {
		t.Fatalf("expected iq 130, got %v", raw["iq_score"])
	}
}

func TestMMPITrueFalseScoring(t *testing.T) {
	responses := []domain.Response{
		{
			Answer: domain.NewAnswer(true),
			Weights: domain.ScoringWeights{
				"D": domain.TableWeight(map[string]float64{"true": 10, "false": 0}),
			},
		},
	}
	raw, _, err := NewMMPI().Calculate(responses)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	clinicalT := raw["clinical_t"].(map[string]float64)
	// Crudo 10 de 10: t = 50 + (100-50)*0.3 = 65.
	if clinicalT["D"] != 65.0 {
		t.Fatalf("expected D t-score 65, got %v", clinicalT["D"])
	}
	// Las escalas sin tocar quedan en el piso acotado: 50 + (0-50)*0.3 = 35.
	if clinicalT["Hs"] != 35.0 {
		t.Fatalf("expected Hs t-score 35, got %v", clinicalT["Hs"])
	}
}

func TestSasangChoiceAnswerTable(t *testing.T) {
	responses := []domain.Response{
		{
			Answer: domain.NewAnswer("a"),
			Weights: domain.ScoringWeights{
				"a": domain.TableWeight(map[string]float64{"taeyang": 3, "soeum": 1}),
				"b": domain.TableWeight(map[string]float64{"taeeum": 3}),
			},
		},
	}
	raw, resultType, err := NewSasang().Calculate(responses)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if resultType != "taeyang" {
		t.Fatalf("expected taeyang, got %q", resultType)
	}
	scores := raw["scores"].(map[string]float64)
	if scores["taeeum"] != 0.0 {
		t.Fatalf("expected unchosen option ignored, got %v", scores["taeeum"])
	}
}

func TestSajuDeterministicPillars(t *testing.T) {
	birth := map[string]any{"year": 1990.0, "month": 5.0, "day": 15.0, "hour": 14.0}
	responses := []domain.Response{{Answer: domain.NewAnswer(birth)}}

	raw1, type1, err := NewSaju().Calculate(responses)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	raw2, type2, err := NewSaju().Calculate(responses)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if type1 != type2 {
		t.Fatalf("expected deterministic result, got %q vs %q", type1, type2)
	}

	counts1 := raw1["element_counts"].(map[string]float64)
	counts2 := raw2["element_counts"].(map[string]float64)
	total := 0.0
	for element, c := range counts1 {
		if counts2[element] != c {
			t.Fatalf("expected stable element counts, got %v vs %v", counts1, counts2)
		}
		total += c
	}
	// Cuatro pilares de tronco+rama aportan ocho casilleros de elemento.
	if total != 8.0 {
		t.Fatalf("expected 8 element slots, got %v", total)
	}
}

func TestSajuMalformedBirthFallsBack(t *testing.T) {
	responses := []domain.Response{{Answer: domain.NewAnswer("not a date")}}
	_, resultType, err := NewSaju().Calculate(responses)
	if err != nil {
		t.Fatalf("expected fallback instead of error, got %v", err)
	}
	if resultType == "" {
		t.Fatalf("expected a result type from default birth data")
	}
}

func TestBloodTypeLookupAndConsistency(t *testing.T) {
	responses := []domain.Response{
		{
			Answer:  domain.NewAnswer("O"),
			Weights: domain.ScoringWeights{"field": domain.TagWeight("blood_type")},
		},
		{
			Answer:  domain.NewAnswer(5.0),
			Weights: domain.ScoringWeights{"extrovert": domain.NumberWeight(8)},
		},
	}
	raw, resultType, err := NewBlood().Calculate(responses)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if resultType != "O" {
		t.Fatalf("expected O, got %q", resultType)
	}
	// extrovert 40/50 = 0.8 calza exacto con lo esperado para O; los otros
	// dos rasgos esperados quedan en 0: diff = (0 + 0.5 + 0.6)/3.
	if raw["consistency"] != 63.3 {
		t.Fatalf("expected consistency 63.3, got %v", raw["consistency"])
	}

	report := NewBlood().Interpret(raw, resultType)
	if report["best_match"] != "A" {
		t.Fatalf("expected best match A for type O, got %v", report["best_match"])
	}
}

func TestTarotElementFrequency(t *testing.T) {
	responses := []domain.Response{
		{Answer: domain.NewAnswer(1.0), Weights: domain.ScoringWeights{"position": domain.TagWeight("past")}},    // Magician, fire
		{Answer: domain.NewAnswer(19.0), Weights: domain.ScoringWeights{"position": domain.TagWeight("present")}}, // Sun, fire
		{Answer: domain.NewAnswer(2.0), Weights: domain.ScoringWeights{"position": domain.TagWeight("future")}},  // High Priestess, water
	}
	raw, resultType, err := NewTarot().Calculate(responses)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if raw["primary_element"] != "fire" {
		t.Fatalf("expected fire dominant, got %v", raw["primary_element"])
	}
	if resultType != "fire-The Magician" {
		t.Fatalf("expected fire-The Magician, got %q", resultType)
	}
}

func TestHTPFeatureDeltas(t *testing.T) {
	responses := []domain.Response{
		{
			Answer: domain.NewAnswer(map[string]any{
				"features": map[string]any{"trunk": "thick", "branches": "reaching_up"},
			}),
			Weights: domain.ScoringWeights{"type": domain.TagWeight("tree")},
		},
	}
	raw, resultType, err := NewHTP().Calculate(responses)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	tree := raw["tree_analysis"].(map[string]any)
	scores := tree["scores"].(map[string]float64)
	if scores["ego_strength"] != 70.0 {
		t.Fatalf("expected ego strength 70, got %v", scores["ego_strength"])
	}
	if scores["growth"] != 70.0 {
		t.Fatalf("expected growth 70, got %v", scores["growth"])
	}
	if resultType != "confident" {
		t.Fatalf("expected confident as leading trait, got %q", resultType)
	}
}

func TestGallupTopFiveAndResultType(t *testing.T) {
	responses := []domain.Response{
		likertResponse("achiever", 1, 9),
		likertResponse("learner", 1, 8),
		likertResponse("strategic", 1, 7),
		likertResponse("empathy", 1, 6),
		likertResponse("command", 1, 5),
		likertResponse("focus", 1, 1),
	}
	raw, resultType, err := NewGallup().Calculate(responses)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if resultType != "achiever-learner-strategic" {
		t.Fatalf("expected top-3 joined, got %q", resultType)
	}
	top5 := raw["top_5"].([]any)
	if len(top5) != 5 {
		t.Fatalf("expected 5 top strengths, got %d", len(top5))
	}
	if top5[3] != "empathy" {
		t.Fatalf("expected empathy at rank 4, got %v", top5[3])
	}
}

func TestFaceElementClassification(t *testing.T) {
	responses := []domain.Response{
		{
			Answer:  domain.NewAnswer("square"),
			Weights: domain.ScoringWeights{"feature": domain.TagWeight("face_shape")},
		},
		{
			Answer:  domain.NewAnswer("high"),
			Weights: domain.ScoringWeights{"feature": domain.TagWeight("nose")},
		},
	}
	raw, resultType, err := NewFace().Calculate(responses)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if resultType != "earth_face" {
		t.Fatalf("expected earth_face, got %q", resultType)
	}
	scores := raw["scores"].(map[string]float64)
	if scores["fortune"] != 65.0 {
		t.Fatalf("expected fortune 65 from high nose, got %v", scores["fortune"])
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	responses := []domain.Response{
		likertResponse("D", 1, 4),
		likertResponse("I", 1, 4),
		likertResponse("S", 1, 9),
		likertResponse("C", 1, 2),
	}
	_, first, err := NewDISC().Calculate(responses)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	for i := 0; i < 20; i++ {
		_, got, err := NewDISC().Calculate(responses)
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if got != first {
			t.Fatalf("expected stable result %q, got %q on run %d", first, got, i)
		}
	}
}
