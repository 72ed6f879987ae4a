package ability

import (
	"testing"

	"psymetric/internal/domain"
)

func findScore(t *testing.T, profile domain.AbilityProfile, code string) domain.AbilityScore {
	t.Helper()
	for _, group := range profile.Categories {
		for _, a := range group.Abilities {
			if a.Code == code {
				return a
			}
		}
	}
	t.Fatalf("expected ability %q in profile", code)
	return domain.AbilityScore{}
}

func TestCatalogHasThirtyDimensions(t *testing.T) {
	if len(Definitions) != Dimensions {
		t.Fatalf("expected %d definitions, got %d", Dimensions, len(Definitions))
	}
	perCategory := map[string]int{}
	codes := map[string]bool{}
	for _, def := range Definitions {
		if codes[def.Code] {
			t.Fatalf("duplicate ability code %q", def.Code)
		}
		codes[def.Code] = true
		perCategory[def.Category]++
	}
	for category, n := range perCategory {
		if n != 6 {
			t.Fatalf("expected 6 abilities in %s, got %d", category, n)
		}
	}
}

func TestContributionsReferenceKnownAbilities(t *testing.T) {
	codes := map[string]bool{}
	for _, def := range Definitions {
		codes[def.Code] = true
	}
	for _, instrument := range Instruments {
		mapped, ok := contributions[instrument]
		if !ok {
			t.Fatalf("instrument %q has no contribution mapping", instrument)
		}
		for _, code := range mapped {
			if !codes[code] {
				t.Fatalf("instrument %q maps to unknown ability %q", instrument, code)
			}
		}
	}
}

func TestAggregateNoResults(t *testing.T) {
	profile := Aggregate(nil)

	if profile.TotalScore != 300.0 {
		t.Fatalf("expected total 300 at the midpoint, got %v", profile.TotalScore)
	}
	if profile.MaxTotalScore != 600.0 {
		t.Fatalf("expected max total 600, got %v", profile.MaxTotalScore)
	}
	if profile.Reliability != 0.0 {
		t.Fatalf("expected reliability 0, got %v", profile.Reliability)
	}
	if len(profile.PendingTests) != len(Instruments) {
		t.Fatalf("expected all %d instruments pending, got %d", len(Instruments), len(profile.PendingTests))
	}
	for _, group := range profile.Categories {
		for _, a := range group.Abilities {
			if a.Score != 10.0 || a.Confidence != 0.0 {
				t.Fatalf("expected %s at 10.0/0.0, got %v/%v", a.Code, a.Score, a.Confidence)
			}
			if len(a.SourceTests) != 0 {
				t.Fatalf("expected no sources for %s, got %v", a.Code, a.SourceTests)
			}
		}
	}
}

func TestAggregateMBTIContribution(t *testing.T) {
	profile := Aggregate([]domain.ScoringResult{
		{TestCode: "mbti", RawScores: domain.RawScores{"type": "INTP"}},
	})

	// creativity promedia N=16 y P=14.
	creativity := findScore(t, profile, "creativity")
	if creativity.Score != 15.0 {
		t.Fatalf("expected creativity 15 for INTP, got %v", creativity.Score)
	}
	if creativity.Confidence != 0.33 {
		t.Fatalf("expected confidence 0.33 from one source, got %v", creativity.Confidence)
	}
	if len(creativity.SourceTests) != 1 || creativity.SourceTests[0] != "mbti" {
		t.Fatalf("expected mbti as the source, got %v", creativity.SourceTests)
	}

	// concentration no recibe aporte de mbti y queda en el punto medio.
	concentration := findScore(t, profile, "concentration")
	if concentration.Score != 10.0 || concentration.Confidence != 0.0 {
		t.Fatalf("expected untouched concentration, got %v/%v", concentration.Score, concentration.Confidence)
	}

	if profile.Reliability != 0.07 {
		t.Fatalf("expected reliability 0.07 with 1 of 14 done, got %v", profile.Reliability)
	}
}

func TestAggregateDISCContribution(t *testing.T) {
	profile := Aggregate([]domain.ScoringResult{
		{TestCode: "disc", RawScores: domain.RawScores{
			"D": 20.0, "I": 10.0, "S": 5.0, "C": 15.0,
		}},
	})

	determination := findScore(t, profile, "determination")
	if determination.Score != 16.0 {
		t.Fatalf("expected determination 16 from D*0.8, got %v", determination.Score)
	}
	leadership := findScore(t, profile, "leadership")
	if leadership.Score != 12.0 {
		t.Fatalf("expected leadership 12 from (D+I)*0.4, got %v", leadership.Score)
	}
	execution := findScore(t, profile, "execution")
	if execution.Score != 14.0 {
		t.Fatalf("expected execution 14 from (D+C)*0.4, got %v", execution.Score)
	}
}

func TestAggregateDISCClampsAtMax(t *testing.T) {
	profile := Aggregate([]domain.ScoringResult{
		{TestCode: "disc", RawScores: domain.RawScores{
			"D": 100.0, "I": 0.0, "S": 0.0, "C": 0.0,
		}},
	})
	determination := findScore(t, profile, "determination")
	if determination.Score != 20.0 {
		t.Fatalf("expected determination clamped to 20, got %v", determination.Score)
	}
}

func TestAggregateIQContribution(t *testing.T) {
	profile := Aggregate([]domain.ScoringResult{
		{TestCode: "iq", RawScores: domain.RawScores{"iq_score": 130.0}},
	})
	analytical := findScore(t, profile, "analytical")
	// (130-70)/8 = 7.5 aplica uniforme en las dimensiones mapeadas.
	if analytical.Score != 7.5 {
		t.Fatalf("expected analytical 7.5 at IQ 130, got %v", analytical.Score)
	}
}

func TestAggregateAveragesAcrossInstruments(t *testing.T) {
	profile := Aggregate([]domain.ScoringResult{
		{TestCode: "mbti", RawScores: domain.RawScores{"type": "ENFJ"}},
		{TestCode: "disc", RawScores: domain.RawScores{
			"D": 10.0, "I": 20.0, "S": 10.0, "C": 10.0,
		}},
	})

	// communication: mbti E=16, F=14 -> 15; disc I*0.8 = 16; media 15.5.
	communication := findScore(t, profile, "communication")
	if communication.Score != 15.5 {
		t.Fatalf("expected communication 15.5, got %v", communication.Score)
	}
	if communication.Confidence != 0.67 {
		t.Fatalf("expected confidence 0.67 from two sources, got %v", communication.Confidence)
	}
	if len(communication.SourceTests) != 2 {
		t.Fatalf("expected two sources, got %v", communication.SourceTests)
	}
}

func TestAggregateConfidenceCapsAtOne(t *testing.T) {
	results := []domain.ScoringResult{
		{TestCode: "mbti", RawScores: domain.RawScores{"type": "ISTJ"}},
		{TestCode: "tci", RawScores: domain.RawScores{"adaptability": 12.0}},
		{TestCode: "saju", RawScores: domain.RawScores{"adaptability": 14.0}},
		{TestCode: "sasang", RawScores: domain.RawScores{"adaptability": 16.0}},
	}
	profile := Aggregate(results)
	adaptability := findScore(t, profile, "adaptability")
	if adaptability.Confidence != 1.0 {
		t.Fatalf("expected confidence capped at 1, got %v", adaptability.Confidence)
	}
}

func TestAggregateBounds(t *testing.T) {
	results := []domain.ScoringResult{
		{TestCode: "mbti", RawScores: domain.RawScores{"type": "ESTP"}},
		{TestCode: "disc", RawScores: domain.RawScores{"D": 500.0, "I": -50.0, "S": 3.0, "C": 8.0}},
		{TestCode: "iq", RawScores: domain.RawScores{"iq_score": 145.0}},
	}
	profile := Aggregate(results)
	for _, group := range profile.Categories {
		for _, a := range group.Abilities {
			if a.Score < 0 || a.Score > 20 {
				t.Fatalf("score out of bounds for %s: %v", a.Code, a.Score)
			}
			if a.Confidence < 0 || a.Confidence > 1 {
				t.Fatalf("confidence out of bounds for %s: %v", a.Code, a.Confidence)
			}
		}
	}
}

func TestAggregateDeduplicatesRepeatedInstrument(t *testing.T) {
	profile := Aggregate([]domain.ScoringResult{
		{TestCode: "mbti", RawScores: domain.RawScores{"type": "INFP"}},
		{TestCode: "mbti", RawScores: domain.RawScores{"type": "INFP"}},
	})
	if len(profile.CompletedTests) != 1 {
		t.Fatalf("expected one completed instrument, got %v", profile.CompletedTests)
	}
	if profile.Reliability != 0.07 {
		t.Fatalf("expected reliability 0.07, got %v", profile.Reliability)
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	results := []domain.ScoringResult{
		{TestCode: "mbti", RawScores: domain.RawScores{"type": "ENTJ"}},
		{TestCode: "iq", RawScores: domain.RawScores{"iq_score": 110.0}},
	}
	first := Aggregate(results)
	second := Aggregate(results)
	if first.TotalScore != second.TotalScore {
		t.Fatalf("expected stable total, got %v vs %v", first.TotalScore, second.TotalScore)
	}
	v1, v2 := Vector(first), Vector(second)
	for i := range v1 {
		if v1[i] != v2[i] {
			t.Fatalf("vector differs at %d: %v vs %v", i, v1[i], v2[i])
		}
	}
}

func TestVectorFollowsCatalogOrder(t *testing.T) {
	profile := Aggregate(nil)
	vec := Vector(profile)
	if len(vec) != Dimensions {
		t.Fatalf("expected %d dimensions, got %d", Dimensions, len(vec))
	}
	for i, v := range vec {
		if v != 10.0 {
			t.Fatalf("expected midpoint at dimension %d, got %v", i, v)
		}
	}
}
