package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"psymetric/internal/domain"
	"psymetric/internal/engine"
	"psymetric/internal/fraud"
)

type resultServiceFixture struct {
	svc       *ResultService
	sessions  *fakeSessionRepo
	responses *fakeResponseRepo
	results   *fakeResultRepo
	fraudLogs *fakeFraudLogRepo
	abilities *fakeAbilityRepo
}

func newResultServiceFixture(tests ...domain.Test) *resultServiceFixture {
	f := &resultServiceFixture{
		sessions:  newFakeSessionRepo(),
		responses: newFakeResponseRepo(),
		results:   newFakeResultRepo(),
		fraudLogs: newFakeFraudLogRepo(),
		abilities: newFakeAbilityRepo(),
	}
	abilitySvc := NewAbilityService(f.results, f.abilities, nil, zap.NewNop())
	f.svc = NewResultService(
		newFakeTestRepo(tests...),
		f.sessions,
		f.responses,
		f.results,
		f.fraudLogs,
		engine.NewDefaultRegistry(),
		fraud.NewDetector(),
		abilitySvc,
		zap.NewNop(),
	)
	return f
}

func axisResponse(sessionID, axis string, answer float64, timeMs int, at time.Time) domain.Response {
	return domain.Response{
		ID:             "r-" + axis,
		SessionID:      sessionID,
		QuestionID:     "q-" + axis,
		Answer:         domain.NewAnswer(answer),
		Weights:        domain.ScoringWeights{axis: domain.NumberWeight(1)},
		ResponseTimeMs: timeMs,
		CreatedAt:      at,
	}
}

func seedCleanMBTISession(f *resultServiceFixture, userID, sessionID string) {
	started := time.Now().UTC().Add(-10 * time.Minute)
	f.sessions.sessions[sessionID] = domain.TestSession{
		ID:        sessionID,
		UserID:    userID,
		TestCode:  "mbti",
		Status:    domain.SessionInProgress,
		StartedAt: started,
	}
	// Respuestas variadas en valor y tiempo para no disparar detecciones.
	entries := []struct {
		axis   string
		answer float64
		timeMs int
	}{
		{"E", 4, 2100}, {"E", 3, 3400}, {"I", 2, 1900}, {"S", 4, 2800},
		{"N", 3, 4100}, {"T", 4, 2600}, {"F", 2, 3100}, {"J", 4, 1700},
		{"P", 3, 3900}, {"E", 2, 2300},
	}
	for i, e := range entries {
		resp := axisResponse(sessionID, e.axis, e.answer, e.timeMs, started.Add(time.Duration(i)*time.Second))
		resp.ID = resp.ID + "-" + resp.CreatedAt.Format("05.000")
		f.responses.bySession[sessionID] = append(f.responses.bySession[sessionID], resp)
	}
}

func TestResultService_CompleteSession(t *testing.T) {
	f := newResultServiceFixture(
		domain.Test{Code: "mbti", Name: "MBTI", QuestionCount: 10, ExpectedMinutes: 1, Active: true},
	)
	seedCleanMBTISession(f, "u1", "s1")
	ctx := context.Background()

	completed, err := f.svc.CompleteSession(ctx, "u1", "s1")
	if err != nil {
		t.Fatalf("complete session: %v", err)
	}
	if completed.Result.ResultType != "ESTJ" {
		t.Fatalf("expected ESTJ, got %q", completed.Result.ResultType)
	}
	if completed.Result.SessionID != "s1" || completed.Result.UserID != "u1" {
		t.Fatalf("unexpected result identity: %+v", completed.Result)
	}
	if name, _ := completed.Interpretation["type_name"].(string); name != "Executive" {
		t.Fatalf("expected Executive interpretation, got %v", completed.Interpretation["type_name"])
	}
	if completed.Fraud.FraudScore != 0 || completed.Fraud.RiskLevel != domain.RiskNormal {
		t.Fatalf("expected clean fraud verdict, got %+v", completed.Fraud)
	}

	session, err := f.sessions.GetByID(ctx, "s1")
	if err != nil {
		t.Fatalf("session lookup: %v", err)
	}
	if session.Status != domain.SessionCompleted || session.CompletedAt == nil {
		t.Fatalf("expected completed session, got %+v", session)
	}
	if session.FraudScore == nil || *session.FraudScore != 0 {
		t.Fatalf("expected fraud score persisted, got %+v", session.FraudScore)
	}
	if session.TimeSpentSeconds <= 0 {
		t.Fatalf("expected positive time spent, got %d", session.TimeSpentSeconds)
	}

	stored, err := f.results.GetLatestByTest(ctx, "u1", "mbti")
	if err != nil {
		t.Fatalf("stored result lookup: %v", err)
	}
	if stored.ResultType != "ESTJ" {
		t.Fatalf("expected persisted ESTJ, got %q", stored.ResultType)
	}

	// El cierre dispara la recomputación del perfil de habilidades.
	if len(f.abilities.vectors["u1"]) != 30 {
		t.Fatalf("expected 30-dim vector saved, got %d", len(f.abilities.vectors["u1"]))
	}
	if len(f.abilities.scores["u1"]) != 30 {
		t.Fatalf("expected 30 ability scores upserted, got %d", len(f.abilities.scores["u1"]))
	}

	if _, err := f.svc.CompleteSession(ctx, "u1", "s1"); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed on repeat, got %v", err)
	}
}

func TestResultService_CompleteSessionWithoutResponses(t *testing.T) {
	f := newResultServiceFixture(
		domain.Test{Code: "mbti", Name: "MBTI", QuestionCount: 10, ExpectedMinutes: 1, Active: true},
	)
	f.sessions.sessions["s1"] = domain.TestSession{
		ID:        "s1",
		UserID:    "u1",
		TestCode:  "mbti",
		Status:    domain.SessionInProgress,
		StartedAt: time.Now().UTC(),
	}
	ctx := context.Background()

	_, err := f.svc.CompleteSession(ctx, "u1", "s1")
	if !errors.Is(err, engine.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}

	// Nada se persiste cuando el scoring falla.
	session, _ := f.sessions.GetByID(ctx, "s1")
	if session.Status != domain.SessionInProgress {
		t.Fatalf("session must stay open, got %q", session.Status)
	}
	if _, err := f.results.GetLatestByTest(ctx, "u1", "mbti"); err == nil {
		t.Fatalf("expected no persisted result")
	}
}

func TestResultService_CompleteSessionOwnership(t *testing.T) {
	f := newResultServiceFixture(
		domain.Test{Code: "mbti", Name: "MBTI", ExpectedMinutes: 1, Active: true},
	)
	seedCleanMBTISession(f, "u1", "s1")

	if _, err := f.svc.CompleteSession(context.Background(), "u2", "s1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for foreign session, got %v", err)
	}
	if _, err := f.svc.CompleteSession(context.Background(), "u1", "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for missing session, got %v", err)
	}
}

func TestResultService_GetLatestResult(t *testing.T) {
	f := newResultServiceFixture(
		domain.Test{Code: "mbti", Name: "MBTI", ExpectedMinutes: 1, Active: true},
	)
	seedCleanMBTISession(f, "u1", "s1")
	ctx := context.Background()

	if _, _, err := f.svc.GetLatestResult(ctx, "u1", "mbti"); !errors.Is(err, ErrResultNotFound) {
		t.Fatalf("expected ErrResultNotFound before completion, got %v", err)
	}

	if _, err := f.svc.CompleteSession(ctx, "u1", "s1"); err != nil {
		t.Fatalf("complete session: %v", err)
	}
	result, report, err := f.svc.GetLatestResult(ctx, "u1", "mbti")
	if err != nil {
		t.Fatalf("get latest: %v", err)
	}
	if result.ResultType != "ESTJ" {
		t.Fatalf("expected ESTJ, got %q", result.ResultType)
	}
	if name, _ := report["type_name"].(string); name != "Executive" {
		t.Fatalf("expected reinterpreted report, got %v", report["type_name"])
	}
}

func TestResultService_SessionFraud(t *testing.T) {
	f := newResultServiceFixture(
		domain.Test{Code: "mbti", Name: "MBTI", ExpectedMinutes: 1, Active: true},
	)
	score := 35.0
	f.sessions.sessions["s1"] = domain.TestSession{
		ID:         "s1",
		UserID:     "u1",
		TestCode:   "mbti",
		Status:     domain.SessionCompleted,
		FraudScore: &score,
		StartedAt:  time.Now().UTC(),
	}
	f.fraudLogs.bySession["s1"] = []domain.Detection{
		{Type: "same_answer_pattern", Severity: domain.SeverityCritical, Description: "same answer repeated"},
		{Type: "extreme_answers", Severity: domain.SeverityMedium, Description: "mostly extremes"},
	}
	ctx := context.Background()

	analysis, err := f.svc.SessionFraud(ctx, "u1", "s1")
	if err != nil {
		t.Fatalf("session fraud: %v", err)
	}
	if analysis.FraudScore != 35 || analysis.RiskLevel != domain.RiskMedium {
		t.Fatalf("unexpected verdict: %+v", analysis)
	}
	if len(analysis.Detections) != 2 {
		t.Fatalf("expected 2 detections, got %d", len(analysis.Detections))
	}
	if analysis.Recommendation == "" {
		t.Fatalf("expected a recommendation")
	}

	if _, err := f.svc.SessionFraud(ctx, "u2", "s1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for foreign session, got %v", err)
	}
}
