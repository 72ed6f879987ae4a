package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"psymetric/internal/domain"
	"psymetric/internal/engine"
	"psymetric/internal/fraud"
	"psymetric/internal/repository"
)

var ErrResultNotFound = errors.New("result not found")

// CompletedResult es la respuesta ensamblada al cerrar una sesión:
// resultado tipado, interpretación y análisis de fraude.
type CompletedResult struct {
	Result         domain.ScoringResult `json:"result"`
	Interpretation domain.Report        `json:"interpretation"`
	Fraud          domain.FraudAnalysis `json:"fraud"`
}

// ResultService cierra sesiones y ensambla resultados. El scoring y el
// análisis de fraude se calculan completos antes de tocar la base: una
// sesión nunca queda completada sin resultado ni con resultado parcial.
type ResultService struct {
	tests     repository.TestRepository
	sessions  repository.SessionRepository
	responses repository.ResponseRepository
	results   repository.ResultRepository
	fraudLogs repository.FraudLogRepository
	engines   *engine.Registry
	detector  *fraud.Detector
	abilities *AbilityService
	logger    *zap.Logger
}

func NewResultService(
	tests repository.TestRepository,
	sessions repository.SessionRepository,
	responses repository.ResponseRepository,
	results repository.ResultRepository,
	fraudLogs repository.FraudLogRepository,
	engines *engine.Registry,
	detector *fraud.Detector,
	abilities *AbilityService,
	logger *zap.Logger,
) *ResultService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResultService{
		tests:     tests,
		sessions:  sessions,
		responses: responses,
		results:   results,
		fraudLogs: fraudLogs,
		engines:   engines,
		detector:  detector,
		abilities: abilities,
		logger:    logger,
	}
}

// CompleteSession cierra la sesión: puntúa, interpreta, analiza fraude y
// recién entonces persiste. Repetir la llamada sobre una sesión ya
// completada devuelve ErrSessionClosed.
func (s *ResultService) CompleteSession(ctx context.Context, userID, sessionID string) (CompletedResult, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return CompletedResult{}, err
	}
	if session.Status != domain.SessionInProgress {
		return CompletedResult{}, ErrSessionClosed
	}

	test, err := s.tests.GetByCode(ctx, session.TestCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CompletedResult{}, ErrTestNotFound
		}
		return CompletedResult{}, err
	}
	eng, ok := s.engines.Lookup(session.TestCode)
	if !ok {
		return CompletedResult{}, ErrEngineNotFound
	}
	responses, err := s.responses.ListBySession(ctx, session.ID)
	if err != nil {
		return CompletedResult{}, err
	}

	// Fase de cálculo, sin efectos sobre la base.
	raw, resultType, err := eng.Calculate(responses)
	if err != nil {
		return CompletedResult{}, err
	}
	report := eng.Interpret(raw, resultType)
	analysis := s.detector.Analyze(session.ID, responses, domain.SessionInfo{
		ExpectedMinutes: test.ExpectedMinutes,
		QuestionCount:   test.QuestionCount,
	})

	now := time.Now().UTC()
	result := domain.ScoringResult{
		ID:         uuid.NewString(),
		SessionID:  session.ID,
		UserID:     session.UserID,
		TestCode:   session.TestCode,
		RawScores:  raw,
		ResultType: resultType,
		CreatedAt:  now,
	}

	// Fase de persistencia.
	if err := s.results.Upsert(ctx, result); err != nil {
		return CompletedResult{}, err
	}
	if err := s.fraudLogs.InsertDetections(ctx, session.ID, analysis.Detections); err != nil {
		return CompletedResult{}, err
	}
	timeSpent := int(now.Sub(session.StartedAt).Seconds())
	if err := s.sessions.Complete(ctx, session.ID, now, timeSpent); err != nil {
		return CompletedResult{}, err
	}
	if err := s.sessions.UpdateFraudScore(ctx, session.ID, analysis.FraudScore); err != nil {
		return CompletedResult{}, err
	}

	// El perfil agregado es derivable de los resultados; si la
	// recomputación falla el cierre de la sesión sigue siendo válido.
	if s.abilities != nil {
		if _, err := s.abilities.Recompute(ctx, session.UserID); err != nil {
			s.logger.Warn("ability recompute failed",
				zap.String("user_id", session.UserID),
				zap.Error(err),
			)
		}
	}

	return CompletedResult{
		Result:         result,
		Interpretation: report,
		Fraud:          analysis,
	}, nil
}

// ListResults devuelve todos los resultados del usuario en orden de
// creación.
func (s *ResultService) ListResults(ctx context.Context, userID string) ([]domain.ScoringResult, error) {
	return s.results.ListByUser(ctx, userID)
}

// GetLatestResult devuelve el resultado más reciente del usuario para un
// instrumento, reinterpretado con el motor actual.
func (s *ResultService) GetLatestResult(ctx context.Context, userID, testCode string) (domain.ScoringResult, domain.Report, error) {
	result, err := s.results.GetLatestByTest(ctx, userID, testCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ScoringResult{}, nil, ErrResultNotFound
		}
		return domain.ScoringResult{}, nil, err
	}
	eng, ok := s.engines.Lookup(result.TestCode)
	if !ok {
		return result, domain.Report{}, nil
	}
	return result, eng.Interpret(result.RawScores, result.ResultType), nil
}

// SessionFraud reconstruye el análisis de fraude de una sesión a partir
// de las detecciones persistidas.
func (s *ResultService) SessionFraud(ctx context.Context, userID, sessionID string) (domain.FraudAnalysis, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return domain.FraudAnalysis{}, err
	}
	detections, err := s.fraudLogs.ListBySession(ctx, session.ID)
	if err != nil {
		return domain.FraudAnalysis{}, err
	}
	score := 0.0
	if session.FraudScore != nil {
		score = *session.FraudScore
	}
	return fraud.Summarize(session.ID, score, detections), nil
}

func (s *ResultService) ownedSession(ctx context.Context, userID, sessionID string) (domain.TestSession, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TestSession{}, ErrSessionNotFound
		}
		return domain.TestSession{}, err
	}
	if session.UserID != userID {
		return domain.TestSession{}, ErrSessionNotFound
	}
	return session, nil
}
