package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"psymetric/internal/domain"
	"psymetric/internal/engine"
	"psymetric/internal/repository"
)

var (
	ErrTestNotFound = errors.New("test not found")
	// ErrEngineNotFound marca un instrumento del catálogo sin motor de
	// scoring registrado. El handler lo traduce a 501.
	ErrEngineNotFound  = errors.New("scoring engine not implemented")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionClosed   = errors.New("session already completed")
)

// ResponseInput es una respuesta tal como llega del cliente.
type ResponseInput struct {
	QuestionID     string                `json:"question_id"`
	Answer         any                   `json:"answer"`
	ResponseTimeMs int                   `json:"response_time_ms"`
	TypingPattern  *domain.TypingPattern `json:"typing_pattern,omitempty"`
}

// TestService maneja el catálogo de instrumentos y el ciclo de vida de
// las sesiones previas al scoring.
type TestService struct {
	tests     repository.TestRepository
	sessions  repository.SessionRepository
	responses repository.ResponseRepository
	engines   *engine.Registry
}

func NewTestService(
	tests repository.TestRepository,
	sessions repository.SessionRepository,
	responses repository.ResponseRepository,
	engines *engine.Registry,
) *TestService {
	return &TestService{
		tests:     tests,
		sessions:  sessions,
		responses: responses,
		engines:   engines,
	}
}

func (s *TestService) ListTests(ctx context.Context) ([]domain.Test, error) {
	return s.tests.ListActive(ctx)
}

// StartSession abre una sesión para el instrumento. Si el usuario ya tiene
// una sesión en progreso para el mismo test, la devuelve en lugar de abrir
// otra.
func (s *TestService) StartSession(ctx context.Context, userID, testCode string) (domain.TestSession, error) {
	test, err := s.tests.GetByCode(ctx, testCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TestSession{}, ErrTestNotFound
		}
		return domain.TestSession{}, err
	}
	if !test.Active {
		return domain.TestSession{}, ErrTestNotFound
	}
	if _, ok := s.engines.Lookup(test.Code); !ok {
		return domain.TestSession{}, ErrEngineNotFound
	}

	existing, err := s.sessions.FindInProgress(ctx, userID, test.Code)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.TestSession{}, err
	}

	session := domain.TestSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		TestCode:  test.Code,
		Status:    domain.SessionInProgress,
		StartedAt: time.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return domain.TestSession{}, err
	}
	return session, nil
}

// SubmitResponses agrega un lote de respuestas a una sesión abierta y
// devuelve cuántas se guardaron. Las respuestas son inmutables una vez
// persistidas.
func (s *TestService) SubmitResponses(ctx context.Context, userID, sessionID string, inputs []ResponseInput) (int, error) {
	session, err := s.getOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return 0, err
	}
	if session.Status != domain.SessionInProgress {
		return 0, ErrSessionClosed
	}
	if len(inputs) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	responses := make([]domain.Response, 0, len(inputs))
	for i, in := range inputs {
		responses = append(responses, domain.Response{
			ID:             uuid.NewString(),
			SessionID:      session.ID,
			QuestionID:     in.QuestionID,
			Answer:         domain.NewAnswer(in.Answer),
			ResponseTimeMs: in.ResponseTimeMs,
			TypingPattern:  in.TypingPattern,
			// Offset incremental para que el orden de llegada sobreviva
			// al ORDER BY created_at de la lectura.
			CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
		})
	}
	if err := s.responses.CreateBatch(ctx, responses); err != nil {
		return 0, err
	}
	return len(responses), nil
}

// GetSession devuelve la sesión si pertenece al usuario.
func (s *TestService) GetSession(ctx context.Context, userID, sessionID string) (domain.TestSession, error) {
	return s.getOwnedSession(ctx, userID, sessionID)
}

func (s *TestService) getOwnedSession(ctx context.Context, userID, sessionID string) (domain.TestSession, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TestSession{}, ErrSessionNotFound
		}
		return domain.TestSession{}, err
	}
	// Sesión ajena se reporta igual que inexistente.
	if session.UserID != userID {
		return domain.TestSession{}, ErrSessionNotFound
	}
	return session, nil
}
