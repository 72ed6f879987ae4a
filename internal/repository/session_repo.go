package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"psymetric/internal/domain"
)

// SessionRepository define la persistencia de sesiones de test.
type SessionRepository interface {
	Create(ctx context.Context, session domain.TestSession) error
	GetByID(ctx context.Context, id string) (domain.TestSession, error)
	// FindInProgress devuelve la sesión abierta del usuario para un
	// instrumento, si existe.
	FindInProgress(ctx context.Context, userID, testCode string) (domain.TestSession, error)
	Complete(ctx context.Context, id string, completedAt time.Time, timeSpentSeconds int) error
	UpdateFraudScore(ctx context.Context, id string, score float64) error
}

// PgSessionRepository implementa SessionRepository usando pgxpool.
type PgSessionRepository struct {
	pool *pgxpool.Pool
}

func NewPgSessionRepository(pool *pgxpool.Pool) *PgSessionRepository {
	return &PgSessionRepository{pool: pool}
}

func (r *PgSessionRepository) Create(ctx context.Context, session domain.TestSession) error {
	const query = `
		INSERT INTO test_sessions (id, user_id, test_code, status, started_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.TestCode,
		session.Status,
		session.StartedAt,
	)
	return err
}

func (r *PgSessionRepository) GetByID(ctx context.Context, id string) (domain.TestSession, error) {
	const query = `
		SELECT id, user_id, test_code, status, fraud_score, started_at, completed_at, time_spent_seconds
		FROM test_sessions
		WHERE id = $1
	`
	return r.scanSession(ctx, query, id)
}

func (r *PgSessionRepository) FindInProgress(ctx context.Context, userID, testCode string) (domain.TestSession, error) {
	const query = `
		SELECT id, user_id, test_code, status, fraud_score, started_at, completed_at, time_spent_seconds
		FROM test_sessions
		WHERE user_id = $1 AND test_code = $2 AND status = 'in_progress'
		ORDER BY started_at DESC
		LIMIT 1
	`
	return r.scanSession(ctx, query, userID, testCode)
}

func (r *PgSessionRepository) Complete(ctx context.Context, id string, completedAt time.Time, timeSpentSeconds int) error {
	const query = `
		UPDATE test_sessions
		SET status = 'completed', completed_at = $2, time_spent_seconds = $3
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id, completedAt, timeSpentSeconds)
	return err
}

func (r *PgSessionRepository) UpdateFraudScore(ctx context.Context, id string, score float64) error {
	const query = `
		UPDATE test_sessions
		SET fraud_score = $2
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id, score)
	return err
}

func (r *PgSessionRepository) scanSession(ctx context.Context, query string, args ...any) (domain.TestSession, error) {
	var (
		session   domain.TestSession
		timeSpent *int
	)
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&session.ID,
		&session.UserID,
		&session.TestCode,
		&session.Status,
		&session.FraudScore,
		&session.StartedAt,
		&session.CompletedAt,
		&timeSpent,
	)
	if timeSpent != nil {
		session.TimeSpentSeconds = *timeSpent
	}
	return session, err
}
