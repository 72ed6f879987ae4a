package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"psymetric/internal/domain"
)

// ResultRepository define la persistencia de resultados calculados.
type ResultRepository interface {
	// Upsert guarda el resultado de la sesión; repetir la misma sesión
	// sobreescribe en lugar de duplicar.
	Upsert(ctx context.Context, result domain.ScoringResult) error
	ListByUser(ctx context.Context, userID string) ([]domain.ScoringResult, error)
	// GetLatestByTest devuelve el resultado más reciente del usuario para
	// un instrumento.
	GetLatestByTest(ctx context.Context, userID, testCode string) (domain.ScoringResult, error)
}

// PgResultRepository implementa ResultRepository usando pgxpool.
type PgResultRepository struct {
	pool *pgxpool.Pool
}

func NewPgResultRepository(pool *pgxpool.Pool) *PgResultRepository {
	return &PgResultRepository{pool: pool}
}

func (r *PgResultRepository) Upsert(ctx context.Context, result domain.ScoringResult) error {
	const query = `
		INSERT INTO test_results (id, session_id, user_id, test_code, raw_scores, result_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (session_id) DO UPDATE
		SET raw_scores = EXCLUDED.raw_scores,
		    result_type = EXCLUDED.result_type
	`
	rawScores, err := json.Marshal(result.RawScores)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, query,
		result.ID,
		result.SessionID,
		result.UserID,
		result.TestCode,
		rawScores,
		result.ResultType,
		result.CreatedAt,
	)
	return err
}

func (r *PgResultRepository) ListByUser(ctx context.Context, userID string) ([]domain.ScoringResult, error) {
	const query = `
		SELECT id, session_id, user_id, test_code, raw_scores, result_type, created_at
		FROM test_results
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.ScoringResult{}
	for rows.Next() {
		result, err := scanResult(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

func (r *PgResultRepository) GetLatestByTest(ctx context.Context, userID, testCode string) (domain.ScoringResult, error) {
	const query = `
		SELECT id, session_id, user_id, test_code, raw_scores, result_type, created_at
		FROM test_results
		WHERE user_id = $1 AND test_code = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	return scanResult(func(dest ...any) error {
		return r.pool.QueryRow(ctx, query, userID, testCode).Scan(dest...)
	})
}

func scanResult(scan func(dest ...any) error) (domain.ScoringResult, error) {
	var (
		result    domain.ScoringResult
		rawScores []byte
	)
	err := scan(
		&result.ID,
		&result.SessionID,
		&result.UserID,
		&result.TestCode,
		&rawScores,
		&result.ResultType,
		&result.CreatedAt,
	)
	if err != nil {
		return domain.ScoringResult{}, err
	}
	if len(rawScores) > 0 {
		if err := json.Unmarshal(rawScores, &result.RawScores); err != nil {
			return domain.ScoringResult{}, err
		}
	}
	return result, nil
}
