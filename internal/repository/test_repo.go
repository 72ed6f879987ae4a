package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"psymetric/internal/domain"
)

// TestRepository expone el catálogo de instrumentos.
type TestRepository interface {
	ListActive(ctx context.Context) ([]domain.Test, error)
	GetByCode(ctx context.Context, code string) (domain.Test, error)
}

// PgTestRepository implementa TestRepository usando pgxpool.
type PgTestRepository struct {
	pool *pgxpool.Pool
}

func NewPgTestRepository(pool *pgxpool.Pool) *PgTestRepository {
	return &PgTestRepository{pool: pool}
}

func (r *PgTestRepository) ListActive(ctx context.Context) ([]domain.Test, error) {
	const query = `
		SELECT code, name, question_count, expected_minutes, active
		FROM tests
		WHERE active
		ORDER BY code
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tests := []domain.Test{}
	for rows.Next() {
		var t domain.Test
		if err := rows.Scan(&t.Code, &t.Name, &t.QuestionCount, &t.ExpectedMinutes, &t.Active); err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}
	return tests, rows.Err()
}

func (r *PgTestRepository) GetByCode(ctx context.Context, code string) (domain.Test, error) {
	const query = `
		SELECT code, name, question_count, expected_minutes, active
		FROM tests
		WHERE code = $1
	`
	var t domain.Test
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&t.Code,
		&t.Name,
		&t.QuestionCount,
		&t.ExpectedMinutes,
		&t.Active,
	)
	return t, err
}
