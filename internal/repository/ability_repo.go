package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"psymetric/internal/domain"
)

// AbilityRepository persiste los puntajes agregados y el vector de
// habilidades usado para búsqueda de perfiles similares.
type AbilityRepository interface {
	UpsertScores(ctx context.Context, userID string, scores []domain.AbilityScore) error
	SaveVector(ctx context.Context, userID string, vector []float32) error
	// FindSimilar devuelve los vecinos más cercanos por distancia L2,
	// excluyendo al propio usuario.
	FindSimilar(ctx context.Context, userID string, vector []float32, limit int) ([]domain.SimilarProfile, error)
}

// PgAbilityRepository implementa AbilityRepository usando pgxpool.
type PgAbilityRepository struct {
	pool *pgxpool.Pool
}

func NewPgAbilityRepository(pool *pgxpool.Pool) *PgAbilityRepository {
	return &PgAbilityRepository{pool: pool}
}

func (r *PgAbilityRepository) UpsertScores(ctx context.Context, userID string, scores []domain.AbilityScore) error {
	const query = `
		INSERT INTO user_abilities (user_id, ability_code, score, confidence, source_tests, calculated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, ability_code) DO UPDATE
		SET score = EXCLUDED.score,
		    confidence = EXCLUDED.confidence,
		    source_tests = EXCLUDED.source_tests,
		    calculated_at = EXCLUDED.calculated_at
	`
	now := time.Now().UTC()
	for _, score := range scores {
		sources, err := json.Marshal(score.SourceTests)
		if err != nil {
			return err
		}
		if _, err := r.pool.Exec(ctx, query,
			userID,
			score.Code,
			score.Score,
			score.Confidence,
			sources,
			now,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *PgAbilityRepository) SaveVector(ctx context.Context, userID string, vector []float32) error {
	const query = `
		INSERT INTO user_ability_vectors (user_id, abilities, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET abilities = EXCLUDED.abilities,
		    updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query, userID, pgvector.NewVector(vector), time.Now().UTC())
	return err
}

func (r *PgAbilityRepository) FindSimilar(ctx context.Context, userID string, vector []float32, limit int) ([]domain.SimilarProfile, error) {
	const query = `
		SELECT user_id, abilities <-> $2 AS distance
		FROM user_ability_vectors
		WHERE user_id <> $1
		ORDER BY distance
		LIMIT $3
	`
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx, query, userID, pgvector.NewVector(vector), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []domain.SimilarProfile{}
	for rows.Next() {
		var p domain.SimilarProfile
		if err := rows.Scan(&p.UserID, &p.Distance); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
