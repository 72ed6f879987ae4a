package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"psymetric/internal/domain"
)

// ResponseRepository define la persistencia de respuestas de una sesión.
type ResponseRepository interface {
	CreateBatch(ctx context.Context, responses []domain.Response) error
	// ListBySession devuelve las respuestas en orden de creación, con los
	// scoring_weights de cada pregunta ya desnormalizados.
	ListBySession(ctx context.Context, sessionID string) ([]domain.Response, error)
}

// PgResponseRepository implementa ResponseRepository usando pgxpool.
type PgResponseRepository struct {
	pool *pgxpool.Pool
}

func NewPgResponseRepository(pool *pgxpool.Pool) *PgResponseRepository {
	return &PgResponseRepository{pool: pool}
}

func (r *PgResponseRepository) CreateBatch(ctx context.Context, responses []domain.Response) error {
	const query = `
		INSERT INTO responses (id, session_id, question_id, answer, response_time_ms, typing_pattern, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, resp := range responses {
		answer, err := json.Marshal(resp.Answer)
		if err != nil {
			return err
		}
		var typing []byte
		if resp.TypingPattern != nil {
			typing, err = json.Marshal(resp.TypingPattern)
			if err != nil {
				return err
			}
		}
		if _, err := r.pool.Exec(ctx, query,
			resp.ID,
			resp.SessionID,
			resp.QuestionID,
			answer,
			resp.ResponseTimeMs,
			typing,
			resp.CreatedAt,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *PgResponseRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.Response, error) {
	const query = `
		SELECT r.id, r.session_id, r.question_id, r.answer,
		       q.scoring_weights, r.response_time_ms, r.typing_pattern, r.created_at
		FROM responses r
		JOIN questions q ON q.id = r.question_id
		WHERE r.session_id = $1
		ORDER BY r.created_at
	`
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := []domain.Response{}
	for rows.Next() {
		var (
			resp    domain.Response
			answer  []byte
			weights []byte
			typing  []byte
		)
		if err := rows.Scan(
			&resp.ID,
			&resp.SessionID,
			&resp.QuestionID,
			&answer,
			&weights,
			&resp.ResponseTimeMs,
			&typing,
			&resp.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(answer) > 0 {
			if err := json.Unmarshal(answer, &resp.Answer); err != nil {
				return nil, err
			}
		}
		if len(weights) > 0 {
			if err := json.Unmarshal(weights, &resp.Weights); err != nil {
				return nil, err
			}
		}
		if len(typing) > 0 {
			var tp domain.TypingPattern
			if err := json.Unmarshal(typing, &tp); err != nil {
				return nil, err
			}
			resp.TypingPattern = &tp
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}
