package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"psymetric/internal/domain"
)

// FraudLogRepository persiste las detecciones de una sesión.
type FraudLogRepository interface {
	InsertDetections(ctx context.Context, sessionID string, detections []domain.Detection) error
	ListBySession(ctx context.Context, sessionID string) ([]domain.Detection, error)
}

// PgFraudLogRepository implementa FraudLogRepository usando pgxpool.
type PgFraudLogRepository struct {
	pool *pgxpool.Pool
}

func NewPgFraudLogRepository(pool *pgxpool.Pool) *PgFraudLogRepository {
	return &PgFraudLogRepository{pool: pool}
}

func (r *PgFraudLogRepository) InsertDetections(ctx context.Context, sessionID string, detections []domain.Detection) error {
	const query = `
		INSERT INTO fraud_detection_logs (id, session_id, detection_type, severity, description, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	now := time.Now().UTC()
	for _, det := range detections {
		details, err := json.Marshal(det.Details)
		if err != nil {
			return err
		}
		if _, err := r.pool.Exec(ctx, query,
			uuid.NewString(),
			sessionID,
			det.Type,
			det.Severity,
			det.Description,
			details,
			now,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *PgFraudLogRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.Detection, error) {
	const query = `
		SELECT detection_type, severity, description, details
		FROM fraud_detection_logs
		WHERE session_id = $1
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	detections := []domain.Detection{}
	for rows.Next() {
		var (
			det     domain.Detection
			details []byte
		)
		if err := rows.Scan(&det.Type, &det.Severity, &det.Description, &details); err != nil {
			return nil, err
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &det.Details); err != nil {
				return nil, err
			}
		}
		detections = append(detections, det)
	}
	return detections, rows.Err()
}
