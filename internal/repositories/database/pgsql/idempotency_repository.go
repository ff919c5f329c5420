package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/fuelstation_backend/internal/apperrors"
	portsrepo "github.com/SscSPs/fuelstation_backend/internal/core/ports/repositories"
	"github.com/SscSPs/fuelstation_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxIdempotencyRepository struct {
	BaseRepository
}

func newPgxIdempotencyRepository(pool *pgxpool.Pool) portsrepo.IdempotencyRepository {
	return &PgxIdempotencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.IdempotencyRepository = (*PgxIdempotencyRepository)(nil)

func (r *PgxIdempotencyRepository) FindIdempotencyRecord(ctx context.Context, key, userID string) (*portsrepo.IdempotencyRecord, error) {
	query := `
		SELECT key_id, user_id, request_path, request_hash, response_status, response_body, created_at
		FROM idempotency_keys
		WHERE key_id = $1 AND user_id = $2;`

	rows, err := r.Pool.Query(ctx, query, key, userID)
	if err != nil {
		return nil, classifyPgError("failed to fetch idempotency key", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.IdempotencyKey])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("idempotency key not found")
		}
		return nil, classifyPgError("failed to fetch idempotency key", err)
	}
	return &portsrepo.IdempotencyRecord{
		Key:            m.KeyID,
		UserID:         m.UserID,
		RequestPath:    m.RequestPath,
		RequestHash:    m.RequestHash,
		ResponseStatus: m.ResponseStatus,
		ResponseBody:   m.ResponseBody,
		CreatedAt:      m.CreatedAt,
	}, nil
}

// SaveIdempotencyRecord keeps the first stored response when two requests race.
func (r *PgxIdempotencyRepository) SaveIdempotencyRecord(ctx context.Context, rec portsrepo.IdempotencyRecord) error {
	query := `
		INSERT INTO idempotency_keys (key_id, user_id, request_path, request_hash, response_status, response_body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7::timestamptz, now()))
		ON CONFLICT (key_id, user_id) DO NOTHING;`

	var createdAt any
	if !rec.CreatedAt.IsZero() {
		createdAt = rec.CreatedAt
	}
	if _, err := r.Pool.Exec(ctx, query, rec.Key, rec.UserID, rec.RequestPath, rec.RequestHash, rec.ResponseStatus, rec.ResponseBody, createdAt); err != nil {
		return classifyPgError("failed to store idempotency key", err)
	}
	return nil
}
