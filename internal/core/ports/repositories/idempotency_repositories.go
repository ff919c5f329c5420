package repositories

import (
	"context"
	"time"
)

// IdempotencyRecord is a stored response for a replayable request.
type IdempotencyRecord struct {
	Key            string
	UserID         string
	RequestPath    string
	RequestHash    string // hex SHA-256 of the request body
	ResponseStatus int
	ResponseBody   []byte
	CreatedAt      time.Time
}

// IdempotencyRepository persists the first response seen for a (key, user) pair.
type IdempotencyRepository interface {
	// FindIdempotencyRecord returns apperrors.ErrNotFound when nothing is stored.
	FindIdempotencyRecord(ctx context.Context, key, userID string) (*IdempotencyRecord, error)

	// SaveIdempotencyRecord stores rec; an existing record for the pair is kept.
	SaveIdempotencyRecord(ctx context.Context, rec IdempotencyRecord) error
}
