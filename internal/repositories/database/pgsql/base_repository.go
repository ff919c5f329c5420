package pgsql

import (
	"context"
	"errors"
	"net/http"

	"github.com/SscSPs/fuelstation_backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres SQLSTATE codes the ledger reacts to.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"
	pgNumericOutOfRange    = "22003"
	pgLockNotAvailable     = "55P03"
	pgDeadlockDetected     = "40P01"
	pgSerializationFailure = "40001"
	pgQueryCanceled        = "57014"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, classifyPgError("failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return classifyPgError("failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return classifyPgError("failed to rollback transaction", err)
	}
	return nil
}

// classifyPgError maps a driver error onto the apperrors taxonomy.
// Lock timeouts, deadlocks and lost connections are storage errors the caller
// may retry as a whole; constraint violations are client-visible.
func classifyPgError(message string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgLockNotAvailable, pgDeadlockDetected, pgSerializationFailure, pgQueryCanceled:
			return apperrors.NewStorageError(message, err)
		case pgUniqueViolation, pgCheckViolation:
			return apperrors.NewAppError(http.StatusConflict, message, err)
		case pgForeignKeyViolation, pgNumericOutOfRange:
			return apperrors.NewAppError(http.StatusBadRequest, message, err)
		}
		return apperrors.NewAppError(http.StatusInternalServerError, message, err)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return apperrors.NewStorageError(message, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewStorageError(message, err)
	}
	return apperrors.NewAppError(http.StatusInternalServerError, message, err)
}
