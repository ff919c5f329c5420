package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/fuelstation_backend/internal/apperrors"
	"github.com/SscSPs/fuelstation_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/fuelstation_backend/internal/core/ports/repositories"
	"github.com/SscSPs/fuelstation_backend/internal/middleware"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// BaseService provides common functionality for all services
type BaseService struct {
	clock func() time.Time
}

// Now returns the service clock's current time, UTC.
func (s *BaseService) Now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a client-side failure
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// withTx runs fn inside a transaction. Any error from fn, or a panic, rolls
// the transaction back before returning; the error from fn is returned as is.
func (s *BaseService) withTx(ctx context.Context, tm portsrepo.TransactionManager, fn func(tx pgx.Tx) error) (err error) {
	tx, err := tm.Begin(ctx)
	if err != nil {
		return err
	}

	rollback := func() {
		// a cancelled request must still release the row locks
		if rbErr := tm.Rollback(context.WithoutCancel(ctx), tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back transaction")
		}
	}

	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		rollback()
		return err
	}

	return tm.Commit(ctx, tx)
}

// invalidateDashboard drops cached counts. Cache failures never fail a write.
func (s *BaseService) invalidateDashboard(ctx context.Context, cache portsrepo.DashboardCache) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateDashboard(ctx); err != nil {
		s.LogError(ctx, err, "Failed to invalidate dashboard cache")
	}
}

// logWriteFailure logs client errors at warn and everything else at error.
func (s *BaseService) logWriteFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if isClientError(err) {
		s.LogWarn(ctx, err, msg, keyvals...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

func isClientError(err error) bool {
	return errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrExceedsBalance) ||
		errors.Is(err, apperrors.ErrConflict)
}

type noopMetrics struct{}

func (noopMetrics) PaymentApplied(domain.PaymentType, decimal.Decimal) {}
func (noopMetrics) PaymentRejected(string, string)                     {}
func (noopMetrics) BulkBatchCommitted(int)                             {}
func (noopMetrics) StatusesRefreshed(int64)                            {}
