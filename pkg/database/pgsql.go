package database

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolOptions are the session limits applied to every pooled connection.
type PoolOptions struct {
	MaxConns         int32
	LockTimeout      time.Duration
	StatementTimeout time.Duration
	// Ping verifies connectivity before returning the pool.
	Ping bool
}

// NewPgxPool creates a new PostgreSQL connection pool.
// lock_timeout bounds how long a payment waits on a credit row lock.
func NewPgxPool(ctx context.Context, databaseURL string, opts PoolOptions) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}

	if opts.MaxConns > 0 {
		config.MaxConns = opts.MaxConns
	}
	if opts.LockTimeout > 0 {
		config.ConnConfig.RuntimeParams["lock_timeout"] = millis(opts.LockTimeout)
	}
	if opts.StatementTimeout > 0 {
		config.ConnConfig.RuntimeParams["statement_timeout"] = millis(opts.StatementTimeout)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if opts.Ping {
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
	}

	slog.Info("Successfully connected to PostgreSQL database.",
		slog.Int("max_conns", int(config.MaxConns)),
		slog.Duration("lock_timeout", opts.LockTimeout),
	)
	return pool, nil
}

func millis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10)
}
