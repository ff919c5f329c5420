// Package jobs runs the ledger's background work on River.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/fuelstation_backend/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
)

// OverdueSweepArgs has no payload; every run sweeps the whole table.
type OverdueSweepArgs struct{}

func (OverdueSweepArgs) Kind() string { return "credit_overdue_sweep" }

// InsertOpts keeps at most one pending sweep in the queue.
func (OverdueSweepArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		MaxAttempts: 3,
		UniqueOpts:  river.UniqueOpts{ByPeriod: time.Minute},
	}
}

// OverdueSweepWorker persists the derived status of credits whose due date passed.
type OverdueSweepWorker struct {
	river.WorkerDefaults[OverdueSweepArgs]
	refresher portssvc.OverdueRefresher
	logger    *slog.Logger
}

func NewOverdueSweepWorker(refresher portssvc.OverdueRefresher, logger *slog.Logger) *OverdueSweepWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &OverdueSweepWorker{refresher: refresher, logger: logger}
}

func (w *OverdueSweepWorker) Work(ctx context.Context, job *river.Job[OverdueSweepArgs]) error {
	rows, err := w.refresher.RefreshOverdueStatuses(ctx)
	if err != nil {
		return fmt.Errorf("overdue sweep attempt %d: %w", job.Attempt, err)
	}
	w.logger.Info("Overdue sweep finished", slog.Int64("job_id", job.ID), slog.Int64("rows_updated", rows))
	return nil
}

func (w *OverdueSweepWorker) Timeout(*river.Job[OverdueSweepArgs]) time.Duration {
	return 2 * time.Minute
}

// Migrate applies River's own schema.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("failed to create river migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, nil); err != nil {
		return fmt.Errorf("river migrate up failed: %w", err)
	}
	return nil
}

// NewClient builds a River client that runs the overdue sweep every interval
// and once at start-up.
func NewClient(pool *pgxpool.Pool, refresher portssvc.OverdueRefresher, interval time.Duration, logger *slog.Logger) (*river.Client[pgx.Tx], error) {
	workers := river.NewWorkers()
	if err := river.AddWorkerSafely(workers, NewOverdueSweepWorker(refresher, logger)); err != nil {
		return nil, fmt.Errorf("failed to register overdue sweep worker: %w", err)
	}

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Logger: logger,
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 2},
		},
		Workers: workers,
		PeriodicJobs: []*river.PeriodicJob{
			river.NewPeriodicJob(
				river.PeriodicInterval(interval),
				func() (river.JobArgs, *river.InsertOpts) {
					return OverdueSweepArgs{}, nil
				},
				&river.PeriodicJobOpts{RunOnStart: true},
			),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create river client: %w", err)
	}
	return client, nil
}
