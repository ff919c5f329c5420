package repositories

import (
	"context"

	"github.com/SscSPs/fuelstation_backend/internal/core/domain"
)

// DashboardCache stores the last computed dashboard counts.
// A miss is reported as (nil, nil).
//
// Every InvalidateDashboard bumps a generation. Readers take the generation
// before computing counts and pass it to SetDashboardCounts, which skips the
// write when an invalidation landed in between, so stale counts never
// overwrite a fresh invalidation.
type DashboardCache interface {
	GetDashboardCounts(ctx context.Context) (*domain.DashboardCounts, error)
	DashboardGeneration(ctx context.Context) (int64, error)
	// SetDashboardCounts reports whether counts were stored.
	SetDashboardCounts(ctx context.Context, counts domain.DashboardCounts, generation int64) (bool, error)
	InvalidateDashboard(ctx context.Context) error
}
