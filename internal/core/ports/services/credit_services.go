package services

import (
	"context"

	"github.com/SscSPs/fuelstation_backend/internal/core/domain"
	"github.com/SscSPs/fuelstation_backend/internal/dto"
)

// CreditReaderSvc defines read operations for credit data
type CreditReaderSvc interface {
	// GetCredit retrieves a credit by id with its status derived for display.
	GetCredit(ctx context.Context, creditID int64) (*domain.Credit, error)

	// ListCredits retrieves credits ordered by due date ascending.
	ListCredits(ctx context.Context, filter domain.CreditFilter) ([]domain.Credit, error)

	// ListOverdueCredits retrieves every unpaid credit past its due date.
	ListOverdueCredits(ctx context.Context) ([]domain.Credit, error)

	// GetDashboardCounts partitions all credits into paid, overdue and pending.
	GetDashboardCounts(ctx context.Context) (*domain.DashboardCounts, error)
}

// CreditWriterSvc defines write operations for credit data
type CreditWriterSvc interface {
	// CreateCredit opens a new pending credit.
	CreateCredit(ctx context.Context, req dto.CreateCreditRequest) (*domain.Credit, error)

	// UpdateCredit changes the administrative fields of a credit under its row lock.
	UpdateCredit(ctx context.Context, creditID int64, req dto.UpdateCreditRequest) (*domain.Credit, error)

	// DeleteCredit removes a credit.
	DeleteCredit(ctx context.Context, creditID int64) error

	// RefreshOverdueStatuses persists derived statuses that drifted from the stored value.
	RefreshOverdueStatuses(ctx context.Context) (int64, error)
}

// CreditSvcFacade combines all credit-related service interfaces
type CreditSvcFacade interface {
	CreditReaderSvc
	CreditWriterSvc
}

// OverdueRefresher is the slice of the credit service used by background jobs.
type OverdueRefresher interface {
	RefreshOverdueStatuses(ctx context.Context) (int64, error)
}
