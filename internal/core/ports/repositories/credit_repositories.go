package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/fuelstation_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CreditReader defines read operations for credit data
type CreditReader interface {
	// FindCreditByID retrieves a credit without locking it.
	FindCreditByID(ctx context.Context, creditID int64) (*domain.Credit, error)

	// ListCredits returns credits matching filter ordered by due date, then id.
	// today is the calendar day the overdue rule is evaluated against.
	ListCredits(ctx context.Context, filter domain.CreditFilter, today time.Time) ([]domain.Credit, error)

	// CountCreditsByStatus partitions all credits by derived status.
	CountCreditsByStatus(ctx context.Context, today time.Time) (domain.DashboardCounts, error)
}

// CreditWriter defines write operations for credit data
type CreditWriter interface {
	// SaveCredit inserts a new credit and returns it with its generated id.
	SaveCredit(ctx context.Context, credit domain.Credit) (*domain.Credit, error)

	// DeleteCredit removes a credit. Payments keep their rows with credit_id cleared.
	DeleteCredit(ctx context.Context, creditID int64) error

	// RefreshStoredStatuses persists the derived status on rows whose stored value drifted.
	RefreshStoredStatuses(ctx context.Context, today time.Time) (int64, error)
}

// CreditTxOperations are the lock-holding operations used by the payment paths.
type CreditTxOperations interface {
	// FindCreditForUpdate reads a credit with SELECT ... FOR UPDATE inside tx.
	FindCreditForUpdate(ctx context.Context, tx pgx.Tx, creditID int64) (*domain.Credit, error)

	// UpdateCreditInTx persists every mutable column of credit inside tx.
	UpdateCreditInTx(ctx context.Context, tx pgx.Tx, credit domain.Credit) (*domain.Credit, error)
}

// CreditRepositoryFacade combines all credit-related repository interfaces
type CreditRepositoryFacade interface {
	CreditReader
	CreditWriter
	CreditTxOperations
}

// CreditRepositoryWithTx extends CreditRepositoryFacade with transaction capabilities
type CreditRepositoryWithTx interface {
	CreditRepositoryFacade
	TransactionManager
}
