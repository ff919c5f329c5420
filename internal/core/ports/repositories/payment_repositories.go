package repositories

import (
	"context"

	"github.com/SscSPs/fuelstation_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// ListPayments retrieves payments newest first using token-based pagination.
	// It returns the payments, a token for the next page, and an error.
	ListPayments(ctx context.Context, filter domain.PaymentFilter, limit int, nextToken *string) ([]domain.Payment, *string, error)
}

// PaymentWriter defines write operations for payment data.
// Payments are append-only; there is no update or delete.
type PaymentWriter interface {
	// SavePaymentInTx inserts a payment inside tx and returns the stored row.
	SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) (*domain.Payment, error)
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}

// PaymentRepositoryWithTx extends PaymentRepositoryFacade with transaction capabilities
type PaymentRepositoryWithTx interface {
	PaymentRepositoryFacade
	TransactionManager
}
