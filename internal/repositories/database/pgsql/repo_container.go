package pgsql

import (
	portsrepo "github.com/SscSPs/fuelstation_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	creditRepo := newPgxCreditRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)
	idempotencyRepo := newPgxIdempotencyRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CreditRepo:      creditRepo,
		PaymentRepo:     paymentRepo,
		IdempotencyRepo: idempotencyRepo,
	}
}
