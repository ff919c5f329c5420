package services

import (
	"context"

	"github.com/SscSPs/fuelstation_backend/internal/core/domain"
	"github.com/SscSPs/fuelstation_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// PaymentReaderSvc defines read operations for payment data
type PaymentReaderSvc interface {
	// ListPayments retrieves payment history newest first with token-based pagination.
	ListPayments(ctx context.Context, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error)
}

// PaymentWriterSvc defines the payment-applying operations
type PaymentWriterSvc interface {
	// PayCredit applies one payment to one credit atomically.
	PayCredit(ctx context.Context, creditID int64, req dto.PayCreditRequest) (*domain.Credit, error)

	// PayCreditsBulk applies payments to several credits in one all-or-nothing transaction.
	PayCreditsBulk(ctx context.Context, req dto.BulkPayRequest) (*domain.BulkPaymentResult, error)

	// RecordPayment records a sale or standalone payment that is not applied to a credit.
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest) (*domain.Payment, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}

// LedgerMetrics receives ledger events for instrumentation.
type LedgerMetrics interface {
	// PaymentApplied is called once per committed payment row.
	PaymentApplied(paymentType domain.PaymentType, amount decimal.Decimal)
	// PaymentRejected is called when a payment operation fails; reason is a short label.
	PaymentRejected(operation, reason string)
	// BulkBatchCommitted is called once per committed bulk payment.
	BulkBatchCommitted(items int)
	// StatusesRefreshed is called after an overdue sweep.
	StatusesRefreshed(rows int64)
}
