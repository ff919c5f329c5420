package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/fuelstation_backend/internal/apperrors"
	"github.com/SscSPs/fuelstation_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/fuelstation_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fuelstation_backend/internal/core/ports/services"
	"github.com/SscSPs/fuelstation_backend/internal/dto"
	"github.com/SscSPs/fuelstation_backend/internal/utils/money"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	defaultPaymentPageSize = 20
	maxPaymentPageSize     = 100
)

// paymentService implements the PaymentSvcFacade interface.
// It is the only writer of amount_paid and status on credits.
type paymentService struct {
	BaseService
	creditRepo  portsrepo.CreditRepositoryWithTx
	paymentRepo portsrepo.PaymentRepositoryFacade
	cache       portsrepo.DashboardCache
	metrics     portssvc.LedgerMetrics
}

// PaymentServiceOption is a functional option for configuring the payment service
type PaymentServiceOption func(*paymentService)

// WithPaymentDashboardCache invalidates cached dashboard counts after payments.
func WithPaymentDashboardCache(cache portsrepo.DashboardCache) PaymentServiceOption {
	return func(s *paymentService) {
		s.cache = cache
	}
}

// WithPaymentMetrics reports applied and rejected payments.
func WithPaymentMetrics(m portssvc.LedgerMetrics) PaymentServiceOption {
	return func(s *paymentService) {
		s.metrics = m
	}
}

// WithPaymentClock overrides time.Now, used by tests.
func WithPaymentClock(clock func() time.Time) PaymentServiceOption {
	return func(s *paymentService) {
		s.clock = clock
	}
}

// NewPaymentService creates a new payment service. Transactions are opened
// through creditRepo; both repositories must share the same pool.
func NewPaymentService(creditRepo portsrepo.CreditRepositoryWithTx, paymentRepo portsrepo.PaymentRepositoryFacade, options ...PaymentServiceOption) portssvc.PaymentSvcFacade {
	svc := &paymentService{
		creditRepo:  creditRepo,
		paymentRepo: paymentRepo,
		metrics:     noopMetrics{},
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// paymentMeta is what every payment row of one request shares.
type paymentMeta struct {
	PaymentMethodID *int64
	UserID          *int64
	Notes           *string
}

// recordInTx writes one completed payment inside the caller's transaction.
func (s *paymentService) recordInTx(ctx context.Context, tx pgx.Tx, in domain.PaymentInput) (*domain.Payment, error) {
	amount := money.Round2(in.Amount)
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	if !in.PaymentType.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment_type %q", apperrors.ErrValidation, in.PaymentType)
	}

	payment := domain.Payment{
		Amount:           amount,
		PaymentMethodID:  in.PaymentMethodID,
		CreditID:         in.CreditID,
		SaleID:           in.SaleID,
		PaymentType:      in.PaymentType,
		Status:           domain.PaymentStatusCompleted,
		UserID:           in.UserID,
		Notes:            in.Notes,
		PaymentTimestamp: s.Now(),
	}
	saved, err := s.paymentRepo.SavePaymentInTx(ctx, tx, payment)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	return saved, nil
}

// applyToCreditInTx locks the credit, checks the balance, records the payment
// and persists the new running total and status.
func (s *paymentService) applyToCreditInTx(ctx context.Context, tx pgx.Tx, item domain.BulkPaymentItem, meta paymentMeta) (*domain.Credit, *domain.Payment, error) {
	credit, err := s.creditRepo.FindCreditForUpdate(ctx, tx, item.CreditID)
	if err != nil {
		return nil, nil, err
	}
	credit.Normalize()

	amount := money.Round2(item.Amount)
	balance := credit.Balance()
	if amount.GreaterThan(balance) {
		return nil, nil, apperrors.NewExceedsBalanceError(credit.CreditID, balance, amount)
	}

	creditID := credit.CreditID
	payment, err := s.recordInTx(ctx, tx, domain.PaymentInput{
		Amount:          amount,
		PaymentMethodID: meta.PaymentMethodID,
		CreditID:        &creditID,
		PaymentType:     domain.PaymentTypeCredit,
		UserID:          meta.UserID,
		Notes:           meta.Notes,
	})
	if err != nil {
		return nil, nil, err
	}

	now := s.Now()
	credit.ApplyPayment(amount, now)
	credit.UpdatedAt = now

	updated, err := s.creditRepo.UpdateCreditInTx(ctx, tx, *credit)
	if err != nil {
		return nil, nil, err
	}
	return updated.Normalize(), payment, nil
}

func (s *paymentService) PayCredit(ctx context.Context, creditID int64, req dto.PayCreditRequest) (*domain.Credit, error) {
	logger := s.GetLogger(ctx).With(slog.Int64("credit_id", creditID))

	amount := money.Round2(req.Amount.Decimal)
	if !amount.IsPositive() {
		s.metrics.PaymentRejected("pay_credit", rejectionReason(apperrors.ErrInvalidAmount))
		return nil, apperrors.ErrInvalidAmount
	}

	meta := paymentMeta{
		PaymentMethodID: req.PaymentMethodID,
		UserID:          req.UserID,
		Notes:           firstNonEmpty(req.Notes, req.Reference),
	}

	var updated *domain.Credit
	var payment *domain.Payment
	err := s.withTx(ctx, s.creditRepo, func(tx pgx.Tx) error {
		var err error
		updated, payment, err = s.applyToCreditInTx(ctx, tx, domain.BulkPaymentItem{CreditID: creditID, Amount: amount}, meta)
		return err
	})
	if err != nil {
		s.metrics.PaymentRejected("pay_credit", rejectionReason(err))
		s.logWriteFailure(ctx, err, "Credit payment failed", slog.Int64("credit_id", creditID), slog.String("amount", amount.StringFixed(2)))
		return nil, err
	}

	s.invalidateDashboard(ctx, s.cache)
	s.metrics.PaymentApplied(domain.PaymentTypeCredit, payment.Amount)
	logger.Info("Credit payment applied",
		slog.Int64("payment_id", payment.PaymentID),
		slog.String("amount", payment.Amount.StringFixed(2)),
		slog.String("status", string(updated.Status)))
	return updated, nil
}

func (s *paymentService) PayCreditsBulk(ctx context.Context, req dto.BulkPayRequest) (*domain.BulkPaymentResult, error) {
	items, err := mergeBulkItems(req.Items)
	if err != nil {
		s.metrics.PaymentRejected("pay_bulk", rejectionReason(err))
		return nil, err
	}

	meta := paymentMeta{
		PaymentMethodID: req.PaymentMethodID,
		UserID:          req.UserID,
		Notes:           firstNonEmpty(req.Notes),
	}

	result := &domain.BulkPaymentResult{
		Updated:     make([]domain.Credit, 0, len(items)),
		Payments:    make([]domain.Payment, 0, len(items)),
		TotalAmount: decimal.Zero,
	}
	err = s.withTx(ctx, s.creditRepo, func(tx pgx.Tx) error {
		for _, item := range items {
			credit, payment, err := s.applyToCreditInTx(ctx, tx, item, meta)
			if err != nil {
				return err
			}
			result.Updated = append(result.Updated, *credit)
			result.Payments = append(result.Payments, *payment)
			result.TotalAmount = result.TotalAmount.Add(payment.Amount)
		}
		return nil
	})
	if err != nil {
		s.metrics.PaymentRejected("pay_bulk", rejectionReason(err))
		s.logWriteFailure(ctx, err, "Bulk payment rolled back", slog.Int("items", len(items)))
		return nil, err
	}

	result.Count = len(result.Payments)
	result.TotalAmount = money.Round2(result.TotalAmount)

	s.invalidateDashboard(ctx, s.cache)
	for _, p := range result.Payments {
		s.metrics.PaymentApplied(domain.PaymentTypeCredit, p.Amount)
	}
	s.metrics.BulkBatchCommitted(result.Count)
	s.LogInfo(ctx, "Bulk payment applied",
		slog.Int("count", result.Count),
		slog.String("total_amount", result.TotalAmount.StringFixed(2)))
	return result, nil
}

func (s *paymentService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest) (*domain.Payment, error) {
	switch req.PaymentType {
	case domain.PaymentTypeCredit:
		return nil, fmt.Errorf("%w: credit payments must be applied through a credit", apperrors.ErrValidation)
	case domain.PaymentTypeSale:
		if req.SaleID == nil {
			return nil, fmt.Errorf("%w: sale_id is required for sale payments", apperrors.ErrValidation)
		}
	case domain.PaymentTypeStandalone:
	default:
		return nil, fmt.Errorf("%w: unknown payment_type %q", apperrors.ErrValidation, req.PaymentType)
	}

	amount := money.Round2(req.Amount.Decimal)
	if !amount.IsPositive() {
		s.metrics.PaymentRejected("record_payment", rejectionReason(apperrors.ErrInvalidAmount))
		return nil, apperrors.ErrInvalidAmount
	}

	var payment *domain.Payment
	err := s.withTx(ctx, s.creditRepo, func(tx pgx.Tx) error {
		var err error
		payment, err = s.recordInTx(ctx, tx, domain.PaymentInput{
			Amount:          amount,
			PaymentMethodID: req.PaymentMethodID,
			SaleID:          req.SaleID,
			PaymentType:     req.PaymentType,
			UserID:          req.UserID,
			Notes:           firstNonEmpty(req.Notes),
		})
		return err
	})
	if err != nil {
		s.metrics.PaymentRejected("record_payment", rejectionReason(err))
		s.logWriteFailure(ctx, err, "Failed to record payment", slog.String("payment_type", string(req.PaymentType)))
		return nil, err
	}

	s.metrics.PaymentApplied(payment.PaymentType, payment.Amount)
	s.LogInfo(ctx, "Payment recorded",
		slog.Int64("payment_id", payment.PaymentID),
		slog.String("payment_type", string(payment.PaymentType)))
	return payment, nil
}

func (s *paymentService) ListPayments(ctx context.Context, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultPaymentPageSize
	}
	if limit > maxPaymentPageSize {
		limit = maxPaymentPageSize
	}

	filter := domain.PaymentFilter{CreditID: params.CreditID, SaleID: params.SaleID}
	payments, nextToken, err := s.paymentRepo.ListPayments(ctx, filter, limit, params.NextToken)
	if err != nil {
		s.logWriteFailure(ctx, err, "Failed to list payments")
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return &dto.ListPaymentsResponse{
		Payments:  dto.ToListPaymentResponse(payments),
		NextToken: nextToken,
	}, nil
}

// mergeBulkItems sums amounts per credit, drops non-positive totals and
// returns the rest in ascending credit id order, which is the lock order.
func mergeBulkItems(items []dto.BulkPayItem) ([]domain.BulkPaymentItem, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: items must not be empty", apperrors.ErrValidation)
	}

	totals := make(map[int64]decimal.Decimal, len(items))
	for _, it := range items {
		if it.CreditID <= 0 {
			return nil, fmt.Errorf("%w: credit_id must be a positive integer", apperrors.ErrValidation)
		}
		totals[it.CreditID] = totals[it.CreditID].Add(it.Amount.Decimal)
	}

	merged := make([]domain.BulkPaymentItem, 0, len(totals))
	for id, total := range totals {
		amount := money.Round2(total)
		if !amount.IsPositive() {
			continue
		}
		merged = append(merged, domain.BulkPaymentItem{CreditID: id, Amount: amount})
	}
	if len(merged) == 0 {
		return nil, fmt.Errorf("%w: no items with a positive amount", apperrors.ErrValidation)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CreditID < merged[j].CreditID
	})
	return merged, nil
}

func firstNonEmpty(values ...*string) *string {
	for _, v := range values {
		if v != nil && strings.TrimSpace(*v) != "" {
			trimmed := strings.TrimSpace(*v)
			return &trimmed
		}
	}
	return nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, apperrors.ErrValidation):
		return "validation"
	case errors.Is(err, apperrors.ErrExceedsBalance):
		return "exceeds_balance"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrStorage):
		return "storage"
	default:
		return "internal"
	}
}
