package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/fuelstation_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/fuelstation_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// fakeTx stands in for a pgx.Tx; the repositories are mocked so it is never used.
type fakeTx struct {
	pgx.Tx
	id int
}

// --- Mock CreditRepository ---
type MockCreditRepository struct {
	mock.Mock
}

func (m *MockCreditRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockCreditRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockCreditRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockCreditRepository) SaveCredit(ctx context.Context, credit domain.Credit) (*domain.Credit, error) {
	args := m.Called(ctx, credit)
	if fn, ok := args.Get(0).(func(domain.Credit) *domain.Credit); ok {
		return fn(credit), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credit), args.Error(1)
}

func (m *MockCreditRepository) FindCreditByID(ctx context.Context, creditID int64) (*domain.Credit, error) {
	args := m.Called(ctx, creditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credit), args.Error(1)
}

func (m *MockCreditRepository) ListCredits(ctx context.Context, filter domain.CreditFilter, today time.Time) ([]domain.Credit, error) {
	args := m.Called(ctx, filter, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Credit), args.Error(1)
}

func (m *MockCreditRepository) CountCreditsByStatus(ctx context.Context, today time.Time) (domain.DashboardCounts, error) {
	args := m.Called(ctx, today)
	return args.Get(0).(domain.DashboardCounts), args.Error(1)
}

func (m *MockCreditRepository) DeleteCredit(ctx context.Context, creditID int64) error {
	return m.Called(ctx, creditID).Error(0)
}

func (m *MockCreditRepository) RefreshStoredStatuses(ctx context.Context, today time.Time) (int64, error) {
	args := m.Called(ctx, today)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCreditRepository) FindCreditForUpdate(ctx context.Context, tx pgx.Tx, creditID int64) (*domain.Credit, error) {
	args := m.Called(ctx, tx, creditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// hand out a copy so each call sees the row as stored
	c := *args.Get(0).(*domain.Credit)
	return &c, args.Error(1)
}

func (m *MockCreditRepository) UpdateCreditInTx(ctx context.Context, tx pgx.Tx, credit domain.Credit) (*domain.Credit, error) {
	args := m.Called(ctx, tx, credit)
	if fn, ok := args.Get(0).(func(domain.Credit) *domain.Credit); ok {
		return fn(credit), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credit), args.Error(1)
}

var _ portsrepo.CreditRepositoryWithTx = (*MockCreditRepository)(nil)

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
	nextID int64
}

func (m *MockPaymentRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) (*domain.Payment, error) {
	args := m.Called(ctx, tx, payment)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	m.nextID++
	payment.PaymentID = m.nextID
	return &payment, nil
}

func (m *MockPaymentRepository) ListPayments(ctx context.Context, filter domain.PaymentFilter, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var token *string
	if t := args.Get(1); t != nil {
		token = t.(*string)
	}
	if args.Get(0) == nil {
		return nil, token, args.Error(2)
	}
	return args.Get(0).([]domain.Payment), token, args.Error(2)
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

// --- Mock DashboardCache ---
type MockDashboardCache struct {
	mock.Mock
}

func (m *MockDashboardCache) GetDashboardCounts(ctx context.Context) (*domain.DashboardCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardCounts), args.Error(1)
}

func (m *MockDashboardCache) DashboardGeneration(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardCache) SetDashboardCounts(ctx context.Context, counts domain.DashboardCounts, generation int64) (bool, error) {
	args := m.Called(ctx, counts, generation)
	return args.Bool(0), args.Error(1)
}

func (m *MockDashboardCache) InvalidateDashboard(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var _ portsrepo.DashboardCache = (*MockDashboardCache)(nil)

// --- Mock LedgerMetrics ---
type MockLedgerMetrics struct {
	mock.Mock
}

func (m *MockLedgerMetrics) PaymentApplied(paymentType domain.PaymentType, amount decimal.Decimal) {
	m.Called(paymentType, amount.StringFixed(2))
}

func (m *MockLedgerMetrics) PaymentRejected(operation, reason string) {
	m.Called(operation, reason)
}

func (m *MockLedgerMetrics) BulkBatchCommitted(items int) {
	m.Called(items)
}

func (m *MockLedgerMetrics) StatusesRefreshed(rows int64) {
	m.Called(rows)
}

func echoCredit(c domain.Credit) *domain.Credit {
	return &c
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func int64Ptr(v int64) *int64 {
	return &v
}

func strPtr(s string) *string {
	return &s
}
