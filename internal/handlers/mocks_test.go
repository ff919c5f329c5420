package handlers_test

import (
	"context"

	"github.com/SscSPs/fuelstation_backend/internal/apperrors"
	"github.com/SscSPs/fuelstation_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/fuelstation_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fuelstation_backend/internal/core/ports/services"
	"github.com/SscSPs/fuelstation_backend/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock CreditService ---
type MockCreditService struct {
	mock.Mock
}

func (m *MockCreditService) GetCredit(ctx context.Context, creditID int64) (*domain.Credit, error) {
	args := m.Called(ctx, creditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credit), args.Error(1)
}

func (m *MockCreditService) ListCredits(ctx context.Context, filter domain.CreditFilter) ([]domain.Credit, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Credit), args.Error(1)
}

func (m *MockCreditService) ListOverdueCredits(ctx context.Context) ([]domain.Credit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Credit), args.Error(1)
}

func (m *MockCreditService) GetDashboardCounts(ctx context.Context) (*domain.DashboardCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardCounts), args.Error(1)
}

func (m *MockCreditService) CreateCredit(ctx context.Context, req dto.CreateCreditRequest) (*domain.Credit, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credit), args.Error(1)
}

func (m *MockCreditService) UpdateCredit(ctx context.Context, creditID int64, req dto.UpdateCreditRequest) (*domain.Credit, error) {
	args := m.Called(ctx, creditID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credit), args.Error(1)
}

func (m *MockCreditService) DeleteCredit(ctx context.Context, creditID int64) error {
	return m.Called(ctx, creditID).Error(0)
}

func (m *MockCreditService) RefreshOverdueStatuses(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.CreditSvcFacade = (*MockCreditService)(nil)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) ListPayments(ctx context.Context, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListPaymentsResponse), args.Error(1)
}

func (m *MockPaymentService) PayCredit(ctx context.Context, creditID int64, req dto.PayCreditRequest) (*domain.Credit, error) {
	args := m.Called(ctx, creditID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credit), args.Error(1)
}

func (m *MockPaymentService) PayCreditsBulk(ctx context.Context, req dto.BulkPayRequest) (*domain.BulkPaymentResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BulkPaymentResult), args.Error(1)
}

func (m *MockPaymentService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest) (*domain.Payment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

// --- In-memory IdempotencyRepository ---
type memoryIdempotencyRepo struct {
	records map[string]portsrepo.IdempotencyRecord
}

func newMemoryIdempotencyRepo() *memoryIdempotencyRepo {
	return &memoryIdempotencyRepo{records: map[string]portsrepo.IdempotencyRecord{}}
}

func (r *memoryIdempotencyRepo) FindIdempotencyRecord(_ context.Context, key, userID string) (*portsrepo.IdempotencyRecord, error) {
	rec, ok := r.records[userID+"|"+key]
	if !ok {
		return nil, apperrors.NewNotFoundError("idempotency key not found")
	}
	return &rec, nil
}

func (r *memoryIdempotencyRepo) SaveIdempotencyRecord(_ context.Context, rec portsrepo.IdempotencyRecord) error {
	k := rec.UserID + "|" + rec.Key
	if _, exists := r.records[k]; !exists {
		r.records[k] = rec
	}
	return nil
}
