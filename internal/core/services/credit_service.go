package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
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

// creditService implements the CreditSvcFacade interface
type creditService struct {
	BaseService
	creditRepo portsrepo.CreditRepositoryWithTx
	cache      portsrepo.DashboardCache
	metrics    portssvc.LedgerMetrics
}

// CreditServiceOption is a functional option for configuring the credit service
type CreditServiceOption func(*creditService)

// WithCreditDashboardCache caches dashboard counts. Counts computed across an
// invalidation are returned but not cached.
func WithCreditDashboardCache(cache portsrepo.DashboardCache) CreditServiceOption {
	return func(s *creditService) {
		s.cache = cache
	}
}

// WithCreditMetrics reports sweep results.
func WithCreditMetrics(m portssvc.LedgerMetrics) CreditServiceOption {
	return func(s *creditService) {
		s.metrics = m
	}
}

// WithCreditClock overrides time.Now, used by tests.
func WithCreditClock(clock func() time.Time) CreditServiceOption {
	return func(s *creditService) {
		s.clock = clock
	}
}

// NewCreditService creates a new credit service with the provided options
func NewCreditService(repo portsrepo.CreditRepositoryWithTx, options ...CreditServiceOption) portssvc.CreditSvcFacade {
	svc := &creditService{
		creditRepo: repo,
		metrics:    noopMetrics{},
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

func (s *creditService) CreateCredit(ctx context.Context, req dto.CreateCreditRequest) (*domain.Credit, error) {
	amount := money.Round2(req.CreditAmount.Decimal)
	switch {
	case req.ClientID <= 0:
		return nil, fmt.Errorf("%w: client_id is required", apperrors.ErrValidation)
	case amount.LessThan(domain.MinCreditAmount):
		return nil, fmt.Errorf("%w: credit_amount must be at least %s", apperrors.ErrValidation, domain.MinCreditAmount.StringFixed(2))
	case req.DueDate.IsZero():
		return nil, fmt.Errorf("%w: due_date is required", apperrors.ErrValidation)
	}

	now := s.Now()
	credit := domain.Credit{
		ClientID:     req.ClientID,
		SaleID:       req.SaleID,
		CreditAmount: amount,
		AmountPaid:   decimal.Zero,
		DueDate:      domain.StartOfDay(req.DueDate.Time),
		Status:       domain.CreditStatusPending,
		AuditFields:  domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	saved, err := s.creditRepo.SaveCredit(ctx, credit)
	if err != nil {
		s.LogError(ctx, err, "Failed to save credit", slog.Int64("client_id", req.ClientID))
		return nil, fmt.Errorf("failed to create credit: %w", err)
	}
	s.invalidateDashboard(ctx, s.cache)

	s.LogInfo(ctx, "Credit created", slog.Int64("credit_id", saved.CreditID), slog.String("amount", saved.CreditAmount.StringFixed(2)))
	return saved.Normalize(), nil
}

func (s *creditService) GetCredit(ctx context.Context, creditID int64) (*domain.Credit, error) {
	credit, err := s.creditRepo.FindCreditByID(ctx, creditID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find credit", slog.Int64("credit_id", creditID))
		}
		return nil, err
	}
	return credit.Normalize().RecomputeStatus(s.Now()), nil
}

func (s *creditService) ListCredits(ctx context.Context, filter domain.CreditFilter) ([]domain.Credit, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *filter.Status)
	}

	now := s.Now()
	credits, err := s.creditRepo.ListCredits(ctx, filter, domain.StartOfDay(now))
	if err != nil {
		s.LogError(ctx, err, "Failed to list credits")
		return nil, fmt.Errorf("failed to list credits: %w", err)
	}
	if credits == nil {
		return []domain.Credit{}, nil
	}
	for i := range credits {
		credits[i].Normalize().RecomputeStatus(now)
	}
	return credits, nil
}

func (s *creditService) ListOverdueCredits(ctx context.Context) ([]domain.Credit, error) {
	overdue := true
	now := s.Now()
	credits, err := s.creditRepo.ListCredits(ctx, domain.CreditFilter{Overdue: &overdue}, domain.StartOfDay(now))
	if err != nil {
		s.LogError(ctx, err, "Failed to list overdue credits")
		return nil, fmt.Errorf("failed to list overdue credits: %w", err)
	}
	result := make([]domain.Credit, 0, len(credits))
	for _, c := range credits {
		c.Normalize()
		if c.Balance().IsPositive() && c.IsPastDue(now) {
			c.Status = domain.CreditStatusOverdue
			result = append(result, c)
		}
	}
	return result, nil
}

func (s *creditService) GetDashboardCounts(ctx context.Context) (*domain.DashboardCounts, error) {
	if s.cache != nil {
		cached, err := s.cache.GetDashboardCounts(ctx)
		if err != nil {
			s.LogError(ctx, err, "Dashboard cache read failed, computing from storage")
		} else if cached != nil {
			return cached, nil
		}
	}

	// the generation is read before counting; a write that invalidates after
	// this point makes the Set below a no-op
	var generation int64
	cacheable := s.cache != nil
	if cacheable {
		gen, err := s.cache.DashboardGeneration(ctx)
		if err != nil {
			s.LogError(ctx, err, "Dashboard cache generation read failed, result will not be cached")
			cacheable = false
		}
		generation = gen
	}

	counts, err := s.creditRepo.CountCreditsByStatus(ctx, domain.StartOfDay(s.Now()))
	if err != nil {
		s.LogError(ctx, err, "Failed to count credits by status")
		return nil, fmt.Errorf("failed to compute dashboard counts: %w", err)
	}

	if cacheable {
		stored, err := s.cache.SetDashboardCounts(ctx, counts, generation)
		switch {
		case err != nil:
			s.LogError(ctx, err, "Failed to cache dashboard counts")
		case !stored:
			s.LogDebug(ctx, "Dashboard invalidated while counting, result not cached", slog.Int64("generation", generation))
		}
	}
	return &counts, nil
}

func (s *creditService) UpdateCredit(ctx context.Context, creditID int64, req dto.UpdateCreditRequest) (*domain.Credit, error) {
	changes := domain.CreditChanges{
		ClientID:    req.ClientID,
		SaleID:      req.SaleID,
		ClearSaleID: req.ClearSaleID,
	}
	if req.CreditAmount != nil {
		amount := money.Round2(req.CreditAmount.Decimal)
		if amount.LessThan(domain.MinCreditAmount) {
			return nil, fmt.Errorf("%w: credit_amount must be at least %s", apperrors.ErrValidation, domain.MinCreditAmount.StringFixed(2))
		}
		changes.CreditAmount = &amount
	}
	if req.DueDate != nil {
		if req.DueDate.IsZero() {
			return nil, fmt.Errorf("%w: due_date cannot be cleared", apperrors.ErrValidation)
		}
		due := domain.StartOfDay(req.DueDate.Time)
		changes.DueDate = &due
	}

	var updated *domain.Credit
	err := s.withTx(ctx, s.creditRepo, func(tx pgx.Tx) error {
		credit, err := s.creditRepo.FindCreditForUpdate(ctx, tx, creditID)
		if err != nil {
			return err
		}
		now := s.Now()
		applyCreditChanges(credit, changes)
		credit.Normalize()
		if credit.CreditAmount.LessThan(credit.AmountPaid) {
			return fmt.Errorf("%w: credit_amount %s is below amount_paid %s", apperrors.ErrValidation,
				credit.CreditAmount.StringFixed(2), credit.AmountPaid.StringFixed(2))
		}
		credit.RecomputeStatus(now)
		credit.UpdatedAt = now

		updated, err = s.creditRepo.UpdateCreditInTx(ctx, tx, *credit)
		return err
	})
	if err != nil {
		s.logWriteFailure(ctx, err, "Failed to update credit", slog.Int64("credit_id", creditID))
		return nil, err
	}
	s.invalidateDashboard(ctx, s.cache)

	s.LogInfo(ctx, "Credit updated", slog.Int64("credit_id", creditID))
	return updated.Normalize(), nil
}

func (s *creditService) DeleteCredit(ctx context.Context, creditID int64) error {
	if err := s.creditRepo.DeleteCredit(ctx, creditID); err != nil {
		s.logWriteFailure(ctx, err, "Failed to delete credit", slog.Int64("credit_id", creditID))
		return err
	}
	s.invalidateDashboard(ctx, s.cache)
	s.LogInfo(ctx, "Credit deleted", slog.Int64("credit_id", creditID))
	return nil
}

func (s *creditService) RefreshOverdueStatuses(ctx context.Context) (int64, error) {
	n, err := s.creditRepo.RefreshStoredStatuses(ctx, domain.StartOfDay(s.Now()))
	if err != nil {
		s.LogError(ctx, err, "Failed to refresh credit statuses")
		return 0, fmt.Errorf("failed to refresh credit statuses: %w", err)
	}
	if n > 0 {
		s.invalidateDashboard(ctx, s.cache)
	}
	s.metrics.StatusesRefreshed(n)
	s.LogInfo(ctx, "Credit statuses refreshed", slog.Int64("rows", n))
	return n, nil
}

func applyCreditChanges(c *domain.Credit, ch domain.CreditChanges) {
	if ch.ClientID != nil {
		c.ClientID = *ch.ClientID
	}
	if ch.ClearSaleID {
		c.SaleID = nil
	} else if ch.SaleID != nil {
		id := *ch.SaleID
		c.SaleID = &id
	}
	if ch.CreditAmount != nil {
		c.CreditAmount = *ch.CreditAmount
	}
	if ch.DueDate != nil {
		c.DueDate = *ch.DueDate
	}
}
