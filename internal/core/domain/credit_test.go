package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/fuelstation_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	yesterday := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		amount  string
		paid    string
		dueDate time.Time
		want    domain.CreditStatus
	}{
		{name: "fully paid with past due date", amount: "100", paid: "100", dueDate: yesterday, want: domain.CreditStatusPaid},
		{name: "fully paid with future due date", amount: "100", paid: "100", dueDate: tomorrow, want: domain.CreditStatusPaid},
		{name: "partially paid past due", amount: "100", paid: "40", dueDate: yesterday, want: domain.CreditStatusOverdue},
		{name: "partially paid future due", amount: "100", paid: "40", dueDate: tomorrow, want: domain.CreditStatusPending},
		{name: "due today is not overdue", amount: "100", paid: "0", dueDate: today, want: domain.CreditStatusPending},
		{name: "sub-cent remainder rounds to paid", amount: "100.004", paid: "100", dueDate: yesterday, want: domain.CreditStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DeriveStatus(dec(tt.amount), dec(tt.paid), tt.dueDate, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCredit_RecomputeStatusIgnoresStoredValue(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	c := &domain.Credit{
		CreditAmount: dec("200"),
		AmountPaid:   dec("50"),
		DueDate:      now.AddDate(0, 0, -3),
		Status:       domain.CreditStatusPaid,
	}

	got := c.RecomputeStatus(now)

	assert.Same(t, c, got)
	assert.Equal(t, domain.CreditStatusOverdue, c.Status)
}

func TestCredit_BalanceAndApplyPayment(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	c := &domain.Credit{
		CreditAmount: dec("500.00"),
		AmountPaid:   dec("0"),
		DueDate:      now.AddDate(0, 1, 0),
	}
	assert.True(t, c.Balance().Equal(dec("500")))

	c.ApplyPayment(dec("500.00"), now)

	assert.Equal(t, domain.CreditStatusPaid, c.Status)
	assert.True(t, c.Balance().IsZero())
}

func TestCredit_ApplyPartialPaymentPastDueStaysOverdue(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	c := &domain.Credit{
		CreditAmount: dec("100"),
		AmountPaid:   dec("10"),
		DueDate:      now.AddDate(0, 0, -1),
		Status:       domain.CreditStatusPending,
	}

	c.ApplyPayment(dec("20"), now)

	assert.True(t, c.AmountPaid.Equal(dec("30")))
	assert.Equal(t, domain.CreditStatusOverdue, c.Status)
}

func TestCredit_Normalize(t *testing.T) {
	c := &domain.Credit{CreditAmount: dec("10.005"), AmountPaid: dec("2.344")}
	c.Normalize()
	assert.Equal(t, "10.01", c.CreditAmount.StringFixed(2))
	assert.Equal(t, "2.34", c.AmountPaid.StringFixed(2))
}

func TestIsPastDue_UsesUTCCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	// 2024-03-15 02:00 in UTC+5 is still 2024-03-14 in UTC
	now := time.Date(2024, 3, 15, 2, 0, 0, 0, loc)
	due := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)

	assert.False(t, domain.IsPastDue(due, now))
	assert.True(t, domain.IsPastDue(due, now.Add(24*time.Hour)))
}

func TestCreditStatus_IsValid(t *testing.T) {
	assert.True(t, domain.CreditStatusPending.IsValid())
	assert.True(t, domain.CreditStatusPaid.IsValid())
	assert.True(t, domain.CreditStatusOverdue.IsValid())
	assert.False(t, domain.CreditStatus("cancelled").IsValid())
}
