package domain

import (
	"time"

	"github.com/SscSPs/fuelstation_backend/internal/utils/money"
	"github.com/shopspring/decimal"
)

// CreditStatus is the derived lifecycle state of a credit.
type CreditStatus string

const (
	CreditStatusPending CreditStatus = "pending"
	CreditStatusPaid    CreditStatus = "paid"
	CreditStatusOverdue CreditStatus = "overdue"
)

// IsValid reports whether s is one of the known statuses.
func (s CreditStatus) IsValid() bool {
	switch s {
	case CreditStatusPending, CreditStatusPaid, CreditStatusOverdue:
		return true
	}
	return false
}

// MinCreditAmount is the smallest amount a credit may be opened for.
var MinCreditAmount = decimal.New(1, -2)

// Credit is money owed by a client, optionally tied to the sale that created it.
type Credit struct {
	CreditID     int64           `json:"creditID"`
	ClientID     int64           `json:"clientID"`
	SaleID       *int64          `json:"saleID,omitempty"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	AmountPaid   decimal.Decimal `json:"amountPaid"`
	DueDate      time.Time       `json:"dueDate"`
	Status       CreditStatus    `json:"status"`
	AuditFields
}

// DeriveStatus is the only place the pending/paid/overdue rule lives.
// A credit is paid once the paid amount reaches the credit amount, regardless
// of due date. An unpaid credit whose due date is before today is overdue.
func DeriveStatus(creditAmount, amountPaid decimal.Decimal, dueDate, now time.Time) CreditStatus {
	if money.Round2(amountPaid).GreaterThanOrEqual(money.Round2(creditAmount)) {
		return CreditStatusPaid
	}
	if IsPastDue(dueDate, now) {
		return CreditStatusOverdue
	}
	return CreditStatusPending
}

// IsPastDue reports whether dueDate falls on a calendar day (UTC) strictly before now's.
func IsPastDue(dueDate, now time.Time) bool {
	return StartOfDay(dueDate).Before(StartOfDay(now))
}

// Normalize rounds both money fields to cents.
func (c *Credit) Normalize() *Credit {
	c.CreditAmount = money.Round2(c.CreditAmount)
	c.AmountPaid = money.Round2(c.AmountPaid)
	return c
}

// RecomputeStatus sets Status from the current amounts and due date.
// The caller decides whether to persist it.
func (c *Credit) RecomputeStatus(now time.Time) *Credit {
	c.Status = DeriveStatus(c.CreditAmount, c.AmountPaid, c.DueDate, now)
	return c
}

// Balance is the amount still owed.
func (c Credit) Balance() decimal.Decimal {
	return money.Round2(c.CreditAmount.Sub(c.AmountPaid))
}

// IsPastDue reports whether the credit's due date has passed.
func (c Credit) IsPastDue(now time.Time) bool {
	return IsPastDue(c.DueDate, now)
}

// ApplyPayment adds amount to AmountPaid and recomputes the status.
// It does not check the balance; callers hold the row lock and check first.
func (c *Credit) ApplyPayment(amount decimal.Decimal, now time.Time) *Credit {
	c.AmountPaid = money.Round2(c.AmountPaid.Add(amount))
	return c.RecomputeStatus(now)
}

// CreditFilter narrows a credit listing. Nil fields are not applied.
type CreditFilter struct {
	Status   *CreditStatus
	Overdue  *bool
	ClientID *int64
}

// CreditChanges carries the administrative fields an update may change.
type CreditChanges struct {
	ClientID     *int64
	SaleID       *int64
	ClearSaleID  bool
	CreditAmount *decimal.Decimal
	DueDate      *time.Time
}
