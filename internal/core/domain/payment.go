package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType says what a payment was applied to.
type PaymentType string

const (
	PaymentTypeSale       PaymentType = "sale"
	PaymentTypeCredit     PaymentType = "credit"
	PaymentTypeStandalone PaymentType = "standalone"
)

// IsValid reports whether t is one of the known payment types.
func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentTypeSale, PaymentTypeCredit, PaymentTypeStandalone:
		return true
	}
	return false
}

// PaymentStatus of a recorded payment. Only completed payments are written.
type PaymentStatus string

const PaymentStatusCompleted PaymentStatus = "completed"

// Payment is an append-only record of money received.
type Payment struct {
	PaymentID        int64           `json:"paymentID"`
	Amount           decimal.Decimal `json:"amount"`
	PaymentMethodID  *int64          `json:"paymentMethodID,omitempty"`
	CreditID         *int64          `json:"creditID,omitempty"`
	SaleID           *int64          `json:"saleID,omitempty"`
	PaymentType      PaymentType     `json:"paymentType"`
	Status           PaymentStatus   `json:"status"`
	UserID           *int64          `json:"userID,omitempty"`
	Notes            *string         `json:"notes,omitempty"`
	PaymentTimestamp time.Time       `json:"paymentTimestamp"`
}

// PaymentInput is what the recorder needs to write one payment row.
type PaymentInput struct {
	Amount          decimal.Decimal
	PaymentMethodID *int64
	CreditID        *int64
	SaleID          *int64
	PaymentType     PaymentType
	UserID          *int64
	Notes           *string
}

// PaymentFilter narrows a payment history listing.
type PaymentFilter struct {
	CreditID *int64
	SaleID   *int64
}

// BulkPaymentItem is one merged (credit, amount) pair of a bulk payment.
type BulkPaymentItem struct {
	CreditID int64
	Amount   decimal.Decimal
}

// BulkPaymentResult is returned after a bulk payment commits.
type BulkPaymentResult struct {
	Updated     []Credit
	Payments    []Payment
	Count       int
	TotalAmount decimal.Decimal
}
