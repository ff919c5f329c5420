package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment mirrors a row of the payments table.
type Payment struct {
	PaymentID        int64           `db:"payment_id"`
	Amount           decimal.Decimal `db:"amount"`
	PaymentMethodID  *int64          `db:"payment_method_id"`
	CreditID         *int64          `db:"credit_id"`
	SaleID           *int64          `db:"sale_id"`
	PaymentType      string          `db:"payment_type"`
	Status           string          `db:"status"`
	UserID           *int64          `db:"user_id"`
	Notes            *string         `db:"notes"`
	PaymentTimestamp time.Time       `db:"payment_timestamp"`
}
