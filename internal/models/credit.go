package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Credit mirrors a row of the credits table.
type Credit struct {
	CreditID     int64           `db:"credit_id"`
	ClientID     int64           `db:"client_id"`
	SaleID       *int64          `db:"sale_id"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	AmountPaid   decimal.Decimal `db:"amount_paid"`
	DueDate      time.Time       `db:"due_date"`
	Status       string          `db:"status"`
	AuditFields
}
