package models

import "time"

// AuditFields are the row timestamps shared by ledger tables.
type AuditFields struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
