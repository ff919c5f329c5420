package models

import "time"

// IdempotencyKey mirrors a row of the idempotency_keys table.
type IdempotencyKey struct {
	KeyID          string    `db:"key_id"`
	UserID         string    `db:"user_id"`
	RequestPath    string    `db:"request_path"`
	RequestHash    string    `db:"request_hash"`
	ResponseStatus int       `db:"response_status"`
	ResponseBody   []byte    `db:"response_body"`
	CreatedAt      time.Time `db:"created_at"`
}
