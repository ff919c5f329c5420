package pgsql

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/SscSPs/fuelstation_backend/internal/apperrors"
	"github.com/SscSPs/fuelstation_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/fuelstation_backend/internal/core/ports/repositories"
	"github.com/SscSPs/fuelstation_backend/internal/models"
	"github.com/SscSPs/fuelstation_backend/internal/utils/mapping"
	"github.com/SscSPs/fuelstation_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentColumns = `payment_id, amount, payment_method_id, credit_id, sale_id, payment_type, status, user_id, notes, payment_timestamp`

type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryWithTx {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PaymentRepositoryWithTx = (*PgxPaymentRepository)(nil)

// SavePaymentInTx appends a payment row inside tx. A zero timestamp lets the
// database default apply.
func (r *PgxPaymentRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) (*domain.Payment, error) {
	m := mapping.ToModelPayment(payment)
	var ts any
	if !m.PaymentTimestamp.IsZero() {
		ts = m.PaymentTimestamp
	}

	query := `
		INSERT INTO payments (amount, payment_method_id, credit_id, sale_id, payment_type, status, user_id, notes, payment_timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9::timestamptz, now()))
		RETURNING ` + paymentColumns + `;`

	rows, err := tx.Query(ctx, query,
		m.Amount, m.PaymentMethodID, m.CreditID, m.SaleID, m.PaymentType, m.Status, m.UserID, m.Notes, ts,
	)
	if err != nil {
		return nil, classifyPgError("failed to insert payment", err)
	}
	saved, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Payment])
	if err != nil {
		return nil, classifyPgError("failed to insert payment", err)
	}
	d := mapping.ToDomainPayment(saved)
	return &d, nil
}

// ListPayments returns payments newest first with keyset pagination on
// (payment_timestamp, payment_id).
func (r *PgxPaymentRepository) ListPayments(ctx context.Context, filter domain.PaymentFilter, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	var (
		clauses []string
		args    []any
	)
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.CreditID != nil {
		clauses = append(clauses, "credit_id = "+next(*filter.CreditID))
	}
	if filter.SaleID != nil {
		clauses = append(clauses, "sale_id = "+next(*filter.SaleID))
	}
	if nextToken != nil && *nextToken != "" {
		lastTime, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", decodeErr)
		}
		clauses = append(clauses, "(payment_timestamp, payment_id) < ("+next(lastTime)+", "+next(lastID)+")")
	}

	// Fetch one extra row to know whether another page exists
	fetchLimit := limit + 1
	query := `SELECT ` + paymentColumns + ` FROM payments`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY payment_timestamp DESC, payment_id DESC LIMIT " + next(fetchLimit) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, classifyPgError("failed to list payments", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Payment])
	if err != nil {
		return nil, nil, classifyPgError("failed to list payments", err)
	}

	var token *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		encoded := pagination.EncodeToken(last.PaymentTimestamp, last.PaymentID)
		token = &encoded
	}
	return mapping.ToDomainPaymentSlice(ms), token, nil
}
