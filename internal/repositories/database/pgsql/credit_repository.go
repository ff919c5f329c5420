package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/fuelstation_backend/internal/apperrors"
	"github.com/SscSPs/fuelstation_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/fuelstation_backend/internal/core/ports/repositories"
	"github.com/SscSPs/fuelstation_backend/internal/models"
	"github.com/SscSPs/fuelstation_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const creditColumns = `credit_id, client_id, sale_id, credit_amount, amount_paid, due_date, status, created_at, updated_at`

// derivedStatusSQL evaluates the credit status rule in SQL. The %s is the
// placeholder holding today's date.
const derivedStatusSQL = `CASE
		WHEN amount_paid >= credit_amount THEN 'paid'
		WHEN due_date < %s THEN 'overdue'
		ELSE 'pending'
	END`

// overdueSQL matches credits past due with money still owed.
const overdueSQL = `(due_date < %s AND credit_amount > amount_paid)`

type PgxCreditRepository struct {
	BaseRepository
}

func newPgxCreditRepository(pool *pgxpool.Pool) portsrepo.CreditRepositoryWithTx {
	return &PgxCreditRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CreditRepositoryWithTx = (*PgxCreditRepository)(nil)

// SaveCredit inserts a new credit.
func (r *PgxCreditRepository) SaveCredit(ctx context.Context, credit domain.Credit) (*domain.Credit, error) {
	m := mapping.ToModelCredit(credit)
	query := `
		INSERT INTO credits (client_id, sale_id, credit_amount, amount_paid, due_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + creditColumns + `;`

	rows, err := r.Pool.Query(ctx, query,
		m.ClientID, m.SaleID, m.CreditAmount, m.AmountPaid, m.DueDate, m.Status, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return nil, classifyPgError("failed to insert credit", err)
	}
	saved, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Credit])
	if err != nil {
		return nil, classifyPgError("failed to insert credit", err)
	}
	d := mapping.ToDomainCredit(saved)
	return &d, nil
}

// FindCreditByID retrieves a credit by its id without taking a lock.
func (r *PgxCreditRepository) FindCreditByID(ctx context.Context, creditID int64) (*domain.Credit, error) {
	query := `SELECT ` + creditColumns + ` FROM credits WHERE credit_id = $1;`
	return r.findOne(ctx, r.Pool, query, creditID)
}

// FindCreditForUpdate reads a credit and holds its row lock until tx ends.
func (r *PgxCreditRepository) FindCreditForUpdate(ctx context.Context, tx pgx.Tx, creditID int64) (*domain.Credit, error) {
	query := `SELECT ` + creditColumns + ` FROM credits WHERE credit_id = $1 FOR UPDATE;`
	return r.findOne(ctx, tx, query, creditID)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *PgxCreditRepository) findOne(ctx context.Context, q querier, query string, creditID int64) (*domain.Credit, error) {
	rows, err := q.Query(ctx, query, creditID)
	if err != nil {
		return nil, classifyPgError(fmt.Sprintf("failed to fetch credit %d", creditID), err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Credit])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("credit %d not found", creditID))
		}
		return nil, classifyPgError(fmt.Sprintf("failed to fetch credit %d", creditID), err)
	}
	d := mapping.ToDomainCredit(m)
	return &d, nil
}

// creditWhere accumulates filter clauses. The today argument is only bound
// when a clause needs it.
type creditWhere struct {
	clauses  []string
	args     []any
	today    time.Time
	todayRef string
}

func (w *creditWhere) arg(v any) string {
	w.args = append(w.args, v)
	return "$" + strconv.Itoa(len(w.args))
}

func (w *creditWhere) todayParam() string {
	if w.todayRef == "" {
		w.todayRef = w.arg(w.today) + "::date"
	}
	return w.todayRef
}

func (w *creditWhere) sql() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// listCreditsQuery builds the filtered credit select and its arguments.
func listCreditsQuery(filter domain.CreditFilter, today time.Time) (string, []any) {
	w := &creditWhere{today: today}
	if filter.ClientID != nil {
		w.clauses = append(w.clauses, "client_id = "+w.arg(*filter.ClientID))
	}
	if filter.Status != nil {
		derived := fmt.Sprintf(derivedStatusSQL, w.todayParam())
		w.clauses = append(w.clauses, "("+derived+") = "+w.arg(string(*filter.Status)))
	}
	if filter.Overdue != nil {
		overdue := fmt.Sprintf(overdueSQL, w.todayParam())
		if *filter.Overdue {
			w.clauses = append(w.clauses, overdue)
		} else {
			w.clauses = append(w.clauses, "NOT "+overdue)
		}
	}

	return `SELECT ` + creditColumns + ` FROM credits` + w.sql() + ` ORDER BY due_date ASC, credit_id ASC;`, w.args
}

// ListCredits returns credits matching filter ordered by due date then id.
// Status matches the derived status, not the stored column.
func (r *PgxCreditRepository) ListCredits(ctx context.Context, filter domain.CreditFilter, today time.Time) ([]domain.Credit, error) {
	query, args := listCreditsQuery(filter, today)
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, classifyPgError("failed to list credits", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Credit])
	if err != nil {
		return nil, classifyPgError("failed to list credits", err)
	}
	return mapping.ToDomainCreditSlice(ms), nil
}

// countByStatusSQL partitions the whole table by derived status in one scan.
// The three filters are disjoint and cover every row.
const countByStatusSQL = `
		SELECT
			COUNT(*) FILTER (WHERE amount_paid >= credit_amount) AS paid,
			COUNT(*) FILTER (WHERE amount_paid < credit_amount AND due_date < $1::date) AS overdue,
			COUNT(*) FILTER (WHERE amount_paid < credit_amount AND due_date >= $1::date) AS pending,
			COUNT(*) AS total
		FROM credits;`

func (r *PgxCreditRepository) CountCreditsByStatus(ctx context.Context, today time.Time) (domain.DashboardCounts, error) {
	var counts domain.DashboardCounts
	err := r.Pool.QueryRow(ctx, countByStatusSQL, today).Scan(&counts.Paid, &counts.Overdue, &counts.Pending, &counts.Total)
	if err != nil {
		return domain.DashboardCounts{}, classifyPgError("failed to count credits", err)
	}
	return counts, nil
}

// UpdateCreditInTx writes every mutable column of credit. The row must
// already be locked by FindCreditForUpdate in the same tx.
func (r *PgxCreditRepository) UpdateCreditInTx(ctx context.Context, tx pgx.Tx, credit domain.Credit) (*domain.Credit, error) {
	m := mapping.ToModelCredit(credit)
	query := `
		UPDATE credits
		SET client_id = $2, sale_id = $3, credit_amount = $4, amount_paid = $5,
			due_date = $6, status = $7, updated_at = $8
		WHERE credit_id = $1
		RETURNING ` + creditColumns + `;`

	rows, err := tx.Query(ctx, query,
		m.CreditID, m.ClientID, m.SaleID, m.CreditAmount, m.AmountPaid, m.DueDate, m.Status, m.UpdatedAt,
	)
	if err != nil {
		return nil, classifyPgError(fmt.Sprintf("failed to update credit %d", m.CreditID), err)
	}
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Credit])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("credit %d not found", m.CreditID))
		}
		return nil, classifyPgError(fmt.Sprintf("failed to update credit %d", m.CreditID), err)
	}
	d := mapping.ToDomainCredit(updated)
	return &d, nil
}

// DeleteCredit removes a credit. The payments foreign key is ON DELETE SET NULL.
func (r *PgxCreditRepository) DeleteCredit(ctx context.Context, creditID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM credits WHERE credit_id = $1;`, creditID)
	if err != nil {
		return classifyPgError(fmt.Sprintf("failed to delete credit %d", creditID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("credit %d not found", creditID))
	}
	return nil
}

func refreshStatusesSQL() string {
	derived := fmt.Sprintf(derivedStatusSQL, "$1::date")
	return `
		UPDATE credits
		SET status = ` + derived + `, updated_at = now()
		WHERE status <> ` + derived + `;`
}

// RefreshStoredStatuses rewrites the status column where it no longer matches
// the derived status for today.
func (r *PgxCreditRepository) RefreshStoredStatuses(ctx context.Context, today time.Time) (int64, error) {
	tag, err := r.Pool.Exec(ctx, refreshStatusesSQL(), today)
	if err != nil {
		return 0, classifyPgError("failed to refresh credit statuses", err)
	}
	return tag.RowsAffected(), nil
}
