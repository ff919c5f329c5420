package pgsql

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/fuelstation_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// whenBranches returns the WHEN/ELSE lines of a CASE expression in order.
func whenBranches(caseSQL string) []string {
	var out []string
	for _, line := range strings.Split(caseSQL, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "WHEN ") || strings.HasPrefix(line, "ELSE ") {
			out = append(out, line)
		}
	}
	return out
}

func TestDerivedStatusSQL_BranchOrderMatchesDeriveStatus(t *testing.T) {
	branches := whenBranches(fmt.Sprintf(derivedStatusSQL, "$1::date"))
	require.Len(t, branches, 3)

	// paid wins over overdue, overdue over pending, as in domain.DeriveStatus
	assert.Equal(t, "WHEN amount_paid >= credit_amount THEN '"+string(domain.CreditStatusPaid)+"'", branches[0])
	assert.Equal(t, "WHEN due_date < $1::date THEN '"+string(domain.CreditStatusOverdue)+"'", branches[1])
	assert.Equal(t, "ELSE '"+string(domain.CreditStatusPending)+"'", branches[2])
}

func TestOverdueSQL_RequiresOutstandingBalance(t *testing.T) {
	got := fmt.Sprintf(overdueSQL, "$2::date")
	assert.Equal(t, "(due_date < $2::date AND credit_amount > amount_paid)", got)
}

func TestCountByStatusSQL_PartitionsOnDerivedRule(t *testing.T) {
	// the overdue and pending filters split the unpaid rows on the same date edge
	// as the CASE, so paid + overdue + pending equals total
	assert.Contains(t, countByStatusSQL, "COUNT(*) FILTER (WHERE amount_paid >= credit_amount) AS paid")
	assert.Contains(t, countByStatusSQL, "COUNT(*) FILTER (WHERE amount_paid < credit_amount AND due_date < $1::date) AS overdue")
	assert.Contains(t, countByStatusSQL, "COUNT(*) FILTER (WHERE amount_paid < credit_amount AND due_date >= $1::date) AS pending")
	assert.Contains(t, countByStatusSQL, "COUNT(*) AS total")
	assert.NotContains(t, countByStatusSQL, "WHERE status")

	paid := strings.Index(countByStatusSQL, "AS paid")
	overdue := strings.Index(countByStatusSQL, "AS overdue")
	pending := strings.Index(countByStatusSQL, "AS pending")
	total := strings.Index(countByStatusSQL, "AS total")
	// scan order in CountCreditsByStatus
	assert.True(t, paid < overdue && overdue < pending && pending < total)
}

func TestRefreshStatusesSQL_UsesDerivedCaseTwice(t *testing.T) {
	query := refreshStatusesSQL()
	derived := fmt.Sprintf(derivedStatusSQL, "$1::date")

	assert.Equal(t, 2, strings.Count(query, derived))
	assert.Contains(t, query, "SET status = "+derived)
	assert.Contains(t, query, "WHERE status <> "+derived)
	assert.NotContains(t, query, "$2")
}

func TestListCreditsQuery(t *testing.T) {
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	overdue := domain.CreditStatusOverdue
	yes, no := true, false
	client := int64(7)

	tests := []struct {
		name     string
		filter   domain.CreditFilter
		contains []string
		args     []any
	}{
		{
			name:     "no filter",
			filter:   domain.CreditFilter{},
			contains: []string{"FROM credits ORDER BY due_date ASC, credit_id ASC;"},
			args:     nil,
		},
		{
			name:     "client only",
			filter:   domain.CreditFilter{ClientID: &client},
			contains: []string{" WHERE client_id = $1 ORDER BY"},
			args:     []any{client},
		},
		{
			name:   "status compares the derived value",
			filter: domain.CreditFilter{Status: &overdue},
			contains: []string{
				"(" + fmt.Sprintf(derivedStatusSQL, "$1::date") + ") = $2",
			},
			args: []any{today, "overdue"},
		},
		{
			name:     "overdue true",
			filter:   domain.CreditFilter{Overdue: &yes},
			contains: []string{" WHERE (due_date < $1::date AND credit_amount > amount_paid) ORDER BY"},
			args:     []any{today},
		},
		{
			name:     "overdue false is negated",
			filter:   domain.CreditFilter{Overdue: &no},
			contains: []string{" WHERE NOT (due_date < $1::date AND credit_amount > amount_paid) ORDER BY"},
			args:     []any{today},
		},
		{
			name:   "status and overdue share one date parameter",
			filter: domain.CreditFilter{ClientID: &client, Status: &overdue, Overdue: &yes},
			contains: []string{
				"client_id = $1 AND (",
				") = $3 AND (due_date < $2::date AND credit_amount > amount_paid)",
			},
			args: []any{client, today, "overdue"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := listCreditsQuery(tt.filter, today)
			for _, want := range tt.contains {
				assert.Contains(t, query, want)
			}
			assert.Equal(t, tt.args, args)
		})
	}
}
