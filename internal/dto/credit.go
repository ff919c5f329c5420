package dto

import (
	"time"

	"github.com/SscSPs/fuelstation_backend/internal/core/domain"
	"github.com/SscSPs/fuelstation_backend/internal/utils/money"
)

// CreateCreditRequest defines the data needed to open a credit.
type CreateCreditRequest struct {
	ClientID     int64        `json:"client_id" binding:"required,gt=0"`
	SaleID       *int64       `json:"sale_id" binding:"omitempty,gt=0"`
	CreditAmount money.Amount `json:"credit_amount"`
	DueDate      Date         `json:"due_date"`
}

// UpdateCreditRequest carries the administrative fields of a credit.
// amount_paid and status are owned by the payment paths and cannot be set here.
type UpdateCreditRequest struct {
	ClientID     *int64        `json:"client_id" binding:"omitempty,gt=0"`
	SaleID       *int64        `json:"sale_id" binding:"omitempty,gt=0"`
	ClearSaleID  bool          `json:"clear_sale_id"`
	CreditAmount *money.Amount `json:"credit_amount"`
	DueDate      *Date         `json:"due_date"`
}

// ListCreditsParams are the query filters of the credit listing.
type ListCreditsParams struct {
	Status   string `form:"status" binding:"omitempty,credit_status"`
	Overdue  *bool  `form:"overdue"`
	ClientID *int64 `form:"client_id" binding:"omitempty,gt=0"`
}

// ToFilter converts bound query params to the domain filter.
func (p ListCreditsParams) ToFilter() domain.CreditFilter {
	f := domain.CreditFilter{Overdue: p.Overdue, ClientID: p.ClientID}
	if p.Status != "" {
		s := domain.CreditStatus(p.Status)
		f.Status = &s
	}
	return f
}

// CreditResponse is the wire form of a credit.
type CreditResponse struct {
	CreditID     int64               `json:"credit_id"`
	ClientID     int64               `json:"client_id"`
	SaleID       *int64              `json:"sale_id"`
	CreditAmount money.Amount        `json:"credit_amount"`
	AmountPaid   money.Amount        `json:"amount_paid"`
	Balance      money.Amount        `json:"balance"`
	DueDate      Date                `json:"due_date"`
	Status       domain.CreditStatus `json:"status"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// ToCreditResponse converts a domain.Credit to CreditResponse DTO
func ToCreditResponse(c *domain.Credit) CreditResponse {
	return CreditResponse{
		CreditID:     c.CreditID,
		ClientID:     c.ClientID,
		SaleID:       c.SaleID,
		CreditAmount: money.NewAmount(c.CreditAmount),
		AmountPaid:   money.NewAmount(c.AmountPaid),
		Balance:      money.NewAmount(c.Balance()),
		DueDate:      NewDate(c.DueDate),
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ToListCreditResponse converts a slice of domain.Credit to CreditResponse DTOs
func ToListCreditResponse(credits []domain.Credit) []CreditResponse {
	res := make([]CreditResponse, len(credits))
	for i := range credits {
		res[i] = ToCreditResponse(&credits[i])
	}
	return res
}

// DashboardResponse is the credit count summary.
type DashboardResponse struct {
	Paid    int64 `json:"paid"`
	Overdue int64 `json:"overdue"`
	Pending int64 `json:"pending"`
	Total   int64 `json:"total"`
}

// ToDashboardResponse converts domain counts to the wire form.
func ToDashboardResponse(c domain.DashboardCounts) DashboardResponse {
	return DashboardResponse{Paid: c.Paid, Overdue: c.Overdue, Pending: c.Pending, Total: c.Total}
}
