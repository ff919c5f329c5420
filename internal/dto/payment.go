package dto

import (
	"time"

	"github.com/SscSPs/fuelstation_backend/internal/core/domain"
	"github.com/SscSPs/fuelstation_backend/internal/utils/money"
)

// PayCreditRequest is the body of a single credit payment.
// Reference is kept as the payment notes when Notes is empty.
type PayCreditRequest struct {
	Amount          money.Amount `json:"amount"`
	PaymentMethodID *int64       `json:"payment_method_id" binding:"omitempty,gt=0"`
	UserID          *int64       `json:"user_id" binding:"omitempty,gt=0"`
	Reference       *string      `json:"reference"`
	Notes           *string      `json:"notes"`
}

// BulkPayItem is one line of a bulk payment.
type BulkPayItem struct {
	CreditID int64        `json:"credit_id"`
	Amount   money.Amount `json:"amount"`
}

// BulkPayRequest pays several credits in one all-or-nothing transaction.
type BulkPayRequest struct {
	Items           []BulkPayItem `json:"items"`
	PaymentMethodID *int64        `json:"payment_method_id" binding:"omitempty,gt=0"`
	UserID          *int64        `json:"user_id" binding:"omitempty,gt=0"`
	Notes           *string       `json:"notes"`
}

// RecordPaymentRequest records a sale or standalone payment not tied to a credit.
type RecordPaymentRequest struct {
	Amount          money.Amount       `json:"amount"`
	PaymentType     domain.PaymentType `json:"payment_type" binding:"required,payment_type"`
	SaleID          *int64             `json:"sale_id" binding:"omitempty,gt=0"`
	PaymentMethodID *int64             `json:"payment_method_id" binding:"omitempty,gt=0"`
	UserID          *int64             `json:"user_id" binding:"omitempty,gt=0"`
	Notes           *string            `json:"notes"`
}

// ListPaymentsParams defines parameters for listing payments with token-based pagination
type ListPaymentsParams struct {
	CreditID  *int64  `form:"credit_id" binding:"omitempty,gt=0"`
	SaleID    *int64  `form:"sale_id" binding:"omitempty,gt=0"`
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// PaymentResponse is the wire form of a payment.
type PaymentResponse struct {
	PaymentID        int64                `json:"payment_id"`
	Amount           money.Amount         `json:"amount"`
	PaymentMethodID  *int64               `json:"payment_method_id"`
	CreditID         *int64               `json:"credit_id"`
	SaleID           *int64               `json:"sale_id"`
	PaymentType      domain.PaymentType   `json:"payment_type"`
	Status           domain.PaymentStatus `json:"status"`
	UserID           *int64               `json:"user_id"`
	Notes            *string              `json:"notes"`
	PaymentTimestamp time.Time            `json:"payment_timestamp"`
}

// ListPaymentsResponse wraps a page of payments.
type ListPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// BulkPayResponse is returned after a bulk payment commits.
type BulkPayResponse struct {
	Updated     []CreditResponse  `json:"updated"`
	Payments    []PaymentResponse `json:"payments"`
	Count       int               `json:"count"`
	TotalAmount money.Amount      `json:"totalAmount"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:        p.PaymentID,
		Amount:           money.NewAmount(p.Amount),
		PaymentMethodID:  p.PaymentMethodID,
		CreditID:         p.CreditID,
		SaleID:           p.SaleID,
		PaymentType:      p.PaymentType,
		Status:           p.Status,
		UserID:           p.UserID,
		Notes:            p.Notes,
		PaymentTimestamp: p.PaymentTimestamp,
	}
}

// ToListPaymentResponse converts a slice of domain.Payment to PaymentResponse DTOs
func ToListPaymentResponse(payments []domain.Payment) []PaymentResponse {
	res := make([]PaymentResponse, len(payments))
	for i := range payments {
		res[i] = ToPaymentResponse(&payments[i])
	}
	return res
}

// ToBulkPayResponse converts the service result to the wire form.
func ToBulkPayResponse(r *domain.BulkPaymentResult) BulkPayResponse {
	return BulkPayResponse{
		Updated:     ToListCreditResponse(r.Updated),
		Payments:    ToListPaymentResponse(r.Payments),
		Count:       r.Count,
		TotalAmount: money.NewAmount(r.TotalAmount),
	}
}
