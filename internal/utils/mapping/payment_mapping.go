package mapping

import (
	"github.com/SscSPs/fuelstation_backend/internal/core/domain"
	"github.com/SscSPs/fuelstation_backend/internal/models"
	"github.com/SscSPs/fuelstation_backend/internal/utils/money"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:        d.PaymentID,
		Amount:           money.Round2(d.Amount),
		PaymentMethodID:  d.PaymentMethodID,
		CreditID:         d.CreditID,
		SaleID:           d.SaleID,
		PaymentType:      string(d.PaymentType),
		Status:           string(d.Status),
		UserID:           d.UserID,
		Notes:            d.Notes,
		PaymentTimestamp: d.PaymentTimestamp,
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:        m.PaymentID,
		Amount:           money.Round2(m.Amount),
		PaymentMethodID:  m.PaymentMethodID,
		CreditID:         m.CreditID,
		SaleID:           m.SaleID,
		PaymentType:      domain.PaymentType(m.PaymentType),
		Status:           domain.PaymentStatus(m.Status),
		UserID:           m.UserID,
		Notes:            m.Notes,
		PaymentTimestamp: m.PaymentTimestamp,
	}
}

// ToDomainPaymentSlice converts a slice of model Payments to a slice of domain Payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	out := make([]domain.Payment, len(ms))
	for i, m := range ms {
		out[i] = ToDomainPayment(m)
	}
	return out
}
