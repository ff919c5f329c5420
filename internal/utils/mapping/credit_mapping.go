package mapping

import (
	"github.com/SscSPs/fuelstation_backend/internal/core/domain"
	"github.com/SscSPs/fuelstation_backend/internal/models"
	"github.com/SscSPs/fuelstation_backend/internal/utils/money"
)

// ToModelCredit converts a domain Credit to a model Credit
func ToModelCredit(d domain.Credit) models.Credit {
	return models.Credit{
		CreditID:     d.CreditID,
		ClientID:     d.ClientID,
		SaleID:       d.SaleID,
		CreditAmount: money.Round2(d.CreditAmount),
		AmountPaid:   money.Round2(d.AmountPaid),
		DueDate:      domain.StartOfDay(d.DueDate),
		Status:       string(d.Status),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCredit converts a model Credit to a domain Credit.
// Amounts are re-rounded on the way out of storage.
func ToDomainCredit(m models.Credit) domain.Credit {
	c := domain.Credit{
		CreditID:     m.CreditID,
		ClientID:     m.ClientID,
		SaleID:       m.SaleID,
		CreditAmount: m.CreditAmount,
		AmountPaid:   m.AmountPaid,
		DueDate:      domain.StartOfDay(m.DueDate),
		Status:       domain.CreditStatus(m.Status),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	c.Normalize()
	return c
}

// ToDomainCreditSlice converts a slice of model Credits to a slice of domain Credits
func ToDomainCreditSlice(ms []models.Credit) []domain.Credit {
	out := make([]domain.Credit, len(ms))
	for i, m := range ms {
		out[i] = ToDomainCredit(m)
	}
	return out
}
