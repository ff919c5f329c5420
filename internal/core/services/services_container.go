package services

import (
	portsrepo "github.com/SscSPs/fuelstation_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fuelstation_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// cache and metrics may be nil.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cache portsrepo.DashboardCache, metrics portssvc.LedgerMetrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	creditOpts := []CreditServiceOption{}
	paymentOpts := []PaymentServiceOption{}
	if cache != nil {
		creditOpts = append(creditOpts, WithCreditDashboardCache(cache))
		paymentOpts = append(paymentOpts, WithPaymentDashboardCache(cache))
	}
	if metrics != nil {
		creditOpts = append(creditOpts, WithCreditMetrics(metrics))
		paymentOpts = append(paymentOpts, WithPaymentMetrics(metrics))
	}

	container.Credit = NewCreditService(repos.CreditRepo, creditOpts...)
	container.Payment = NewPaymentService(repos.CreditRepo, repos.PaymentRepo, paymentOpts...)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CreditSvcFacade  = (*creditService)(nil)
	_ portssvc.PaymentSvcFacade = (*paymentService)(nil)
	_ portssvc.LedgerMetrics    = noopMetrics{}
)
