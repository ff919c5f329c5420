// Package metrics exposes the ledger's Prometheus instruments.
package metrics

import (
	"strconv"
	"time"

	"github.com/SscSPs/fuelstation_backend/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

const namespace = "fuelstation"

// Metrics implements portssvc.LedgerMetrics and middleware.HTTPObserver.
type Metrics struct {
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	paymentsApplied   *prometheus.CounterVec
	paymentAmount     *prometheus.CounterVec
	paymentsRejected  *prometheus.CounterVec
	bulkBatchSize     prometheus.Histogram
	statusesRefreshed prometheus.Counter
}

// New registers every instrument on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		paymentsApplied: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "payments_total",
			Help:      "Payments recorded by payment type.",
		}, []string{"type"}),
		paymentAmount: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "payment_amount_total",
			Help:      "Sum of recorded payment amounts by payment type.",
		}, []string{"type"}),
		paymentsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "payments_rejected_total",
			Help:      "Payment operations that did not commit, by operation and reason.",
		}, []string{"operation", "reason"}),
		bulkBatchSize: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "bulk_batch_items",
			Help:      "Merged credits per committed bulk payment.",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
		}),
		statusesRefreshed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "statuses_refreshed_total",
			Help:      "Credit rows whose stored status was rewritten by the overdue sweep.",
		}),
	}
}

func (m *Metrics) PaymentApplied(paymentType domain.PaymentType, amount decimal.Decimal) {
	m.paymentsApplied.WithLabelValues(string(paymentType)).Inc()
	m.paymentAmount.WithLabelValues(string(paymentType)).Add(amount.InexactFloat64())
}

func (m *Metrics) PaymentRejected(operation, reason string) {
	m.paymentsRejected.WithLabelValues(operation, reason).Inc()
}

func (m *Metrics) BulkBatchCommitted(items int) {
	m.bulkBatchSize.Observe(float64(items))
}

func (m *Metrics) StatusesRefreshed(rows int64) {
	m.statusesRefreshed.Add(float64(rows))
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
