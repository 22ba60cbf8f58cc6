// Package metrics exposes the Prometheus instruments of the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups every instrument. A nil *Metrics records nothing, which
// keeps tests free of registry setup.
type Metrics struct {
	billsCreated       *prometheus.CounterVec
	allocationRejected *prometheus.CounterVec
	billsPaid          prometheus.Counter
	billsDeleted       prometheus.Counter
	receiptsUploaded   *prometheus.CounterVec
	receiptBytes       prometheus.Histogram
	rpcDuration        *prometheus.HistogramVec
	rateLimited        prometheus.Counter
}

// New registers the instruments on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		billsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careshare_bills_created_total",
				Help: "Bills confirmed, by allocation strategy and split type",
			},
			[]string{"strategy", "split_type"},
		),
		allocationRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careshare_allocation_rejected_total",
				Help: "Bill confirmations rejected because shares did not add up to the total",
			},
			[]string{"reason"},
		),
		billsPaid: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "careshare_bills_paid_total",
				Help: "Bills marked paid",
			},
		),
		billsDeleted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "careshare_bills_deleted_total",
				Help: "Bills deleted together with their allocations",
			},
		),
		receiptsUploaded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careshare_receipts_uploaded_total",
				Help: "Receipt files stored, by backend",
			},
			[]string{"backend"},
		),
		receiptBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "careshare_receipt_size_bytes",
				Help:    "Size of stored receipt files",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
			},
		),
		rpcDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "careshare_rpc_duration_milliseconds",
				Help:    "Connect RPC duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"procedure", "code"},
		),
		rateLimited: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "careshare_rate_limited_total",
				Help: "HTTP requests rejected by the per-client rate limiter",
			},
		),
	}
}

func (m *Metrics) BillCreated(strategy, splitType string) {
	if m == nil {
		return
	}
	if splitType == "" {
		splitType = "none"
	}
	m.billsCreated.WithLabelValues(strategy, splitType).Inc()
}

// AllocationRejected counts a failed confirmation; reason is "shortfall" or "excess".
func (m *Metrics) AllocationRejected(reason string) {
	if m == nil {
		return
	}
	m.allocationRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) BillPaid() {
	if m == nil {
		return
	}
	m.billsPaid.Inc()
}

func (m *Metrics) BillDeleted() {
	if m == nil {
		return
	}
	m.billsDeleted.Inc()
}

func (m *Metrics) ReceiptUploaded(backend string, size int) {
	if m == nil {
		return
	}
	m.receiptsUploaded.WithLabelValues(backend).Inc()
	m.receiptBytes.Observe(float64(size))
}

func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.rpcDuration.WithLabelValues(procedure, code).Observe(float64(d.Milliseconds()))
}

func (m *Metrics) RateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}
