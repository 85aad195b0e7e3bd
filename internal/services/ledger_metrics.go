package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LedgerMetrics records ledger mutation outcomes for Prometheus
type LedgerMetrics struct {
	mutationsTotal       *prometheus.CounterVec
	mutationDuration     prometheus.Histogram
	correctionsTotal     *prometheus.CounterVec
	cascadeTransactions  *prometheus.CounterVec
}

// NewLedgerMetrics creates and registers the ledger metric collectors
func NewLedgerMetrics() MetricsRecorderInterface {
	return &LedgerMetrics{
		mutationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_mutations_total",
				Help: "Total number of ledger mutations processed",
			},
			[]string{"operation", "status"},
		),
		mutationDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_mutation_duration_milliseconds",
				Help:    "Ledger mutation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		correctionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_balance_corrections_total",
				Help: "Total number of synthesized balance-correction transactions",
			},
			[]string{"type"},
		),
		cascadeTransactions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_cascade_transactions_total",
				Help: "Transactions deleted or detached by entity cascade deletes",
			},
			[]string{"entity"},
		),
	}
}

// RecordMutation records one ledger mutation outcome
func (m *LedgerMetrics) RecordMutation(operation, status string, duration time.Duration) {
	m.mutationsTotal.WithLabelValues(operation, status).Inc()
	m.mutationDuration.Observe(float64(duration.Milliseconds()))
}

// RecordCorrection records one synthesized balance correction
func (m *LedgerMetrics) RecordCorrection(transactionType string) {
	m.correctionsTotal.WithLabelValues(transactionType).Inc()
}

// RecordCascade records the transactions affected by a cascade delete
func (m *LedgerMetrics) RecordCascade(entity string, transactionsAffected int64) {
	m.cascadeTransactions.WithLabelValues(entity).Add(float64(transactionsAffected))
}

// NoopMetrics is a MetricsRecorderInterface that records nothing. Tests use it
// to avoid duplicate Prometheus registration across suites.
type NoopMetrics struct{}

func (NoopMetrics) RecordMutation(operation, status string, duration time.Duration) {}
func (NoopMetrics) RecordCorrection(transactionType string)                         {}
func (NoopMetrics) RecordCascade(entity string, transactionsAffected int64)         {}
