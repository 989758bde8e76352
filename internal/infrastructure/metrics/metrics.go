package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Processing metrics
	TransactionsApplied *prometheus.CounterVec
	ReferencesIgnored   *prometheus.CounterVec
	FatalErrors         prometheus.Counter
	RunDuration         prometheus.Histogram

	// Account metrics
	AccountsCreated prometheus.Counter
	AccountsLocked  prometheus.Counter

	// Export metrics
	ExportErrors *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics against reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TransactionsApplied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paybatch_transactions_applied_total",
				Help: "Total number of transactions applied by kind",
			},
			[]string{"kind"},
		),
		ReferencesIgnored: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paybatch_references_ignored_total",
				Help: "Total number of dispute-lifecycle records skipped by reason",
			},
			[]string{"reason"},
		),
		FatalErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "paybatch_fatal_errors_total",
			Help: "Total number of errors that aborted a run",
		}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "paybatch_run_duration_seconds",
			Help:    "Duration of batch runs",
			Buckets: prometheus.DefBuckets,
		}),
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "paybatch_accounts_created_total",
			Help: "Total number of client accounts created",
		}),
		AccountsLocked: factory.NewCounter(prometheus.CounterOpts{
			Name: "paybatch_accounts_locked_total",
			Help: "Total number of accounts locked by chargebacks",
		}),
		ExportErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paybatch_export_errors_total",
				Help: "Total number of export sink failures by sink",
			},
			[]string{"sink"},
		),
	}
}

// TransactionApplied implements usecase.MetricsRecorder.
func (m *Metrics) TransactionApplied(kind string) {
	m.TransactionsApplied.WithLabelValues(kind).Inc()
}

// ReferenceIgnored implements usecase.MetricsRecorder.
func (m *Metrics) ReferenceIgnored(reason string) {
	m.ReferencesIgnored.WithLabelValues(reason).Inc()
}

// AccountCreated implements usecase.MetricsRecorder.
func (m *Metrics) AccountCreated() {
	m.AccountsCreated.Inc()
}

// AccountLocked implements usecase.MetricsRecorder.
func (m *Metrics) AccountLocked() {
	m.AccountsLocked.Inc()
}
