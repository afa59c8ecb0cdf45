// Package metrics exposes Prometheus collectors for the ledger.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels
const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Ledger counts applyTransaction outcomes
type Ledger struct {
	transactions *prometheus.CounterVec
	volume       *prometheus.CounterVec
	duration     prometheus.Histogram
}

// NewLedger registers the ledger collectors on reg
func NewLedger(reg prometheus.Registerer) *Ledger {
	f := promauto.With(reg)
	return &Ledger{
		transactions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "digiwallet",
			Name:      "transactions_total",
			Help:      "Transactions submitted to the balance engine, by type and outcome.",
		}, []string{"type", "outcome"}),
		volume: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "digiwallet",
			Name:      "transaction_volume_total",
			Help:      "Sum of applied transaction amounts, by type.",
		}, []string{"type"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "digiwallet",
			Name:      "apply_transaction_seconds",
			Help:      "Latency of applyTransaction including the database round trips.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Observe records one applyTransaction call. amount is only added to the
// volume when the outcome is OutcomeApplied.
func (l *Ledger) Observe(txType, outcome string, amount float64, took time.Duration) {
	if l == nil {
		return
	}
	l.transactions.WithLabelValues(txType, outcome).Inc()
	if outcome == OutcomeApplied {
		l.volume.WithLabelValues(txType).Add(amount)
	}
	l.duration.Observe(took.Seconds())
}
