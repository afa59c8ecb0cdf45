package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	l := NewLedger(reg)

	l.Observe("CREDIT", OutcomeApplied, 1000, time.Millisecond)
	l.Observe("DEBIT", OutcomeApplied, 400, time.Millisecond)
	l.Observe("DEBIT", OutcomeRejected, 1500, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(l.transactions.WithLabelValues("CREDIT", OutcomeApplied)))
	assert.Equal(t, 1.0, testutil.ToFloat64(l.transactions.WithLabelValues("DEBIT", OutcomeRejected)))
	assert.Equal(t, 400.0, testutil.ToFloat64(l.volume.WithLabelValues("DEBIT")))
	assert.Equal(t, 1, testutil.CollectAndCount(l.duration))
}

func TestNilLedgerIsSafe(t *testing.T) {
	var l *Ledger
	assert.NotPanics(t, func() { l.Observe("CREDIT", OutcomeApplied, 1, 0) })
}
