package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_RecorderMethods(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.TransactionApplied("deposit")
	m.TransactionApplied("deposit")
	m.TransactionApplied("dispute")
	m.ReferenceIgnored("unknown_tx")
	m.AccountCreated()
	m.AccountLocked()

	if got := testutil.ToFloat64(m.TransactionsApplied.WithLabelValues("deposit")); got != 2 {
		t.Errorf("expected 2 deposits counted, got %v", got)
	}
	if got := testutil.ToFloat64(m.TransactionsApplied.WithLabelValues("dispute")); got != 1 {
		t.Errorf("expected 1 dispute counted, got %v", got)
	}
	if got := testutil.ToFloat64(m.ReferencesIgnored.WithLabelValues("unknown_tx")); got != 1 {
		t.Errorf("expected 1 ignored reference, got %v", got)
	}
	if got := testutil.ToFloat64(m.AccountsCreated); got != 1 {
		t.Errorf("expected 1 account created, got %v", got)
	}
	if got := testutil.ToFloat64(m.AccountsLocked); got != 1 {
		t.Errorf("expected 1 account locked, got %v", got)
	}
}

func TestMetrics_RegistersAgainstCustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.FatalErrors.Inc()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected registered metric families")
	}
}
