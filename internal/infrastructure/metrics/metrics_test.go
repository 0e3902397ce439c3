package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestWorkflowMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWorkflowMetrics(reg)

	if n := testutil.CollectAndCount(m.transitions); n != 11 {
		t.Fatalf("expected every rule pre-registered, got %d series", n)
	}

	m.ObserveTransition("advance")
	m.ObserveTransition("advance")
	m.ObserveTransition("noop")
	m.ObserveFailure("conflict")

	if v := testutil.ToFloat64(m.transitions.WithLabelValues("advance")); v != 2 {
		t.Fatalf("expected 2 advances, got %v", v)
	}
	if v := testutil.ToFloat64(m.transitions.WithLabelValues("noop")); v != 1 {
		t.Fatalf("expected 1 noop, got %v", v)
	}
	if v := testutil.ToFloat64(m.failures.WithLabelValues("conflict")); v != 1 {
		t.Fatalf("expected 1 conflict, got %v", v)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	if !names["atelier_order_transitions_total"] || !names["atelier_order_status_update_failures_total"] {
		t.Fatalf("unexpected metric names: %v", names)
	}
}
