package metrics

import (
	"atelier_lag/internal/domain/workflow"
	"atelier_lag/internal/usecase/interfaces"

	"github.com/prometheus/client_golang/prometheus"
)

// WorkflowMetrics counts status requests by the rule that handled them and
// failed status updates by cause.
type WorkflowMetrics struct {
	transitions *prometheus.CounterVec
	failures    *prometheus.CounterVec
}

var _ interfaces.IWorkflowMetrics = (*WorkflowMetrics)(nil)

// NewWorkflowMetrics registers the counters on reg.
func NewWorkflowMetrics(reg prometheus.Registerer) *WorkflowMetrics {
	m := &WorkflowMetrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "atelier",
			Subsystem: "order",
			Name:      "transitions_total",
			Help:      "Status requests applied to orders, by transition rule.",
		}, []string{"rule"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "atelier",
			Subsystem: "order",
			Name:      "status_update_failures_total",
			Help:      "Status updates that failed, by reason (lock, load, conflict, save, publish).",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.transitions, m.failures)

	// Export every rule from the start so that rates work before the first hit.
	for _, r := range workflow.Rules() {
		m.transitions.WithLabelValues(r.String())
	}
	return m
}

func (m *WorkflowMetrics) ObserveTransition(rule string) {
	m.transitions.WithLabelValues(rule).Inc()
}

func (m *WorkflowMetrics) ObserveFailure(reason string) {
	m.failures.WithLabelValues(reason).Inc()
}
