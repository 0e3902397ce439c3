package interfaces

// IWorkflowMetrics records transition outcomes.
type IWorkflowMetrics interface {
	ObserveTransition(rule string)
	ObserveFailure(reason string)
}
