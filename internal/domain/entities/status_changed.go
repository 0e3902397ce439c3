package entities

import (
	"time"

	"atelier_lag/internal/domain/workflow"
)

// StatusChanged is emitted after a status transition has been persisted.
// Stages are carried in their two-column form so that consumers do not need
// the workflow package.
type StatusChanged struct {
	OrderID        string           `json:"order_id"`
	Requested      workflow.Stage   `json:"requested"`
	Rule           string           `json:"rule"`
	FromStatus     workflow.Stage   `json:"from_statut_commande"`
	FromActive     []workflow.Stage `json:"from_statuts_actifs"`
	ToStatus       workflow.Stage   `json:"statut_commande"`
	ToActive       []workflow.Stage `json:"statuts_actifs"`
	UnitsCompleted int              `json:"units_completed"`
	Version        int64            `json:"version"`
	OccurredAt     time.Time        `json:"occurred_at"`
}

// NewStatusChanged describes the move of o from prev to its current ledger.
func NewStatusChanged(o Order, prev workflow.Ledger, requested workflow.Stage, rule workflow.Rule, at time.Time) StatusChanged {
	fromStatus, fromActive := prev.Columns()
	toStatus, toActive := o.Ledger.Columns()
	return StatusChanged{
		OrderID:        o.ID,
		Requested:      requested,
		Rule:           rule.String(),
		FromStatus:     fromStatus,
		FromActive:     fromActive,
		ToStatus:       toStatus,
		ToActive:       toActive,
		UnitsCompleted: o.UnitsCompleted,
		Version:        o.Version,
		OccurredAt:     at.UTC(),
	}
}
