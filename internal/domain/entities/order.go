package entities

import (
	"strings"
	"time"

	"atelier_lag/internal/domain/workflow"
)

// SaleProductPrefix marks a "sale" order: a finished product sold as is,
// which never goes through the production pipeline.
const SaleProductPrefix = "Vente | "

// CopyProductPrefix is prepended to the product name of a duplicated order.
const CopyProductPrefix = "Copie | "

// Order is an engraving order (commande) persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - status columns: statut_commande + statuts_actifs (see workflow.Ledger)
//   - version: incremented on every write, used as a conditional-write guard
//
// UnitsCompleted tracks how many of Quantity units are produced. It is filled
// automatically when the finishing stage is completed.
type Order struct {
	ID             string
	ProductName    string
	Description    string
	Quantity       int
	UnitsCompleted int
	Paid           bool
	Deadline       *time.Time
	OrderedAt      time.Time
	Ledger         workflow.Ledger
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsSaleProductName reports whether name carries the sale prefix. Leading
// spaces are ignored.
func IsSaleProductName(name string) bool {
	return strings.HasPrefix(strings.TrimLeft(name, " \t"), SaleProductPrefix)
}

func (o Order) IsSale() bool { return IsSaleProductName(o.ProductName) }

// Finished reports whether the order left the production board, either
// completed or cancelled.
func (o Order) Finished() bool {
	p := o.Ledger.Phase()
	return p == workflow.PhaseDone || p == workflow.PhaseCancelled
}

// CopyName is the product name given to a duplicate of o.
func (o Order) CopyName() string {
	name := o.ProductName
	if strings.TrimSpace(name) == "" {
		name = "Commande sans nom"
	}
	if !IsSaleProductName(name) {
		return CopyProductPrefix + name
	}
	base := strings.TrimLeft(strings.TrimLeft(name, " \t")[len(SaleProductPrefix):], " \t")
	return SaleProductPrefix + CopyProductPrefix + base
}
