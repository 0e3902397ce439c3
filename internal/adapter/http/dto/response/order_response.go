package response

import (
	"time"

	"atelier_lag/internal/domain/entities"
	"atelier_lag/internal/domain/workflow"
	"atelier_lag/internal/usecase"
)

type OrderResponse struct {
	ID             string     `json:"id"`
	ProductName    string     `json:"product_name"`
	Description    string     `json:"description"`
	Quantity       int        `json:"quantity"`
	UnitsCompleted int        `json:"units_completed"`
	Paid           bool       `json:"paid"`
	IsSale         bool       `json:"is_sale"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	OrderedAt      time.Time  `json:"ordered_at"`
	Status         string     `json:"statut_commande"`
	StatusLabel    string     `json:"statut_label"`
	ActiveStatuses []string   `json:"statuts_actifs"`
	Version        int64      `json:"version"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func FromOrder(o entities.Order) OrderResponse {
	status, active := o.Ledger.Columns()
	return OrderResponse{
		ID:             o.ID,
		ProductName:    o.ProductName,
		Description:    o.Description,
		Quantity:       o.Quantity,
		UnitsCompleted: o.UnitsCompleted,
		Paid:           o.Paid,
		IsSale:         o.IsSale(),
		Deadline:       o.Deadline,
		OrderedAt:      o.OrderedAt,
		Status:         string(status),
		StatusLabel:    status.Label(),
		ActiveStatuses: stageStrings(active),
		Version:        o.Version,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func FromOrders(orders []entities.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}

// StatusUpdateResponse reports the order after a status request and the
// transition rule that handled it ("noop" when nothing changed).
type StatusUpdateResponse struct {
	Order    OrderResponse `json:"order"`
	Rule     string        `json:"rule"`
	Changed  bool          `json:"changed"`
	Previous string        `json:"previous_statut_commande"`
}

func FromStatusUpdate(u usecase.StatusUpdate) StatusUpdateResponse {
	return StatusUpdateResponse{
		Order:    FromOrder(u.Order),
		Rule:     u.Rule.String(),
		Changed:  u.Rule != workflow.RuleNoop,
		Previous: string(u.Previous.Primary()),
	}
}

type StageStateResponse struct {
	Stage    string `json:"stage"`
	Label    string `json:"label"`
	Checked  bool   `json:"checked"`
	Active   bool   `json:"active"`
	Current  bool   `json:"current"`
	Disabled bool   `json:"disabled"`
}

// BoardResponse is the checkbox board of one order.
type BoardResponse struct {
	OrderID         string               `json:"order_id"`
	Status          string               `json:"statut_commande"`
	ActiveStatuses  []string             `json:"statuts_actifs"`
	Stages          []StageStateResponse `json:"stages"`
	PrecedingStages []string             `json:"preceding_stages"`
}

func FromBoard(o entities.Order) BoardResponse {
	status, active := o.Ledger.Columns()
	board := workflow.Board(o.Ledger)
	stages := make([]StageStateResponse, 0, len(board))
	for _, s := range board {
		stages = append(stages, StageStateResponse{
			Stage:    string(s.Stage),
			Label:    s.Label,
			Checked:  s.Checked,
			Active:   s.Active,
			Current:  s.Current,
			Disabled: s.Disabled,
		})
	}
	return BoardResponse{
		OrderID:         o.ID,
		Status:          string(status),
		ActiveStatuses:  stageStrings(active),
		Stages:          stages,
		PrecedingStages: stageStrings(workflow.PrecedingStages(o.Ledger)),
	}
}

// stageStrings never returns nil so that lists encode as [].
func stageStrings(stages []workflow.Stage) []string {
	out := make([]string, 0, len(stages))
	for _, s := range stages {
		out = append(out, string(s))
	}
	return out
}
