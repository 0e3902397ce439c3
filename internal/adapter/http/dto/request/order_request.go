package request

import (
	"errors"
	"strings"
	"time"

	"atelier_lag/internal/usecase"
)

var (
	ErrInvalidDeadline = errors.New("invalid deadline")
)

// CreateOrderRequest is the body of POST /orders. The French field names
// used by the workshop front end are accepted as aliases.
type CreateOrderRequest struct {
	ProductName   string `json:"product_name"`
	NomCommande   string `json:"nom_commande"`
	Description   string `json:"description"`
	Quantity      *int   `json:"quantity"`
	Quantite      *int   `json:"quantite"`
	Paid          bool   `json:"paid"`
	Deadline      string `json:"deadline"`
	OrderedAt     string `json:"ordered_at"`
	InitialStatus string `json:"initial_status"`
	StatutInitial string `json:"statut_initial"`
}

func (r CreateOrderRequest) ResolveProductName() string {
	return firstNonBlank(r.ProductName, r.NomCommande)
}

// ResolveQuantity returns nil when no quantity is given; the use case
// applies the default.
func (r CreateOrderRequest) ResolveQuantity() *int {
	return firstSet(r.Quantity, r.Quantite)
}

func (r CreateOrderRequest) ResolveInitialStatus() string {
	return firstNonBlank(r.InitialStatus, r.StatutInitial)
}

// ToInput builds the use case input. Dates accept RFC3339 or YYYY-MM-DD.
func (r CreateOrderRequest) ToInput() (usecase.CreateOrderInput, error) {
	deadline, err := parseOptionalDate(r.Deadline)
	if err != nil {
		return usecase.CreateOrderInput{}, err
	}
	orderedAt, err := parseOptionalDate(r.OrderedAt)
	if err != nil {
		return usecase.CreateOrderInput{}, err
	}
	return usecase.CreateOrderInput{
		ProductName:   r.ResolveProductName(),
		Description:   r.Description,
		Quantity:      r.ResolveQuantity(),
		Paid:          r.Paid,
		Deadline:      deadline,
		OrderedAt:     orderedAt,
		InitialStatus: r.ResolveInitialStatus(),
	}, nil
}

// UpdateOrderRequest is the body of PATCH /orders/:id. Absent fields are
// left unchanged; an empty deadline string clears the deadline.
type UpdateOrderRequest struct {
	ProductName      *string `json:"product_name"`
	NomCommande      *string `json:"nom_commande"`
	Description      *string `json:"description"`
	Quantity         *int    `json:"quantity"`
	Quantite         *int    `json:"quantite"`
	UnitsCompleted   *int    `json:"units_completed"`
	QuantiteRealisee *int    `json:"quantite_realisee"`
	Paid             *bool   `json:"paid"`
	Paye             *bool   `json:"paye"`
	Deadline         *string `json:"deadline"`
	OrderedAt        *string `json:"ordered_at"`
	DateCommande     *string `json:"date_commande"`
}

func (r UpdateOrderRequest) ToInput() (usecase.UpdateOrderInput, error) {
	in := usecase.UpdateOrderInput{
		ProductName:    firstSet(r.ProductName, r.NomCommande),
		Description:    r.Description,
		Quantity:       firstSet(r.Quantity, r.Quantite),
		UnitsCompleted: firstSet(r.UnitsCompleted, r.QuantiteRealisee),
		Paid:           firstSet(r.Paid, r.Paye),
	}

	if r.Deadline != nil {
		d, err := parseOptionalDate(*r.Deadline)
		if err != nil {
			return usecase.UpdateOrderInput{}, err
		}
		in.Deadline = d
		in.ClearDeadline = d == nil
	}
	if raw := firstSet(r.OrderedAt, r.DateCommande); raw != nil {
		d, err := parseOptionalDate(*raw)
		if err != nil {
			return usecase.UpdateOrderInput{}, err
		}
		in.OrderedAt = d
	}
	return in, nil
}

// UpdateStatusRequest is the body of PUT /orders/statut: the stage the user
// clicked on the board of one order.
type UpdateStatusRequest struct {
	OrderID    string `json:"order_id"`
	IDCommande string `json:"id_commande"`
	Stage      string `json:"stage"`
	Statut     string `json:"statut"`
}

func (r UpdateStatusRequest) ResolveOrderID() string {
	return firstNonBlank(r.OrderID, r.IDCommande)
}

func (r UpdateStatusRequest) ResolveStage() string {
	return firstNonBlank(r.Stage, r.Statut)
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func firstSet[T any](values ...*T) *T {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, ErrInvalidDeadline
	}
	return &t, nil
}
