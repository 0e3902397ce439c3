package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"atelier_lag/internal/domain/entities"
	"atelier_lag/internal/domain/workflow"
	"atelier_lag/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderID     = errors.New("invalid order id")
	ErrInvalidProductName = errors.New("invalid product name")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidUnits       = errors.New("units completed must be between 0 and quantity")
	ErrInvalidStage       = errors.New("invalid stage")
	ErrInvalidListView    = errors.New("invalid list view")
	ErrOrderConflict      = errors.New("order was modified concurrently")
	ErrOrderBusy          = errors.New("order is being updated")
)

const maxProductNameLen = 100

var tracer = otel.Tracer("atelier_lag/internal/usecase")

// ListView selects which orders a listing returns.
type ListView string

const (
	ListViewAll        ListView = ""
	ListViewInProgress ListView = "in_progress"
	ListViewFinished   ListView = "finished"
)

// CreateOrderInput carries the fields accepted at order creation.
// InitialStatus is a raw stage value; empty means the default start. A nil
// Quantity defaults to 1.
type CreateOrderInput struct {
	ProductName   string
	Description   string
	Quantity      *int
	Paid          bool
	Deadline      *time.Time
	OrderedAt     *time.Time
	InitialStatus string
}

// UpdateOrderInput is a partial edit of an order; nil fields are left as
// they are. ClearDeadline removes the deadline and wins over Deadline.
type UpdateOrderInput struct {
	ProductName    *string
	Description    *string
	Quantity       *int
	UnitsCompleted *int
	Paid           *bool
	Deadline       *time.Time
	ClearDeadline  bool
	OrderedAt      *time.Time
}

// StatusUpdate is the outcome of one status request. Rule is RuleNoop when
// the request left the order untouched.
type StatusUpdate struct {
	Order    entities.Order
	Previous workflow.Ledger
	Rule     workflow.Rule
}

// IOrderUseCase exposes engraving order operations.
//
//   - "Nouvelle commande" => CreateOrder()
//   - PUT /orders/statut (checkbox on the board) => UpdateStatus()
//   - "Dupliquer" => Duplicate()
//   - detail page edits (deadline, paid, +/- units counter) => UpdateOrder()
//   - "Supprimer" => DeleteOrder()
//   - "Commandes en cours" / "Commandes terminées" => List()

type IOrderUseCase interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	List(ctx context.Context, view ListView) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, id string, stage string) (StatusUpdate, error)
	Duplicate(ctx context.Context, id string) (entities.Order, error)
	UpdateOrder(ctx context.Context, id string, in UpdateOrderInput) (entities.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

type OrderUseCase struct {
	repo      interfaces.IOrderRepository
	locker    interfaces.IOrderLocker
	publisher interfaces.IStatusEventPublisher
	metrics   interfaces.IWorkflowMetrics
	now       func() time.Time
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(
	repo interfaces.IOrderRepository,
	locker interfaces.IOrderLocker,
	publisher interfaces.IStatusEventPublisher,
	metrics interfaces.IWorkflowMetrics,
) *OrderUseCase {
	return &OrderUseCase{
		repo:      repo,
		locker:    locker,
		publisher: publisher,
		metrics:   metrics,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (u *OrderUseCase) CreateOrder(ctx context.Context, in CreateOrderInput) (entities.Order, error) {
	ctx, span := tracer.Start(ctx, "OrderUseCase.CreateOrder")
	defer span.End()

	name, err := validProductName(in.ProductName)
	if err != nil {
		return entities.Order{}, err
	}
	quantity := 1
	if in.Quantity != nil {
		if *in.Quantity < 1 {
			return entities.Order{}, ErrInvalidQuantity
		}
		quantity = *in.Quantity
	}

	var initial workflow.Stage
	if strings.TrimSpace(in.InitialStatus) != "" {
		s, err := workflow.ParseStage(in.InitialStatus)
		if err != nil {
			return entities.Order{}, ErrInvalidStage
		}
		initial = s
	}

	now := u.now()
	orderedAt := now
	if in.OrderedAt != nil && !in.OrderedAt.IsZero() {
		orderedAt = in.OrderedAt.UTC()
	}

	o := entities.Order{
		ID:          uuid.NewString(),
		ProductName: name,
		Description: strings.TrimSpace(in.Description),
		Quantity:    quantity,
		Paid:        in.Paid,
		Deadline:    in.Deadline,
		OrderedAt:   orderedAt,
		Ledger:      workflow.Initial(initial, entities.IsSaleProductName(name)),
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	span.SetAttributes(attribute.String("order.id", o.ID), attribute.String("order.status", string(o.Ledger.Primary())))

	created, err := u.repo.Create(ctx, o)
	if err != nil {
		failSpan(span, err)
		zerolog.Ctx(ctx).Error().Err(err).Str("order_id", o.ID).Msg("[order][usecase] create failed")
		return entities.Order{}, err
	}
	zerolog.Ctx(ctx).Info().
		Str("order_id", created.ID).
		Str("status", string(created.Ledger.Primary())).
		Bool("sale", created.IsSale()).
		Msg("[order][usecase] order created")
	return created, nil
}

func (u *OrderUseCase) GetByID(ctx context.Context, id string) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidOrderID
	}

	o, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

// List returns the orders of a board view, earliest deadline first; orders
// without a deadline come last, oldest first.
func (u *OrderUseCase) List(ctx context.Context, view ListView) ([]entities.Order, error) {
	switch view {
	case ListViewAll, ListViewInProgress, ListViewFinished:
	default:
		return nil, ErrInvalidListView
	}

	all, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]entities.Order, 0, len(all))
	for _, o := range all {
		switch {
		case view == ListViewInProgress && o.Finished():
			continue
		case view == ListViewFinished && !o.Finished():
			continue
		}
		out = append(out, o)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.Deadline != nil && b.Deadline != nil && !a.Deadline.Equal(*b.Deadline):
			return a.Deadline.Before(*b.Deadline)
		case a.Deadline != nil && b.Deadline == nil:
			return true
		case a.Deadline == nil && b.Deadline != nil:
			return false
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return out, nil
}

// UpdateStatus applies one status request to an order. Load, transition and
// save run under the order lock, and the save is conditional on the loaded
// version, so a failed save leaves the stored order as it was.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, id string, stage string) (StatusUpdate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return StatusUpdate{}, ErrInvalidOrderID
	}
	requested, err := workflow.ParseStage(stage)
	if err != nil {
		return StatusUpdate{}, ErrInvalidStage
	}

	ctx, span := tracer.Start(ctx, "OrderUseCase.UpdateStatus", trace.WithAttributes(
		attribute.String("order.id", id),
		attribute.String("order.requested", string(requested)),
	))
	defer span.End()
	logger := zerolog.Ctx(ctx).With().Str("order_id", id).Str("requested", string(requested)).Logger()

	unlock, err := u.locker.Lock(ctx, id)
	if err != nil {
		failSpan(span, err)
		u.metrics.ObserveFailure("lock")
		logger.Warn().Err(err).Msg("[order][usecase] update-status lock failed")
		if errors.Is(err, interfaces.ErrLockNotAcquired) {
			return StatusUpdate{}, ErrOrderBusy
		}
		return StatusUpdate{}, err
	}
	defer unlock()

	o, err := u.repo.GetByID(ctx, id)
	if err != nil {
		failSpan(span, err)
		u.metrics.ObserveFailure("load")
		logger.Error().Err(err).Msg("[order][usecase] update-status load failed")
		return StatusUpdate{}, err
	}
	if o.ID == "" {
		return StatusUpdate{}, ErrOrderNotFound
	}

	prev := o.Ledger
	next, rule := workflow.Apply(prev, requested)
	span.SetAttributes(attribute.String("workflow.rule", rule.String()))
	u.metrics.ObserveTransition(rule.String())

	if rule == workflow.RuleNoop {
		logger.Warn().
			Str("ledger", prev.String()).
			Msg("[order][usecase] status request matched no transition; order left unchanged")
		return StatusUpdate{Order: o, Previous: prev, Rule: rule}, nil
	}

	o.Ledger = next
	if workflow.CompletesStage(prev, rule, workflow.StageToFinish) {
		o.UnitsCompleted = o.Quantity
	}
	o.UpdatedAt = u.now()

	saved, err := u.repo.SaveStatus(ctx, o, o.Version)
	if err != nil {
		failSpan(span, err)
		if errors.Is(err, interfaces.ErrVersionConflict) {
			u.metrics.ObserveFailure("conflict")
			logger.Warn().Int64("version", o.Version).Msg("[order][usecase] update-status version conflict")
			return StatusUpdate{}, ErrOrderConflict
		}
		u.metrics.ObserveFailure("save")
		logger.Error().Err(err).Msg("[order][usecase] update-status save failed")
		return StatusUpdate{}, err
	}
	if saved.ID == "" {
		return StatusUpdate{}, ErrOrderNotFound
	}

	logger.Info().
		Str("rule", rule.String()).
		Str("from", prev.String()).
		Str("to", saved.Ledger.String()).
		Msg("[order][usecase] status updated")

	if u.publisher != nil {
		evt := entities.NewStatusChanged(saved, prev, requested, rule, u.now())
		if err := u.publisher.PublishStatusChanged(ctx, evt); err != nil {
			u.metrics.ObserveFailure("publish")
			logger.Error().Err(err).Msg("[order][usecase] status event publish failed")
		}
	}

	return StatusUpdate{Order: saved, Previous: prev, Rule: rule}, nil
}

// Duplicate copies an order into a new one at the start of the pipeline.
// Copies of sale orders stay sales and start DONE.
func (u *OrderUseCase) Duplicate(ctx context.Context, id string) (entities.Order, error) {
	src, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}

	in := CreateOrderInput{
		ProductName: src.CopyName(),
		Description: src.Description,
	}
	if src.Quantity > 0 {
		q := src.Quantity
		in.Quantity = &q
	}
	if src.IsSale() {
		in.InitialStatus = string(workflow.StageDone)
	}

	dup, err := u.CreateOrder(ctx, in)
	if err != nil {
		return entities.Order{}, err
	}
	zerolog.Ctx(ctx).Info().Str("source_id", src.ID).Str("order_id", dup.ID).Msg("[order][usecase] order duplicated")
	return dup, nil
}

// UpdateOrder applies a partial edit under the order lock. The status
// columns are never touched here; they only move through UpdateStatus.
func (u *OrderUseCase) UpdateOrder(ctx context.Context, id string, in UpdateOrderInput) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidOrderID
	}

	ctx, span := tracer.Start(ctx, "OrderUseCase.UpdateOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()
	logger := zerolog.Ctx(ctx).With().Str("order_id", id).Logger()

	unlock, err := u.lock(ctx, id)
	if err != nil {
		failSpan(span, err)
		logger.Warn().Err(err).Msg("[order][usecase] update lock failed")
		return entities.Order{}, err
	}
	defer unlock()

	o, err := u.repo.GetByID(ctx, id)
	if err != nil {
		failSpan(span, err)
		logger.Error().Err(err).Msg("[order][usecase] update load failed")
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}

	if err := applyOrderEdit(&o, in); err != nil {
		return entities.Order{}, err
	}
	o.UpdatedAt = u.now()

	saved, err := u.repo.SaveDetails(ctx, o, o.Version)
	if err != nil {
		failSpan(span, err)
		if errors.Is(err, interfaces.ErrVersionConflict) {
			logger.Warn().Int64("version", o.Version).Msg("[order][usecase] update version conflict")
			return entities.Order{}, ErrOrderConflict
		}
		logger.Error().Err(err).Msg("[order][usecase] update save failed")
		return entities.Order{}, err
	}
	if saved.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}

	logger.Info().Int("units_completed", saved.UnitsCompleted).Bool("paid", saved.Paid).Msg("[order][usecase] order updated")
	return saved, nil
}

// DeleteOrder removes an order. It takes the order lock so that a delete
// never interleaves with a status update of the same order.
func (u *OrderUseCase) DeleteOrder(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidOrderID
	}

	ctx, span := tracer.Start(ctx, "OrderUseCase.DeleteOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	unlock, err := u.lock(ctx, id)
	if err != nil {
		failSpan(span, err)
		return err
	}
	defer unlock()

	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		failSpan(span, err)
		zerolog.Ctx(ctx).Error().Err(err).Str("order_id", id).Msg("[order][usecase] delete failed")
		return err
	}
	if deleted.ID == "" {
		return ErrOrderNotFound
	}
	zerolog.Ctx(ctx).Info().Str("order_id", id).Str("status", string(deleted.Ledger.Primary())).Msg("[order][usecase] order deleted")
	return nil
}

func (u *OrderUseCase) lock(ctx context.Context, id string) (func(), error) {
	unlock, err := u.locker.Lock(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrLockNotAcquired) {
			return nil, ErrOrderBusy
		}
		return nil, err
	}
	return unlock, nil
}

func applyOrderEdit(o *entities.Order, in UpdateOrderInput) error {
	if in.ProductName != nil {
		name, err := validProductName(*in.ProductName)
		if err != nil {
			return err
		}
		o.ProductName = name
	}
	if in.Description != nil {
		o.Description = strings.TrimSpace(*in.Description)
	}
	if in.Quantity != nil {
		if *in.Quantity < 1 {
			return ErrInvalidQuantity
		}
		o.Quantity = *in.Quantity
	}
	if in.UnitsCompleted != nil {
		o.UnitsCompleted = *in.UnitsCompleted
	}
	if in.Quantity != nil || in.UnitsCompleted != nil {
		if o.UnitsCompleted < 0 || o.UnitsCompleted > o.Quantity {
			return ErrInvalidUnits
		}
	}
	if in.Paid != nil {
		o.Paid = *in.Paid
	}
	switch {
	case in.ClearDeadline:
		o.Deadline = nil
	case in.Deadline != nil:
		d := in.Deadline.UTC()
		o.Deadline = &d
	}
	if in.OrderedAt != nil && !in.OrderedAt.IsZero() {
		o.OrderedAt = in.OrderedAt.UTC()
	}
	return nil
}

func validProductName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" || utf8.RuneCountInString(name) > maxProductNameLen {
		return "", ErrInvalidProductName
	}
	return name, nil
}

func failSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
