package interfaces

import (
	"context"
	"errors"

	"atelier_lag/internal/domain/entities"
)

// ErrVersionConflict is returned by SaveStatus and SaveDetails when the
// stored version no longer matches the expected one.
var ErrVersionConflict = errors.New("order version conflict")

// IOrderRepository abstracts DynamoDB persistence for Order.
//
// The service must be able to:
//   - create an order (new or duplicated)
//   - load one order by id, or every order for the board listings
//   - write back the status columns (and units completed) atomically, only
//     if nobody wrote the order in between
//   - write back the editable fields under the same guard
//   - delete an order
//
// Lookups that find nothing return a zero Order and a nil error.

type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	List(ctx context.Context) ([]entities.Order, error)
	SaveStatus(ctx context.Context, o entities.Order, expectedVersion int64) (entities.Order, error)
	SaveDetails(ctx context.Context, o entities.Order, expectedVersion int64) (entities.Order, error)
	Delete(ctx context.Context, id string) (entities.Order, error)
}
