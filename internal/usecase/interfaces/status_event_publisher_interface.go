package interfaces

import (
	"context"

	"atelier_lag/internal/domain/entities"
)

// IStatusEventPublisher announces applied status changes to other systems
// (e.g. Kafka). Publication is best effort: the status change is already
// persisted when it is called.
type IStatusEventPublisher interface {
	PublishStatusChanged(ctx context.Context, evt entities.StatusChanged) error
}
