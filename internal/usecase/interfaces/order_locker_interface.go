package interfaces

import (
	"context"
	"errors"
)

var ErrLockNotAcquired = errors.New("order lock not acquired")

// IOrderLocker serialises status updates of one order. Lock blocks until the
// lock is held, the wait budget is spent (ErrLockNotAcquired) or ctx is done.
// The returned func releases the lock and is safe to call once.
type IOrderLocker interface {
	Lock(ctx context.Context, orderID string) (func(), error)
}
