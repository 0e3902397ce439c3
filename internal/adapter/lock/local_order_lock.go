package lock

import (
	"context"
	"sync"
	"time"

	"atelier_lag/internal/usecase/interfaces"
)

// LocalOrderLock serialises updates of one order inside this process. It is
// used when no Redis address is configured, i.e. a single instance.
type LocalOrderLock struct {
	wait time.Duration

	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

var _ interfaces.IOrderLocker = (*LocalOrderLock)(nil)

func NewLocalOrderLock(wait time.Duration) *LocalOrderLock {
	return &LocalOrderLock{wait: wait, slots: map[string]*slot{}}
}

func (l *LocalOrderLock) Lock(ctx context.Context, orderID string) (func(), error) {
	s := l.acquireSlot(orderID)

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.releaseSlot(orderID)
		return nil, ctx.Err()
	case <-timer.C:
		l.releaseSlot(orderID)
		return nil, interfaces.ErrLockNotAcquired
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.releaseSlot(orderID)
		})
	}, nil
}

func (l *LocalOrderLock) acquireSlot(orderID string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[orderID]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[orderID] = s
	}
	s.refs++
	return s
}

func (l *LocalOrderLock) releaseSlot(orderID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.slots[orderID]
	s.refs--
	if s.refs == 0 {
		delete(l.slots, orderID)
	}
}
