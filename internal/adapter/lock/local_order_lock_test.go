package lock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"atelier_lag/internal/usecase/interfaces"
)

func TestLocalOrderLock(t *testing.T) {
	t.Run("serialises one order", func(t *testing.T) {
		l := NewLocalOrderLock(time.Second)
		var (
			mu      sync.Mutex
			inside  int
			maxSeen int
			wg      sync.WaitGroup
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock, err := l.Lock(context.Background(), "o-1")
				if err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()
				time.Sleep(2 * time.Millisecond)
				mu.Lock()
				inside--
				mu.Unlock()
				unlock()
			}()
		}
		wg.Wait()
		if maxSeen != 1 {
			t.Fatalf("expected at most one holder, saw %d", maxSeen)
		}
		if len(l.slots) != 0 {
			t.Fatalf("expected slots cleaned up, got %d", len(l.slots))
		}
	})

	t.Run("busy order times out", func(t *testing.T) {
		l := NewLocalOrderLock(20 * time.Millisecond)
		unlock, err := l.Lock(context.Background(), "o-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer unlock()

		if _, err := l.Lock(context.Background(), "o-1"); !errors.Is(err, interfaces.ErrLockNotAcquired) {
			t.Fatalf("expected ErrLockNotAcquired, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		l := NewLocalOrderLock(time.Second)
		unlock, _ := l.Lock(context.Background(), "o-1")
		defer unlock()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := l.Lock(ctx, "o-1"); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("double release is harmless", func(t *testing.T) {
		l := NewLocalOrderLock(time.Second)
		unlock, _ := l.Lock(context.Background(), "o-1")
		unlock()
		unlock()
		unlock2, err := l.Lock(context.Background(), "o-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		unlock2()
	})
}
