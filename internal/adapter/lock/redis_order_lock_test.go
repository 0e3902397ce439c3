package lock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"atelier_lag/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

type fakeRedis struct {
	mu      sync.Mutex
	keys    map[string]string
	setErr  error
	evalErr error
	evals   int
}

func newFakeRedis() *fakeRedis { return &fakeRedis{keys: map[string]string{}} }

func (f *fakeRedis) SetNX(_ context.Context, key string, value interface{}, _ time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return redis.NewBoolResult(false, f.setErr)
	}
	if _, ok := f.keys[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.keys[key] = value.(string)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Eval(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.evals++
	if f.evalErr != nil {
		return redis.NewCmdResult(nil, f.evalErr)
	}
	if f.keys[keys[0]] == args[0].(string) {
		delete(f.keys, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}
	return redis.NewCmdResult(int64(0), nil)
}

func (f *fakeRedis) holder(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.keys[key]
	return v, ok
}

func newTestRedisLock(client RedisClient, wait time.Duration) *RedisOrderLock {
	l := NewRedisOrderLock(client, time.Second)
	l.wait = wait
	l.retryInterval = 5 * time.Millisecond
	return l
}

func TestRedisOrderLock(t *testing.T) {
	t.Run("acquire and release", func(t *testing.T) {
		rc := newFakeRedis()
		l := newTestRedisLock(rc, 50*time.Millisecond)

		unlock, err := l.Lock(context.Background(), "o-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := rc.holder(keyPrefix + "o-1"); !ok {
			t.Fatalf("expected lock key")
		}
		unlock()
		unlock()
		if _, ok := rc.holder(keyPrefix + "o-1"); ok {
			t.Fatalf("expected lock key removed")
		}
		if rc.evals != 1 {
			t.Fatalf("expected a single release, got %d", rc.evals)
		}
	})

	t.Run("busy order times out", func(t *testing.T) {
		rc := newFakeRedis()
		l := newTestRedisLock(rc, 30*time.Millisecond)
		unlock, err := l.Lock(context.Background(), "o-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer unlock()

		if _, err := l.Lock(context.Background(), "o-1"); !errors.Is(err, interfaces.ErrLockNotAcquired) {
			t.Fatalf("expected ErrLockNotAcquired, got %v", err)
		}
	})

	t.Run("waiter gets the lock after release", func(t *testing.T) {
		rc := newFakeRedis()
		l := newTestRedisLock(rc, time.Second)
		unlock, err := l.Lock(context.Background(), "o-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		time.AfterFunc(20*time.Millisecond, unlock)

		unlock2, err := l.Lock(context.Background(), "o-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		unlock2()
	})

	t.Run("other orders are independent", func(t *testing.T) {
		rc := newFakeRedis()
		l := newTestRedisLock(rc, 10*time.Millisecond)
		u1, err := l.Lock(context.Background(), "o-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer u1()
		u2, err := l.Lock(context.Background(), "o-2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		u2()
	})

	t.Run("release does not delete a lock taken over by someone else", func(t *testing.T) {
		rc := newFakeRedis()
		l := newTestRedisLock(rc, 10*time.Millisecond)
		unlock, err := l.Lock(context.Background(), "o-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		rc.mu.Lock()
		rc.keys[keyPrefix+"o-1"] = "other-holder"
		rc.mu.Unlock()

		unlock()
		if v, _ := rc.holder(keyPrefix + "o-1"); v != "other-holder" {
			t.Fatalf("expected other holder kept, got %q", v)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		rc := newFakeRedis()
		l := newTestRedisLock(rc, time.Second)
		unlock, _ := l.Lock(context.Background(), "o-1")
		defer unlock()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := l.Lock(ctx, "o-1"); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("redis error", func(t *testing.T) {
		rc := newFakeRedis()
		rc.setErr = errors.New("connection refused")
		l := newTestRedisLock(rc, 10*time.Millisecond)
		_, err := l.Lock(context.Background(), "o-1")
		if err == nil || errors.Is(err, interfaces.ErrLockNotAcquired) {
			t.Fatalf("expected redis error, got %v", err)
		}
	})

	t.Run("release error is swallowed", func(t *testing.T) {
		rc := newFakeRedis()
		rc.evalErr = errors.New("timeout")
		l := newTestRedisLock(rc, 10*time.Millisecond)
		unlock, err := l.Lock(context.Background(), "o-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		unlock()
	})
}
