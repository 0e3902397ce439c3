package lock

import (
	"context"
	"sync"
	"time"

	"atelier_lag/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	keyPrefix            = "atelier:order-lock:"
	defaultRetryInterval = 50 * time.Millisecond
	releaseTimeout       = 2 * time.Second
)

// releaseScript deletes the key only if it still holds our token, so an
// expired lock taken over by another holder is left alone.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// RedisClient is the part of *redis.Client the lock uses.
type RedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisOrderLock is a per-order lock shared by every service instance.
// The key expires after ttl, so a crashed holder cannot block an order for
// longer than that.
type RedisOrderLock struct {
	client        RedisClient
	ttl           time.Duration
	wait          time.Duration
	retryInterval time.Duration
}

var _ interfaces.IOrderLocker = (*RedisOrderLock)(nil)

// NewRedisOrderLock returns a lock whose keys live for ttl. Lock waits at
// most ttl for a busy order.
func NewRedisOrderLock(client RedisClient, ttl time.Duration) *RedisOrderLock {
	return &RedisOrderLock{
		client:        client,
		ttl:           ttl,
		wait:          ttl,
		retryInterval: defaultRetryInterval,
	}
}

func (l *RedisOrderLock) Lock(ctx context.Context, orderID string) (func(), error) {
	key := keyPrefix + orderID
	token := uuid.NewString()

	deadline := time.NewTimer(l.wait)
	defer deadline.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, errors.Wrapf(err, "redis lock %s", key)
		}
		if ok {
			return l.releaser(ctx, key, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, interfaces.ErrLockNotAcquired
		case <-time.After(l.retryInterval):
		}
	}
}

func (l *RedisOrderLock) releaser(ctx context.Context, key, token string) func() {
	logger := zerolog.Ctx(ctx)
	var once sync.Once
	return func() {
		once.Do(func() {
			// The request context may already be cancelled here.
			rctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
			defer cancel()
			if err := l.client.Eval(rctx, releaseScript, []string{key}, token).Err(); err != nil {
				logger.Warn().Err(err).Str("key", key).Msg("[order][lock] release failed; key will expire")
			}
		})
	}
}
