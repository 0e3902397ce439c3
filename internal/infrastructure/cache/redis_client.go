package cache

import (
	"context"
	"time"

	"atelier_lag/internal/infrastructure/config"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns a client for the lock store, or nil when REDIS_ADDR
// is not set. The server is pinged once so that a bad address fails at
// startup rather than on the first status update.
func ConnectRedis(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "redis ping %s", cfg.RedisAddr)
	}
	return client, nil
}
