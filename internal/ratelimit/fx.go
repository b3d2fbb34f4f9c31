package ratelimit

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/smallbiznis/galeri/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewLocker wires the advisory lock from configuration. Without a REDIS_ADDR
// the lock degrades to a no-op grant.
func NewLocker(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) Locker {
	if cfg.RedisAddr == "" {
		log.Info("redis disabled, advisory locks are no-op")
		return NewNoopLocker()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return NewRedisLocker(client)
}

var Module = fx.Module("ratelimit",
	fx.Provide(NewLocker),
)
