package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/paymirror/internal/config"
)

// NewRedisClient opens the shared cache client. The cache is an optional
// capability: no configured address means a nil client, and an unreachable
// server is logged, not fatal. Callers fall back to computing.
func NewRedisClient(cfg config.Config, log *zap.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Info("cache disabled, no redis address configured")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Warn("redis unreachable at startup, caching stays best-effort", zap.Error(err))
	}
	return client
}

func registerHooks(lc fx.Lifecycle, client *redis.Client) {
	if client == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
}

var Module = fx.Module("cache",
	fx.Provide(NewRedisClient),
	fx.Invoke(registerHooks),
)
