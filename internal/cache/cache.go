package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// GetOrCompute memoizes compute behind the shared redis client. The cache is
// never load-bearing: a nil client, a read failure, or a write failure all
// degrade to a straight compute, logged at warn. Concurrent callers may race
// to compute and write the same key; compute is pure, so the redundant write
// is benign. The returned bool reports whether the value came from the cache.
func GetOrCompute[T any](ctx context.Context, client *redis.Client, log *zap.Logger, key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, bool, error) {
	if client == nil {
		value, err := compute(ctx)
		return value, false, err
	}

	payload, err := client.Get(ctx, key).Bytes()
	if err == nil {
		var cached T
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, true, nil
		}
		log.Warn("discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
	} else if !errors.Is(err, redis.Nil) {
		log.Warn("cache read failed, computing", zap.String("key", key), zap.Error(err))
	}

	value, err := compute(ctx)
	if err != nil {
		return value, false, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		log.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return value, false, nil
	}
	if err := client.Set(ctx, key, encoded, ttl).Err(); err != nil {
		log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return value, false, nil
}
