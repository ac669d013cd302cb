package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/smallbiznis/paymirror/internal/config"
)

const keyTenantQueries = "queries:tenant:%s"

// QueryLimiter throttles read traffic per tenant so one noisy integration
// cannot starve the shared mirror. Disabled (nil) means every request passes.
type QueryLimiter struct {
	bucket *TokenBucket
	rate   float64
	burst  int
}

func NewQueryLimiter(cfg config.Config, client *redis.Client) *QueryLimiter {
	if !cfg.RateLimit.Enabled || client == nil {
		return nil
	}
	rate := cfg.RateLimit.TenantRate
	burst := cfg.RateLimit.TenantBurst
	if rate <= 0 || burst <= 0 {
		return nil
	}
	return &QueryLimiter{
		bucket: NewTokenBucket(client),
		rate:   rate,
		burst:  burst,
	}
}

func (l *QueryLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

func (l *QueryLimiter) AllowTenant(ctx context.Context, tenantID string) (bool, time.Duration, error) {
	if !l.Enabled() {
		return true, 0, nil
	}
	key := fmt.Sprintf(keyTenantQueries, strings.TrimSpace(tenantID))
	return l.bucket.Allow(ctx, key, l.rate, l.burst)
}
