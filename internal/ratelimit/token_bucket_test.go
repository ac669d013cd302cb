package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/smallbiznis/paymirror/internal/config"
)

func setupBucket(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return srv, client
}

func TestAllowConsumesBurst(t *testing.T) {
	_, client := setupBucket(t)
	bucket := NewTokenBucket(client)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, _, err := bucket.Allow(ctx, "k", 1, 3)
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		if !allowed {
			t.Fatalf("request %d denied inside burst", i)
		}
	}

	allowed, retryAfter, err := bucket.Allow(ctx, "k", 1, 3)
	if err != nil {
		t.Fatalf("over burst: %v", err)
	}
	if allowed {
		t.Fatal("request allowed with an empty bucket")
	}
	if retryAfter <= 0 || retryAfter > time.Second {
		t.Fatalf("retry after = %v", retryAfter)
	}
}

func TestAllowIsolatesKeys(t *testing.T) {
	_, client := setupBucket(t)
	bucket := NewTokenBucket(client)
	ctx := context.Background()

	if allowed, _, _ := bucket.Allow(ctx, "tenant-a", 1, 1); !allowed {
		t.Fatal("tenant-a first request denied")
	}
	if allowed, _, _ := bucket.Allow(ctx, "tenant-a", 1, 1); allowed {
		t.Fatal("tenant-a second request allowed")
	}
	if allowed, _, _ := bucket.Allow(ctx, "tenant-b", 1, 1); !allowed {
		t.Fatal("tenant-b shares tenant-a's bucket")
	}
}

func TestAllowValidatesArguments(t *testing.T) {
	_, client := setupBucket(t)
	bucket := NewTokenBucket(client)
	ctx := context.Background()

	if _, _, err := bucket.Allow(ctx, "", 1, 1); err == nil {
		t.Fatal("empty key accepted")
	}
	if _, _, err := bucket.Allow(ctx, "k", 0, 1); err == nil {
		t.Fatal("zero rate accepted")
	}
	if _, _, err := bucket.Allow(ctx, "k", 1, 0); err == nil {
		t.Fatal("zero burst accepted")
	}

	var nilBucket *TokenBucket
	if _, _, err := nilBucket.Allow(ctx, "k", 1, 1); err == nil {
		t.Fatal("nil bucket accepted")
	}
}

func TestAllowSurfacesRedisErrors(t *testing.T) {
	srv, client := setupBucket(t)
	bucket := NewTokenBucket(client)
	srv.Close()

	if _, _, err := bucket.Allow(context.Background(), "k", 1, 1); err == nil {
		t.Fatal("expected an error from a dead server")
	}
}

func TestNewQueryLimiterDisabled(t *testing.T) {
	_, client := setupBucket(t)

	if l := NewQueryLimiter(config.Config{}, client); l.Enabled() {
		t.Fatal("limiter enabled without config")
	}
	cfg := config.Config{RateLimit: config.RateLimitConfig{Enabled: true, TenantRate: 10, TenantBurst: 20}}
	if l := NewQueryLimiter(cfg, nil); l.Enabled() {
		t.Fatal("limiter enabled without a client")
	}

	var nilLimiter *QueryLimiter
	allowed, _, err := nilLimiter.AllowTenant(context.Background(), "1")
	if err != nil || !allowed {
		t.Fatalf("nil limiter must pass everything: allowed=%v err=%v", allowed, err)
	}
}

func TestQueryLimiterThrottlesPerTenant(t *testing.T) {
	_, client := setupBucket(t)
	cfg := config.Config{RateLimit: config.RateLimitConfig{Enabled: true, TenantRate: 1, TenantBurst: 2}}
	limiter := NewQueryLimiter(cfg, client)
	if !limiter.Enabled() {
		t.Fatal("limiter should be enabled")
	}
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if allowed, _, err := limiter.AllowTenant(ctx, "42"); err != nil || !allowed {
			t.Fatalf("request %d: allowed=%v err=%v", i, allowed, err)
		}
	}
	allowed, retryAfter, err := limiter.AllowTenant(ctx, "42")
	if err != nil {
		t.Fatalf("over budget: %v", err)
	}
	if allowed || retryAfter <= 0 {
		t.Fatalf("tenant not throttled: allowed=%v retryAfter=%v", allowed, retryAfter)
	}

	if allowed, _, _ := limiter.AllowTenant(ctx, "43"); !allowed {
		t.Fatal("other tenant throttled by a foreign bucket")
	}
}
