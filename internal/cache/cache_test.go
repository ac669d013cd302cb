package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func setupCache(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return srv, client
}

func TestGetOrComputeMissThenHit(t *testing.T) {
	srv, client := setupCache(t)
	ctx := context.Background()

	calls := 0
	compute := func(context.Context) (payload, error) {
		calls++
		return payload{Name: "overview", Count: calls}, nil
	}

	got, hit, err := GetOrCompute(ctx, client, zap.NewNop(), "k", time.Minute, compute)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if hit {
		t.Fatal("first call reported a hit")
	}
	if got.Count != 1 {
		t.Fatalf("first value = %+v", got)
	}
	if !srv.Exists("k") {
		t.Fatal("value was not written back")
	}

	got, hit, err = GetOrCompute(ctx, client, zap.NewNop(), "k", time.Minute, compute)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if !hit {
		t.Fatal("second call missed")
	}
	if got.Count != 1 || calls != 1 {
		t.Fatalf("second call recomputed: value=%+v calls=%d", got, calls)
	}
}

func TestGetOrComputeHonorsTTL(t *testing.T) {
	srv, client := setupCache(t)
	ctx := context.Background()

	calls := 0
	compute := func(context.Context) (payload, error) {
		calls++
		return payload{Count: calls}, nil
	}

	if _, _, err := GetOrCompute(ctx, client, zap.NewNop(), "k", 30*time.Second, compute); err != nil {
		t.Fatalf("warm: %v", err)
	}
	srv.FastForward(time.Minute)

	_, hit, err := GetOrCompute(ctx, client, zap.NewNop(), "k", 30*time.Second, compute)
	if err != nil {
		t.Fatalf("after expiry: %v", err)
	}
	if hit || calls != 2 {
		t.Fatalf("expired entry served: hit=%v calls=%d", hit, calls)
	}
}

func TestGetOrComputeNilClient(t *testing.T) {
	got, hit, err := GetOrCompute(context.Background(), nil, zap.NewNop(), "k", time.Minute, func(context.Context) (payload, error) {
		return payload{Name: "direct"}, nil
	})
	if err != nil || hit {
		t.Fatalf("nil client: hit=%v err=%v", hit, err)
	}
	if got.Name != "direct" {
		t.Fatalf("value = %+v", got)
	}
}

func TestGetOrComputeDegradesWhenRedisDown(t *testing.T) {
	srv, client := setupCache(t)
	srv.Close()

	got, hit, err := GetOrCompute(context.Background(), client, zap.NewNop(), "k", time.Minute, func(context.Context) (payload, error) {
		return payload{Name: "fallback"}, nil
	})
	if err != nil {
		t.Fatalf("expected degraded compute, got %v", err)
	}
	if hit || got.Name != "fallback" {
		t.Fatalf("degraded result = %+v hit=%v", got, hit)
	}
}

func TestGetOrComputeDiscardsCorruptEntry(t *testing.T) {
	srv, client := setupCache(t)
	if err := srv.Set("k", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, hit, err := GetOrCompute(context.Background(), client, zap.NewNop(), "k", time.Minute, func(context.Context) (payload, error) {
		return payload{Name: "fresh"}, nil
	})
	if err != nil {
		t.Fatalf("corrupt entry: %v", err)
	}
	if hit || got.Name != "fresh" {
		t.Fatalf("result = %+v hit=%v", got, hit)
	}
}

func TestGetOrComputePropagatesComputeError(t *testing.T) {
	_, client := setupCache(t)
	want := errors.New("upstream gone")

	_, _, err := GetOrCompute(context.Background(), client, zap.NewNop(), "k", time.Minute, func(context.Context) (payload, error) {
		return payload{}, want
	})
	if !errors.Is(err, want) {
		t.Fatalf("err = %v", err)
	}
	if client.Exists(context.Background(), "k").Val() != 0 {
		t.Fatal("failed compute must not be cached")
	}
}
