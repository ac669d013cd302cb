package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/paymirror/internal/cache"
	"github.com/smallbiznis/paymirror/internal/config"
	"github.com/smallbiznis/paymirror/internal/dashboard/domain"
	"github.com/smallbiznis/paymirror/internal/period"
	"github.com/smallbiznis/paymirror/internal/tenantctx"
	"github.com/smallbiznis/paymirror/pkg/telemetry"
)

type CachedParams struct {
	fx.In

	Inner     *Service
	Log       *zap.Logger
	Redis     *redis.Client                 `optional:"true"`
	Metrics   *telemetry.Metrics            `optional:"true"`
	Analytics *config.AnalyticsConfigHolder
}

// CachedService memoizes overview aggregations per (tenant, sub-account,
// period). Best-effort only: every cache failure degrades to the inner
// aggregation.
type CachedService struct {
	inner     *Service
	log       *zap.Logger
	redis     *redis.Client
	metrics   *telemetry.Metrics
	analytics *config.AnalyticsConfigHolder
}

func NewCached(p CachedParams) domain.Service {
	return &CachedService{
		inner:     p.Inner,
		log:       p.Log.Named("dashboard.cache"),
		redis:     p.Redis,
		metrics:   p.Metrics,
		analytics: p.Analytics,
	}
}

func (s *CachedService) Overview(ctx context.Context, req domain.OverviewRequest) (domain.Overview, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok || tenantID == 0 {
		return domain.Overview{}, domain.ErrInvalidTenant
	}

	account := strings.TrimSpace(req.AccountID)
	if account == "" {
		account = "all"
	}
	kind := period.ParseKind(req.Period)
	key := fmt.Sprintf("dashboard:%s:%s:%s", tenantID, account, kind)
	ttl := time.Duration(s.analytics.Get().DashboardCacheTTLSeconds) * time.Second

	overview, hit, err := cache.GetOrCompute(ctx, s.redis, s.log, key, ttl, func(ctx context.Context) (domain.Overview, error) {
		return s.inner.Overview(ctx, req)
	})
	switch {
	case err != nil:
		s.metrics.ObserveCacheLookup("error")
	case hit:
		s.metrics.ObserveCacheLookup("hit")
	default:
		s.metrics.ObserveCacheLookup("miss")
	}
	return overview, err
}
