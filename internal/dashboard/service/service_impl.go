package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/smallbiznis/paymirror/internal/clock"
	"github.com/smallbiznis/paymirror/internal/config"
	custdomain "github.com/smallbiznis/paymirror/internal/customer/domain"
	"github.com/smallbiznis/paymirror/internal/dashboard/domain"
	"github.com/smallbiznis/paymirror/internal/period"
	"github.com/smallbiznis/paymirror/internal/tenantctx"
	txdomain "github.com/smallbiznis/paymirror/internal/transaction/domain"
	"github.com/smallbiznis/paymirror/pkg/telemetry"
	"github.com/smallbiznis/paymirror/pkg/telemetry/correlation"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Clock     clock.Clock
	Analytics *config.AnalyticsConfigHolder
	Metrics   *telemetry.Metrics            `optional:"true"`
	TxRepo    txdomain.Repository
	CustRepo  custdomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	clock     clock.Clock
	analytics *config.AnalyticsConfigHolder
	metrics   *telemetry.Metrics
	txRepo    txdomain.Repository
	custRepo  custdomain.Repository
}

func New(p Params) *Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("dashboard.service"),
		clock:     p.Clock,
		analytics: p.Analytics,
		metrics:   p.Metrics,
		txRepo:    p.TxRepo,
		custRepo:  p.CustRepo,
	}
}

// Overview aggregates the tenant's financial metrics for one period. The
// sub-queries have no data dependency between each other, so they fan out
// concurrently; the first failure cancels the rest and fails the call.
func (s *Service) Overview(ctx context.Context, req domain.OverviewRequest) (domain.Overview, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok || tenantID == 0 {
		return domain.Overview{}, domain.ErrInvalidTenant
	}

	scope := txdomain.Scope{TenantID: tenantID}
	if raw := strings.TrimSpace(req.AccountID); raw != "" {
		accountID, err := snowflake.ParseString(raw)
		if err != nil || accountID == 0 {
			return domain.Overview{}, domain.ErrInvalidAccount
		}
		scope.AccountID = &accountID
	}

	kind := period.ParseKind(req.Period)
	now := s.clock.Now()
	windows := period.Resolve(kind, now)
	monthly := period.Resolve(period.KindMonth, now)

	log := s.log.With(
		zap.String("tenant_id", tenantID.String()),
		zap.String("period", string(kind)),
		zap.String("correlation_id", correlation.FromContext(ctx)),
	)

	var (
		curRevenue    int64
		prevRevenue   int64
		curMonthRev   int64
		prevMonthRev  int64
		curCustomers  int64
		prevCustomers int64
		counts        txdomain.StatusCounts
		curPoints     []txdomain.RevenuePoint
		prevPoints    []txdomain.RevenuePoint
		recent        []txdomain.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		curRevenue, err = s.txRepo.SumSucceeded(gctx, s.db, scope, windows.Current)
		return err
	})
	g.Go(func() (err error) {
		prevRevenue, err = s.txRepo.SumSucceeded(gctx, s.db, scope, windows.Previous)
		return err
	})
	g.Go(func() (err error) {
		curMonthRev, err = s.txRepo.SumSucceeded(gctx, s.db, scope, monthly.Current)
		return err
	})
	g.Go(func() (err error) {
		prevMonthRev, err = s.txRepo.SumSucceeded(gctx, s.db, scope, monthly.Previous)
		return err
	})
	g.Go(func() (err error) {
		curCustomers, err = s.custRepo.CountCreatedIn(gctx, s.db, tenantID, scope.AccountID, windows.Current)
		return err
	})
	g.Go(func() (err error) {
		prevCustomers, err = s.custRepo.CountCreatedIn(gctx, s.db, tenantID, scope.AccountID, windows.Previous)
		return err
	})
	g.Go(func() (err error) {
		counts, err = s.txRepo.CountByStatus(gctx, s.db, scope, windows.Current)
		return err
	})
	g.Go(func() (err error) {
		curPoints, err = s.txRepo.SucceededPoints(gctx, s.db, scope, windows.Current)
		return err
	})
	g.Go(func() (err error) {
		prevPoints, err = s.txRepo.SucceededPoints(gctx, s.db, scope, windows.Previous)
		return err
	})
	g.Go(func() (err error) {
		limit := s.analytics.Get().RecentTransactionLimit
		recent, err = s.txRepo.Recent(gctx, s.db, scope, limit)
		return err
	})
	start := now
	if err := g.Wait(); err != nil {
		log.Error("overview aggregation failed", zap.Error(err))
		s.metrics.ObserveAggregation(string(kind), "error", s.clock.Now().Sub(start))
		return domain.Overview{}, err
	}
	s.metrics.ObserveAggregation(string(kind), "ok", s.clock.Now().Sub(start))
	s.metrics.ObserveRecentMerge(len(recent))

	revenue := majorUnits(curRevenue)
	avgOrder := 0.0
	if counts.Succeeded > 0 {
		avgOrder = round2(revenue / float64(counts.Succeeded))
	}

	overview := domain.Overview{
		TotalRevenue: domain.RevenueMetric{
			Amount: revenue,
			Growth: growth(float64(curRevenue), float64(prevRevenue)),
		},
		TotalCustomers: domain.CustomerMetric{
			Count:  curCustomers,
			Growth: growth(float64(curCustomers), float64(prevCustomers)),
		},
		MonthlyGrowth:    growth(float64(curMonthRev), float64(prevMonthRev)),
		SucceededCount:   counts.Succeeded,
		FailedCount:      counts.Failed,
		TransactionCount: counts.Total,
		AvgOrderValue:    avgOrder,
		RevenueChart: domain.RevenueChart{
			Current:  bucketSeries(windows, windows.Current, curPoints, true),
			Previous: bucketSeries(windows, windows.Previous, prevPoints, false),
		},
		RecentTransactions: recent,
		FilterType:         string(kind),
	}

	log.Debug("overview aggregated",
		zap.Float64("revenue", overview.TotalRevenue.Amount),
		zap.Int64("transactions", counts.Total),
	)
	return overview, nil
}

// growth is the period-over-period percentage. An empty comparison window
// yields 100 when anything was earned and 0 otherwise, never a division by
// zero.
func growth(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return round2((current - previous) / previous * 100)
}

// bucketSeries distributes succeeded transactions over the fixed label grid
// of the window's granularity. Every bucket exists even when empty.
func bucketSeries(w period.Windows, r period.Range, points []txdomain.RevenuePoint, current bool) []domain.ChartPoint {
	var labels []string
	var index func(time.Time) int

	switch w.Granularity {
	case period.GranularityHour:
		labels = period.HourLabels()
		index = func(t time.Time) int { return t.UTC().Hour() }
	case period.GranularityMonth:
		labels = period.MonthLabels()
		index = func(t time.Time) int { return int(t.UTC().Month()) - 1 }
	case period.GranularityWeek:
		if current {
			labels = []string{period.CurrentWeekLabel}
			index = func(time.Time) int { return 0 }
		} else {
			labels = period.WeekLabels()
			index = func(t time.Time) int {
				return int(t.UTC().Sub(r.Start).Hours() / 24 / 7)
			}
		}
	default:
		labels = period.DayLabels(r)
		index = func(t time.Time) int { return t.UTC().Day() - 1 }
	}

	series := make([]domain.ChartPoint, len(labels))
	for i, label := range labels {
		series[i] = domain.ChartPoint{Label: label}
	}
	for _, p := range points {
		if !r.Contains(p.CreatedAt) {
			continue
		}
		i := index(p.CreatedAt)
		if i < 0 || i >= len(series) {
			continue
		}
		series[i].Revenue += majorUnits(p.Amount)
	}
	for i := range series {
		series[i].Revenue = round2(series[i].Revenue)
	}
	return series
}

// majorUnits converts a stored minor-unit total to display units.
func majorUnits(amount int64) float64 {
	return float64(amount) / 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
