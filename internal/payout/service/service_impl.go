package service

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/paymirror/internal/clock"
	"github.com/smallbiznis/paymirror/internal/payout/domain"
	"github.com/smallbiznis/paymirror/internal/tenantctx"
	"github.com/smallbiznis/paymirror/pkg/db/listing"
	"github.com/smallbiznis/paymirror/pkg/db/option"
	"github.com/smallbiznis/paymirror/pkg/repository"
)

var sortColumns = map[string]bool{
	"created_at":   true,
	"amount":       true,
	"arrival_date": true,
	"status":       true,
}

var filterColumns = map[string]string{
	"currency": "currency",
	"method":   "method",
	"status":   "status",
}

type Params struct {
	fx.In

	Log   *zap.Logger
	Clock clock.Clock
	Store repository.Repository[domain.Payout]
}

type Service struct {
	log   *zap.Logger
	clock clock.Clock
	store repository.Repository[domain.Payout]
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("payout.service"),
		clock: p.Clock,
		store: p.Store,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListPayoutsRequest) (listing.Page[domain.Payout], error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok || tenantID == 0 {
		return listing.Page[domain.Payout]{}, domain.ErrInvalidTenant
	}

	req.Pagination = req.Pagination.Normalize()
	from, to := req.Bounds(s.clock.Now())

	query := domain.Payout{TenantID: tenantID, Status: domain.Status(req.Status)}
	if req.AccountID != nil {
		query.AccountID = *req.AccountID
	}

	filters := []option.QueryOption{
		option.WithSearch(req.Query, []string{"processor_id", "method"}),
		option.WithFilters(req.Filter, filterColumns),
		option.WithDateRange("created_at", from, to),
	}

	payouts, total, err := s.store.List(ctx, &query, filters,
		option.WithSortBy(option.WithQuerySortBy(req.Sort, sortColumns, "created_at desc")),
		option.ApplyPagination(req.Pagination),
	)
	if err != nil {
		return listing.Page[domain.Payout]{}, err
	}

	data := make([]domain.Payout, 0, len(payouts))
	for _, p := range payouts {
		if p == nil {
			continue
		}
		data = append(data, *p)
	}
	return listing.NewPage(data, total, req.Pagination), nil
}
