package service

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/paymirror/internal/clock"
	"github.com/smallbiznis/paymirror/internal/coupon/domain"
	"github.com/smallbiznis/paymirror/internal/tenantctx"
	"github.com/smallbiznis/paymirror/pkg/db/listing"
	"github.com/smallbiznis/paymirror/pkg/db/option"
	"github.com/smallbiznis/paymirror/pkg/repository"
)

var sortColumns = map[string]bool{
	"created_at":     true,
	"name":           true,
	"times_redeemed": true,
}

var filterColumns = map[string]string{
	"currency": "currency",
	"duration": "duration",
}

type Params struct {
	fx.In

	Log   *zap.Logger
	Clock clock.Clock
	Store repository.Repository[domain.Coupon]
}

type Service struct {
	log   *zap.Logger
	clock clock.Clock
	store repository.Repository[domain.Coupon]
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("coupon.service"),
		clock: p.Clock,
		store: p.Store,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListCouponsRequest) (listing.Page[domain.Coupon], error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok || tenantID == 0 {
		return listing.Page[domain.Coupon]{}, domain.ErrInvalidTenant
	}

	req.Pagination = req.Pagination.Normalize()
	from, to := req.Bounds(s.clock.Now())

	query := domain.Coupon{TenantID: tenantID}
	if req.AccountID != nil {
		query.AccountID = *req.AccountID
	}

	filters := []option.QueryOption{
		option.WithSearch(req.Query, []string{"name", "processor_id"}),
		option.WithFilters(req.Filter, filterColumns),
		option.WithDateRange("created_at", from, to),
	}
	if req.Valid != nil {
		filters = append(filters, option.ApplyOperator(option.Condition{Column: "valid", Op: option.EQ, Value: *req.Valid}))
	}

	coupons, total, err := s.store.List(ctx, &query, filters,
		option.WithSortBy(option.WithQuerySortBy(req.Sort, sortColumns, "created_at desc")),
		option.ApplyPagination(req.Pagination),
	)
	if err != nil {
		return listing.Page[domain.Coupon]{}, err
	}

	data := make([]domain.Coupon, 0, len(coupons))
	for _, c := range coupons {
		if c == nil {
			continue
		}
		data = append(data, *c)
	}
	return listing.NewPage(data, total, req.Pagination), nil
}
