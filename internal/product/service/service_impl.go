package service

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/paymirror/internal/clock"
	"github.com/smallbiznis/paymirror/internal/product/domain"
	"github.com/smallbiznis/paymirror/internal/tenantctx"
	"github.com/smallbiznis/paymirror/pkg/db/listing"
	"github.com/smallbiznis/paymirror/pkg/db/option"
	"github.com/smallbiznis/paymirror/pkg/repository"
)

var sortColumns = map[string]bool{
	"created_at":  true,
	"name":        true,
	"unit_amount": true,
}

var filterColumns = map[string]string{
	"currency": "currency",
}

type Params struct {
	fx.In

	Log   *zap.Logger
	Clock clock.Clock
	Store repository.Repository[domain.Product]
}

type Service struct {
	log   *zap.Logger
	clock clock.Clock
	store repository.Repository[domain.Product]
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("product.service"),
		clock: p.Clock,
		store: p.Store,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListProductsRequest) (listing.Page[domain.Product], error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok || tenantID == 0 {
		return listing.Page[domain.Product]{}, domain.ErrInvalidTenant
	}

	req.Pagination = req.Pagination.Normalize()
	from, to := req.Bounds(s.clock.Now())

	query := domain.Product{TenantID: tenantID}
	if req.AccountID != nil {
		query.AccountID = *req.AccountID
	}

	filters := []option.QueryOption{
		option.WithSearch(req.Query, []string{"name", "description", "processor_id"}),
		option.WithFilters(req.Filter, filterColumns),
		option.WithDateRange("created_at", from, to),
	}
	if req.Active != nil {
		filters = append(filters, option.ApplyOperator(option.Condition{Column: "active", Op: option.EQ, Value: *req.Active}))
	}

	products, total, err := s.store.List(ctx, &query, filters,
		option.WithSortBy(option.WithQuerySortBy(req.Sort, sortColumns, "created_at desc")),
		option.ApplyPagination(req.Pagination),
	)
	if err != nil {
		return listing.Page[domain.Product]{}, err
	}

	data := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		data = append(data, *p)
	}
	return listing.NewPage(data, total, req.Pagination), nil
}
