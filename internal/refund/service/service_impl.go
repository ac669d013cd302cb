package service

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/paymirror/internal/clock"
	"github.com/smallbiznis/paymirror/internal/refund/domain"
	"github.com/smallbiznis/paymirror/internal/tenantctx"
	"github.com/smallbiznis/paymirror/pkg/db/listing"
	"github.com/smallbiznis/paymirror/pkg/db/option"
	"github.com/smallbiznis/paymirror/pkg/repository"
)

var sortColumns = map[string]bool{
	"created_at": true,
	"amount":     true,
	"status":     true,
}

var filterColumns = map[string]string{
	"currency": "currency",
	"reason":   "reason",
	"status":   "status",
}

type Params struct {
	fx.In

	Log   *zap.Logger
	Clock clock.Clock
	Store repository.Repository[domain.Refund]
}

type Service struct {
	log   *zap.Logger
	clock clock.Clock
	store repository.Repository[domain.Refund]
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("refund.service"),
		clock: p.Clock,
		store: p.Store,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListRefundsRequest) (listing.Page[domain.Refund], error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok || tenantID == 0 {
		return listing.Page[domain.Refund]{}, domain.ErrInvalidTenant
	}

	req.Pagination = req.Pagination.Normalize()
	from, to := req.Bounds(s.clock.Now())

	query := domain.Refund{TenantID: tenantID, Status: domain.Status(req.Status)}
	if req.AccountID != nil {
		query.AccountID = *req.AccountID
	}

	filters := []option.QueryOption{
		option.WithSearch(req.Query, []string{"processor_id", "charge_processor_id", "reason"}),
		option.WithFilters(req.Filter, filterColumns),
		option.WithDateRange("created_at", from, to),
	}

	refunds, total, err := s.store.List(ctx, &query, filters,
		option.WithSortBy(option.WithQuerySortBy(req.Sort, sortColumns, "created_at desc")),
		option.ApplyPagination(req.Pagination),
	)
	if err != nil {
		return listing.Page[domain.Refund]{}, err
	}

	data := make([]domain.Refund, 0, len(refunds))
	for _, r := range refunds {
		if r == nil {
			continue
		}
		data = append(data, *r)
	}
	return listing.NewPage(data, total, req.Pagination), nil
}
