package service

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/paymirror/internal/clock"
	"github.com/smallbiznis/paymirror/internal/invoice/domain"
	"github.com/smallbiznis/paymirror/internal/tenantctx"
	"github.com/smallbiznis/paymirror/pkg/db/listing"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("invoice.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListInvoicesRequest) (listing.Page[domain.InvoiceView], error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok || tenantID == 0 {
		return listing.Page[domain.InvoiceView]{}, domain.ErrInvalidTenant
	}

	req.Pagination = req.Pagination.Normalize()
	from, to := req.Bounds(s.clock.Now())

	views, total, err := s.repo.List(ctx, s.db, tenantID, domain.ListInvoicesFilter{
		Params:      req.Params,
		Status:      req.Status,
		CreatedFrom: from,
		CreatedTo:   to,
	})
	if err != nil {
		return listing.Page[domain.InvoiceView]{}, err
	}
	return listing.NewPage(views, total, req.Pagination), nil
}
