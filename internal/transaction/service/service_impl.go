package service

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/paymirror/internal/clock"
	"github.com/smallbiznis/paymirror/internal/tenantctx"
	"github.com/smallbiznis/paymirror/internal/transaction/domain"
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
		log:   p.Log.Named("transaction.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) ListCharges(ctx context.Context, req domain.ListChargesRequest) (listing.Page[domain.Charge], error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok || tenantID == 0 {
		return listing.Page[domain.Charge]{}, domain.ErrInvalidTenant
	}

	req.Pagination = req.Pagination.Normalize()
	from, to := req.Bounds(s.clock.Now())

	filter := domain.ListChargesFilter{
		Params:      req.Params,
		Status:      req.Status,
		CreatedFrom: from,
		CreatedTo:   to,
	}
	charges, total, err := s.repo.ListCharges(ctx, s.db, tenantID, filter)
	if err != nil {
		return listing.Page[domain.Charge]{}, err
	}
	return listing.NewPage(charges, total, req.Pagination), nil
}

func (s *Service) ListPaymentAttempts(ctx context.Context, req domain.ListPaymentAttemptsRequest) (listing.Page[domain.PaymentAttempt], error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok || tenantID == 0 {
		return listing.Page[domain.PaymentAttempt]{}, domain.ErrInvalidTenant
	}

	req.Pagination = req.Pagination.Normalize()
	from, to := req.Bounds(s.clock.Now())

	filter := domain.ListPaymentAttemptsFilter{
		Params:      req.Params,
		Status:      req.Status,
		CreatedFrom: from,
		CreatedTo:   to,
	}
	attempts, total, err := s.repo.ListPaymentAttempts(ctx, s.db, tenantID, filter)
	if err != nil {
		return listing.Page[domain.PaymentAttempt]{}, err
	}
	return listing.NewPage(attempts, total, req.Pagination), nil
}
