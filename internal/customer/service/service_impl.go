package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/paymirror/internal/clock"
	"github.com/smallbiznis/paymirror/internal/customer/domain"
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
		log:   p.Log.Named("customer.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListCustomersRequest) (listing.Page[domain.Customer], error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok || tenantID == 0 {
		return listing.Page[domain.Customer]{}, domain.ErrInvalidTenant
	}

	req.Pagination = req.Pagination.Normalize()
	from, to := req.Bounds(s.clock.Now())

	customers, total, err := s.repo.List(ctx, s.db, tenantID, domain.ListCustomersFilter{
		Params:      req.Params,
		Email:       strings.TrimSpace(req.Email),
		Currency:    strings.TrimSpace(req.Currency),
		CreatedFrom: from,
		CreatedTo:   to,
	})
	if err != nil {
		return listing.Page[domain.Customer]{}, err
	}
	return listing.NewPage(customers, total, req.Pagination), nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetCustomerRequest) (domain.Customer, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok || tenantID == 0 {
		return domain.Customer{}, domain.ErrInvalidTenant
	}

	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.Customer{}, domain.ErrInvalidID
	}

	customer, err := s.repo.FindByID(ctx, s.db, tenantID, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if customer == nil {
		return domain.Customer{}, domain.ErrNotFound
	}
	return *customer, nil
}
