package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/paymirror/internal/account/domain"
	"github.com/smallbiznis/paymirror/internal/clock"
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
		log:   p.Log.Named("account.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListAccountsRequest) (listing.Page[domain.Account], error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok || tenantID == 0 {
		return listing.Page[domain.Account]{}, domain.ErrInvalidTenant
	}

	req.Pagination = req.Pagination.Normalize()
	from, to := req.Bounds(s.clock.Now())

	accounts, total, err := s.repo.List(ctx, s.db, tenantID, domain.ListAccountsFilter{
		Params:      req.Params,
		Status:      req.Status,
		CreatedFrom: from,
		CreatedTo:   to,
	})
	if err != nil {
		return listing.Page[domain.Account]{}, err
	}

	for i := range accounts {
		if accounts[i].Slug == "" {
			accounts[i].Slug = slug.Make(accounts[i].Name)
		}
	}
	return listing.NewPage(accounts, total, req.Pagination), nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetAccountRequest) (domain.Account, error) {
	tenantID, ok := tenantctx.TenantID(ctx)
	if !ok || tenantID == 0 {
		return domain.Account{}, domain.ErrInvalidTenant
	}

	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Account{}, err
	}

	account, err := s.repo.FindByID(ctx, s.db, tenantID, id)
	if err != nil {
		return domain.Account{}, err
	}
	if account == nil {
		return domain.Account{}, domain.ErrNotFound
	}
	if account.Slug == "" {
		account.Slug = slug.Make(account.Name)
	}
	return *account, nil
}

func (s *Service) Owns(ctx context.Context, req domain.GetAccountRequest) (bool, error) {
	_, err := s.GetByID(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
