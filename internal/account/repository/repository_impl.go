package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/smallbiznis/paymirror/internal/account/domain"
	"github.com/smallbiznis/paymirror/pkg/db/option"
)

var sortColumns = map[string]bool{
	"created_at": true,
	"name":       true,
	"status":     true,
}

var filterColumns = map[string]string{
	"status":           "status",
	"country":          "country",
	"default_currency": "default_currency",
}

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter domain.ListAccountsFilter) ([]domain.Account, int64, error) {
	base := func() *gorm.DB {
		stmt := db.WithContext(ctx).
			Model(&domain.Account{}).
			Where("tenant_id = ?", tenantID)
		if filter.Status != "" {
			stmt = stmt.Where("status = ?", filter.Status)
		}
		stmt = option.WithSearch(filter.Query, []string{"name", "slug", "processor_id"}).Apply(stmt)
		stmt = option.WithFilters(filter.Filter, filterColumns).Apply(stmt)
		stmt = option.WithDateRange("created_at", filter.CreatedFrom, filter.CreatedTo).Apply(stmt)
		return stmt
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var accounts []domain.Account
	stmt := base()
	stmt = option.WithSortBy(option.WithQuerySortBy(filter.Sort, sortColumns, "created_at desc")).Apply(stmt)
	stmt = option.ApplyPagination(filter.Pagination).Apply(stmt)
	if err := stmt.Find(&accounts).Error; err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*domain.Account, error) {
	var account domain.Account
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}
