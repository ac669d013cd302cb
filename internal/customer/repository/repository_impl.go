package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/smallbiznis/paymirror/internal/customer/domain"
	"github.com/smallbiznis/paymirror/internal/period"
	"github.com/smallbiznis/paymirror/pkg/db/option"
)

var sortColumns = map[string]bool{
	"created_at": true,
	"name":       true,
	"email":      true,
}

var filterColumns = map[string]string{
	"currency":   "currency",
	"delinquent": "delinquent",
}

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter domain.ListCustomersFilter) ([]domain.Customer, int64, error) {
	base := func() *gorm.DB {
		stmt := db.WithContext(ctx).
			Model(&domain.Customer{}).
			Where("tenant_id = ?", tenantID)
		if filter.AccountID != nil {
			stmt = stmt.Where("account_id = ?", *filter.AccountID)
		}
		if filter.Email != "" {
			stmt = stmt.Where("email = ?", filter.Email)
		}
		if filter.Currency != "" {
			stmt = stmt.Where("currency = ?", filter.Currency)
		}
		stmt = option.WithSearch(filter.Query, []string{"name", "email", "processor_id"}).Apply(stmt)
		stmt = option.WithFilters(filter.Filter, filterColumns).Apply(stmt)
		stmt = option.WithDateRange("created_at", filter.CreatedFrom, filter.CreatedTo).Apply(stmt)
		return stmt
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []domain.Customer
	stmt := base()
	stmt = option.WithSortBy(option.WithQuerySortBy(filter.Sort, sortColumns, "created_at desc")).Apply(stmt)
	stmt = option.ApplyPagination(filter.Pagination).Apply(stmt)
	if err := stmt.Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *repo) CountCreatedIn(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, accountID *snowflake.ID, window period.Range) (int64, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("tenant_id = ?", tenantID)
	if accountID != nil {
		stmt = stmt.Where("account_id = ?", *accountID)
	}
	stmt = option.WithDateRange("created_at", &window.Start, &window.End).Apply(stmt)

	var count int64
	err := stmt.Count(&count).Error
	return count, err
}
