package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/smallbiznis/paymirror/internal/subscription/domain"
	"github.com/smallbiznis/paymirror/pkg/db/option"
)

var sortColumns = map[string]bool{
	"s.created_at": true,
	"s.amount":     true,
	"s.status":     true,
}

var filterColumns = map[string]string{
	"currency": "s.currency",
	"interval": "s.interval",
	"status":   "s.status",
}

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

// List reads the joined subscription view. Search spans the customer and
// product display names, so the count query carries the same joins.
func (r *repo) List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter domain.ListSubscriptionsFilter) ([]domain.SubscriptionView, int64, error) {
	base := func() *gorm.DB {
		stmt := db.WithContext(ctx).
			Table("subscriptions AS s").
			Joins("LEFT JOIN customers c ON c.id = s.customer_id").
			Joins("LEFT JOIN products p ON p.id = s.product_id").
			Where("s.tenant_id = ?", tenantID)
		if filter.AccountID != nil {
			stmt = stmt.Where("s.account_id = ?", *filter.AccountID)
		}
		if filter.Status != "" {
			stmt = stmt.Where("s.status = ?", filter.Status)
		}
		stmt = option.WithSearch(filter.Query, []string{"s.processor_id", "c.name", "p.name"}).Apply(stmt)
		stmt = option.WithFilters(filter.Filter, filterColumns).Apply(stmt)
		stmt = option.WithDateRange("s.created_at", filter.CreatedFrom, filter.CreatedTo).Apply(stmt)
		return stmt
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var views []domain.SubscriptionView
	stmt := base().
		Select("s.*, COALESCE(c.name, '') AS customer_name, COALESCE(p.name, '') AS product_name")
	stmt = option.WithSortBy(option.WithQuerySortBy(prefixSort(filter.Sort), sortColumns, "s.created_at desc")).Apply(stmt)
	stmt = option.ApplyPagination(filter.Pagination).Apply(stmt)
	if err := stmt.Scan(&views).Error; err != nil {
		return nil, 0, err
	}

	for i := range views {
		if views[i].CustomerName == "" {
			views[i].CustomerName = "Unknown customer"
		}
	}
	return views, total, nil
}

// prefixSort qualifies a bare "column:direction" sort with the subscription
// alias so joined columns never shadow it.
func prefixSort(sort string) string {
	if sort == "" {
		return sort
	}
	return "s." + sort
}
