package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/smallbiznis/paymirror/internal/invoice/domain"
	"github.com/smallbiznis/paymirror/pkg/db/option"
)

var sortColumns = map[string]bool{
	"i.created_at": true,
	"i.amount_due": true,
	"i.due_date":   true,
	"i.status":     true,
}

var filterColumns = map[string]string{
	"currency": "i.currency",
	"number":   "i.number",
	"status":   "i.status",
}

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter domain.ListInvoicesFilter) ([]domain.InvoiceView, int64, error) {
	base := func() *gorm.DB {
		stmt := db.WithContext(ctx).
			Table("invoices AS i").
			Joins("LEFT JOIN customers c ON c.id = i.customer_id").
			Where("i.tenant_id = ?", tenantID)
		if filter.AccountID != nil {
			stmt = stmt.Where("i.account_id = ?", *filter.AccountID)
		}
		if filter.Status != "" {
			stmt = stmt.Where("i.status = ?", filter.Status)
		}
		stmt = option.WithSearch(filter.Query, []string{"i.number", "i.processor_id", "c.name", "c.email"}).Apply(stmt)
		stmt = option.WithFilters(filter.Filter, filterColumns).Apply(stmt)
		stmt = option.WithDateRange("i.created_at", filter.CreatedFrom, filter.CreatedTo).Apply(stmt)
		return stmt
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var views []domain.InvoiceView
	stmt := base().
		Select("i.*, COALESCE(c.name, '') AS customer_name")
	stmt = option.WithSortBy(option.WithQuerySortBy(prefixSort(filter.Sort), sortColumns, "i.created_at desc")).Apply(stmt)
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

func prefixSort(sort string) string {
	if sort == "" {
		return sort
	}
	return "i." + sort
}
