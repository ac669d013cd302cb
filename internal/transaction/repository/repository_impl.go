package repository

import (
	"context"
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/smallbiznis/paymirror/internal/period"
	"github.com/smallbiznis/paymirror/internal/transaction/domain"
	"github.com/smallbiznis/paymirror/pkg/db/option"
)

var chargeSortColumns = map[string]bool{
	"created_at": true,
	"amount":     true,
	"status":     true,
}

var chargeFilterColumns = map[string]string{
	"status":   "status",
	"currency": "currency",
}

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListCharges(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter domain.ListChargesFilter) ([]domain.Charge, int64, error) {
	base := func() *gorm.DB {
		stmt := db.WithContext(ctx).
			Model(&domain.Charge{}).
			Where("tenant_id = ?", tenantID)
		if filter.AccountID != nil {
			stmt = stmt.Where("account_id = ?", *filter.AccountID)
		}
		if filter.Status != "" {
			stmt = stmt.Where("status = ?", filter.Status)
		}
		stmt = option.WithSearch(filter.Query, []string{"processor_id", "description", "currency"}).Apply(stmt)
		stmt = option.WithFilters(filter.Filter, chargeFilterColumns).Apply(stmt)
		stmt = option.WithDateRange("created_at", filter.CreatedFrom, filter.CreatedTo).Apply(stmt)
		return stmt
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var charges []domain.Charge
	stmt := base()
	stmt = option.WithSortBy(option.WithQuerySortBy(filter.Sort, chargeSortColumns, "created_at desc")).Apply(stmt)
	stmt = option.ApplyPagination(filter.Pagination).Apply(stmt)
	if err := stmt.Find(&charges).Error; err != nil {
		return nil, 0, err
	}
	return charges, total, nil
}

func (r *repo) ListPaymentAttempts(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter domain.ListPaymentAttemptsFilter) ([]domain.PaymentAttempt, int64, error) {
	base := func() *gorm.DB {
		stmt := db.WithContext(ctx).
			Model(&domain.PaymentAttempt{}).
			Where("tenant_id = ?", tenantID)
		if filter.AccountID != nil {
			stmt = stmt.Where("account_id = ?", *filter.AccountID)
		}
		if filter.Status != "" {
			stmt = stmt.Where("status = ?", filter.Status)
		}
		stmt = option.WithSearch(filter.Query, []string{"processor_id", "failure_code", "currency"}).Apply(stmt)
		stmt = option.WithFilters(filter.Filter, chargeFilterColumns).Apply(stmt)
		stmt = option.WithDateRange("created_at", filter.CreatedFrom, filter.CreatedTo).Apply(stmt)
		return stmt
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var attempts []domain.PaymentAttempt
	stmt := base()
	stmt = option.WithSortBy(option.WithQuerySortBy(filter.Sort, chargeSortColumns, "created_at desc")).Apply(stmt)
	stmt = option.ApplyPagination(filter.Pagination).Apply(stmt)
	if err := stmt.Find(&attempts).Error; err != nil {
		return nil, 0, err
	}
	return attempts, total, nil
}

func (r *repo) SumSucceeded(ctx context.Context, db *gorm.DB, scope domain.Scope, window period.Range) (int64, error) {
	var total int64
	for _, model := range []any{&domain.Charge{}, &domain.PaymentAttempt{}} {
		var row struct {
			Total int64 `gorm:"column:total"`
		}
		stmt := db.WithContext(ctx).
			Model(model).
			Select("COALESCE(SUM(amount), 0) AS total").
			Where("status = ?", domain.StatusSucceeded)
		stmt = applyScope(stmt, scope, window)
		if err := stmt.Scan(&row).Error; err != nil {
			return 0, err
		}
		total += row.Total
	}
	return total, nil
}

func (r *repo) CountByStatus(ctx context.Context, db *gorm.DB, scope domain.Scope, window period.Range) (domain.StatusCounts, error) {
	var counts domain.StatusCounts
	for _, model := range []any{&domain.Charge{}, &domain.PaymentAttempt{}} {
		var rows []struct {
			Status domain.Status `gorm:"column:status"`
			Count  int64         `gorm:"column:count"`
		}
		stmt := db.WithContext(ctx).
			Model(model).
			Select("status, COUNT(*) AS count").
			Group("status")
		stmt = applyScope(stmt, scope, window)
		if err := stmt.Scan(&rows).Error; err != nil {
			return domain.StatusCounts{}, err
		}
		for _, row := range rows {
			counts.Total += row.Count
			switch row.Status {
			case domain.StatusSucceeded:
				counts.Succeeded += row.Count
			case domain.StatusFailed:
				counts.Failed += row.Count
			}
		}
	}
	return counts, nil
}

func (r *repo) SucceededPoints(ctx context.Context, db *gorm.DB, scope domain.Scope, window period.Range) ([]domain.RevenuePoint, error) {
	var points []domain.RevenuePoint
	for _, model := range []any{&domain.Charge{}, &domain.PaymentAttempt{}} {
		var rows []struct {
			Amount    int64     `gorm:"column:amount"`
			CreatedAt time.Time `gorm:"column:created_at"`
		}
		stmt := db.WithContext(ctx).
			Model(model).
			Select("amount, created_at").
			Where("status = ?", domain.StatusSucceeded)
		stmt = applyScope(stmt, scope, window)
		if err := stmt.Order("created_at asc").Scan(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			points = append(points, domain.RevenuePoint{Amount: row.Amount, CreatedAt: row.CreatedAt})
		}
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].CreatedAt.Before(points[j].CreatedAt)
	})
	return points, nil
}

func (r *repo) Recent(ctx context.Context, db *gorm.DB, scope domain.Scope, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		return nil, nil
	}

	type row struct {
		ProcessorID  string        `gorm:"column:processor_id"`
		CustomerName string        `gorm:"column:customer_name"`
		Amount       int64         `gorm:"column:amount"`
		Currency     string        `gorm:"column:currency"`
		Status       domain.Status `gorm:"column:status"`
		CreatedAt    time.Time     `gorm:"column:created_at"`
	}

	var merged []domain.Transaction
	for _, src := range []struct {
		table  string
		source domain.Source
	}{
		{table: "charges", source: domain.SourceCharge},
		{table: "payment_attempts", source: domain.SourcePaymentAttempt},
	} {
		var rows []row
		stmt := db.WithContext(ctx).
			Table(src.table+" AS t").
			Select("t.processor_id, COALESCE(c.name, '') AS customer_name, t.amount, t.currency, t.status, t.created_at").
			Joins("LEFT JOIN customers c ON c.id = t.customer_id").
			Where("t.tenant_id = ?", scope.TenantID)
		if scope.AccountID != nil {
			stmt = stmt.Where("t.account_id = ?", *scope.AccountID)
		}
		if err := stmt.Order("t.created_at DESC").Limit(limit).Scan(&rows).Error; err != nil {
			return nil, err
		}
		for _, rec := range rows {
			name := rec.CustomerName
			if name == "" {
				name = "Unknown customer"
			}
			merged = append(merged, domain.Transaction{
				ProcessorID:  rec.ProcessorID,
				Source:       src.source,
				CustomerName: name,
				Amount:       rec.Amount,
				Currency:     rec.Currency,
				Status:       rec.Status,
				CreatedAt:    rec.CreatedAt,
			})
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

func applyScope(stmt *gorm.DB, scope domain.Scope, window period.Range) *gorm.DB {
	stmt = stmt.Where("tenant_id = ?", scope.TenantID)
	if scope.AccountID != nil {
		stmt = stmt.Where("account_id = ?", *scope.AccountID)
	}
	stmt = option.ApplyOperator(option.Condition{Column: "created_at", Op: option.GTE, Value: window.Start}).Apply(stmt)
	stmt = option.ApplyOperator(option.Condition{Column: "created_at", Op: option.LTE, Value: window.End}).Apply(stmt)
	return stmt
}
