package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/smallbiznis/paymirror/internal/period"
)

// Scope narrows analytics queries to a tenant and, optionally, one of its
// accounts.
type Scope struct {
	TenantID  snowflake.ID
	AccountID *snowflake.ID
}

type Repository interface {
	ListCharges(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter ListChargesFilter) ([]Charge, int64, error)
	ListPaymentAttempts(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter ListPaymentAttemptsFilter) ([]PaymentAttempt, int64, error)

	// SumSucceeded returns the minor-unit volume of succeeded transactions
	// across both sources inside the window.
	SumSucceeded(ctx context.Context, db *gorm.DB, scope Scope, window period.Range) (int64, error)
	CountByStatus(ctx context.Context, db *gorm.DB, scope Scope, window period.Range) (StatusCounts, error)
	// SucceededPoints returns every succeeded transaction in the window,
	// oldest first, for bucketing into a chart series.
	SucceededPoints(ctx context.Context, db *gorm.DB, scope Scope, window period.Range) ([]RevenuePoint, error)
	// Recent merges the freshest rows of both sources, newest first,
	// truncated to limit.
	Recent(ctx context.Context, db *gorm.DB, scope Scope, limit int) ([]Transaction, error)
}
