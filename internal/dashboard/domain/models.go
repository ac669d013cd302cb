package domain

import (
	"context"
	"errors"

	txdomain "github.com/smallbiznis/paymirror/internal/transaction/domain"
)

type OverviewRequest struct {
	// AccountID optionally narrows the tenant's metrics to one sub-account.
	AccountID string
	// Period is one of today/week/month/year; anything else means month.
	Period string
}

type RevenueMetric struct {
	Amount float64 `json:"amount"`
	Growth float64 `json:"growth"`
}

type CustomerMetric struct {
	Count  int64   `json:"count"`
	Growth float64 `json:"growth"`
}

type ChartPoint struct {
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
}

type RevenueChart struct {
	Current  []ChartPoint `json:"current"`
	Previous []ChartPoint `json:"previous"`
}

// Overview is the dashboard response. Amounts are major units; stored
// minor-unit totals are divided by 100 at the edge.
type Overview struct {
	TotalRevenue       RevenueMetric         `json:"total_revenue"`
	TotalCustomers     CustomerMetric        `json:"total_customers"`
	MonthlyGrowth      float64               `json:"monthly_growth"`
	SucceededCount     int64                 `json:"succeeded_count"`
	FailedCount        int64                 `json:"failed_count"`
	TransactionCount   int64                 `json:"transaction_count"`
	AvgOrderValue      float64               `json:"avg_order_value"`
	RevenueChart       RevenueChart          `json:"revenue_chart"`
	RecentTransactions []txdomain.Transaction `json:"recent_transactions"`
	FilterType         string                `json:"filter_type"`
}

type Service interface {
	Overview(context.Context, OverviewRequest) (Overview, error)
}

var (
	ErrInvalidTenant  = errors.New("invalid_tenant")
	ErrInvalidAccount = errors.New("invalid_account")
)
