package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/paymirror/internal/clock"
	"github.com/smallbiznis/paymirror/internal/config"
	custdomain "github.com/smallbiznis/paymirror/internal/customer/domain"
	custrepo "github.com/smallbiznis/paymirror/internal/customer/repository"
	"github.com/smallbiznis/paymirror/internal/dashboard/domain"
	"github.com/smallbiznis/paymirror/internal/tenantctx"
	txdomain "github.com/smallbiznis/paymirror/internal/transaction/domain"
	txrepo "github.com/smallbiznis/paymirror/internal/transaction/repository"
	"github.com/smallbiznis/paymirror/pkg/db"
)

var fixedNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

const (
	testTenant  snowflake.ID = 100
	testAccount snowflake.ID = 200
	otherTenant snowflake.ID = 999
)

func setupDashboard(t *testing.T) (*Service, *gorm.DB, *clock.FakeClock) {
	t.Helper()
	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(
		&custdomain.Customer{},
		&txdomain.Charge{},
		&txdomain.PaymentAttempt{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	fake := clock.NewFakeClock(fixedNow)
	svc := New(Params{
		DB:        conn,
		Log:       zap.NewNop(),
		Clock:     fake,
		Analytics: config.NewStaticAnalyticsConfigHolder(config.DefaultAnalyticsConfig()),
		TxRepo:    txrepo.Provide(),
		CustRepo:  custrepo.Provide(),
	})
	return svc, conn, fake
}

func tenantContext(id snowflake.ID) context.Context {
	return tenantctx.WithTenantID(context.Background(), id)
}

func seedCharge(t *testing.T, conn *gorm.DB, id snowflake.ID, tenant snowflake.ID, amount int64, status txdomain.Status, at time.Time, customer *snowflake.ID) {
	t.Helper()
	err := conn.Create(&txdomain.Charge{
		ID:          id,
		TenantID:    tenant,
		AccountID:   testAccount,
		ProcessorID: "ch_" + id.String(),
		CustomerID:  customer,
		Amount:      amount,
		Currency:    "usd",
		Status:      status,
		CreatedAt:   at,
		UpdatedAt:   at,
	}).Error
	if err != nil {
		t.Fatalf("seed charge: %v", err)
	}
}

func seedAttempt(t *testing.T, conn *gorm.DB, id snowflake.ID, amount int64, status txdomain.Status, at time.Time) {
	t.Helper()
	err := conn.Create(&txdomain.PaymentAttempt{
		ID:          id,
		TenantID:    testTenant,
		AccountID:   testAccount,
		ProcessorID: "pi_" + id.String(),
		Amount:      amount,
		Currency:    "usd",
		Status:      status,
		CreatedAt:   at,
		UpdatedAt:   at,
	}).Error
	if err != nil {
		t.Fatalf("seed attempt: %v", err)
	}
}

func seedCustomer(t *testing.T, conn *gorm.DB, id snowflake.ID, name string, at time.Time) {
	t.Helper()
	err := conn.Create(&custdomain.Customer{
		ID:          id,
		TenantID:    testTenant,
		AccountID:   testAccount,
		ProcessorID: "cus_" + id.String(),
		Name:        name,
		CreatedAt:   at,
		UpdatedAt:   at,
	}).Error
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}
}

func TestOverviewAggregatesMonth(t *testing.T) {
	svc, conn, _ := setupDashboard(t)

	custID := snowflake.ID(11)
	seedCustomer(t, conn, custID, "Ada Lovelace", fixedNow.AddDate(0, 0, -5))
	seedCustomer(t, conn, 12, "Grace Hopper", fixedNow.AddDate(0, -1, 0))

	// Three succeeded charges this month: $10 + $20 + $30.
	seedCharge(t, conn, 1, testTenant, 1000, txdomain.StatusSucceeded, fixedNow.AddDate(0, 0, -3), &custID)
	seedCharge(t, conn, 2, testTenant, 2000, txdomain.StatusSucceeded, fixedNow.AddDate(0, 0, -2), nil)
	seedCharge(t, conn, 3, testTenant, 3000, txdomain.StatusSucceeded, fixedNow.AddDate(0, 0, -1), &custID)
	// A $5 failure through the attempts stream counts against the total only.
	seedAttempt(t, conn, 4, 500, txdomain.StatusFailed, fixedNow.AddDate(0, 0, -1))
	// Previous month earned $40.
	seedCharge(t, conn, 5, testTenant, 4000, txdomain.StatusSucceeded, fixedNow.AddDate(0, -1, 0), &custID)
	// Another tenant's charge never leaks in.
	seedCharge(t, conn, 6, otherTenant, 99999, txdomain.StatusSucceeded, fixedNow.AddDate(0, 0, -1), nil)

	ov, err := svc.Overview(tenantContext(testTenant), domain.OverviewRequest{Period: "month"})
	if err != nil {
		t.Fatalf("overview: %v", err)
	}

	if ov.TotalRevenue.Amount != 60 {
		t.Fatalf("revenue = %v, want 60", ov.TotalRevenue.Amount)
	}
	if ov.TotalRevenue.Growth != 50 {
		t.Fatalf("revenue growth = %v, want 50", ov.TotalRevenue.Growth)
	}
	if ov.MonthlyGrowth != 50 {
		t.Fatalf("monthly growth = %v, want 50", ov.MonthlyGrowth)
	}
	if ov.SucceededCount != 3 || ov.FailedCount != 1 || ov.TransactionCount != 4 {
		t.Fatalf("counts = %d/%d/%d", ov.SucceededCount, ov.FailedCount, ov.TransactionCount)
	}
	if ov.AvgOrderValue != 20 {
		t.Fatalf("avg order = %v, want 20", ov.AvgOrderValue)
	}
	if ov.TotalCustomers.Count != 1 {
		t.Fatalf("customers = %d, want 1", ov.TotalCustomers.Count)
	}
	if ov.TotalCustomers.Growth != 0 {
		t.Fatalf("customer growth = %v, want 0", ov.TotalCustomers.Growth)
	}
	if ov.FilterType != "month" {
		t.Fatalf("filter type = %q", ov.FilterType)
	}
}

func TestOverviewChartBucketsByDay(t *testing.T) {
	svc, conn, _ := setupDashboard(t)

	day3 := time.Date(2024, time.March, 3, 10, 0, 0, 0, time.UTC)
	seedCharge(t, conn, 1, testTenant, 1500, txdomain.StatusSucceeded, day3, nil)
	seedCharge(t, conn, 2, testTenant, 500, txdomain.StatusSucceeded, day3.Add(time.Hour), nil)

	ov, err := svc.Overview(tenantContext(testTenant), domain.OverviewRequest{Period: "month"})
	if err != nil {
		t.Fatalf("overview: %v", err)
	}

	if len(ov.RevenueChart.Current) != 31 {
		t.Fatalf("march series has %d buckets", len(ov.RevenueChart.Current))
	}
	if got := ov.RevenueChart.Current[2]; got.Label != "3" || got.Revenue != 20 {
		t.Fatalf("day 3 bucket = %+v", got)
	}
	if got := ov.RevenueChart.Current[0].Revenue; got != 0 {
		t.Fatalf("empty bucket carries revenue %v", got)
	}
}

func TestOverviewYearSeriesHasTwelveBuckets(t *testing.T) {
	svc, conn, _ := setupDashboard(t)

	seedCharge(t, conn, 1, testTenant, 10000, txdomain.StatusSucceeded, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), nil)
	seedCharge(t, conn, 2, testTenant, 20000, txdomain.StatusSucceeded, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), nil)

	ov, err := svc.Overview(tenantContext(testTenant), domain.OverviewRequest{Period: "year"})
	if err != nil {
		t.Fatalf("overview: %v", err)
	}

	if len(ov.RevenueChart.Current) != 12 {
		t.Fatalf("year series has %d buckets", len(ov.RevenueChart.Current))
	}
	if got := ov.RevenueChart.Current[0]; got.Label != "Jan" || got.Revenue != 100 {
		t.Fatalf("january bucket = %+v", got)
	}
	if got := ov.RevenueChart.Current[2].Revenue; got != 200 {
		t.Fatalf("march bucket revenue = %v", got)
	}
}

func TestOverviewGrowthFromEmptyPrevious(t *testing.T) {
	svc, conn, _ := setupDashboard(t)

	seedCharge(t, conn, 1, testTenant, 5000, txdomain.StatusSucceeded, fixedNow.AddDate(0, 0, -1), nil)

	ov, err := svc.Overview(tenantContext(testTenant), domain.OverviewRequest{Period: "month"})
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if ov.TotalRevenue.Growth != 100 {
		t.Fatalf("growth = %v, want 100", ov.TotalRevenue.Growth)
	}

	// A totally empty tenant reports 0, not NaN.
	ov, err = svc.Overview(tenantContext(otherTenant), domain.OverviewRequest{Period: "month"})
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if ov.TotalRevenue.Growth != 0 || ov.TotalRevenue.Amount != 0 {
		t.Fatalf("empty tenant revenue = %+v", ov.TotalRevenue)
	}
}

func TestOverviewRecentMergesBothSources(t *testing.T) {
	svc, conn, _ := setupDashboard(t)

	custID := snowflake.ID(21)
	seedCustomer(t, conn, custID, "Alan Turing", fixedNow.AddDate(0, 0, -10))
	seedCharge(t, conn, 1, testTenant, 1000, txdomain.StatusSucceeded, fixedNow.Add(-3*time.Hour), &custID)
	seedCharge(t, conn, 2, testTenant, 2000, txdomain.StatusSucceeded, fixedNow.Add(-1*time.Hour), nil)
	seedAttempt(t, conn, 3, 3000, txdomain.StatusFailed, fixedNow.Add(-2*time.Hour))

	ov, err := svc.Overview(tenantContext(testTenant), domain.OverviewRequest{Period: "month"})
	if err != nil {
		t.Fatalf("overview: %v", err)
	}

	recent := ov.RecentTransactions
	if len(recent) != 3 {
		t.Fatalf("recent = %d rows", len(recent))
	}
	if recent[0].Source != txdomain.SourceCharge || recent[1].Source != txdomain.SourcePaymentAttempt {
		t.Fatalf("merge order = %v, %v", recent[0].Source, recent[1].Source)
	}
	if !recent[0].CreatedAt.After(recent[1].CreatedAt) || !recent[1].CreatedAt.After(recent[2].CreatedAt) {
		t.Fatal("recent stream is not newest first")
	}
	if recent[0].CustomerName != "Unknown customer" {
		t.Fatalf("anonymous charge resolves to %q", recent[0].CustomerName)
	}
	if recent[2].CustomerName != "Alan Turing" {
		t.Fatalf("customer join resolves to %q", recent[2].CustomerName)
	}
}

func TestOverviewRecentTruncatedToLimit(t *testing.T) {
	svc, conn, _ := setupDashboard(t)

	for i := 0; i < 15; i++ {
		seedCharge(t, conn, snowflake.ID(i+1), testTenant, 1000, txdomain.StatusSucceeded, fixedNow.Add(-time.Duration(i)*time.Minute), nil)
	}

	ov, err := svc.Overview(tenantContext(testTenant), domain.OverviewRequest{Period: "month"})
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	want := config.DefaultAnalyticsConfig().RecentTransactionLimit
	if len(ov.RecentTransactions) != want {
		t.Fatalf("recent = %d rows, want %d", len(ov.RecentTransactions), want)
	}
}

func TestOverviewAccountScope(t *testing.T) {
	svc, conn, _ := setupDashboard(t)

	seedCharge(t, conn, 1, testTenant, 1000, txdomain.StatusSucceeded, fixedNow.AddDate(0, 0, -1), nil)
	err := conn.Create(&txdomain.Charge{
		ID:          2,
		TenantID:    testTenant,
		AccountID:   300,
		ProcessorID: "ch_other_account",
		Amount:      9000,
		Currency:    "usd",
		Status:      txdomain.StatusSucceeded,
		CreatedAt:   fixedNow.AddDate(0, 0, -1),
		UpdatedAt:   fixedNow.AddDate(0, 0, -1),
	}).Error
	if err != nil {
		t.Fatalf("seed charge: %v", err)
	}

	ov, err := svc.Overview(tenantContext(testTenant), domain.OverviewRequest{
		AccountID: testAccount.String(),
		Period:    "month",
	})
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if ov.TotalRevenue.Amount != 10 {
		t.Fatalf("scoped revenue = %v, want 10", ov.TotalRevenue.Amount)
	}
}

func TestOverviewRejectsMissingTenant(t *testing.T) {
	svc, _, _ := setupDashboard(t)
	_, err := svc.Overview(context.Background(), domain.OverviewRequest{})
	if !errors.Is(err, domain.ErrInvalidTenant) {
		t.Fatalf("err = %v, want ErrInvalidTenant", err)
	}
}

func TestOverviewRejectsMalformedAccount(t *testing.T) {
	svc, _, _ := setupDashboard(t)
	_, err := svc.Overview(tenantContext(testTenant), domain.OverviewRequest{AccountID: "not-a-snowflake"})
	if !errors.Is(err, domain.ErrInvalidAccount) {
		t.Fatalf("err = %v, want ErrInvalidAccount", err)
	}
}
