package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/paymirror/internal/clock"
	"github.com/smallbiznis/paymirror/internal/tenantctx"
	"github.com/smallbiznis/paymirror/internal/transaction/domain"
	"github.com/smallbiznis/paymirror/internal/transaction/repository"
	"github.com/smallbiznis/paymirror/pkg/db"
	"github.com/smallbiznis/paymirror/pkg/db/listing"
)

const testTenant snowflake.ID = 100

var fixedNow = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

func setupTransactions(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()
	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&domain.Charge{}, &domain.PaymentAttempt{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		Clock: clock.NewFakeClock(fixedNow),
		Repo:  repository.Provide(),
	})
	return svc, conn
}

func seedCharges(t *testing.T, conn *gorm.DB, tenant snowflake.ID, statuses []domain.Status) {
	t.Helper()
	for i, status := range statuses {
		err := conn.Create(&domain.Charge{
			ID:          snowflake.ID(int64(tenant)*1000 + int64(i) + 1),
			TenantID:    tenant,
			AccountID:   200,
			ProcessorID: fmt.Sprintf("ch_%d_%d", tenant, i),
			Amount:      1000,
			Currency:    "usd",
			Status:      status,
			CreatedAt:   fixedNow.AddDate(0, 0, -i),
			UpdatedAt:   fixedNow.AddDate(0, 0, -i),
		}).Error
		if err != nil {
			t.Fatalf("seed charge %d: %v", i, err)
		}
	}
}

func TestListChargesFiltersStatus(t *testing.T) {
	svc, conn := setupTransactions(t)
	seedCharges(t, conn, testTenant, []domain.Status{
		domain.StatusSucceeded, domain.StatusSucceeded, domain.StatusFailed, domain.StatusPending,
	})
	ctx := tenantctx.WithTenantID(context.Background(), testTenant)

	page, err := svc.ListCharges(ctx, domain.ListChargesRequest{Status: string(domain.StatusSucceeded)})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.TotalCount != 2 {
		t.Fatalf("succeeded charges = %d, want 2", page.TotalCount)
	}
	for _, ch := range page.Data {
		if ch.Status != domain.StatusSucceeded {
			t.Fatalf("unexpected status %s", ch.Status)
		}
	}
}

func TestListChargesIsolatesTenants(t *testing.T) {
	svc, conn := setupTransactions(t)
	seedCharges(t, conn, testTenant, []domain.Status{domain.StatusSucceeded})
	seedCharges(t, conn, 999, []domain.Status{domain.StatusSucceeded, domain.StatusSucceeded})
	ctx := tenantctx.WithTenantID(context.Background(), testTenant)

	page, err := svc.ListCharges(ctx, domain.ListChargesRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.TotalCount != 1 {
		t.Fatalf("total = %d, want 1", page.TotalCount)
	}
}

func TestListChargesDateNarrowing(t *testing.T) {
	svc, conn := setupTransactions(t)
	// Charges at -0, -1, -2, -3 days.
	seedCharges(t, conn, testTenant, []domain.Status{
		domain.StatusSucceeded, domain.StatusSucceeded, domain.StatusSucceeded, domain.StatusSucceeded,
	})
	ctx := tenantctx.WithTenantID(context.Background(), testTenant)

	page, err := svc.ListCharges(ctx, domain.ListChargesRequest{Params: listing.Params{
		StartDate: "2024-05-30",
		EndDate:   "2024-05-31",
	}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.TotalCount != 2 {
		t.Fatalf("rows in range = %d, want 2", page.TotalCount)
	}
}

func TestListPaymentAttempts(t *testing.T) {
	svc, conn := setupTransactions(t)
	for i, status := range []domain.Status{domain.StatusFailed, domain.StatusSucceeded} {
		err := conn.Create(&domain.PaymentAttempt{
			ID:             snowflake.ID(i + 1),
			TenantID:       testTenant,
			AccountID:      200,
			ProcessorID:    fmt.Sprintf("pi_%d", i),
			Amount:         2500,
			Currency:       "usd",
			Status:         status,
			FailureCode:    "card_declined",
			FailureMessage: "Your card was declined.",
			CreatedAt:      fixedNow,
			UpdatedAt:      fixedNow,
		}).Error
		if err != nil {
			t.Fatalf("seed attempt %d: %v", i, err)
		}
	}
	ctx := tenantctx.WithTenantID(context.Background(), testTenant)

	page, err := svc.ListPaymentAttempts(ctx, domain.ListPaymentAttemptsRequest{Status: string(domain.StatusFailed)})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.TotalCount != 1 || page.Data[0].FailureCode != "card_declined" {
		t.Fatalf("failed attempts = %+v", page)
	}
}

func TestListChargesRequiresTenant(t *testing.T) {
	svc, _ := setupTransactions(t)
	_, err := svc.ListCharges(context.Background(), domain.ListChargesRequest{})
	if !errors.Is(err, domain.ErrInvalidTenant) {
		t.Fatalf("err = %v, want ErrInvalidTenant", err)
	}
}
