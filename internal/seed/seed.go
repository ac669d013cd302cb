package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	accountdomain "github.com/smallbiznis/paymirror/internal/account/domain"
	customerdomain "github.com/smallbiznis/paymirror/internal/customer/domain"
	productdomain "github.com/smallbiznis/paymirror/internal/product/domain"
	transactiondomain "github.com/smallbiznis/paymirror/internal/transaction/domain"
)

const (
	demoAccountProcessorID = "acct_demo"
	demoAccountName        = "Demo Store"
)

// EnsureDemoTenant seeds a small, deterministic data set for local
// development: one account, a few customers, products and a spread of
// charges and failed attempts so the dashboard has something to show.
// Seeding is idempotent, keyed on the demo account's processor ID.
func EnsureDemoTenant(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing accountdomain.Account
		err := tx.Where("processor_id = ?", demoAccountProcessorID).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		tenantID := node.Generate()

		account := accountdomain.Account{
			ID:              node.Generate(),
			TenantID:        tenantID,
			ProcessorID:     demoAccountProcessorID,
			Name:            demoAccountName,
			Slug:            "demo-store",
			Country:         "US",
			DefaultCurrency: "usd",
			Status:          accountdomain.StatusActive,
			ChargesEnabled:  true,
			PayoutsEnabled:  true,
			Metadata:        datatypes.JSONMap{},
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := tx.Create(&account).Error; err != nil {
			return err
		}

		customers := []customerdomain.Customer{
			{Name: "Ada Lovelace", Email: "ada@example.com"},
			{Name: "Grace Hopper", Email: "grace@example.com"},
			{Name: "Alan Turing", Email: "alan@example.com"},
		}
		for i := range customers {
			customers[i].ID = node.Generate()
			customers[i].TenantID = tenantID
			customers[i].AccountID = account.ID
			customers[i].ProcessorID = "cus_demo_" + customers[i].ID.String()
			customers[i].Currency = "usd"
			customers[i].Metadata = datatypes.JSONMap{}
			customers[i].CreatedAt = now.AddDate(0, 0, -i)
			customers[i].UpdatedAt = now
			if err := tx.Create(&customers[i]).Error; err != nil {
				return err
			}
		}

		products := []productdomain.Product{
			{Name: "Starter Plan", UnitAmount: 900},
			{Name: "Pro Plan", UnitAmount: 2900},
		}
		for i := range products {
			products[i].ID = node.Generate()
			products[i].TenantID = tenantID
			products[i].AccountID = account.ID
			products[i].ProcessorID = "prod_demo_" + products[i].ID.String()
			products[i].Active = true
			products[i].Currency = "usd"
			products[i].Metadata = datatypes.JSONMap{}
			products[i].CreatedAt = now
			products[i].UpdatedAt = now
			if err := tx.Create(&products[i]).Error; err != nil {
				return err
			}
		}

		amounts := []int64{900, 2900, 2900, 900, 5800}
		for i, amount := range amounts {
			customer := customers[i%len(customers)]
			charge := transactiondomain.Charge{
				ID:          node.Generate(),
				TenantID:    tenantID,
				AccountID:   account.ID,
				ProcessorID: "ch_demo_" + node.Generate().String(),
				CustomerID:  &customer.ID,
				Amount:      amount,
				Currency:    "usd",
				Status:      transactiondomain.StatusSucceeded,
				Metadata:    datatypes.JSONMap{},
				CreatedAt:   now.AddDate(0, 0, -i),
				UpdatedAt:   now,
			}
			if err := tx.Create(&charge).Error; err != nil {
				return err
			}
		}

		attempt := transactiondomain.PaymentAttempt{
			ID:             node.Generate(),
			TenantID:       tenantID,
			AccountID:      account.ID,
			ProcessorID:    "pa_demo_" + node.Generate().String(),
			CustomerID:     &customers[0].ID,
			Amount:         2900,
			Currency:       "usd",
			Status:         transactiondomain.StatusFailed,
			FailureCode:    "card_declined",
			FailureMessage: "Your card was declined.",
			Metadata:       datatypes.JSONMap{},
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		return tx.Create(&attempt).Error
	})
}
