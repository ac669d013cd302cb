package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/smallbiznis/paymirror/internal/account"
	"github.com/smallbiznis/paymirror/internal/cache"
	"github.com/smallbiznis/paymirror/internal/clock"
	"github.com/smallbiznis/paymirror/internal/cloudmetrics"
	"github.com/smallbiznis/paymirror/internal/config"
	"github.com/smallbiznis/paymirror/internal/coupon"
	"github.com/smallbiznis/paymirror/internal/customer"
	"github.com/smallbiznis/paymirror/internal/dashboard"
	"github.com/smallbiznis/paymirror/internal/invoice"
	"github.com/smallbiznis/paymirror/internal/logger"
	"github.com/smallbiznis/paymirror/internal/migration"
	"github.com/smallbiznis/paymirror/internal/observability"
	"github.com/smallbiznis/paymirror/internal/payout"
	"github.com/smallbiznis/paymirror/internal/product"
	"github.com/smallbiznis/paymirror/internal/ratelimit"
	"github.com/smallbiznis/paymirror/internal/refund"
	"github.com/smallbiznis/paymirror/internal/report"
	"github.com/smallbiznis/paymirror/internal/server"
	"github.com/smallbiznis/paymirror/internal/subscription"
	"github.com/smallbiznis/paymirror/internal/transaction"
	"github.com/smallbiznis/paymirror/pkg/db"
	"github.com/smallbiznis/paymirror/pkg/telemetry"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		clock.Module,
		db.Module,
		cache.Module,
		telemetry.Module,
		observability.Module,
		cloudmetrics.Module,
		ratelimit.Module,
		fx.Provide(RegisterSnowflake),
		migration.Module,

		// Domains
		account.Module,
		customer.Module,
		product.Module,
		subscription.Module,
		invoice.Module,
		refund.Module,
		payout.Module,
		coupon.Module,
		transaction.Module,
		dashboard.Module,
		report.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
