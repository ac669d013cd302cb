package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	accountdomain "github.com/smallbiznis/paymirror/internal/account/domain"
	"github.com/smallbiznis/paymirror/internal/config"
	coupondomain "github.com/smallbiznis/paymirror/internal/coupon/domain"
	customerdomain "github.com/smallbiznis/paymirror/internal/customer/domain"
	dashboarddomain "github.com/smallbiznis/paymirror/internal/dashboard/domain"
	invoicedomain "github.com/smallbiznis/paymirror/internal/invoice/domain"
	obsmetrics "github.com/smallbiznis/paymirror/internal/observability/metrics"
	obstracing "github.com/smallbiznis/paymirror/internal/observability/tracing"
	payoutdomain "github.com/smallbiznis/paymirror/internal/payout/domain"
	productdomain "github.com/smallbiznis/paymirror/internal/product/domain"
	"github.com/smallbiznis/paymirror/internal/ratelimit"
	"github.com/smallbiznis/paymirror/internal/report"
	subscriptiondomain "github.com/smallbiznis/paymirror/internal/subscription/domain"
	transactiondomain "github.com/smallbiznis/paymirror/internal/transaction/domain"
	"github.com/smallbiznis/paymirror/pkg/telemetry"

	refunddomain "github.com/smallbiznis/paymirror/internal/refund/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(logger *zap.Logger, metrics *telemetry.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(CorrelationMiddleware())
	r.Use(obstracing.GinMiddleware())
	r.Use(RequestLogger(logger))
	r.Use(APIMetricsMiddleware(metrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type engineParams struct {
	fx.In

	Logger  *zap.Logger
	Metrics *telemetry.Metrics `optional:"true"`
}

func registerGin(p engineParams) *gin.Engine {
	return NewEngine(p.Logger, p.Metrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("http server listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	db              *gorm.DB
	accountSvc      accountdomain.Service
	customerSvc     customerdomain.Service
	productSvc      productdomain.Service
	subscriptionSvc subscriptiondomain.Service
	invoiceSvc      invoicedomain.Service
	refundSvc       refunddomain.Service
	payoutSvc       payoutdomain.Service
	couponSvc       coupondomain.Service
	transactionSvc  transactiondomain.Service
	dashboardSvc    dashboarddomain.Service
	reportRenderer  report.Renderer
	queryLimiter    *ratelimit.QueryLimiter
	metrics         *telemetry.Metrics
	obsMetrics      *obsmetrics.Metrics
	analytics       *config.AnalyticsConfigHolder
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	DB              *gorm.DB
	AccountSvc      accountdomain.Service
	CustomerSvc     customerdomain.Service
	ProductSvc      productdomain.Service
	SubscriptionSvc subscriptiondomain.Service
	InvoiceSvc      invoicedomain.Service
	RefundSvc       refunddomain.Service
	PayoutSvc       payoutdomain.Service
	CouponSvc       coupondomain.Service
	TransactionSvc  transactiondomain.Service
	DashboardSvc    dashboarddomain.Service
	ReportRenderer  report.Renderer
	QueryLimiter    *ratelimit.QueryLimiter `optional:"true"`
	Metrics         *telemetry.Metrics      `optional:"true"`
	ObsMetrics      *obsmetrics.Metrics     `optional:"true"`
	Analytics       *config.AnalyticsConfigHolder
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		accountSvc:      p.AccountSvc,
		customerSvc:     p.CustomerSvc,
		productSvc:      p.ProductSvc,
		subscriptionSvc: p.SubscriptionSvc,
		invoiceSvc:      p.InvoiceSvc,
		refundSvc:       p.RefundSvc,
		payoutSvc:       p.PayoutSvc,
		couponSvc:       p.CouponSvc,
		transactionSvc:  p.TransactionSvc,
		dashboardSvc:    p.DashboardSvc,
		reportRenderer:  p.ReportRenderer,
		queryLimiter:    p.QueryLimiter,
		metrics:         p.Metrics,
		obsMetrics:      p.ObsMetrics,
		analytics:       p.Analytics,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.TenantRequired(), s.QueryRateLimit())

	// -------- Accounts --------
	api.GET("/accounts", s.ListAccounts)
	api.GET("/accounts/:id", s.GetAccountByID)

	// -------- Customers --------
	api.GET("/customers", s.ListCustomers)
	api.GET("/customers/:id", s.GetCustomerByID)

	// -------- Catalog --------
	api.GET("/products", s.ListProducts)
	api.GET("/coupons", s.ListCoupons)

	// -------- Billing --------
	api.GET("/subscriptions", s.ListSubscriptions)
	api.GET("/invoices", s.ListInvoices)

	// -------- Money movement --------
	api.GET("/charges", s.ListCharges)
	api.GET("/payment_attempts", s.ListPaymentAttempts)
	api.GET("/refunds", s.ListRefunds)
	api.GET("/payouts", s.ListPayouts)

	// -------- Dashboard --------
	api.GET("/dashboard/overview", s.GetDashboardOverview)
	api.GET("/dashboard/report", s.RenderDashboardReport)
}
