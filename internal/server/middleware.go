package server

import (
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smallbiznis/paymirror/internal/tenantctx"
	"github.com/smallbiznis/paymirror/pkg/telemetry"
	"github.com/smallbiznis/paymirror/pkg/telemetry/correlation"
)

const (
	HeaderTenant    = "X-Tenant-ID"
	HeaderRequestID = "X-Request-ID"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, id := correlation.Ensure(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Correlation-ID", id)
		c.Next()
	}
}

func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		}
		if id := correlation.FromContext(c.Request.Context()); id != "" {
			fields = append(fields, zap.String("correlation_id", id))
		}
		if last := c.Errors.Last(); last != nil {
			fields = append(fields, zap.Error(last.Err))
		}

		if c.Writer.Status() >= 500 {
			logger.Error("request", fields...)
			return
		}
		logger.Info("request", fields...)
	}
}

func APIMetricsMiddleware(metrics *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		tenant := ""
		if tenantID, ok := tenantctx.TenantID(c.Request.Context()); ok {
			tenant = tenantID.String()
		}
		metrics.ObserveAPIRequest(
			c.Request.Method,
			statusClass(c.Writer.Status()),
			tenant,
			time.Since(start),
		)
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// QueryRateLimit throttles per tenant. A limiter failure (redis down) lets
// the request through, the mirror degrades to unthrottled rather than down.
func (s *Server) QueryRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.queryLimiter.Enabled() {
			c.Next()
			return
		}

		tenantID, ok := tenantctx.TenantID(c.Request.Context())
		if !ok {
			c.Next()
			return
		}

		allowed, retryAfter, err := s.queryLimiter.AllowTenant(c.Request.Context(), tenantID.String())
		if err != nil {
			c.Next()
			return
		}
		if !allowed {
			if retryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
			}
			AbortWithError(c, ErrRateLimited)
			return
		}
		c.Next()
	}
}

// TenantRequired resolves the caller's tenant from the request header and
// injects it into the request context. Every scoped query downstream reads
// the tenant from there, never from handler arguments.
func (s *Server) TenantRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderTenant))
		if raw == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		tenantID, err := snowflake.ParseString(raw)
		if err != nil || tenantID == 0 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ctx := tenantctx.WithTenantID(c.Request.Context(), tenantID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
