package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/smallbiznis/paymirror/internal/config"
	"github.com/smallbiznis/paymirror/internal/ratelimit"
	"github.com/smallbiznis/paymirror/internal/tenantctx"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandlingMiddleware())
	r.GET("/ping", s.TenantRequired(), s.QueryRateLimit(), func(c *gin.Context) {
		tenantID, _ := tenantctx.TenantID(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"tenant": tenantID.String()})
	})
	return r
}

func perform(r *gin.Engine, tenant string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if tenant != "" {
		req.Header.Set(HeaderTenant, tenant)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTenantRequired(t *testing.T) {
	r := newTestEngine(&Server{})

	if w := perform(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: status = %d", w.Code)
	}
	if w := perform(r, "definitely-not-an-id"); w.Code != http.StatusUnauthorized {
		t.Fatalf("malformed header: status = %d", w.Code)
	}
	if w := perform(r, "0"); w.Code != http.StatusUnauthorized {
		t.Fatalf("zero tenant: status = %d", w.Code)
	}

	w := perform(r, "12345")
	if w.Code != http.StatusOK {
		t.Fatalf("valid tenant: status = %d body = %s", w.Code, w.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["tenant"] != "12345" {
		t.Fatalf("tenant in context = %q", body["tenant"])
	}
}

func TestQueryRateLimitDisabledPassesThrough(t *testing.T) {
	r := newTestEngine(&Server{}) // nil limiter
	for i := 0; i < 5; i++ {
		if w := perform(r, "12345"); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, w.Code)
		}
	}
}

func TestQueryRateLimitThrottles(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := config.Config{RateLimit: config.RateLimitConfig{Enabled: true, TenantRate: 1, TenantBurst: 2}}
	r := newTestEngine(&Server{queryLimiter: ratelimit.NewQueryLimiter(cfg, client)})

	for i := 0; i < 2; i++ {
		if w := perform(r, "12345"); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, w.Code)
		}
	}

	w := perform(r, "12345")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("over budget: status = %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatal("missing Retry-After header")
	}
	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error.Type != "rate_limited" {
		t.Fatalf("error type = %q", resp.Error.Type)
	}

	// A different tenant still has budget.
	if w := perform(r, "67890"); w.Code != http.StatusOK {
		t.Fatalf("other tenant: status = %d", w.Code)
	}
}

func TestQueryRateLimitFailsOpen(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := config.Config{RateLimit: config.RateLimitConfig{Enabled: true, TenantRate: 1, TenantBurst: 1}}
	r := newTestEngine(&Server{queryLimiter: ratelimit.NewQueryLimiter(cfg, client)})
	srv.Close()

	// Redis being down must not take the read API with it.
	if w := perform(r, "12345"); w.Code != http.StatusOK {
		t.Fatalf("status = %d with redis down", w.Code)
	}
}

func TestRequestIDEchoedOrGenerated(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "req-abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(HeaderRequestID); got != "req-abc" {
		t.Fatalf("echoed id = %q", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := w.Header().Get(HeaderRequestID); got == "" {
		t.Fatal("no generated request id")
	}
}

func TestStatusClass(t *testing.T) {
	cases := map[int]string{200: "2xx", 204: "2xx", 301: "3xx", 404: "4xx", 429: "4xx", 500: "5xx", 503: "5xx"}
	for status, want := range cases {
		if got := statusClass(status); got != want {
			t.Fatalf("statusClass(%d) = %q, want %q", status, got, want)
		}
	}
}
