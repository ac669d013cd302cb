package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/smallbiznis/paymirror/internal/config"
	"github.com/smallbiznis/paymirror/pkg/db/pagination"
)

func newListParamsEngine(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandlingMiddleware())
	r.GET("/items", func(c *gin.Context) {
		params, err := s.bindListParams(c)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"page": params.Page, "page_size": params.PageSize})
	})
	return r
}

func listPageSize(t *testing.T, r *gin.Engine, path string) int {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s: status = %d body = %s", path, w.Code, w.Body.String())
	}
	var body map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body["page_size"]
}

func TestBindListParamsUsesAnalyticsPageBounds(t *testing.T) {
	holder := config.NewStaticAnalyticsConfigHolder(config.AnalyticsConfig{
		DashboardCacheTTLSeconds: 60,
		RecentTransactionLimit:   10,
		DefaultPageSize:          25,
		MaxPageSize:              50,
	})
	r := newListParamsEngine(&Server{analytics: holder})

	if got := listPageSize(t, r, "/items"); got != 25 {
		t.Fatalf("default page size = %d, want 25", got)
	}
	if got := listPageSize(t, r, "/items?page_size=500"); got != 50 {
		t.Fatalf("clamped page size = %d, want 50", got)
	}
	if got := listPageSize(t, r, "/items?page_size=40"); got != 40 {
		t.Fatalf("in-range page size = %d, want 40", got)
	}
}

func TestBindListParamsSeesReloadedBounds(t *testing.T) {
	cfg := config.DefaultAnalyticsConfig()
	holder := config.NewStaticAnalyticsConfigHolder(cfg)
	r := newListParamsEngine(&Server{analytics: holder})

	if got := listPageSize(t, r, "/items?page_size=500"); got != cfg.MaxPageSize {
		t.Fatalf("page size = %d, want %d", got, cfg.MaxPageSize)
	}

	cfg.DefaultPageSize = 5
	cfg.MaxPageSize = 30
	holder.Update(cfg)

	if got := listPageSize(t, r, "/items?page_size=500"); got != 30 {
		t.Fatalf("page size after update = %d, want 30", got)
	}
	if got := listPageSize(t, r, "/items"); got != 5 {
		t.Fatalf("default after update = %d, want 5", got)
	}
}

func TestBindListParamsWithoutHolderFallsBack(t *testing.T) {
	r := newListParamsEngine(&Server{})
	if got := listPageSize(t, r, "/items?page_size=5000"); got != pagination.MaxPageSize {
		t.Fatalf("page size = %d, want %d", got, pagination.MaxPageSize)
	}
}
