package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	accountdomain "github.com/smallbiznis/paymirror/internal/account/domain"
	"github.com/smallbiznis/paymirror/internal/tenantctx"
)

// observeList records per-entity query telemetry on both exporters.
func (s *Server) observeList(c *gin.Context, entity string, start time.Time) {
	tenant := ""
	if tenantID, ok := tenantctx.TenantID(c.Request.Context()); ok {
		tenant = tenantID.String()
	}
	s.metrics.ObserveListQuery(entity, tenant, time.Since(start))
	s.obsMetrics.RecordEntityQuery(c.Request.Context(), entity)
}

func (s *Server) ListAccounts(c *gin.Context) {
	params, err := s.bindListParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	start := time.Now()
	resp, err := s.accountSvc.List(c.Request.Context(), accountdomain.ListAccountsRequest{
		Params: params,
		Status: strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.observeList(c, "accounts", start)

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetAccountByID(c *gin.Context) {
	resp, err := s.accountSvc.GetByID(c.Request.Context(), accountdomain.GetAccountRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
