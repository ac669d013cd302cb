package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	accountdomain "github.com/smallbiznis/paymirror/internal/account/domain"
	dashboarddomain "github.com/smallbiznis/paymirror/internal/dashboard/domain"
	"github.com/smallbiznis/paymirror/internal/period"
	"github.com/smallbiznis/paymirror/internal/report"
)

func (s *Server) GetDashboardOverview(c *gin.Context) {
	accountID := strings.TrimSpace(c.Query("account_id"))
	if _, err := s.resolveAccountScope(c, accountID); err != nil {
		AbortWithError(c, err)
		return
	}

	req := dashboarddomain.OverviewRequest{
		AccountID: accountID,
		Period:    strings.TrimSpace(c.Query("period")),
	}

	resp, err := s.dashboardSvc.Overview(c.Request.Context(), req)
	if err != nil {
		s.obsMetrics.RecordOverviewRequest(c.Request.Context(), string(period.ParseKind(req.Period)), "error")
		AbortWithError(c, err)
		return
	}
	s.obsMetrics.RecordOverviewRequest(c.Request.Context(), string(period.ParseKind(req.Period)), "ok")

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// RenderDashboardReport renders the same overview as a downloadable PDF.
func (s *Server) RenderDashboardReport(c *gin.Context) {
	accountID := strings.TrimSpace(c.Query("account_id"))
	periodParam := strings.TrimSpace(c.Query("period"))

	if _, err := s.resolveAccountScope(c, accountID); err != nil {
		AbortWithError(c, err)
		return
	}

	overview, err := s.dashboardSvc.Overview(c.Request.Context(), dashboarddomain.OverviewRequest{
		AccountID: accountID,
		Period:    periodParam,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	accountName := "All accounts"
	if accountID != "" {
		account, err := s.accountSvc.GetByID(c.Request.Context(), accountdomain.GetAccountRequest{ID: accountID})
		if err != nil {
			AbortWithError(c, err)
			return
		}
		accountName = account.Name
	}

	reader, err := s.reportRenderer.GenerateSummary(c.Request.Context(), report.SummaryData{
		AccountName: accountName,
		PeriodLabel: string(period.ParseKind(periodParam)),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Overview:    overview,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "financial-summary.pdf"))
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}
