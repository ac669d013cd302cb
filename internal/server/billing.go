package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	invoicedomain "github.com/smallbiznis/paymirror/internal/invoice/domain"
	subscriptiondomain "github.com/smallbiznis/paymirror/internal/subscription/domain"
)

func (s *Server) ListSubscriptions(c *gin.Context) {
	params, err := s.bindListParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	start := time.Now()
	resp, err := s.subscriptionSvc.List(c.Request.Context(), subscriptiondomain.ListSubscriptionsRequest{
		Params: params,
		Status: strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.observeList(c, "subscriptions", start)

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListInvoices(c *gin.Context) {
	params, err := s.bindListParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	start := time.Now()
	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoicesRequest{
		Params: params,
		Status: strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.observeList(c, "invoices", start)

	c.JSON(http.StatusOK, resp)
}
