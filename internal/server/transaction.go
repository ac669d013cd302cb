package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	payoutdomain "github.com/smallbiznis/paymirror/internal/payout/domain"
	refunddomain "github.com/smallbiznis/paymirror/internal/refund/domain"
	transactiondomain "github.com/smallbiznis/paymirror/internal/transaction/domain"
)

func (s *Server) ListCharges(c *gin.Context) {
	params, err := s.bindListParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	start := time.Now()
	resp, err := s.transactionSvc.ListCharges(c.Request.Context(), transactiondomain.ListChargesRequest{
		Params: params,
		Status: strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.observeList(c, "charges", start)

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListPaymentAttempts(c *gin.Context) {
	params, err := s.bindListParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	start := time.Now()
	resp, err := s.transactionSvc.ListPaymentAttempts(c.Request.Context(), transactiondomain.ListPaymentAttemptsRequest{
		Params: params,
		Status: strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.observeList(c, "payment_attempts", start)

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListRefunds(c *gin.Context) {
	params, err := s.bindListParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	start := time.Now()
	resp, err := s.refundSvc.List(c.Request.Context(), refunddomain.ListRefundsRequest{
		Params: params,
		Status: strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.observeList(c, "refunds", start)

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListPayouts(c *gin.Context) {
	params, err := s.bindListParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	start := time.Now()
	resp, err := s.payoutSvc.List(c.Request.Context(), payoutdomain.ListPayoutsRequest{
		Params: params,
		Status: strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.observeList(c, "payouts", start)

	c.JSON(http.StatusOK, resp)
}
