package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	coupondomain "github.com/smallbiznis/paymirror/internal/coupon/domain"
	productdomain "github.com/smallbiznis/paymirror/internal/product/domain"
)

func (s *Server) ListProducts(c *gin.Context) {
	params, err := s.bindListParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	active, err := parseOptionalBool(c.Query("active"))
	if err != nil {
		AbortWithError(c, newValidationError("active", "invalid_active", "invalid active"))
		return
	}

	start := time.Now()
	resp, err := s.productSvc.List(c.Request.Context(), productdomain.ListProductsRequest{
		Params: params,
		Active: active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.observeList(c, "products", start)

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListCoupons(c *gin.Context) {
	params, err := s.bindListParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	valid, err := parseOptionalBool(c.Query("valid"))
	if err != nil {
		AbortWithError(c, newValidationError("valid", "invalid_valid", "invalid valid"))
		return
	}

	start := time.Now()
	resp, err := s.couponSvc.List(c.Request.Context(), coupondomain.ListCouponsRequest{
		Params: params,
		Valid:  valid,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.observeList(c, "coupons", start)

	c.JSON(http.StatusOK, resp)
}
