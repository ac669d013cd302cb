package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	customerdomain "github.com/smallbiznis/paymirror/internal/customer/domain"
)

func (s *Server) ListCustomers(c *gin.Context) {
	params, err := s.bindListParams(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	start := time.Now()
	resp, err := s.customerSvc.List(c.Request.Context(), customerdomain.ListCustomersRequest{
		Params:   params,
		Email:    strings.TrimSpace(c.Query("email")),
		Currency: strings.TrimSpace(c.Query("currency")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.observeList(c, "customers", start)

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetCustomerByID(c *gin.Context) {
	resp, err := s.customerSvc.GetByID(c.Request.Context(), customerdomain.GetCustomerRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
