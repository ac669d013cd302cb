package server

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	accountdomain "github.com/smallbiznis/paymirror/internal/account/domain"
	"github.com/smallbiznis/paymirror/pkg/db/listing"
	"github.com/smallbiznis/paymirror/pkg/db/pagination"
)

// listQuery is the common query-string surface of every collection endpoint.
type listQuery struct {
	pagination.Pagination
	Query     string `form:"query"`
	Sort      string `form:"sort"`
	AccountID string `form:"account_id"`
	Year      int    `form:"year"`
	Month     int    `form:"month"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Period    string `form:"period"`
}

// bindListParams binds the shared listing surface plus filter[...] pairs and
// resolves the optional account scope. A scope the tenant does not own is
// rejected before any query runs.
func (s *Server) bindListParams(c *gin.Context) (listing.Params, error) {
	var query listQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return listing.Params{}, invalidRequestError()
	}

	accountID, err := s.resolveAccountScope(c, query.AccountID)
	if err != nil {
		return listing.Params{}, err
	}

	page := query.Pagination
	if s.analytics != nil {
		bounds := s.analytics.Get()
		page = page.ClampTo(bounds.DefaultPageSize, bounds.MaxPageSize)
	} else {
		page = page.Normalize()
	}

	return listing.Params{
		Pagination: page,
		Query:      strings.TrimSpace(query.Query),
		Sort:       strings.TrimSpace(query.Sort),
		Filter:     collectFilters(c),
		AccountID:  accountID,
		Year:       query.Year,
		Month:      query.Month,
		StartDate:  strings.TrimSpace(query.StartDate),
		EndDate:    strings.TrimSpace(query.EndDate),
		Period:     strings.TrimSpace(query.Period),
	}, nil
}

// collectFilters gathers filter[key]=value query pairs. Unknown keys pass
// through here; each repository applies its own whitelist.
func collectFilters(c *gin.Context) map[string]string {
	var filters map[string]string
	for key, values := range c.Request.URL.Query() {
		if !strings.HasPrefix(key, "filter[") || !strings.HasSuffix(key, "]") {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(key, "filter["), "]")
		if name == "" || len(values) == 0 {
			continue
		}
		if filters == nil {
			filters = make(map[string]string)
		}
		filters[name] = values[0]
	}
	return filters
}

func (s *Server) resolveAccountScope(c *gin.Context, raw string) (*snowflake.ID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	accountID, err := snowflake.ParseString(trimmed)
	if err != nil || accountID == 0 {
		return nil, newValidationError("account_id", "invalid_account_id", "invalid account_id")
	}

	owned, err := s.accountSvc.Owns(c.Request.Context(), accountdomain.GetAccountRequest{ID: trimmed})
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrForbidden
	}
	return &accountID, nil
}

func parseOptionalBool(value string) (*bool, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

