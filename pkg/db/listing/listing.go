package listing

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/paymirror/internal/period"
	"github.com/smallbiznis/paymirror/pkg/db/pagination"
)

// Params is the common surface of every collection listing: paging, free-text
// search, whitelisted equality filters, optional sub-account scope, and date
// narrowing. Entity requests embed it.
type Params struct {
	pagination.Pagination

	Query     string
	Sort      string
	Filter    map[string]string
	AccountID *snowflake.ID

	Year      int
	Month     int
	StartDate string
	EndDate   string
	Period    string
}

// Bounds resolves the date narrowing to inclusive interval bounds. Explicit
// dates win over year/month, which wins over the period shorthand.
func (p Params) Bounds(now time.Time) (from, to *time.Time) {
	return period.Selection{
		Year:      p.Year,
		Month:     p.Month,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Shorthand: p.Period,
	}.Bounds(now)
}

// Page is a shaped listing result.
type Page[T any] struct {
	Data        []T   `json:"data"`
	TotalCount  int64 `json:"total_count"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
}

// NewPage shapes rows and an independently counted total into a page. The
// total always comes from the count query, never from len(data).
func NewPage[T any](data []T, totalCount int64, p pagination.Pagination) Page[T] {
	p = p.Normalize()
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		Data:        data,
		TotalCount:  totalCount,
		TotalPages:  pagination.TotalPages(totalCount, p.PageSize),
		CurrentPage: p.Page,
		PageSize:    p.PageSize,
	}
}
