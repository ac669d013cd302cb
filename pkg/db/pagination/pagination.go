package pagination

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination carries offset-style paging parameters. Out-of-range values are
// clamped by Normalize, never rejected.
type Pagination struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// Normalize clamps page to >= 1 and page size to [1, MaxPageSize].
func (p Pagination) Normalize() Pagination {
	return p.ClampTo(DefaultPageSize, MaxPageSize)
}

// ClampTo clamps with caller-supplied bounds, for callers that read the
// default and maximum page size from runtime configuration. Non-positive
// bounds fall back to the package constants.
func (p Pagination) ClampTo(defaultSize, maxSize int) Pagination {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if maxSize <= 0 {
		maxSize = MaxPageSize
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultSize
	}
	if p.PageSize > maxSize {
		p.PageSize = maxSize
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns ceil(totalCount / pageSize).
func TotalPages(totalCount int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((totalCount + int64(pageSize) - 1) / int64(pageSize))
}
