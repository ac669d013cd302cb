package option

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/smallbiznis/paymirror/pkg/db/pagination"
	"gorm.io/gorm"
)

// QueryOption mutates a gorm statement. Options compose left to right and
// never interpolate caller-supplied column names.
type QueryOption interface {
	Apply(*gorm.DB) *gorm.DB
}

type queryOptionFunc func(*gorm.DB) *gorm.DB

func (f queryOptionFunc) Apply(stmt *gorm.DB) *gorm.DB { return f(stmt) }

type Operator string

const (
	EQ  Operator = "="
	GTE Operator = ">="
	LTE Operator = "<="
)

type Condition struct {
	Column string
	Op     Operator
	Value  any
}

// ApplyOperator adds a single comparison against a column the caller owns.
func ApplyOperator(c Condition) QueryOption {
	return queryOptionFunc(func(stmt *gorm.DB) *gorm.DB {
		switch c.Op {
		case EQ, GTE, LTE:
			return stmt.Where(fmt.Sprintf("%s %s ?", c.Column, c.Op), c.Value)
		default:
			return stmt
		}
	})
}

// WithSearch adds one AND term matching the query as a case-insensitive
// substring of any of the given columns. Columns come from a per-entity
// whitelist, never from the request.
func WithSearch(query string, columns []string) QueryOption {
	return queryOptionFunc(func(stmt *gorm.DB) *gorm.DB {
		q := strings.TrimSpace(query)
		if q == "" || len(columns) == 0 {
			return stmt
		}
		pattern := "%" + escapeLike(strings.ToLower(q)) + "%"

		clauses := make([]string, 0, len(columns))
		values := make([]any, 0, len(columns))
		for _, col := range columns {
			clauses = append(clauses, fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, col))
			values = append(values, pattern)
		}
		return stmt.Where(strings.Join(clauses, " OR "), values...)
	})
}

// WithFilters adds equality predicates for whitelisted filter keys. allowed
// maps a request key to its column; unknown keys are dropped silently.
func WithFilters(filter map[string]string, allowed map[string]string) QueryOption {
	return queryOptionFunc(func(stmt *gorm.DB) *gorm.DB {
		if len(filter) == 0 || len(allowed) == 0 {
			return stmt
		}
		keys := make([]string, 0, len(filter))
		for key := range filter {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			column, ok := allowed[key]
			if !ok {
				continue
			}
			value := strings.TrimSpace(filter[key])
			if value == "" {
				continue
			}
			stmt = stmt.Where(fmt.Sprintf("%s = ?", column), value)
		}
		return stmt
	})
}

// WithDateRange bounds a timestamp column by an inclusive interval.
func WithDateRange(column string, from, to *time.Time) QueryOption {
	return queryOptionFunc(func(stmt *gorm.DB) *gorm.DB {
		if from != nil {
			stmt = stmt.Where(fmt.Sprintf("%s >= ?", column), *from)
		}
		if to != nil {
			stmt = stmt.Where(fmt.Sprintf("%s <= ?", column), *to)
		}
		return stmt
	})
}

// WithQuerySortBy resolves a "column:direction" sort string against a
// whitelist of sortable columns. Direction is descending only when the suffix
// is exactly "desc". Unknown or empty columns fall back to the entity default;
// it never fails.
func WithQuerySortBy(sortBy string, allowed map[string]bool, fallback string) string {
	raw := strings.TrimSpace(sortBy)
	if raw == "" {
		return fallback
	}

	column := raw
	direction := "asc"
	if idx := strings.Index(raw, ":"); idx >= 0 {
		column = strings.TrimSpace(raw[:idx])
		if strings.TrimSpace(raw[idx+1:]) == "desc" {
			direction = "desc"
		}
	}

	if !allowed[column] {
		return fallback
	}
	return column + " " + direction
}

// WithSortBy orders by a clause previously resolved through WithQuerySortBy.
func WithSortBy(clause string) QueryOption {
	return queryOptionFunc(func(stmt *gorm.DB) *gorm.DB {
		if strings.TrimSpace(clause) == "" {
			return stmt
		}
		return stmt.Order(clause)
	})
}

// ApplyPagination applies offset/limit from normalized paging parameters.
func ApplyPagination(p pagination.Pagination) QueryOption {
	return queryOptionFunc(func(stmt *gorm.DB) *gorm.DB {
		p = p.Normalize()
		return stmt.Offset(p.Offset()).Limit(p.PageSize)
	})
}

func escapeLike(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, "%", `\%`)
	value = strings.ReplaceAll(value, "_", `\_`)
	return value
}
