package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/smallbiznis/paymirror/pkg/db/option"
)

// Repository is a generic store over a mirrored collection. Query options
// compose on top of an exact-match query struct.
type Repository[T any] interface {
	WithTrx(tx *gorm.DB) Repository[T]
	Find(ctx context.Context, query *T, opts ...option.QueryOption) ([]*T, error)
	FindOne(ctx context.Context, query *T, opts ...option.QueryOption) (*T, error)
	Count(ctx context.Context, query *T, opts ...option.QueryOption) (int64, error)
	// List runs an independent count over query+filters, then the data page
	// with the page options stacked on the same predicates.
	List(ctx context.Context, query *T, filters []option.QueryOption, page ...option.QueryOption) ([]*T, int64, error)
	Create(ctx context.Context, resource *T) error
	BatchCreate(ctx context.Context, resources []*T) error
}
