package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/smallbiznis/paymirror/pkg/db/option"
)

type store[T any] struct {
	db *gorm.DB
}

func ProvideStore[T any](db *gorm.DB) Repository[T] {
	return &store[T]{db: db}
}

func (r *store[T]) WithTrx(tx *gorm.DB) Repository[T] {
	return &store[T]{db: tx}
}

func (r *store[T]) Find(ctx context.Context, query *T, opts ...option.QueryOption) ([]*T, error) {
	var result []*T
	stmt := r.buildQuery(ctx, query, opts...)
	err := stmt.Find(&result).Error
	return result, err
}

func (r *store[T]) FindOne(ctx context.Context, query *T, opts ...option.QueryOption) (*T, error) {
	var result T
	stmt := r.buildQuery(ctx, query, opts...)
	err := stmt.First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *store[T]) Count(ctx context.Context, query *T, opts ...option.QueryOption) (int64, error) {
	var count int64
	stmt := r.buildQuery(ctx, query, opts...).Model(new(T))
	err := stmt.Count(&count).Error
	return count, err
}

func (r *store[T]) List(ctx context.Context, query *T, filters []option.QueryOption, page ...option.QueryOption) ([]*T, int64, error) {
	total, err := r.Count(ctx, query, filters...)
	if err != nil {
		return nil, 0, err
	}

	opts := make([]option.QueryOption, 0, len(filters)+len(page))
	opts = append(opts, filters...)
	opts = append(opts, page...)
	result, err := r.Find(ctx, query, opts...)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *store[T]) Create(ctx context.Context, resource *T) error {
	return r.db.WithContext(ctx).Create(resource).Error
}

func (r *store[T]) BatchCreate(ctx context.Context, resources []*T) error {
	if len(resources) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(resources).Error
}

func (s *store[T]) buildQuery(ctx context.Context, filter *T, opts ...option.QueryOption) *gorm.DB {
	db := s.db.WithContext(ctx).Where(filter)

	for _, opt := range opts {
		db = opt.Apply(db)
	}

	return db
}
