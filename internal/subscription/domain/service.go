package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/smallbiznis/paymirror/pkg/db/listing"
)

type ListSubscriptionsRequest struct {
	listing.Params
	Status string
}

type ListSubscriptionsFilter struct {
	listing.Params
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type Repository interface {
	List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter ListSubscriptionsFilter) ([]SubscriptionView, int64, error)
}

type Service interface {
	List(context.Context, ListSubscriptionsRequest) (listing.Page[SubscriptionView], error)
}

var (
	ErrInvalidTenant = errors.New("invalid_tenant")
)
