package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"

	"github.com/smallbiznis/paymirror/pkg/db/listing"
)

// Product mirrors a processor catalog product.
type Product struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	TenantID    snowflake.ID      `gorm:"not null;index" json:"tenant_id"`
	AccountID   snowflake.ID      `gorm:"not null;index" json:"account_id"`
	ProcessorID string            `gorm:"not null;uniqueIndex" json:"processor_id"`
	Name        string            `gorm:"not null" json:"name"`
	Description string            `json:"description,omitempty"`
	Active      bool              `gorm:"not null;default:true" json:"active"`
	UnitAmount  int64             `json:"unit_amount"`
	Currency    string            `json:"currency,omitempty"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt   time.Time         `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string { return "products" }

type ListProductsRequest struct {
	listing.Params
	Active *bool
}

type Service interface {
	List(context.Context, ListProductsRequest) (listing.Page[Product], error)
}

var (
	ErrInvalidTenant = errors.New("invalid_tenant")
)
