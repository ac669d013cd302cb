package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/smallbiznis/paymirror/pkg/db/listing"
)

type ListInvoicesRequest struct {
	listing.Params
	Status string
}

type ListInvoicesFilter struct {
	listing.Params
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type Repository interface {
	List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter ListInvoicesFilter) ([]InvoiceView, int64, error)
}

type Service interface {
	List(context.Context, ListInvoicesRequest) (listing.Page[InvoiceView], error)
}

var (
	ErrInvalidTenant = errors.New("invalid_tenant")
)
