package domain

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/paymirror/pkg/db/listing"
)

type ListCustomersRequest struct {
	listing.Params
	Email    string
	Currency string
}

type ListCustomersFilter struct {
	listing.Params
	Email       string
	Currency    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type GetCustomerRequest struct {
	ID string
}

type Service interface {
	List(context.Context, ListCustomersRequest) (listing.Page[Customer], error)
	GetByID(context.Context, GetCustomerRequest) (Customer, error)
}

var (
	ErrInvalidTenant = errors.New("invalid_tenant")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("not_found")
)
