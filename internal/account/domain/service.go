package domain

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/paymirror/pkg/db/listing"
)

type ListAccountsRequest struct {
	listing.Params
	Status string
}

type ListAccountsFilter struct {
	listing.Params
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type GetAccountRequest struct {
	ID string
}

type Service interface {
	List(context.Context, ListAccountsRequest) (listing.Page[Account], error)
	GetByID(context.Context, GetAccountRequest) (Account, error)
	// Owns reports whether the supplied sub-account belongs to the caller's
	// tenant. Scoped request middleware relies on it before narrowing queries.
	Owns(ctx context.Context, req GetAccountRequest) (bool, error)
}

var (
	ErrInvalidTenant = errors.New("invalid_tenant")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("not_found")
)
