package domain

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/paymirror/pkg/db/listing"
)

type ListChargesRequest struct {
	listing.Params
	Status string
}

type ListPaymentAttemptsRequest struct {
	listing.Params
	Status string
}

// ListChargesFilter is the repository-level shape after the service resolved
// date bounds and normalized paging.
type ListChargesFilter struct {
	listing.Params
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type ListPaymentAttemptsFilter struct {
	listing.Params
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type Service interface {
	ListCharges(context.Context, ListChargesRequest) (listing.Page[Charge], error)
	ListPaymentAttempts(context.Context, ListPaymentAttemptsRequest) (listing.Page[PaymentAttempt], error)
}

var (
	ErrInvalidTenant = errors.New("invalid_tenant")
)
