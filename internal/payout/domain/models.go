package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"

	"github.com/smallbiznis/paymirror/pkg/db/listing"
)

type Status string

const (
	StatusPaid      Status = "paid"
	StatusPending   Status = "pending"
	StatusInTransit Status = "in_transit"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

// Payout mirrors a processor payout to the sub-account's bank.
type Payout struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	TenantID    snowflake.ID      `gorm:"not null;index" json:"tenant_id"`
	AccountID   snowflake.ID      `gorm:"not null;index" json:"account_id"`
	ProcessorID string            `gorm:"not null;uniqueIndex" json:"processor_id"`
	Amount      int64             `gorm:"not null" json:"amount"`
	Currency    string            `gorm:"not null" json:"currency"`
	Status      Status            `gorm:"not null;index" json:"status"`
	Method      string            `json:"method,omitempty"`
	ArrivalDate *time.Time        `json:"arrival_date,omitempty"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt   time.Time         `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null" json:"updated_at"`
}

func (Payout) TableName() string { return "payouts" }

type ListPayoutsRequest struct {
	listing.Params
	Status string
}

type Service interface {
	List(context.Context, ListPayoutsRequest) (listing.Page[Payout], error)
}

var (
	ErrInvalidTenant = errors.New("invalid_tenant")
)
