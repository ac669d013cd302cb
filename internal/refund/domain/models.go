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
	StatusSucceeded Status = "succeeded"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

// Refund mirrors a processor refund against a charge.
type Refund struct {
	ID                snowflake.ID      `gorm:"primaryKey" json:"id"`
	TenantID          snowflake.ID      `gorm:"not null;index" json:"tenant_id"`
	AccountID         snowflake.ID      `gorm:"not null;index" json:"account_id"`
	ProcessorID       string            `gorm:"not null;uniqueIndex" json:"processor_id"`
	ChargeProcessorID string            `gorm:"index" json:"charge_id,omitempty"`
	Amount            int64             `gorm:"not null" json:"amount"`
	Currency          string            `gorm:"not null" json:"currency"`
	Status            Status            `gorm:"not null;index" json:"status"`
	Reason            string            `json:"reason,omitempty"`
	Metadata          datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt         time.Time         `gorm:"not null;index" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"not null" json:"updated_at"`
}

func (Refund) TableName() string { return "refunds" }

type ListRefundsRequest struct {
	listing.Params
	Status string
}

type Service interface {
	List(context.Context, ListRefundsRequest) (listing.Page[Refund], error)
}

var (
	ErrInvalidTenant = errors.New("invalid_tenant")
)
