package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusTrialing Status = "trialing"
	StatusPastDue  Status = "past_due"
	StatusCanceled Status = "canceled"
	StatusUnpaid   Status = "unpaid"
)

// Subscription mirrors a processor recurring subscription.
type Subscription struct {
	ID                 snowflake.ID      `gorm:"primaryKey" json:"id"`
	TenantID           snowflake.ID      `gorm:"not null;index" json:"tenant_id"`
	AccountID          snowflake.ID      `gorm:"not null;index" json:"account_id"`
	ProcessorID        string            `gorm:"not null;uniqueIndex" json:"processor_id"`
	CustomerID         *snowflake.ID     `gorm:"index" json:"customer_id,omitempty"`
	ProductID          *snowflake.ID     `gorm:"index" json:"product_id,omitempty"`
	Status             Status            `gorm:"not null;index" json:"status"`
	Amount             int64             `gorm:"not null" json:"amount"`
	Currency           string            `gorm:"not null" json:"currency"`
	Interval           string            `json:"interval,omitempty"`
	CurrentPeriodStart *time.Time        `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time        `json:"current_period_end,omitempty"`
	CanceledAt         *time.Time        `json:"canceled_at,omitempty"`
	Metadata           datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt          time.Time         `gorm:"not null;index" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"not null" json:"updated_at"`
}

func (Subscription) TableName() string { return "subscriptions" }

// SubscriptionView is a Subscription with its joined display fields. Missing
// join rows surface as fallback labels, never as errors.
type SubscriptionView struct {
	Subscription `gorm:"embedded"`
	CustomerName string `gorm:"column:customer_name" json:"customer_name"`
	ProductName  string `gorm:"column:product_name" json:"product_name"`
}
