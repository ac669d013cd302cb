package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusPending   Status = "pending"
	StatusCanceled  Status = "canceled"
)

// Source tags which physical table a unified transaction row came from.
type Source string

const (
	SourceCharge         Source = "charge"
	SourcePaymentAttempt Source = "payment_attempt"
)

// Charge mirrors a settled or attempted processor charge.
type Charge struct {
	ID                 snowflake.ID      `gorm:"primaryKey" json:"id"`
	TenantID           snowflake.ID      `gorm:"not null;index" json:"tenant_id"`
	AccountID          snowflake.ID      `gorm:"not null;index" json:"account_id"`
	ProcessorID        string            `gorm:"not null;uniqueIndex" json:"processor_id"`
	CustomerID         *snowflake.ID     `gorm:"index" json:"customer_id,omitempty"`
	Amount             int64             `gorm:"not null" json:"amount"`
	Currency           string            `gorm:"not null" json:"currency"`
	Status             Status            `gorm:"not null;index" json:"status"`
	Description        string            `json:"description,omitempty"`
	PaymentMethodTypes pq.StringArray    `gorm:"type:text[]" json:"payment_method_types,omitempty"`
	Metadata           datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt          time.Time         `gorm:"not null;index" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"not null" json:"updated_at"`
}

func (Charge) TableName() string { return "charges" }

// PaymentAttempt mirrors a processor payment intent attempt. Charges and
// payment attempts are independent physical tables treated as one logical
// stream by the analytics engine.
type PaymentAttempt struct {
	ID             snowflake.ID      `gorm:"primaryKey" json:"id"`
	TenantID       snowflake.ID      `gorm:"not null;index" json:"tenant_id"`
	AccountID      snowflake.ID      `gorm:"not null;index" json:"account_id"`
	ProcessorID    string            `gorm:"not null;uniqueIndex" json:"processor_id"`
	CustomerID     *snowflake.ID     `gorm:"index" json:"customer_id,omitempty"`
	Amount         int64             `gorm:"not null" json:"amount"`
	Currency       string            `gorm:"not null" json:"currency"`
	Status         Status            `gorm:"not null;index" json:"status"`
	FailureCode    string            `json:"failure_code,omitempty"`
	FailureMessage string            `json:"failure_message,omitempty"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt      time.Time         `gorm:"not null;index" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"not null" json:"updated_at"`
}

func (PaymentAttempt) TableName() string { return "payment_attempts" }

// Transaction is the shared projection over both sources, used for the
// merged recent-activity stream.
type Transaction struct {
	ProcessorID  string    `json:"id"`
	Source       Source    `json:"source"`
	CustomerName string    `json:"customer"`
	Amount       int64     `json:"amount"`
	Currency     string    `json:"currency"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// RevenuePoint is one succeeded transaction inside a window, the raw input of
// the labeled revenue series.
type RevenuePoint struct {
	Amount    int64
	CreatedAt time.Time
}

// StatusCounts summarize a window's transactions across both sources.
type StatusCounts struct {
	Total     int64
	Succeeded int64
	Failed    int64
}

func (c StatusCounts) Add(other StatusCounts) StatusCounts {
	return StatusCounts{
		Total:     c.Total + other.Total,
		Succeeded: c.Succeeded + other.Succeeded,
		Failed:    c.Failed + other.Failed,
	}
}
