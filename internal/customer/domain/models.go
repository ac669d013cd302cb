package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Customer is the mirrored processor customer, the join target for
// transaction display names.
type Customer struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	TenantID    snowflake.ID      `gorm:"not null;index" json:"tenant_id"`
	AccountID   snowflake.ID      `gorm:"not null;index" json:"account_id"`
	ProcessorID string            `gorm:"not null;uniqueIndex" json:"processor_id"`
	Name        string            `gorm:"not null" json:"name"`
	Email       string            `gorm:"index" json:"email,omitempty"`
	Currency    string            `json:"currency,omitempty"`
	Delinquent  bool              `json:"delinquent"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt   time.Time         `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null" json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }
