package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusRestricted Status = "restricted"
	StatusDisabled   Status = "disabled"
)

// Account is a connected processor sub-account owned by a tenant.
type Account struct {
	ID              snowflake.ID      `gorm:"primaryKey" json:"id"`
	TenantID        snowflake.ID      `gorm:"not null;index" json:"tenant_id"`
	ProcessorID     string            `gorm:"not null;uniqueIndex" json:"processor_id"`
	Name            string            `gorm:"not null" json:"name"`
	Slug            string            `gorm:"not null;index" json:"slug"`
	Country         string            `json:"country,omitempty"`
	DefaultCurrency string            `json:"default_currency,omitempty"`
	Status          Status            `gorm:"not null;index" json:"status"`
	ChargesEnabled  bool              `json:"charges_enabled"`
	PayoutsEnabled  bool              `json:"payouts_enabled"`
	Metadata        datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt       time.Time         `gorm:"not null;index" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"not null" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }
