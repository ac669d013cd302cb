package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusDraft         Status = "draft"
	StatusOpen          Status = "open"
	StatusPaid          Status = "paid"
	StatusVoid          Status = "void"
	StatusUncollectible Status = "uncollectible"
)

// Invoice mirrors a processor invoice.
type Invoice struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	TenantID    snowflake.ID      `gorm:"not null;index" json:"tenant_id"`
	AccountID   snowflake.ID      `gorm:"not null;index" json:"account_id"`
	ProcessorID string            `gorm:"not null;uniqueIndex" json:"processor_id"`
	CustomerID  *snowflake.ID     `gorm:"index" json:"customer_id,omitempty"`
	Number      string            `gorm:"index" json:"number,omitempty"`
	Status      Status            `gorm:"not null;index" json:"status"`
	AmountDue   int64             `gorm:"not null" json:"amount_due"`
	AmountPaid  int64             `gorm:"not null" json:"amount_paid"`
	Currency    string            `gorm:"not null" json:"currency"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	PaidAt      *time.Time        `json:"paid_at,omitempty"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt   time.Time         `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null" json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }

// InvoiceView is an Invoice with its customer display name joined in.
type InvoiceView struct {
	Invoice      `gorm:"embedded"`
	CustomerName string `gorm:"column:customer_name" json:"customer_name"`
}
