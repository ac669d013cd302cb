package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"

	"github.com/smallbiznis/paymirror/pkg/db/listing"
)

type Duration string

const (
	DurationOnce      Duration = "once"
	DurationRepeating Duration = "repeating"
	DurationForever   Duration = "forever"
)

// Coupon mirrors a processor discount coupon.
type Coupon struct {
	ID             snowflake.ID      `gorm:"primaryKey" json:"id"`
	TenantID       snowflake.ID      `gorm:"not null;index" json:"tenant_id"`
	AccountID      snowflake.ID      `gorm:"not null;index" json:"account_id"`
	ProcessorID    string            `gorm:"not null;uniqueIndex" json:"processor_id"`
	Name           string            `gorm:"not null" json:"name"`
	PercentOff     *float64          `json:"percent_off,omitempty"`
	AmountOff      *int64            `json:"amount_off,omitempty"`
	Currency       string            `json:"currency,omitempty"`
	Duration       Duration          `gorm:"not null" json:"duration"`
	Valid          bool              `gorm:"not null;default:true" json:"valid"`
	TimesRedeemed  int64             `json:"times_redeemed"`
	RedeemBy       *time.Time        `json:"redeem_by,omitempty"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt      time.Time         `gorm:"not null;index" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"not null" json:"updated_at"`
}

func (Coupon) TableName() string { return "coupons" }

type ListCouponsRequest struct {
	listing.Params
	Valid *bool
}

type Service interface {
	List(context.Context, ListCouponsRequest) (listing.Page[Coupon], error)
}

var (
	ErrInvalidTenant = errors.New("invalid_tenant")
)
