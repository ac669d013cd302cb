package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/smallbiznis/paymirror/internal/period"
)

type Repository interface {
	List(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, filter ListCustomersFilter) ([]Customer, int64, error)
	FindByID(ctx context.Context, db *gorm.DB, tenantID, id snowflake.ID) (*Customer, error)
	// CountCreatedIn counts customers whose mirrored creation time falls
	// inside the window.
	CountCreatedIn(ctx context.Context, db *gorm.DB, tenantID snowflake.ID, accountID *snowflake.ID, window period.Range) (int64, error)
}
