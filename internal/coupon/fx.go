package coupon

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/smallbiznis/paymirror/internal/coupon/domain"
	"github.com/smallbiznis/paymirror/internal/coupon/service"
	"github.com/smallbiznis/paymirror/pkg/repository"
)

var Module = fx.Module("coupon.service",
	fx.Provide(func(db *gorm.DB) repository.Repository[domain.Coupon] {
		return repository.ProvideStore[domain.Coupon](db)
	}),
	fx.Provide(service.New),
)
