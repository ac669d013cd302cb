package payout

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/smallbiznis/paymirror/internal/payout/domain"
	"github.com/smallbiznis/paymirror/internal/payout/service"
	"github.com/smallbiznis/paymirror/pkg/repository"
)

var Module = fx.Module("payout.service",
	fx.Provide(func(db *gorm.DB) repository.Repository[domain.Payout] {
		return repository.ProvideStore[domain.Payout](db)
	}),
	fx.Provide(service.New),
)
