package refund

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/smallbiznis/paymirror/internal/refund/domain"
	"github.com/smallbiznis/paymirror/internal/refund/service"
	"github.com/smallbiznis/paymirror/pkg/repository"
)

var Module = fx.Module("refund.service",
	fx.Provide(func(db *gorm.DB) repository.Repository[domain.Refund] {
		return repository.ProvideStore[domain.Refund](db)
	}),
	fx.Provide(service.New),
)
