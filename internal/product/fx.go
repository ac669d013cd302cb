package product

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/smallbiznis/paymirror/internal/product/domain"
	"github.com/smallbiznis/paymirror/internal/product/service"
	"github.com/smallbiznis/paymirror/pkg/repository"
)

var Module = fx.Module("product.service",
	fx.Provide(func(db *gorm.DB) repository.Repository[domain.Product] {
		return repository.ProvideStore[domain.Product](db)
	}),
	fx.Provide(service.New),
)
