package account

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/paymirror/internal/account/repository"
	"github.com/smallbiznis/paymirror/internal/account/service"
)

var Module = fx.Module("account.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
