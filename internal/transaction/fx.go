package transaction

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/paymirror/internal/transaction/repository"
	"github.com/smallbiznis/paymirror/internal/transaction/service"
)

var Module = fx.Module("transaction.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
