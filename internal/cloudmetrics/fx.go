package cloudmetrics

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/paymirror/internal/config"
)

var Module = fx.Module("cloudmetrics",
	fx.Invoke(Register),
)

// Register starts the remote-write pusher when an endpoint is configured.
func Register(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) {
	if !cfg.Metrics.Enabled || cfg.Metrics.Endpoint == "" {
		logger.Info("cloud metrics export disabled")
		return
	}

	pusher := NewPusher(cfg.Metrics.Endpoint, cfg.Metrics.AuthToken, nil, logger.Named("cloudmetrics"))
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pusher.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return pusher.Stop(ctx)
		},
	})
}
