package logger_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"wtsplinks/internal/config"
	"wtsplinks/internal/infra"
)

var Module = fx.Provide(provideLogger)

func provideLogger(lc fx.Lifecycle, cfg config.LogConfig) (*zap.Logger, error) {
	logger, err := infra.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = logger.Sync()
			return nil
		},
	})
	return logger, nil
}
