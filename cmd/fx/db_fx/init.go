package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"wtsplinks/internal/config"
	"wtsplinks/internal/infra"
)

var Module = fx.Provide(provideDB)

func provideDB(lc fx.Lifecycle, cfg config.PostgresConfig, logger *zap.Logger) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db, logger)
			return nil
		},
	})
	return db, nil
}
