package infra

import (
	"fmt"

	"go.uber.org/zap"

	"wtsplinks/internal/config"
)

func NewLogger(cfg config.LogConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}

	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parse LOG_LEVEL: %w", err)
		}
		zc.Level = level
	}

	return zc.Build()
}
