package auth_fx

import (
	"go.uber.org/fx"

	"wtsplinks/internal/config"
	"wtsplinks/pkg/utils"
)

var Module = fx.Provide(provideJWTManager)

func provideJWTManager(cfg config.JWTConfig) *utils.JWTManager {
	return utils.NewJWTManager(cfg.Secret, cfg.TTL)
}
