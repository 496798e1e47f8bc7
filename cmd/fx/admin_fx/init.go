package admin_fx

import (
	"go.uber.org/fx"

	"wtsplinks/internal/repositories"
	"wtsplinks/internal/services"
)

var Module = fx.Provide(
	repositories.NewAdminRepository, services.NewAdminService)
