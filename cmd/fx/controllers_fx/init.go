package controllers_fx

import (
	"go.uber.org/fx"

	"wtsplinks/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewProfileController),
	fx.Provide(controllers.NewAdminController),
	fx.Provide(controllers.NewCategoryController),
	fx.Provide(controllers.NewGroupController),
	fx.Provide(controllers.NewBulkUploadController),
	fx.Provide(controllers.NewDashboardController))
