package ingest_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"wtsplinks/internal/repositories"
	"wtsplinks/internal/services"
)

var Module = fx.Provide(provideBulkUploadService)

// Bulk rows go straight to the groups table through the group repository.
func provideBulkUploadService(groupRepo repositories.GroupRepository, logger *zap.Logger) services.BulkUploadServiceInterface {
	return services.NewBulkUploadService(groupRepo, logger)
}
