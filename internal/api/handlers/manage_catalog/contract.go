package manage_catalog

import (
	"context"

	"github.com/avdeevsv/GBS-QueueService/internal/service/catalog/models"
)

type CatalogService interface {
	ListActive(ctx context.Context) (*models.PackageListResponse, error)
	Reorder(ctx context.Context, req *models.ReorderRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
