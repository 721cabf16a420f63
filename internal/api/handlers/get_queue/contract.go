package get_queue

import (
	"context"

	"github.com/avdeevsv/GBS-QueueService/internal/service/queue/models"
)

type QueueService interface {
	List(ctx context.Context, req *models.GetQueueRequest) (*models.QueueListResponse, error)
	GetByID(ctx context.Context, id string) (*models.QueueItemDetailsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
