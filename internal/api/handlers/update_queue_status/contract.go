package update_queue_status

import (
	"context"

	updateQueueStatus "github.com/avdeevsv/GBS-QueueService/internal/usecase/update_queue_status"
)

type UpdateQueueStatusUseCase interface {
	Execute(ctx context.Context, req *updateQueueStatus.Request) (*updateQueueStatus.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
