package advance_queue

import (
	"context"

	advanceQueue "github.com/avdeevsv/GBS-QueueService/internal/usecase/advance_queue"
)

type AdvanceQueueUseCase interface {
	Execute(ctx context.Context) (*advanceQueue.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
