package manage_sessions

import (
	"context"

	"github.com/avdeevsv/GBS-QueueService/internal/service/queue/models"
)

type QueueService interface {
	CreateSession(ctx context.Context, queueItemID string, req *models.CreateSessionRequest) (*models.SessionResponse, error)
	UpdateSession(ctx context.Context, sessionID string, req *models.UpdateSessionRequest) (*models.SessionResponse, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
