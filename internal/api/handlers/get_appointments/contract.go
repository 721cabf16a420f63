package get_appointments

import (
	"context"
	"time"

	"github.com/avdeevsv/GBS-QueueService/internal/service/queue/models"
)

type QueueService interface {
	Appointments(ctx context.Context, from, to time.Time) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
