package get_business_hours

import (
	"context"

	"github.com/avdeevsv/GBS-QueueService/internal/service/settings/models"
)

type SettingsService interface {
	GetBusinessHours(ctx context.Context) (*models.BusinessHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
