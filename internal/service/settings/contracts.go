package settings

import (
	"context"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	GetScheduleSettings(ctx context.Context) (domain.ScheduleSettings, error)
	Upsert(ctx context.Context, key string, value interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
