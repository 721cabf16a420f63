package get_week_grid

import (
	"context"
	"time"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
)

// QueueRepository интерфейс репозитория очереди
type QueueRepository interface {
	GetByID(ctx context.Context, id string) (*domain.QueueItem, error)
	GetAppointmentsInWindow(ctx context.Context, from, to time.Time) ([]domain.Appointment, error)
}

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	GetScheduleSettings(ctx context.Context) (domain.ScheduleSettings, error)
}

// CatalogRepository интерфейс репозитория каталога пакетов
type CatalogRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Package, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
