package schedule_appointment

import (
	"context"
	"time"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
)

// QueueRepository интерфейс репозитория очереди
type QueueRepository interface {
	GetByID(ctx context.Context, id string) (*domain.QueueItem, error)
	SetAppointment(ctx context.Context, id string, appointmentTime time.Time) error
	GetAppointmentsInWindow(ctx context.Context, from, to time.Time) ([]domain.Appointment, error)
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	GetScheduleSettings(ctx context.Context) (domain.ScheduleSettings, error)
}

// CatalogRepository интерфейс репозитория каталога пакетов
type CatalogRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Package, error)
}

// Notifier интерфейс клиента уведомлений
type Notifier interface {
	NotifyBestEffort(ctx context.Context, event domain.QueueEvent)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
