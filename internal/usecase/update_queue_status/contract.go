package update_queue_status

import (
	"context"
	"time"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
	queueRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/queue"
)

// QueueRepository интерфейс репозитория очереди
type QueueRepository interface {
	GetByID(ctx context.Context, id string) (*domain.QueueItem, error)
	UpdateStatus(ctx context.Context, id string, status domain.QueueStatus, fields queueRepo.UpdateFields) error
	ClearAppointment(ctx context.Context, id string) error
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	GetProofRequired(ctx context.Context) (bool, error)
}

// Notifier интерфейс клиента уведомлений
type Notifier interface {
	NotifyBestEffort(ctx context.Context, event domain.QueueEvent)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
