package advance_queue

import (
	"context"
	"time"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
	queueRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/queue"
)

// QueueRepository интерфейс репозитория очереди
type QueueRepository interface {
	ListDueForStart(ctx context.Context, now time.Time) ([]*domain.QueueItem, error)
	ListDueForReview(ctx context.Context, cutoff time.Time) ([]*domain.QueueItem, error)
	UpdateStatus(ctx context.Context, id string, status domain.QueueStatus, fields queueRepo.UpdateFields) error
	DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	GetAutoArchiveDays(ctx context.Context) (int, error)
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
