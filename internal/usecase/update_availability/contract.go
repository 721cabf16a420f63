package update_availability

import (
	"context"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
)

// QueueRepository интерфейс репозитория очереди
type QueueRepository interface {
	GetByOrderID(ctx context.Context, orderID string) (*domain.QueueItem, error)
	UpdateAvailability(ctx context.Context, id string, availability domain.Availability) error
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateAvailability(ctx context.Context, id string, availability domain.Availability) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
