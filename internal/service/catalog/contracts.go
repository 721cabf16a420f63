package catalog

import (
	"context"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога пакетов
type CatalogRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Package, error)
	ListActive(ctx context.Context) ([]*domain.Package, error)
	Reorder(ctx context.Context, orderedIDs []string) error
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
