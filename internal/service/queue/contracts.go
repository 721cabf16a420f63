package queue

import (
	"context"
	"time"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
	sessionRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/session"
)

// QueueRepository интерфейс репозитория очереди
type QueueRepository interface {
	GetByID(ctx context.Context, id string) (*domain.QueueItem, error)
	List(ctx context.Context, filter domain.QueueFilter) ([]*domain.QueueItem, error)
	GetAppointmentsInWindow(ctx context.Context, from, to time.Time) ([]domain.Appointment, error)
}

// SessionRepository интерфейс репозитория сеансов
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) (*domain.Session, error)
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	ListByQueueItem(ctx context.Context, queueItemID string) ([]*domain.Session, error)
	Update(ctx context.Context, id string, fields sessionRepo.UpdateFields) error
	Delete(ctx context.Context, id string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
