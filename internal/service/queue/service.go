package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
	queueRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/queue"
	sessionRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/session"
	"github.com/avdeevsv/GBS-QueueService/internal/service/queue/models"
)

// Service сервис для работы с доской очереди и панелью сеансов
type Service struct {
	queueRepo   QueueRepository
	sessionRepo SessionRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса очереди
func NewService(
	queueRepo QueueRepository,
	sessionRepo SessionRepository,
	logger Logger,
) *Service {
	return &Service{
		queueRepo:   queueRepo,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// List получает доску очереди с опциональной фильтрацией по статусу.
// Позиции возвращаются в порядке position; группировку по колонкам
// выполняет клиент.
func (s *Service) List(ctx context.Context, req *models.GetQueueRequest) (*models.QueueListResponse, error) {
	filter := domain.QueueFilter{}
	if req.Status != nil {
		status, err := models.ToDomainQueueStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status filter=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
		}
		filter.Status = &status
	}

	items, err := s.queueRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d queue items", len(items))
	return models.FromDomainQueueList(items), nil
}

// Appointments возвращает все запланированные события в окне [from, to).
// События уровня позиции и уровня сеансов объединяются в один список.
func (s *Service) Appointments(ctx context.Context, from, to time.Time) (*models.AppointmentListResponse, error) {
	if !to.After(from) {
		s.logger.Warn("Appointments: invalid window from=%s to=%s", from, to)
		return nil, fmt.Errorf("%w: window end must be after start", ErrInvalidInput)
	}

	appointments, err := s.queueRepo.GetAppointmentsInWindow(ctx, from, to)
	if err != nil {
		s.logger.Error("Appointments: repository error: %v", err)
		return nil, fmt.Errorf("%w: Appointments - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointments(appointments), nil
}

// GetByID получает позицию очереди вместе с её сеансами
func (s *Service) GetByID(ctx context.Context, id string) (*models.QueueItemDetailsResponse, error) {
	item, err := s.queueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, queueRepo.ErrQueueItemNotFound) {
			s.logger.Warn("GetByID: queue item id=%s not found", id)
			return nil, ErrQueueItemNotFound
		}
		s.logger.Error("GetByID: repository error for queue item id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	sessions, err := s.sessionRepo.ListByQueueItem(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to list sessions for queue item id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - list sessions: %v", ErrInternal, err)
	}

	return &models.QueueItemDetailsResponse{
		QueueItemResponse: *models.FromDomainQueueItem(item),
		Sessions:          models.FromDomainSessionList(sessions),
	}, nil
}

// CreateSession создает сеанс для позиции очереди. Порядковый номер
// назначается хранилищем и монотонно растёт внутри позиции.
func (s *Service) CreateSession(ctx context.Context, queueItemID string, req *models.CreateSessionRequest) (*models.SessionResponse, error) {
	// Позиция должна существовать; сеансы принадлежат только ей
	if _, err := s.queueRepo.GetByID(ctx, queueItemID); err != nil {
		if errors.Is(err, queueRepo.ErrQueueItemNotFound) {
			s.logger.Warn("CreateSession: queue item id=%s not found", queueItemID)
			return nil, ErrQueueItemNotFound
		}
		s.logger.Error("CreateSession: repository error for queue item id=%s: %v", queueItemID, err)
		return nil, fmt.Errorf("%w: CreateSession - repository error: %v", ErrInternal, err)
	}

	session := &domain.Session{
		QueueItemID:     queueItemID,
		AppointmentTime: req.AppointmentTime,
		RoomCode:        req.RoomCode,
	}
	if req.AppointmentTime != nil {
		session.Status = domain.SessionStatusScheduled
	}

	created, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		s.logger.Error("CreateSession: failed to create session for queue item id=%s: %v", queueItemID, err)
		return nil, fmt.Errorf("%w: CreateSession - create session: %v", ErrInternal, err)
	}

	s.logger.Info("CreateSession: created session id=%s number=%d for queue item id=%s",
		created.ID, created.SessionNumber, queueItemID)
	return models.FromDomainSession(created), nil
}

// UpdateSession обновляет поля сеанса
func (s *Service) UpdateSession(ctx context.Context, sessionID string, req *models.UpdateSessionRequest) (*models.SessionResponse, error) {
	if req.IsEmpty() {
		s.logger.Warn("UpdateSession: empty update for session id=%s", sessionID)
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	fields := sessionRepo.UpdateFields{
		AppointmentTime: req.AppointmentTime,
		RoomCode:        req.RoomCode,
		ProofAdded:      req.ProofAdded,
		Missed:          req.Missed,
	}

	if req.Status != nil {
		status, err := models.ToDomainSessionStatus(*req.Status)
		if err != nil {
			s.logger.Warn("UpdateSession: invalid status=%s for session id=%s", *req.Status, sessionID)
			return nil, ErrInvalidStatus
		}
		fields.Status = &status
	}

	if err := s.sessionRepo.Update(ctx, sessionID, fields); err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("UpdateSession: session id=%s not found", sessionID)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("UpdateSession: repository error for session id=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: UpdateSession - repository error: %v", ErrInternal, err)
	}

	updated, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		s.logger.Error("UpdateSession: failed to reload session id=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: UpdateSession - reload session: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSession: updated session id=%s", sessionID)
	return models.FromDomainSession(updated), nil
}

// DeleteSession удаляет сеанс. Порядковые номера оставшихся сеансов
// не переиспользуются.
func (s *Service) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("DeleteSession: session id=%s not found", sessionID)
			return ErrSessionNotFound
		}
		s.logger.Error("DeleteSession: repository error for session id=%s: %v", sessionID, err)
		return fmt.Errorf("%w: DeleteSession - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteSession: deleted session id=%s", sessionID)
	return nil
}
