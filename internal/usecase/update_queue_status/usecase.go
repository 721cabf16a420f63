package update_queue_status

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
	queueRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/queue"
)

// UseCase use case изменения статуса позиции очереди.
// Статусы образуют линейный порядок new - scheduled - in_progress - review -
// finished; движение вперёд требует выполнения входных условий этапа,
// движение назад - обязательной причины.
type UseCase struct {
	queueRepo    QueueRepository
	orderRepo    OrderRepository
	settingsRepo SettingsRepository
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	queueRepo QueueRepository,
	orderRepo OrderRepository,
	settingsRepo SettingsRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		queueRepo:    queueRepo,
		orderRepo:    orderRepo,
		settingsRepo: settingsRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет изменение статуса/полей позиции очереди
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateQueueStatus: queue_item=%s, status=%q, missed=%t",
		req.QueueItemID, req.Status, req.MarkMissed)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateQueueStatus: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *Response
	var events []domain.QueueEvent
	clearedAppointment := false

	// 2. Изменение позиции и зеркало заказа - атомарно
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		item, err := uc.queueRepo.GetByID(txCtx, req.QueueItemID)
		if err != nil {
			if errors.Is(err, queueRepo.ErrQueueItemNotFound) {
				uc.logger.Warn("UpdateQueueStatus: queue item %s not found", req.QueueItemID)
				return ErrQueueItemNotFound
			}
			uc.logger.Error("UpdateQueueStatus: failed to get queue item %s: %v", req.QueueItemID, err)
			return fmt.Errorf("%w: failed to get queue item: %v", ErrInternal, err)
		}

		fields := queueRepo.UpdateFields{
			RoomCode:   req.RoomCode,
			ProofAdded: req.ProofAdded,
		}
		noteParts := make([]string, 0, 2)

		targetStatus := item.Status
		orderStatus := domain.OrderStatus("")

		// 2.1. Фиксация пропуска встречи
		if req.MarkMissed {
			fields.IncrementMissed = true
			orderStatus = domain.OrderStatusMissed
			events = append(events, uc.buildEvent(domain.EventMissed, item, req.RoomCode))
		}

		// 2.2. Переход по статусам
		if req.Status != "" && domain.QueueStatus(req.Status) != item.Status {
			targetStatus = domain.QueueStatus(req.Status)

			if item.Status.IsBackwardTransition(targetStatus) {
				// Движение назад - только с причиной, причина остаётся в заметках
				if req.Reason == nil || strings.TrimSpace(*req.Reason) == "" {
					uc.logger.Warn("UpdateQueueStatus: backward %s -> %s without reason", item.Status, targetStatus)
					return ErrReasonRequired
				}
				noteParts = append(noteParts,
					fmt.Sprintf("[moved back to %s] %s", targetStatus, strings.TrimSpace(*req.Reason)))

				// Возврат в new снимает запись - позиция снова ждёт слота
				if targetStatus == domain.QueueStatusNew && item.AppointmentTime != nil {
					if err := uc.queueRepo.ClearAppointment(txCtx, item.ID); err != nil {
						uc.logger.Error("UpdateQueueStatus: failed to clear appointment for %s: %v", item.ID, err)
						return fmt.Errorf("%w: failed to clear appointment: %v", ErrInternal, err)
					}
					clearedAppointment = true
				}
			} else {
				event, err := uc.checkForward(txCtx, item, targetStatus, req, &fields, now)
				if err != nil {
					return err
				}
				if event != nil {
					events = append(events, *event)
				}
			}

			orderStatus = domain.OrderStatusFor(targetStatus)
		} else if req.RoomCode != nil {
			// Код комнаты без смены статуса - отдельное уведомление клиенту
			events = append(events, uc.buildEvent(domain.EventRoomCode, item, req.RoomCode))
		}

		if req.Note != nil && strings.TrimSpace(*req.Note) != "" {
			noteParts = append(noteParts, strings.TrimSpace(*req.Note))
		}
		if len(noteParts) > 0 {
			note := strings.Join(noteParts, "\n")
			fields.AppendNote = &note
		}

		if err := uc.queueRepo.UpdateStatus(txCtx, item.ID, targetStatus, fields); err != nil {
			uc.logger.Error("UpdateQueueStatus: failed to update queue item %s: %v", item.ID, err)
			return fmt.Errorf("%w: failed to update queue item: %v", ErrInternal, err)
		}

		if orderStatus != "" {
			if err := uc.orderRepo.UpdateStatus(txCtx, item.OrderID, orderStatus); err != nil {
				uc.logger.Error("UpdateQueueStatus: failed to update order %s: %v", item.OrderID, err)
				return fmt.Errorf("%w: failed to update order status: %v", ErrInternal, err)
			}
		}

		result = buildResponse(item, targetStatus, orderStatus, req, &fields)
		if clearedAppointment {
			result.AppointmentTime = nil
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateQueueStatus: queue item %s is now %s", result.QueueItemID, result.Status)

	// 3. Уведомления после коммита
	for _, event := range events {
		uc.notifier.NotifyBestEffort(ctx, event)
	}

	return result, nil
}

// checkForward проверяет входные условия этапа при движении вперёд.
// Возвращает событие уведомления, если переход его порождает.
func (uc *UseCase) checkForward(
	ctx context.Context,
	item *domain.QueueItem,
	target domain.QueueStatus,
	req *Request,
	fields *queueRepo.UpdateFields,
	now time.Time,
) (*domain.QueueEvent, error) {
	switch target {
	case domain.QueueStatusScheduled:
		// Запись на слот идёт через подтверждение с проверкой вместимости;
		// прямой перевод допустим только при уже назначенном времени
		if item.AppointmentTime == nil {
			uc.logger.Warn("UpdateQueueStatus: item %s has no appointment, scheduling rejected", item.ID)
			return nil, ErrAppointmentRequired
		}
		return nil, nil

	case domain.QueueStatusInProgress:
		roomCode := item.RoomCode
		if req.RoomCode != nil {
			roomCode = req.RoomCode
		}
		if roomCode == nil || strings.TrimSpace(*roomCode) == "" {
			uc.logger.Warn("UpdateQueueStatus: item %s cannot start without a room code", item.ID)
			return nil, ErrRoomCodeRequired
		}
		// Незапланированная позиция стартует прямо сейчас
		if item.AppointmentTime == nil {
			fields.AppointmentTime = &now
		}
		event := uc.buildEvent(domain.EventInProgress, item, roomCode)
		return &event, nil

	case domain.QueueStatusReview:
		return nil, nil

	case domain.QueueStatusFinished:
		proofRequired, err := uc.settingsRepo.GetProofRequired(ctx)
		if err != nil {
			uc.logger.Error("UpdateQueueStatus: failed to get proof_required: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		proofAdded := item.ProofAdded
		if req.ProofAdded != nil {
			proofAdded = *req.ProofAdded
		}
		if proofRequired && !proofAdded && !req.ProofOverride {
			uc.logger.Warn("UpdateQueueStatus: item %s cannot finish without proof", item.ID)
			return nil, ErrProofRequired
		}
		event := uc.buildEvent(domain.EventCompleted, item, nil)
		return &event, nil
	}

	return nil, nil
}

// buildEvent собирает уведомление из текущего состояния позиции
func (uc *UseCase) buildEvent(eventType domain.QueueEventType, item *domain.QueueItem, roomCode *string) domain.QueueEvent {
	event := domain.QueueEvent{
		Type:            eventType,
		PackageName:     item.PackageName,
		AppointmentTime: item.AppointmentTime,
		RoomCode:        roomCode,
	}
	if roomCode == nil {
		event.RoomCode = item.RoomCode
	}
	if item.CustomerID != nil {
		event.CustomerID = *item.CustomerID
	}
	return event
}

func buildResponse(item *domain.QueueItem, status domain.QueueStatus, orderStatus domain.OrderStatus, req *Request, fields *queueRepo.UpdateFields) *Response {
	resp := &Response{
		QueueItemID:     item.ID,
		OrderID:         item.OrderID,
		Status:          string(status),
		AppointmentTime: item.AppointmentTime,
		RoomCode:        item.RoomCode,
		MissedCount:     item.MissedCount,
	}
	if orderStatus != "" {
		resp.OrderStatus = string(orderStatus)
	}
	if fields.AppointmentTime != nil {
		resp.AppointmentTime = fields.AppointmentTime
	}
	if req.RoomCode != nil {
		resp.RoomCode = req.RoomCode
	}
	if fields.IncrementMissed {
		resp.MissedCount = item.MissedCount + 1
	}
	return resp
}
