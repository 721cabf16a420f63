package update_availability

import (
	"context"
	"errors"
	"fmt"

	orderRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/order"
	queueRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/queue"
)

// UseCase use case изменения доступности клиента.
// Доступность живёт и на заказе, и на позиции очереди - обновляются обе
// копии атомарно, пока статус позволяет редактирование.
type UseCase struct {
	queueRepo QueueRepository
	orderRepo OrderRepository
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	queueRepo QueueRepository,
	orderRepo OrderRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		queueRepo: queueRepo,
		orderRepo: orderRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute выполняет изменение доступности клиента
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAvailability: order=%s", req.OrderID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Нормализация - сортировка, слияние пересечений, удаление пустых дней
	normalized := req.Availability.Normalize()

	var result *Response

	// 3. Обновляем заказ и позицию очереди атомарно
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		order, err := uc.orderRepo.GetByID(txCtx, req.OrderID)
		if err != nil {
			if errors.Is(err, orderRepo.ErrOrderNotFound) {
				uc.logger.Warn("UpdateAvailability: order %s not found", req.OrderID)
				return ErrOrderNotFound
			}
			uc.logger.Error("UpdateAvailability: failed to get order %s: %v", req.OrderID, err)
			return fmt.Errorf("%w: failed to get order: %v", ErrInternal, err)
		}

		// Позиция очереди появляется после оплаты; до неё заказ
		// редактируется свободно
		item, err := uc.queueRepo.GetByOrderID(txCtx, order.ID)
		if err != nil && !errors.Is(err, queueRepo.ErrQueueItemNotFound) {
			uc.logger.Error("UpdateAvailability: failed to get queue item for order %s: %v", order.ID, err)
			return fmt.Errorf("%w: failed to get queue item: %v", ErrInternal, err)
		}

		if item != nil && !item.CanEditAvailability() {
			uc.logger.Warn("UpdateAvailability: order %s fulfillment is %s, editing locked", order.ID, item.Status)
			return ErrEditingLocked
		}

		if err := uc.orderRepo.UpdateAvailability(txCtx, order.ID, normalized); err != nil {
			uc.logger.Error("UpdateAvailability: failed to update order %s: %v", order.ID, err)
			return fmt.Errorf("%w: failed to update order: %v", ErrInternal, err)
		}

		result = &Response{
			OrderID:      order.ID,
			Availability: normalized,
		}

		if item != nil {
			if err := uc.queueRepo.UpdateAvailability(txCtx, item.ID, normalized); err != nil {
				uc.logger.Error("UpdateAvailability: failed to update queue item %s: %v", item.ID, err)
				return fmt.Errorf("%w: failed to update queue item: %v", ErrInternal, err)
			}
			result.QueueItemID = item.ID
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAvailability: order %s saved %d day(s)", result.OrderID, len(result.Availability))

	return result, nil
}
