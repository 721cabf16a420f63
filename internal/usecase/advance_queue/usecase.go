package advance_queue

import (
	"context"
	"fmt"
	"time"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
	queueRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/queue"
)

// reviewGraceMinutes - сколько минут после начала встречи позиция остаётся
// в in_progress, прежде чем без подтверждения уйти на проверку
const reviewGraceMinutes = 60

// UseCase use case автоматического продвижения очереди.
// Запускается планировщиком; каждый проход идемпотентен - позиции,
// обработанные прошлым проходом, больше не попадают в выборки.
type UseCase struct {
	queueRepo    QueueRepository
	orderRepo    OrderRepository
	settingsRepo SettingsRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	queueRepo QueueRepository,
	orderRepo OrderRepository,
	settingsRepo SettingsRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		queueRepo:    queueRepo,
		orderRepo:    orderRepo,
		settingsRepo: settingsRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет полный проход: автоперевод наступивших встреч,
// отправка зависших сеансов на проверку и архивация завершённых позиций
func (uc *UseCase) Execute(ctx context.Context) (*Result, error) {
	result, err := uc.AutoMove(ctx)
	if err != nil {
		return nil, err
	}

	archived, err := uc.Archive(ctx)
	if err != nil {
		return nil, err
	}
	result.Archived = archived

	if !result.IsNoop() {
		uc.logger.Info("AdvanceQueue: started=%d, to_review=%d, archived=%d",
			result.MovedToInProgress, result.MovedToReview, result.Archived)
	}

	return result, nil
}

// AutoMove продвигает очередь по наступившим встречам без архивации
func (uc *UseCase) AutoMove(ctx context.Context) (*Result, error) {
	now := uc.timeProvider.Now()
	result := &Result{}

	// 1. scheduled -> in_progress: время встречи наступило
	moved, err := uc.advance(ctx, now, domain.QueueStatusInProgress, uc.queueRepo.ListDueForStart)
	if err != nil {
		return nil, err
	}
	result.MovedToInProgress = moved

	// 2. in_progress -> review: час после начала, подтверждения нет
	reviewCutoff := now.Add(-reviewGraceMinutes * time.Minute)
	moved, err = uc.advance(ctx, reviewCutoff, domain.QueueStatusReview, uc.queueRepo.ListDueForReview)
	if err != nil {
		return nil, err
	}
	result.MovedToReview = moved

	return result, nil
}

// Archive удаляет завершённые позиции старше auto_archive_days
func (uc *UseCase) Archive(ctx context.Context) (int, error) {
	now := uc.timeProvider.Now()

	archiveDays, err := uc.settingsRepo.GetAutoArchiveDays(ctx)
	if err != nil {
		uc.logger.Error("AdvanceQueue: failed to get auto_archive_days: %v", err)
		return 0, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	archived, err := uc.queueRepo.DeleteFinishedBefore(ctx, now.AddDate(0, 0, -archiveDays))
	if err != nil {
		uc.logger.Error("AdvanceQueue: failed to archive finished items: %v", err)
		return 0, fmt.Errorf("%w: failed to archive: %v", ErrInternal, err)
	}

	return int(archived), nil
}

// advance переводит все позиции из выборки в целевой статус, зеркалируя
// статус заказа. Каждая позиция обрабатывается в своей транзакции -
// сбой на одной не откатывает остальные.
func (uc *UseCase) advance(
	ctx context.Context,
	cutoff time.Time,
	target domain.QueueStatus,
	list func(ctx context.Context, cutoff time.Time) ([]*domain.QueueItem, error),
) (int, error) {
	items, err := list(ctx, cutoff)
	if err != nil {
		uc.logger.Error("AdvanceQueue: failed to list items due for %s: %v", target, err)
		return 0, fmt.Errorf("%w: failed to list due items: %v", ErrInternal, err)
	}

	moved := 0
	for _, item := range items {
		err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
			if err := uc.queueRepo.UpdateStatus(txCtx, item.ID, target, queueRepo.UpdateFields{}); err != nil {
				return err
			}
			return uc.orderRepo.UpdateStatus(txCtx, item.OrderID, domain.OrderStatusFor(target))
		})
		if err != nil {
			uc.logger.Error("AdvanceQueue: failed to move item %s to %s: %v", item.ID, target, err)
			continue
		}
		moved++
	}

	return moved, nil
}
