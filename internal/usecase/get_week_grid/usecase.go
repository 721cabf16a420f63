package get_week_grid

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
	catalogRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/catalog"
	queueRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/queue"
)

// UseCase use case построения недельной сетки слотов для записи
type UseCase struct {
	queueRepo    QueueRepository
	settingsRepo SettingsRepository
	catalogRepo  CatalogRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	queueRepo QueueRepository,
	settingsRepo SettingsRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		queueRepo:    queueRepo,
		settingsRepo: settingsRepo,
		catalogRepo:  catalogRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute строит сетку на GridDays дней. Результат детерминирован при
// фиксированном now: все проверки времени идут через timeProvider.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetWeekGrid: queue_item=%s, week_start=%s",
		req.QueueItemID, req.WeekStart.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetWeekGrid: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	weekStart := dayStart(req.WeekStart)
	if req.WeekStart.IsZero() {
		weekStart = dayStart(now)
	}

	// 3. Получаем позицию очереди
	item, err := uc.queueRepo.GetByID(ctx, req.QueueItemID)
	if err != nil {
		if errors.Is(err, queueRepo.ErrQueueItemNotFound) {
			uc.logger.Warn("GetWeekGrid: queue item %s not found", req.QueueItemID)
			return nil, ErrQueueItemNotFound
		}
		uc.logger.Error("GetWeekGrid: failed to get queue item %s: %v", req.QueueItemID, err)
		return nil, fmt.Errorf("%w: failed to get queue item: %v", ErrInternal, err)
	}

	// 4. Получаем настройки планирования
	settings, err := uc.settingsRepo.GetScheduleSettings(ctx)
	if err != nil {
		uc.logger.Error("GetWeekGrid: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 5. Определяем длительность сеанса по пакету позиции
	durationMinutes := uc.resolveDuration(ctx, item.PackageID)

	// 6. Получаем занятые интервалы с запасом в сутки слева - сеанс,
	// начавшийся до начала окна, может пересекать его первые слоты
	windowEnd := weekStart.AddDate(0, 0, domain.GridDays)
	appointments, err := uc.queueRepo.GetAppointmentsInWindow(ctx, weekStart.AddDate(0, 0, -1), windowEnd)
	if err != nil {
		uc.logger.Error("GetWeekGrid: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 7. Строим сетку
	days, err := buildWeekGrid(
		weekStart,
		now,
		settings.BusinessHours,
		item.Availability,
		appointments,
		durationMinutes,
		settings.MaxConcurrentSessions,
		item.ID,
	)
	if err != nil {
		uc.logger.Error("GetWeekGrid: failed to build grid: %v", err)
		return nil, fmt.Errorf("%w: failed to build grid: %v", ErrInternal, err)
	}

	uc.logger.Info("GetWeekGrid: built %d days for queue_item=%s", len(days), req.QueueItemID)

	return &Response{
		QueueItemID:     item.ID,
		WeekStart:       weekStart,
		DurationMinutes: durationMinutes,
		MaxConcurrent:   settings.MaxConcurrentSessions,
		Days:            days,
	}, nil
}

// resolveDuration извлекает длительность сеанса из пакета.
// Отсутствующий или неполный пакет не ломает построение сетки - берём дефолт.
func (uc *UseCase) resolveDuration(ctx context.Context, packageID string) int {
	pkg, err := uc.catalogRepo.GetByID(ctx, packageID)
	if err != nil {
		if !errors.Is(err, catalogRepo.ErrPackageNotFound) {
			uc.logger.Warn("GetWeekGrid: failed to get package %s: %v", packageID, err)
		}
		return domain.DefaultSessionDuration
	}
	return pkg.Duration()
}
