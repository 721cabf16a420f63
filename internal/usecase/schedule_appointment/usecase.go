package schedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
	catalogRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/catalog"
	queueRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/queue"
)

// UseCase use case подтверждения записи на слот.
// Проверка и запись идут в одной сериализуемой транзакции - слот, свободный
// в сетке, мог быть занят между просмотром и подтверждением.
type UseCase struct {
	queueRepo    QueueRepository
	orderRepo    OrderRepository
	settingsRepo SettingsRepository
	catalogRepo  CatalogRepository
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
	catalogRepo CatalogRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		queueRepo:    queueRepo,
		orderRepo:    orderRepo,
		settingsRepo: settingsRepo,
		catalogRepo:  catalogRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет запись позиции очереди на слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ScheduleAppointment: queue_item=%s, time=%s, override=%t",
		req.QueueItemID, req.AppointmentTime.Format(domain.DateFormat+" "+domain.TimeFormat), req.Override)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ScheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверка на прошлое - до транзакции, дальше время только растёт
	if !req.AppointmentTime.After(now) {
		uc.logger.Warn("ScheduleAppointment: time %s is in the past", req.AppointmentTime)
		return nil, ErrSlotInPast
	}

	var result *Response

	// 4. Проверяем и записываем в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Позиция очереди с блокировкой строки (FOR UPDATE)
		item, err := uc.queueRepo.GetByID(txCtx, req.QueueItemID)
		if err != nil {
			if errors.Is(err, queueRepo.ErrQueueItemNotFound) {
				uc.logger.Warn("ScheduleAppointment: queue item %s not found", req.QueueItemID)
				return ErrQueueItemNotFound
			}
			uc.logger.Error("ScheduleAppointment: failed to get queue item %s: %v", req.QueueItemID, err)
			return fmt.Errorf("%w: failed to get queue item: %v", ErrInternal, err)
		}

		// 4.2. Запись допустима только из new и scheduled
		if !item.CanBeScheduled() {
			uc.logger.Warn("ScheduleAppointment: queue item %s has status %s", item.ID, item.Status)
			return ErrInvalidStatus
		}

		// 4.3. Настройки перечитываются внутри транзакции
		settings, err := uc.settingsRepo.GetScheduleSettings(txCtx)
		if err != nil {
			uc.logger.Error("ScheduleAppointment: failed to get settings: %v", err)
			return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}

		// 4.4. Рабочие часы
		weekday := domain.WeekdayFromTime(req.AppointmentTime.Weekday())
		minute := req.AppointmentTime.Hour()*60 + req.AppointmentTime.Minute()

		if !settings.BusinessHours.IsOpen(weekday) || !settings.BusinessHours.ContainsMinute(weekday, minute) {
			uc.logger.Warn("ScheduleAppointment: %s %02d:%02d is outside business hours",
				weekday, minute/60, minute%60)
			return ErrOutsideBusinessHours
		}

		// 4.5. Доступность клиента - мягкая проверка, персонал может переопределить
		if !req.Override && !item.Availability.CoversMinute(weekday, minute) {
			uc.logger.Warn("ScheduleAppointment: %s %02d:%02d is outside customer availability for item %s",
				weekday, minute/60, minute%60, item.ID)
			return ErrOutsideCustomerAvailability
		}

		// 4.6. Длительность сеанса по пакету
		durationMinutes := uc.resolveDuration(txCtx, item.PackageID)

		// 4.7. Занятые интервалы с блокировкой; запас в сутки слева покрывает
		// сеансы, начавшиеся до кандидата
		from := req.AppointmentTime.AddDate(0, 0, -1)
		to := req.AppointmentTime.Add(time.Duration(durationMinutes) * time.Minute)
		appointments, err := uc.queueRepo.GetAppointmentsInWindow(txCtx, from, to)
		if err != nil {
			uc.logger.Error("ScheduleAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 4.8. Проверка вместимости - собственная встреча позиции исключается
		full, err := domain.IsAtCapacity(req.AppointmentTime, durationMinutes, appointments, item.ID, settings.MaxConcurrentSessions)
		if err != nil {
			uc.logger.Error("ScheduleAppointment: capacity check failed: %v", err)
			return fmt.Errorf("%w: capacity check failed: %v", ErrInternal, err)
		}
		if full {
			uc.logger.Warn("ScheduleAppointment: slot %s is full (%d concurrent)",
				req.AppointmentTime, settings.MaxConcurrentSessions)
			return ErrSlotNotAvailable
		}

		// 4.9. Записываем время и переводим в scheduled
		if err := uc.queueRepo.SetAppointment(txCtx, item.ID, req.AppointmentTime); err != nil {
			uc.logger.Error("ScheduleAppointment: failed to set appointment: %v", err)
			return fmt.Errorf("%w: failed to set appointment: %v", ErrInternal, err)
		}

		// 4.10. Зеркалируем статус заказа
		orderStatus := domain.OrderStatusFor(domain.QueueStatusScheduled)
		if err := uc.orderRepo.UpdateStatus(txCtx, item.OrderID, orderStatus); err != nil {
			uc.logger.Error("ScheduleAppointment: failed to update order %s: %v", item.OrderID, err)
			return fmt.Errorf("%w: failed to update order status: %v", ErrInternal, err)
		}

		result = &Response{
			QueueItemID:     item.ID,
			OrderID:         item.OrderID,
			Status:          string(domain.QueueStatusScheduled),
			OrderStatus:     string(orderStatus),
			AppointmentTime: req.AppointmentTime,
			DurationMinutes: durationMinutes,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ScheduleAppointment: queue item %s scheduled at %s",
		result.QueueItemID, result.AppointmentTime)

	// 5. Уведомление после коммита - откат транзакции не должен
	// оставлять клиенту ложное подтверждение
	uc.notifyScheduled(ctx, req)

	return result, nil
}

func (uc *UseCase) notifyScheduled(ctx context.Context, req *Request) {
	item, err := uc.queueRepo.GetByID(ctx, req.QueueItemID)
	if err != nil {
		uc.logger.Warn("ScheduleAppointment: failed to reload item for notification: %v", err)
		return
	}

	event := domain.QueueEvent{
		Type:            domain.EventScheduled,
		PackageName:     item.PackageName,
		AppointmentTime: item.AppointmentTime,
	}
	if item.CustomerID != nil {
		event.CustomerID = *item.CustomerID
	}
	uc.notifier.NotifyBestEffort(ctx, event)
}

// resolveDuration извлекает длительность сеанса из пакета позиции
func (uc *UseCase) resolveDuration(ctx context.Context, packageID string) int {
	pkg, err := uc.catalogRepo.GetByID(ctx, packageID)
	if err != nil {
		if !errors.Is(err, catalogRepo.ErrPackageNotFound) {
			uc.logger.Warn("ScheduleAppointment: failed to get package %s: %v", packageID, err)
		}
		return domain.DefaultSessionDuration
	}
	return pkg.Duration()
}
