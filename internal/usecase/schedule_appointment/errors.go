package schedule_appointment

import "errors"

var (
	// ErrQueueItemNotFound возвращается, когда позиция очереди не найдена
	ErrQueueItemNotFound = errors.New("schedule_appointment: queue item not found")

	// ErrInvalidStatus возвращается, когда позиция не в статусе new или scheduled
	ErrInvalidStatus = errors.New("schedule_appointment: queue item cannot be scheduled in its current status")

	// ErrSlotInPast возвращается при попытке записи на прошедшее время
	ErrSlotInPast = errors.New("schedule_appointment: appointment time is in the past")

	// ErrOutsideBusinessHours возвращается, когда время вне рабочих часов
	ErrOutsideBusinessHours = errors.New("schedule_appointment: appointment time is outside business hours")

	// ErrOutsideCustomerAvailability возвращается, когда время вне доступности клиента
	// Персонал может пропустить эту проверку флагом Override
	ErrOutsideCustomerAvailability = errors.New("schedule_appointment: appointment time is outside customer availability")

	// ErrSlotNotAvailable возвращается, когда на момент подтверждения слот уже заполнен
	ErrSlotNotAvailable = errors.New("schedule_appointment: slot is no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("schedule_appointment: internal error")
)
