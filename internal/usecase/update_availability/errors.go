package update_availability

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("update_availability: order not found")

	// ErrEditingLocked возвращается, когда выполнение уже началось
	// и доступность менять поздно
	ErrEditingLocked = errors.New("update_availability: availability is locked once fulfillment has started")

	// ErrInvalidRange возвращается при некорректном диапазоне времени
	ErrInvalidRange = errors.New("update_availability: invalid time range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_availability: internal error")
)
