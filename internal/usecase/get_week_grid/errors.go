package get_week_grid

import "errors"

var (
	// ErrQueueItemNotFound возвращается, когда позиция очереди не найдена
	ErrQueueItemNotFound = errors.New("get_week_grid: queue item not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_week_grid: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_week_grid: internal error")
)
