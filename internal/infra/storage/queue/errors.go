package queue

import "errors"

var (
	// ErrQueueItemNotFound возвращается, когда позиция очереди не найдена
	ErrQueueItemNotFound = errors.New("queue.repository: queue item not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("queue.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("queue.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("queue.repository: failed to scan row")

	// ErrMarshalAvailability возвращается при ошибке сериализации доступности клиента
	ErrMarshalAvailability = errors.New("queue.repository: failed to marshal availability")
)
