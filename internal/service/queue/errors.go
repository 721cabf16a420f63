package queue

import "errors"

var (
	// ErrQueueItemNotFound возвращается, когда позиция очереди не найдена
	ErrQueueItemNotFound = errors.New("queue item not found")

	// ErrSessionNotFound возвращается, когда сеанс не найден
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус сеанса
	ErrInvalidStatus = errors.New("invalid session status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
