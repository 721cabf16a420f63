package settings

import "errors"

var (
	// ErrInvalidBusinessHours возвращается при некорректном расписании работы
	ErrInvalidBusinessHours = errors.New("invalid business hours")

	// ErrInvalidConcurrency возвращается, когда лимит параллельных сеансов вне диапазона
	ErrInvalidConcurrency = errors.New("max concurrent sessions out of range")

	// ErrInvalidArchiveDays возвращается, когда срок архивации вне диапазона
	ErrInvalidArchiveDays = errors.New("auto archive days out of range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
