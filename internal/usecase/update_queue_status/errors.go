package update_queue_status

import "errors"

var (
	// ErrQueueItemNotFound возвращается, когда позиция очереди не найдена
	ErrQueueItemNotFound = errors.New("update_queue_status: queue item not found")

	// ErrInvalidStatus возвращается при неизвестном целевом статусе
	ErrInvalidStatus = errors.New("update_queue_status: invalid target status")

	// ErrAppointmentRequired возвращается при попытке перевести в scheduled
	// без назначенного времени - запись идёт только через подтверждение слота
	ErrAppointmentRequired = errors.New("update_queue_status: scheduling requires an appointment slot")

	// ErrRoomCodeRequired возвращается при переводе в in_progress без кода комнаты
	ErrRoomCodeRequired = errors.New("update_queue_status: room code is required to start the session")

	// ErrProofRequired возвращается при завершении без подтверждения выполнения
	ErrProofRequired = errors.New("update_queue_status: proof of completion is required")

	// ErrReasonRequired возвращается при обратном переходе без причины
	ErrReasonRequired = errors.New("update_queue_status: backward transition requires a reason")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_queue_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_queue_status: internal error")
)
