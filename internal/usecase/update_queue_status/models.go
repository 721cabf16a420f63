package update_queue_status

import "time"

// Request модель запроса изменения статуса позиции очереди.
// Status может быть пустым, если меняется только код комнаты
// или фиксируется пропуск встречи.
type Request struct {
	QueueItemID string
	Status      string

	// RoomCode код комнаты/лобби; обязателен для перехода в in_progress
	RoomCode *string

	// Note произвольная заметка персонала, дописывается к существующим
	Note *string

	// Reason причина обратного перехода; обязательна при движении назад
	Reason *string

	// ProofAdded отметка о приложенном подтверждении выполнения
	ProofAdded *bool

	// ProofOverride позволяет завершить без подтверждения при включённом proof_required
	ProofOverride bool

	// MarkMissed фиксирует неявку клиента: инкремент счётчика, зеркало
	// статуса заказа и уведомление, без смены статуса очереди
	MarkMissed bool
}

// Response модель ответа с обновлённой позицией
type Response struct {
	QueueItemID     string
	OrderID         string
	Status          string
	OrderStatus     string
	AppointmentTime *time.Time
	RoomCode        *string
	MissedCount     int
}
