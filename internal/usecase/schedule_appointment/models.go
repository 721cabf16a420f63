package schedule_appointment

import "time"

// Request модель запроса на запись позиции очереди на слот
type Request struct {
	QueueItemID     string
	AppointmentTime time.Time
	// Override пропускает мягкую проверку доступности клиента.
	// Рабочие часы и вместимость переопределить нельзя.
	Override bool
}

// Response модель ответа с обновлённой позицией очереди
type Response struct {
	QueueItemID     string
	OrderID         string
	Status          string
	OrderStatus     string
	AppointmentTime time.Time
	DurationMinutes int
}
