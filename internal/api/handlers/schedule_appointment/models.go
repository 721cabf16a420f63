package schedule_appointment

import (
	"time"

	scheduleAppointment "github.com/avdeevsv/GBS-QueueService/internal/usecase/schedule_appointment"
)

// ScheduleAppointmentRequest запрос на запись позиции на слот
type ScheduleAppointmentRequest struct {
	AppointmentTime time.Time `json:"appointmentTime"`
	// Override пропускает мягкую проверку доступности клиента
	Override bool `json:"override,omitempty"`
}

// ScheduleAppointmentResponse ответ с подтверждённой записью
type ScheduleAppointmentResponse struct {
	QueueItemID     string    `json:"queueItemId"`
	OrderID         string    `json:"orderId"`
	Status          string    `json:"status"`
	OrderStatus     string    `json:"orderStatus"`
	AppointmentTime time.Time `json:"appointmentTime"`
	DurationMinutes int       `json:"durationMinutes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ScheduleAppointmentRequest) ToUseCaseRequest(queueItemID string) *scheduleAppointment.Request {
	return &scheduleAppointment.Request{
		QueueItemID:     queueItemID,
		AppointmentTime: r.AppointmentTime,
		Override:        r.Override,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP DTO
func FromUseCaseResponse(resp *scheduleAppointment.Response) *ScheduleAppointmentResponse {
	return &ScheduleAppointmentResponse{
		QueueItemID:     resp.QueueItemID,
		OrderID:         resp.OrderID,
		Status:          resp.Status,
		OrderStatus:     resp.OrderStatus,
		AppointmentTime: resp.AppointmentTime,
		DurationMinutes: resp.DurationMinutes,
	}
}
