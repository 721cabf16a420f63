package update_queue_status

import (
	"time"

	updateQueueStatus "github.com/avdeevsv/GBS-QueueService/internal/usecase/update_queue_status"
)

// UpdateQueueStatusRequest запрос изменения статуса позиции очереди.
// Status может быть пустым, если меняется только код комнаты или
// фиксируется пропуск встречи.
type UpdateQueueStatusRequest struct {
	Status        string  `json:"status,omitempty"`
	RoomCode      *string `json:"roomCode,omitempty"`
	Note          *string `json:"note,omitempty"`
	Reason        *string `json:"reason,omitempty"`
	ProofAdded    *bool   `json:"proofAdded,omitempty"`
	ProofOverride bool    `json:"proofOverride,omitempty"`
	MarkMissed    bool    `json:"markMissed,omitempty"`
}

// UpdateQueueStatusResponse ответ с обновлённой позицией
type UpdateQueueStatusResponse struct {
	QueueItemID     string     `json:"queueItemId"`
	OrderID         string     `json:"orderId"`
	Status          string     `json:"status"`
	OrderStatus     string     `json:"orderStatus"`
	AppointmentTime *time.Time `json:"appointmentTime,omitempty"`
	RoomCode        *string    `json:"roomCode,omitempty"`
	MissedCount     int        `json:"missedCount"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateQueueStatusRequest) ToUseCaseRequest(queueItemID string) *updateQueueStatus.Request {
	return &updateQueueStatus.Request{
		QueueItemID:   queueItemID,
		Status:        r.Status,
		RoomCode:      r.RoomCode,
		Note:          r.Note,
		Reason:        r.Reason,
		ProofAdded:    r.ProofAdded,
		ProofOverride: r.ProofOverride,
		MarkMissed:    r.MarkMissed,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP DTO
func FromUseCaseResponse(resp *updateQueueStatus.Response) *UpdateQueueStatusResponse {
	return &UpdateQueueStatusResponse{
		QueueItemID:     resp.QueueItemID,
		OrderID:         resp.OrderID,
		Status:          resp.Status,
		OrderStatus:     resp.OrderStatus,
		AppointmentTime: resp.AppointmentTime,
		RoomCode:        resp.RoomCode,
		MissedCount:     resp.MissedCount,
	}
}
