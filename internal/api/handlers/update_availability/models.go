package update_availability

import (
	"github.com/avdeevsv/GBS-QueueService/internal/domain"
	updateAvailability "github.com/avdeevsv/GBS-QueueService/internal/usecase/update_availability"
)

// UpdateAvailabilityRequest запрос изменения доступности клиента
type UpdateAvailabilityRequest struct {
	Availability domain.Availability `json:"availability"`
}

// UpdateAvailabilityResponse ответ с сохранённой (нормализованной) доступностью
type UpdateAvailabilityResponse struct {
	OrderID      string              `json:"orderId"`
	QueueItemID  string              `json:"queueItemId,omitempty"`
	Availability domain.Availability `json:"availability"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAvailabilityRequest) ToUseCaseRequest(orderID string) *updateAvailability.Request {
	return &updateAvailability.Request{
		OrderID:      orderID,
		Availability: r.Availability,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP DTO
func FromUseCaseResponse(resp *updateAvailability.Response) *UpdateAvailabilityResponse {
	return &UpdateAvailabilityResponse{
		OrderID:      resp.OrderID,
		QueueItemID:  resp.QueueItemID,
		Availability: resp.Availability,
	}
}
