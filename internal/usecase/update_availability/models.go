package update_availability

import "github.com/avdeevsv/GBS-QueueService/internal/domain"

// Request модель запроса изменения доступности клиента
type Request struct {
	OrderID string
	// Availability недельное расписание клиента; дни и диапазоны в
	// произвольном порядке, нормализация происходит при сохранении
	Availability domain.Availability
}

// Response модель ответа с сохранённой (нормализованной) доступностью
type Response struct {
	OrderID      string
	QueueItemID  string
	Availability domain.Availability
}
