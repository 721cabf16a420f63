package models

import (
	"errors"
	"time"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе сеанса
	ErrInvalidStatus = errors.New("invalid session status")
)

// Request модели

// GetQueueRequest запрос на получение доски очереди
type GetQueueRequest struct {
	Status *string `json:"status,omitempty"`
}

// CreateSessionRequest запрос на создание сеанса
type CreateSessionRequest struct {
	AppointmentTime *time.Time `json:"appointmentTime,omitempty"`
	RoomCode        *string    `json:"roomCode,omitempty"`
}

// UpdateSessionRequest запрос на обновление сеанса. Все поля опциональны.
type UpdateSessionRequest struct {
	Status          *string    `json:"status,omitempty"`
	AppointmentTime *time.Time `json:"appointmentTime,omitempty"`
	RoomCode        *string    `json:"roomCode,omitempty"`
	ProofAdded      *bool      `json:"proofAdded,omitempty"`
	Missed          *bool      `json:"missed,omitempty"`
}

// IsEmpty возвращает true, если запрос не содержит ни одного изменения
func (r *UpdateSessionRequest) IsEmpty() bool {
	return r.Status == nil && r.AppointmentTime == nil && r.RoomCode == nil &&
		r.ProofAdded == nil && r.Missed == nil
}

// Response модели

// QueueItemResponse позиция очереди
type QueueItemResponse struct {
	ID           string              `json:"id"`
	OrderID      string              `json:"orderId"`
	CustomerID   *string             `json:"customerId,omitempty"`
	CustomerName *string             `json:"customerName,omitempty"`
	PackageID    string              `json:"packageId"`
	PackageName  string              `json:"packageName"`
	Status       string              `json:"status"`
	Availability domain.Availability `json:"availability"`

	AppointmentTime *time.Time `json:"appointmentTime,omitempty"`
	RoomCode        *string    `json:"roomCode,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	ProofAdded      bool       `json:"proofAdded"`
	MissedCount     int        `json:"missedCount"`
	Position        int        `json:"position"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// QueueItemDetailsResponse позиция очереди вместе с её сеансами
type QueueItemDetailsResponse struct {
	QueueItemResponse
	Sessions []SessionResponse `json:"sessions"`
}

// QueueListResponse доска очереди
type QueueListResponse struct {
	Items []QueueItemResponse `json:"items"`
}

// AppointmentResponse одно запланированное событие календаря.
// Объединяет записи уровня позиции и уровня сеансов.
type AppointmentResponse struct {
	ID              string    `json:"id"`
	QueueItemID     string    `json:"queueItemId"`
	Source          string    `json:"source"`
	CustomerName    string    `json:"customerName,omitempty"`
	PackageName     string    `json:"packageName,omitempty"`
	Start           time.Time `json:"start"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
}

// AppointmentListResponse список событий календаря
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// SessionResponse сеанс многосессионного заказа
type SessionResponse struct {
	ID              string     `json:"id"`
	QueueItemID     string     `json:"queueItemId"`
	SessionNumber   int        `json:"sessionNumber"`
	Status          string     `json:"status"`
	AppointmentTime *time.Time `json:"appointmentTime,omitempty"`
	RoomCode        *string    `json:"roomCode,omitempty"`
	ProofAdded      bool       `json:"proofAdded"`
	Missed          bool       `json:"missed"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Методы конвертации

// FromDomainQueueItem конвертирует domain модель в DTO
func FromDomainQueueItem(item *domain.QueueItem) *QueueItemResponse {
	if item == nil {
		return nil
	}

	availability := item.Availability
	if availability == nil {
		availability = domain.Availability{}
	}

	return &QueueItemResponse{
		ID:              item.ID,
		OrderID:         item.OrderID,
		CustomerID:      item.CustomerID,
		CustomerName:    item.CustomerName,
		PackageID:       item.PackageID,
		PackageName:     item.PackageName,
		Status:          string(item.Status),
		Availability:    availability,
		AppointmentTime: item.AppointmentTime,
		RoomCode:        item.RoomCode,
		Notes:           item.Notes,
		ProofAdded:      item.ProofAdded,
		MissedCount:     item.MissedCount,
		Position:        item.Position,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

// FromDomainQueueList конвертирует список domain моделей в DTO
func FromDomainQueueList(items []*domain.QueueItem) *QueueListResponse {
	resp := &QueueListResponse{
		Items: make([]QueueItemResponse, 0, len(items)),
	}

	for _, item := range items {
		if itemResp := FromDomainQueueItem(item); itemResp != nil {
			resp.Items = append(resp.Items, *itemResp)
		}
	}

	return resp
}

// FromDomainAppointments конвертирует список событий календаря в DTO
func FromDomainAppointments(appointments []domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, apt := range appointments {
		resp.Appointments = append(resp.Appointments, AppointmentResponse{
			ID:              apt.ID,
			QueueItemID:     apt.QueueItemID,
			Source:          string(apt.Source),
			CustomerName:    apt.CustomerName,
			PackageName:     apt.PackageName,
			Start:           apt.Start,
			DurationMinutes: apt.DurationMinutes,
			Status:          apt.Status,
		})
	}

	return resp
}

// FromDomainSession конвертирует domain модель сеанса в DTO
func FromDomainSession(s *domain.Session) *SessionResponse {
	if s == nil {
		return nil
	}

	return &SessionResponse{
		ID:              s.ID,
		QueueItemID:     s.QueueItemID,
		SessionNumber:   s.SessionNumber,
		Status:          string(s.Status),
		AppointmentTime: s.AppointmentTime,
		RoomCode:        s.RoomCode,
		ProofAdded:      s.ProofAdded,
		Missed:          s.Missed,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainSessionList конвертирует список сеансов в DTO
func FromDomainSessionList(sessions []*domain.Session) []SessionResponse {
	resp := make([]SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		if sessionResp := FromDomainSession(s); sessionResp != nil {
			resp = append(resp, *sessionResp)
		}
	}
	return resp
}

// ToDomainQueueStatus конвертирует строку в domain.QueueStatus с валидацией
func ToDomainQueueStatus(status string) (domain.QueueStatus, error) {
	s := domain.QueueStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainSessionStatus конвертирует строку в domain.SessionStatus с валидацией
func ToDomainSessionStatus(status string) (domain.SessionStatus, error) {
	s := domain.SessionStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
