package models

import (
	"github.com/avdeevsv/GBS-QueueService/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на обновление настроек. Каждое поле
// опционально: обновляются только переданные ключи.
type UpdateSettingsRequest struct {
	BusinessHours         *domain.BusinessHours `json:"businessHours,omitempty"`
	MaxConcurrentSessions *int                  `json:"maxConcurrentSessions,omitempty"`
	ProofRequired         *bool                 `json:"proofRequired,omitempty"`
	AutoArchiveDays       *int                  `json:"autoArchiveDays,omitempty"`
}

// IsEmpty возвращает true, если запрос не содержит ни одного изменения
func (r *UpdateSettingsRequest) IsEmpty() bool {
	return r.BusinessHours == nil && r.MaxConcurrentSessions == nil &&
		r.ProofRequired == nil && r.AutoArchiveDays == nil
}

// Response модели

// SettingsResponse все настройки планировщика
type SettingsResponse struct {
	BusinessHours         domain.BusinessHours `json:"businessHours"`
	MaxConcurrentSessions int                  `json:"maxConcurrentSessions"`
	ProofRequired         bool                 `json:"proofRequired"`
	AutoArchiveDays       int                  `json:"autoArchiveDays"`
}

// BusinessHoursResponse публичный ответ для витрины: расписание работы
// и лимит параллельных сеансов
type BusinessHoursResponse struct {
	BusinessHours         domain.BusinessHours `json:"businessHours"`
	MaxConcurrentSessions int                  `json:"maxConcurrentSessions"`
}

// FromDomainSettings конвертирует domain модель настроек в DTO
func FromDomainSettings(s domain.ScheduleSettings) *SettingsResponse {
	return &SettingsResponse{
		BusinessHours:         s.BusinessHours,
		MaxConcurrentSessions: s.MaxConcurrentSessions,
		ProofRequired:         s.ProofRequired,
		AutoArchiveDays:       s.AutoArchiveDays,
	}
}
