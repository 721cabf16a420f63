package update_settings

import (
	"errors"
	"net/http"

	"github.com/avdeevsv/GBS-QueueService/internal/api/handlers"
	settingsService "github.com/avdeevsv/GBS-QueueService/internal/service/settings"
	"github.com/avdeevsv/GBS-QueueService/internal/service/settings/models"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidBusinessHours = "некорректное расписание работы"
	msgInvalidConcurrency   = "лимит параллельных сеансов вне допустимого диапазона"
	msgInvalidArchiveDays   = "срок архивации вне допустимого диапазона"
	msgInvalidRequest       = "некорректные параметры запроса"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, settingsService.ErrInvalidBusinessHours):
			h.logger.Warn("PUT /settings - Invalid business hours: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBusinessHours)

		case errors.Is(err, settingsService.ErrInvalidConcurrency):
			h.logger.Warn("PUT /settings - Invalid concurrency: %v", err)
			handlers.RespondBadRequest(w, msgInvalidConcurrency)

		case errors.Is(err, settingsService.ErrInvalidArchiveDays):
			h.logger.Warn("PUT /settings - Invalid archive days: %v", err)
			handlers.RespondBadRequest(w, msgInvalidArchiveDays)

		case errors.Is(err, settingsService.ErrInvalidInput):
			h.logger.Warn("PUT /settings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("PUT /settings - Failed to update settings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /settings - Settings updated")
	handlers.RespondJSON(w, http.StatusOK, result)
}
