package get_business_hours

import (
	"net/http"

	"github.com/avdeevsv/GBS-QueueService/internal/api/handlers"
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

// Handle GET /api/v1/business-hours
// Публичный endpoint для витрины: расписание и лимит параллельных сеансов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetBusinessHours(r.Context())
	if err != nil {
		h.logger.Error("GET /business-hours - Failed to load business hours: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /business-hours - Business hours fetched")
	handlers.RespondJSON(w, http.StatusOK, result)
}
