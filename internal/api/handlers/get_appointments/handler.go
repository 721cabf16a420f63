package get_appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/avdeevsv/GBS-QueueService/internal/api/handlers"
	"github.com/avdeevsv/GBS-QueueService/internal/domain"
	queueService "github.com/avdeevsv/GBS-QueueService/internal/service/queue"
)

const (
	msgMissingWindow = "параметры from и to обязательны"
	msgInvalidWindow = "некорректное окно запроса"
	msgInvalidTime   = "некорректный формат времени, ожидается RFC3339 или YYYY-MM-DD"
)

type Handler struct {
	service QueueService
	logger  Logger
}

func NewHandler(service QueueService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments
// Query params: from, to (required, RFC3339 или YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /appointments - Missing window params")
		handlers.RespondBadRequest(w, msgMissingWindow)
		return
	}

	from, err := parseTime(fromStr)
	if err != nil {
		h.logger.Warn("GET /appointments - Invalid from param: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}
	to, err := parseTime(toStr)
	if err != nil {
		h.logger.Warn("GET /appointments - Invalid to param: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.service.Appointments(r.Context(), from, to)
	if err != nil {
		switch {
		case errors.Is(err, queueService.ErrInvalidInput):
			h.logger.Warn("GET /appointments - Invalid window: from=%s, to=%s", fromStr, toStr)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("GET /appointments - Failed to list appointments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Appointments listed: from=%s, to=%s, count=%d",
		fromStr, toStr, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseTime принимает RFC3339 или дату без времени
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(domain.DateFormat, s)
}
