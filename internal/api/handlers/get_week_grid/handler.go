package get_week_grid

import (
	"errors"
	"net/http"
	"time"

	"github.com/avdeevsv/GBS-QueueService/internal/api/handlers"
	"github.com/avdeevsv/GBS-QueueService/internal/domain"
	getWeekGrid "github.com/avdeevsv/GBS-QueueService/internal/usecase/get_week_grid"
)

const (
	msgMissingQueueItemID = "ID позиции очереди обязателен"
	msgInvalidWeekStart   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound           = "позиция очереди не найдена"
	msgInvalidRequest     = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetWeekGridUseCase
	logger  Logger
}

func NewHandler(useCase GetWeekGridUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/week-grid
// Query params: queueItemId (required), weekStart (optional, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	queueItemID := r.URL.Query().Get("queueItemId")
	if queueItemID == "" {
		h.logger.Warn("GET /schedule/week-grid - Missing queue item ID")
		handlers.RespondBadRequest(w, msgMissingQueueItemID)
		return
	}

	var weekStart time.Time
	if weekStartStr := r.URL.Query().Get("weekStart"); weekStartStr != "" {
		parsed, err := time.Parse(domain.DateFormat, weekStartStr)
		if err != nil {
			h.logger.Warn("GET /schedule/week-grid - Invalid week start: %v", err)
			handlers.RespondBadRequest(w, msgInvalidWeekStart)
			return
		}
		weekStart = parsed
	}

	result, err := h.useCase.Execute(r.Context(), &getWeekGrid.Request{
		QueueItemID: queueItemID,
		WeekStart:   weekStart,
	})
	if err != nil {
		switch {
		case errors.Is(err, getWeekGrid.ErrQueueItemNotFound):
			h.logger.Warn("GET /schedule/week-grid - Queue item not found: queue_item_id=%s", queueItemID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, getWeekGrid.ErrInvalidInput):
			h.logger.Warn("GET /schedule/week-grid - Invalid input: queue_item_id=%s, error=%v", queueItemID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /schedule/week-grid - Failed to build grid: queue_item_id=%s, error=%v", queueItemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedule/week-grid - Grid built successfully: queue_item_id=%s, days=%d",
		queueItemID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
