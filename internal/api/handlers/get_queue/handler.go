package get_queue

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avdeevsv/GBS-QueueService/internal/api/handlers"
	queueService "github.com/avdeevsv/GBS-QueueService/internal/service/queue"
	"github.com/avdeevsv/GBS-QueueService/internal/service/queue/models"
)

const (
	msgInvalidStatus = "некорректный фильтр статуса"
	msgNotFound      = "позиция очереди не найдена"
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

// HandleList GET /api/v1/queue
// Query params: status (optional)
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	req := &models.GetQueueRequest{}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, queueService.ErrInvalidInput):
			h.logger.Warn("GET /queue - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /queue - Failed to list queue: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /queue - Queue listed: items=%d", len(result.Items))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/queue/{queueItemId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	queueItemID := vars["queueItemId"]

	result, err := h.service.GetByID(r.Context(), queueItemID)
	if err != nil {
		switch {
		case errors.Is(err, queueService.ErrQueueItemNotFound):
			h.logger.Warn("GET /queue/{id} - Queue item not found: queue_item_id=%s", queueItemID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /queue/{id} - Failed to get queue item: queue_item_id=%s, error=%v",
				queueItemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /queue/{id} - Queue item fetched: queue_item_id=%s, sessions=%d",
		queueItemID, len(result.Sessions))
	handlers.RespondJSON(w, http.StatusOK, result)
}
