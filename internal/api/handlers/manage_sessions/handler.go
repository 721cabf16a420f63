package manage_sessions

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avdeevsv/GBS-QueueService/internal/api/handlers"
	queueService "github.com/avdeevsv/GBS-QueueService/internal/service/queue"
	"github.com/avdeevsv/GBS-QueueService/internal/service/queue/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgQueueItemNotFound  = "позиция очереди не найдена"
	msgSessionNotFound    = "сеанс не найден"
	msgInvalidStatus      = "недопустимый статус сеанса"
	msgInvalidRequest     = "некорректные параметры запроса"
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

// HandleCreate POST /api/v1/queue/{queueItemId}/sessions
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	queueItemID := vars["queueItemId"]

	var req models.CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /queue/{id}/sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateSession(r.Context(), queueItemID, &req)
	if err != nil {
		switch {
		case errors.Is(err, queueService.ErrQueueItemNotFound):
			h.logger.Warn("POST /queue/{id}/sessions - Queue item not found: queue_item_id=%s", queueItemID)
			handlers.RespondNotFound(w, msgQueueItemNotFound)

		default:
			h.logger.Error("POST /queue/{id}/sessions - Failed to create session: queue_item_id=%s, error=%v",
				queueItemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /queue/{id}/sessions - Session created: queue_item_id=%s, session_id=%s, number=%d",
		queueItemID, result.ID, result.SessionNumber)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleUpdate PATCH /api/v1/sessions/{sessionId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	var req models.UpdateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /sessions/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSession(r.Context(), sessionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, queueService.ErrSessionNotFound):
			h.logger.Warn("PATCH /sessions/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, queueService.ErrInvalidStatus):
			h.logger.Warn("PATCH /sessions/{id} - Invalid status: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, queueService.ErrInvalidInput):
			h.logger.Warn("PATCH /sessions/{id} - Invalid input: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("PATCH /sessions/{id} - Failed to update session: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sessions/{id} - Session updated: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/sessions/{sessionId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	if err := h.service.DeleteSession(r.Context(), sessionID); err != nil {
		switch {
		case errors.Is(err, queueService.ErrSessionNotFound):
			h.logger.Warn("DELETE /sessions/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		default:
			h.logger.Error("DELETE /sessions/{id} - Failed to delete session: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /sessions/{id} - Session deleted: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
