package update_queue_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avdeevsv/GBS-QueueService/internal/api/handlers"
	updateQueueStatus "github.com/avdeevsv/GBS-QueueService/internal/usecase/update_queue_status"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgNotFound            = "позиция очереди не найдена"
	msgInvalidStatus       = "недопустимый целевой статус"
	msgAppointmentRequired = "запись на слот выполняется через подтверждение времени"
	msgRoomCodeRequired    = "для начала сеанса требуется код комнаты"
	msgProofRequired       = "для завершения требуется подтверждение выполнения"
	msgReasonRequired      = "для возврата назад требуется причина"
	msgInvalidRequest      = "некорректные параметры запроса"
)

type Handler struct {
	useCase UpdateQueueStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateQueueStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/queue/{queueItemId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	queueItemID := vars["queueItemId"]

	var req UpdateQueueStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /queue/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(queueItemID))
	if err != nil {
		switch {
		case errors.Is(err, updateQueueStatus.ErrQueueItemNotFound):
			h.logger.Warn("POST /queue/{id}/status - Queue item not found: queue_item_id=%s", queueItemID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateQueueStatus.ErrInvalidStatus):
			h.logger.Warn("POST /queue/{id}/status - Invalid target status: queue_item_id=%s, status=%s",
				queueItemID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, updateQueueStatus.ErrAppointmentRequired):
			h.logger.Warn("POST /queue/{id}/status - Appointment required: queue_item_id=%s", queueItemID)
			handlers.RespondConflict(w, msgAppointmentRequired)

		case errors.Is(err, updateQueueStatus.ErrRoomCodeRequired):
			h.logger.Warn("POST /queue/{id}/status - Room code required: queue_item_id=%s", queueItemID)
			handlers.RespondBadRequest(w, msgRoomCodeRequired)

		case errors.Is(err, updateQueueStatus.ErrProofRequired):
			h.logger.Warn("POST /queue/{id}/status - Proof required: queue_item_id=%s", queueItemID)
			handlers.RespondConflict(w, msgProofRequired)

		case errors.Is(err, updateQueueStatus.ErrReasonRequired):
			h.logger.Warn("POST /queue/{id}/status - Reason required: queue_item_id=%s", queueItemID)
			handlers.RespondBadRequest(w, msgReasonRequired)

		case errors.Is(err, updateQueueStatus.ErrInvalidInput):
			h.logger.Warn("POST /queue/{id}/status - Invalid input: queue_item_id=%s, error=%v", queueItemID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /queue/{id}/status - Failed to update status: queue_item_id=%s, error=%v",
				queueItemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /queue/{id}/status - Status updated: queue_item_id=%s, status=%s",
		queueItemID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
