package advance_queue

import (
	"net/http"

	"github.com/avdeevsv/GBS-QueueService/internal/api/handlers"
)

// AdvanceQueueResponse итог ручного прохода по очереди
type AdvanceQueueResponse struct {
	MovedToInProgress int `json:"movedToInProgress"`
	MovedToReview     int `json:"movedToReview"`
	Archived          int `json:"archived"`
}

type Handler struct {
	useCase AdvanceQueueUseCase
	logger  Logger
}

func NewHandler(useCase AdvanceQueueUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/queue/advance
// Ручной запуск того же прохода, который выполняет планировщик
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /queue/advance - Sweep failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /queue/advance - Sweep finished: started=%d, to_review=%d, archived=%d",
		result.MovedToInProgress, result.MovedToReview, result.Archived)
	handlers.RespondJSON(w, http.StatusOK, AdvanceQueueResponse{
		MovedToInProgress: result.MovedToInProgress,
		MovedToReview:     result.MovedToReview,
		Archived:          result.Archived,
	})
}
