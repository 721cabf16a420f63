package update_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avdeevsv/GBS-QueueService/internal/api/handlers"
	updateAvailability "github.com/avdeevsv/GBS-QueueService/internal/usecase/update_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgOrderNotFound      = "заказ не найден"
	msgEditingLocked      = "доступность нельзя менять после начала выполнения"
	msgInvalidRange       = "некорректный диапазон времени"
	msgInvalidRequest     = "некорректные параметры запроса"
)

type Handler struct {
	useCase UpdateAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/orders/{orderId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderID := vars["orderId"]

	var req UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /orders/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(orderID))
	if err != nil {
		switch {
		case errors.Is(err, updateAvailability.ErrOrderNotFound):
			h.logger.Warn("PATCH /orders/{id}/availability - Order not found: order_id=%s", orderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, updateAvailability.ErrEditingLocked):
			h.logger.Warn("PATCH /orders/{id}/availability - Editing locked: order_id=%s", orderID)
			handlers.RespondConflict(w, msgEditingLocked)

		case errors.Is(err, updateAvailability.ErrInvalidRange):
			h.logger.Warn("PATCH /orders/{id}/availability - Invalid range: order_id=%s, error=%v", orderID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, updateAvailability.ErrInvalidInput):
			h.logger.Warn("PATCH /orders/{id}/availability - Invalid input: order_id=%s, error=%v", orderID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("PATCH /orders/{id}/availability - Failed to update availability: order_id=%s, error=%v",
				orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /orders/{id}/availability - Availability updated: order_id=%s", orderID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
