package schedule_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avdeevsv/GBS-QueueService/internal/api/handlers"
	scheduleAppointment "github.com/avdeevsv/GBS-QueueService/internal/usecase/schedule_appointment"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "позиция очереди не найдена"
	msgInvalidStatus        = "позицию нельзя записать в текущем статусе"
	msgSlotInPast           = "время записи уже прошло"
	msgOutsideBusinessHours = "время записи вне рабочих часов"
	msgOutsideAvailability  = "время записи вне доступности клиента"
	msgSlotNotAvailable     = "слот уже занят"
	msgInvalidRequest       = "некорректные параметры запроса"
)

type Handler struct {
	useCase ScheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase ScheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/queue/{queueItemId}/appointment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	queueItemID := vars["queueItemId"]

	var req ScheduleAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /queue/{id}/appointment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(queueItemID))
	if err != nil {
		switch {
		case errors.Is(err, scheduleAppointment.ErrQueueItemNotFound):
			h.logger.Warn("POST /queue/{id}/appointment - Queue item not found: queue_item_id=%s", queueItemID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, scheduleAppointment.ErrInvalidStatus):
			h.logger.Warn("POST /queue/{id}/appointment - Invalid status: queue_item_id=%s", queueItemID)
			handlers.RespondConflict(w, msgInvalidStatus)

		case errors.Is(err, scheduleAppointment.ErrSlotInPast):
			h.logger.Warn("POST /queue/{id}/appointment - Slot in past: queue_item_id=%s, time=%s",
				queueItemID, req.AppointmentTime)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, scheduleAppointment.ErrOutsideBusinessHours):
			h.logger.Warn("POST /queue/{id}/appointment - Outside business hours: queue_item_id=%s, time=%s",
				queueItemID, req.AppointmentTime)
			handlers.RespondBadRequest(w, msgOutsideBusinessHours)

		case errors.Is(err, scheduleAppointment.ErrOutsideCustomerAvailability):
			h.logger.Warn("POST /queue/{id}/appointment - Outside customer availability: queue_item_id=%s, time=%s",
				queueItemID, req.AppointmentTime)
			handlers.RespondConflict(w, msgOutsideAvailability)

		case errors.Is(err, scheduleAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /queue/{id}/appointment - Slot not available: queue_item_id=%s, time=%s",
				queueItemID, req.AppointmentTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, scheduleAppointment.ErrInvalidInput):
			h.logger.Warn("POST /queue/{id}/appointment - Invalid input: queue_item_id=%s, error=%v", queueItemID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /queue/{id}/appointment - Failed to schedule: queue_item_id=%s, error=%v",
				queueItemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /queue/{id}/appointment - Appointment scheduled: queue_item_id=%s, time=%s",
		queueItemID, result.AppointmentTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
