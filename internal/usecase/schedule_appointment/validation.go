package schedule_appointment

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.QueueItemID == "" {
		return fmt.Errorf("%w: queueItemID is required", ErrInvalidInput)
	}
	if req.AppointmentTime.IsZero() {
		return fmt.Errorf("%w: appointmentTime is required", ErrInvalidInput)
	}
	return nil
}
