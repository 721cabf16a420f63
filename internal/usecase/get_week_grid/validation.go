package get_week_grid

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.QueueItemID == "" {
		return fmt.Errorf("%w: queueItemID is required", ErrInvalidInput)
	}
	return nil
}
