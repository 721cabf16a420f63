package update_availability

import (
	"errors"
	"fmt"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OrderID == "" {
		return fmt.Errorf("%w: orderID is required", ErrInvalidInput)
	}

	if err := req.Availability.Validate(); err != nil {
		if errors.Is(err, domain.ErrInvalidTimeRange) {
			return fmt.Errorf("%w: %v", ErrInvalidRange, err)
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}
