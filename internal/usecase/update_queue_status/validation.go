package update_queue_status

import (
	"fmt"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.QueueItemID == "" {
		return fmt.Errorf("%w: queueItemID is required", ErrInvalidInput)
	}
	if req.Status == "" && req.RoomCode == nil && req.ProofAdded == nil && !req.MarkMissed {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if req.Status != "" && !domain.QueueStatus(req.Status).IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}
	if req.RoomCode != nil && len(*req.RoomCode) > domain.MaxRoomCodeLength {
		return fmt.Errorf("%w: room code exceeds %d characters", ErrInvalidInput, domain.MaxRoomCodeLength)
	}
	if req.Note != nil && len(*req.Note) > domain.MaxNotesLength {
		return fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}
	return nil
}
