package domain

import "time"

// QueueEventType identifies a notification event raised on a status change.
// The messaging collaborator formats the final user-facing message; the core
// only selects the type and parameters.
type QueueEventType string

const (
	EventScheduled  QueueEventType = "scheduled"   // carries the appointment time
	EventRoomCode   QueueEventType = "room_code"   // carries the room code
	EventInProgress QueueEventType = "in_progress" // carries the room code when present
	EventCompleted  QueueEventType = "completed"
	EventMissed     QueueEventType = "missed"
)

// QueueEvent is the payload handed to the notifier on a state transition
type QueueEvent struct {
	Type            QueueEventType
	CustomerID      string
	PackageName     string
	AppointmentTime *time.Time
	RoomCode        *string
}
