package domain

import "time"

// SessionStatus represents the state of one session of a multi-session
// fulfillment
type SessionStatus string

const (
	SessionStatusPending    SessionStatus = "pending"
	SessionStatusScheduled  SessionStatus = "scheduled"
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusMissed     SessionStatus = "missed"
)

// IsValid returns true for the five session statuses
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusPending, SessionStatusScheduled, SessionStatusInProgress,
		SessionStatusCompleted, SessionStatusMissed:
		return true
	}
	return false
}

// OccupiesSlot reports whether a session in this status still holds calendar
// capacity
func (s SessionStatus) OccupiesSlot() bool {
	return s == SessionStatusScheduled || s == SessionStatusInProgress
}

// Session is one occurrence of a multi-session fulfillment. Sessions are
// exclusively owned by their queue item and created on demand by staff;
// SessionNumber is 1-based and assigned monotonically.
type Session struct {
	ID              string
	QueueItemID     string
	SessionNumber   int
	Status          SessionStatus
	AppointmentTime *time.Time
	RoomCode        *string
	ProofAdded      bool
	Missed          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
