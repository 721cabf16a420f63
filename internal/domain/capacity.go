package domain

import (
	"errors"
	"fmt"
	"time"
)

// AppointmentSource tells which record an occurrence came from
type AppointmentSource string

const (
	SourceQueue   AppointmentSource = "queue"   // queue-level single appointment
	SourceSession AppointmentSource = "session" // session-level occurrence
)

// Appointment is one scheduled occurrence. Queue-level appointment times and
// session rows are both surfaced as this type, so capacity and feasibility
// logic never cares which representation the caller started from.
type Appointment struct {
	ID              string
	QueueItemID     string
	Source          AppointmentSource
	CustomerName    string
	PackageName     string
	Start           time.Time
	DurationMinutes int
	Status          string
}

// ErrInvalidDuration is returned for zero or negative candidate durations.
// Clamping to zero would report false availability, so it is a hard error.
var ErrInvalidDuration = errors.New("duration must be positive")

// ErrInvalidCapacity is returned for a zero or negative concurrency ceiling.
var ErrInvalidCapacity = errors.New("max concurrent sessions must be positive")

// End returns the occurrence's end time, defaulting unknown durations to
// DefaultSessionDuration minutes.
func (a Appointment) End() time.Time {
	duration := a.DurationMinutes
	if duration <= 0 {
		duration = DefaultSessionDuration
	}
	return a.Start.Add(time.Duration(duration) * time.Minute)
}

// OverlappingCount counts the existing occurrences whose half-open interval
// [start, start+duration) intersects the candidate's. Two intervals overlap
// iff each starts strictly before the other ends, so back-to-back bookings
// never conflict. excludeID removes the occurrence being rescheduled from its
// own conflict set (matched against both appointment and queue item IDs).
func OverlappingCount(candidateStart time.Time, durationMinutes int, existing []Appointment, excludeID string) (int, error) {
	if durationMinutes <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationMinutes)
	}

	candidateEnd := candidateStart.Add(time.Duration(durationMinutes) * time.Minute)

	count := 0
	for _, apt := range existing {
		if excludeID != "" && (apt.ID == excludeID || apt.QueueItemID == excludeID) {
			continue
		}
		if apt.Start.Before(candidateEnd) && candidateStart.Before(apt.End()) {
			count++
		}
	}
	return count, nil
}

// IsAtCapacity reports whether booking the candidate interval would reach or
// exceed the concurrency ceiling. The ceiling may be any positive integer.
func IsAtCapacity(candidateStart time.Time, durationMinutes int, existing []Appointment, excludeID string, maxConcurrent int) (bool, error) {
	if maxConcurrent <= 0 {
		return false, fmt.Errorf("%w: got %d", ErrInvalidCapacity, maxConcurrent)
	}
	count, err := OverlappingCount(candidateStart, durationMinutes, existing, excludeID)
	if err != nil {
		return false, err
	}
	return count >= maxConcurrent, nil
}
