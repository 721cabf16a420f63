package domain

import (
	"fmt"

	"github.com/avdeevsv/GBS-QueueService/pkg/types"
)

// DayHours is one day's configured operating window.
// Enabled=false means closed regardless of Start/End.
type DayHours struct {
	Enabled bool             `json:"enabled"`
	Start   types.TimeString `json:"start"`
	End     types.TimeString `json:"end"`
}

// BusinessHours is the weekly operating schedule. Unlike Availability, every
// day key is always present.
type BusinessHours map[Weekday]DayHours

// DefaultBusinessHours returns the default schedule: open every day 14:00-22:00
func DefaultBusinessHours() BusinessHours {
	hours := make(BusinessHours, len(Weekdays))
	for _, day := range Weekdays {
		hours[day] = DayHours{
			Enabled: true,
			Start:   types.TimeString(DefaultBusinessOpen),
			End:     types.TimeString(DefaultBusinessClose),
		}
	}
	return hours
}

// Validate checks every enabled day's window
func (h BusinessHours) Validate() error {
	for _, day := range Weekdays {
		dh, ok := h[day]
		if !ok {
			return fmt.Errorf("%w: missing day %s", ErrInvalidTimeRange, day)
		}
		if !dh.Enabled {
			continue
		}
		if err := (TimeRange{Start: dh.Start, End: dh.End}).Validate(); err != nil {
			return fmt.Errorf("%s: %w", day, err)
		}
	}
	return nil
}

// IsOpen returns true when the given day is enabled
func (h BusinessHours) IsOpen(day Weekday) bool {
	return h[day].Enabled
}

// ContainsMinute reports whether the minutes-since-midnight point falls
// within the day's window. The closing boundary is exclusive so a slot
// starting at closing time is already outside hours.
func (h BusinessHours) ContainsMinute(day Weekday, minute int) bool {
	dh := h[day]
	if !dh.Enabled {
		return false
	}
	return minute >= dh.Start.Minutes() && minute < dh.End.Minutes()
}

// Span returns the earliest start and latest end (in minutes since midnight)
// across all enabled days, so a weekly grid can cover the union of every
// day's hours. ok is false when no day is enabled.
func (h BusinessHours) Span() (earliest, latest int, ok bool) {
	earliest = 24 * 60
	latest = 0
	for _, day := range Weekdays {
		dh := h[day]
		if !dh.Enabled {
			continue
		}
		ok = true
		if start := dh.Start.Minutes(); start < earliest {
			earliest = start
		}
		if end := dh.End.Minutes(); end > latest {
			latest = end
		}
	}
	return earliest, latest, ok
}
