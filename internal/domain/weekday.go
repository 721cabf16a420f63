package domain

import (
	"errors"
	"fmt"
	"time"
)

// Weekday is the canonical day-of-week used across availability and business
// hours. The canonical ordering is Monday-first; time.Weekday (Sunday-first)
// is converted at the boundary with WeekdayFromTime.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// ErrInvalidWeekday is returned when a day name cannot be parsed
var ErrInvalidWeekday = errors.New("invalid weekday")

// Weekdays lists all days in canonical order
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayNames = [...]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// WeekdayFromTime converts a time.Weekday to the canonical Monday-first enum
func WeekdayFromTime(w time.Weekday) Weekday {
	// time.Sunday == 0, shift so Monday == 0
	return Weekday((int(w) + 6) % 7)
}

// ParseWeekday parses a lowercase day name ("monday" .. "sunday")
func ParseWeekday(s string) (Weekday, error) {
	for i, name := range weekdayNames {
		if name == s {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}

// IsValid returns true for the seven canonical values
func (w Weekday) IsValid() bool {
	return w >= Monday && w <= Sunday
}

// String returns the lowercase day name
func (w Weekday) String() string {
	if !w.IsValid() {
		return fmt.Sprintf("weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// MarshalText serializes the day as its lowercase name, so availability and
// business-hours maps keep the original JSON shape ({"monday": ...})
func (w Weekday) MarshalText() ([]byte, error) {
	if !w.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, int(w))
	}
	return []byte(weekdayNames[w]), nil
}

// UnmarshalText parses a lowercase day name
func (w *Weekday) UnmarshalText(text []byte) error {
	parsed, err := ParseWeekday(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}
