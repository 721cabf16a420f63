package domain

import "time"

// SlotState classifies one grid slot. Exactly one state applies per slot.
type SlotState string

const (
	SlotClosed               SlotState = "closed"                 // day not open for business
	SlotOutsideBusinessHours SlotState = "outside_business_hours" // day open, slot outside the day's window
	SlotOutsideCustomer      SlotState = "outside_customer"       // within hours, customer not available
	SlotPast                 SlotState = "past"                   // slot start is before now
	SlotAvailable            SlotState = "available"              // bookable, zero conflicting sessions
	SlotPartiallyBooked      SlotState = "partially_booked"       // bookable, under capacity with conflicts
	SlotFull                 SlotState = "full"                   // at or over capacity
)

// Selectable reports whether a slot in this state may be booked. Only
// available and partially_booked slots are clickable; everything else is
// rendered but inert.
func (s SlotState) Selectable() bool {
	return s == SlotAvailable || s == SlotPartiallyBooked
}

// Slot is one classified cell of the weekly grid
type Slot struct {
	Start         time.Time
	State         SlotState
	SessionCount  int // conflicting occurrences overlapping this slot
	MaxConcurrent int
}
