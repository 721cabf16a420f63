package domain

import "time"

// Package is a purchasable service package. EstimatedDuration is the session
// length the capacity calculator uses for this package's bookings.
type Package struct {
	ID                string
	Name              string
	Price             float64
	EstimatedDuration int // minutes
	Active            bool
	Position          int

	CreatedAt time.Time
}

// Duration returns the package's session length, falling back to the default
// when no estimate is configured
func (p *Package) Duration() int {
	if p.EstimatedDuration <= 0 {
		return DefaultSessionDuration
	}
	return p.EstimatedDuration
}
