package domain

// Availability is a customer's self-reported weekly schedule. A day absent
// from the map means "not available that day"; an empty map means "any time
// within business hours is acceptable".
type Availability map[Weekday][]TimeRange

// IsEmpty returns true when no day carries any range
func (a Availability) IsEmpty() bool {
	for _, ranges := range a {
		if len(ranges) > 0 {
			return false
		}
	}
	return true
}

// Validate checks every range of every day
func (a Availability) Validate() error {
	for _, day := range Weekdays {
		for _, r := range a[day] {
			if err := r.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Normalize sorts and merges each day's ranges; days left with no ranges are
// dropped from the map entirely. This is the canonical persisted shape.
func (a Availability) Normalize() Availability {
	normalized := make(Availability, len(a))
	for _, day := range Weekdays {
		ranges := a[day]
		if len(ranges) == 0 {
			continue
		}
		normalized[day] = NormalizeRanges(ranges)
	}
	return normalized
}

// CopyDay deep-clones the source day's ranges into every target day. The
// copies are not re-normalized here; normalization happens uniformly at save.
func (a Availability) CopyDay(source Weekday, targets ...Weekday) Availability {
	result := make(Availability, len(a)+len(targets))
	for day, ranges := range a {
		result[day] = append([]TimeRange(nil), ranges...)
	}
	for _, target := range targets {
		if target == source {
			continue
		}
		result[target] = append([]TimeRange(nil), a[source]...)
	}
	return result
}

// CoversMinute reports whether the given day/minute falls inside the
// customer's availability. An empty map accepts any time.
func (a Availability) CoversMinute(day Weekday, minute int) bool {
	if a.IsEmpty() {
		return true
	}
	for _, r := range a[day] {
		if r.ContainsMinute(minute) {
			return true
		}
	}
	return false
}
