package domain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/avdeevsv/GBS-QueueService/pkg/types"
)

// TimeRange is a same-day time interval ("18:00" to "21:30").
// Invariant: Start <= End; ranges never wrap past midnight.
type TimeRange struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

var (
	// ErrInvalidTimeRange is returned for malformed or inverted ranges
	ErrInvalidTimeRange = errors.New("invalid time range")
)

// Validate checks both boundaries and the Start <= End invariant
func (r TimeRange) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidTimeRange, err)
	}
	if err := r.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidTimeRange, err)
	}
	if r.Start.IsAfter(r.End) {
		return fmt.Errorf("%w: start %s is after end %s", ErrInvalidTimeRange, r.Start, r.End)
	}
	return nil
}

// ContainsMinute reports whether a minutes-since-midnight point lies within
// the range. Both boundaries are inclusive for membership checks.
func (r TimeRange) ContainsMinute(minute int) bool {
	return minute >= r.Start.Minutes() && minute <= r.End.Minutes()
}

// NormalizeRanges sorts ranges ascending by start and merges overlapping or
// adjacent ranges (last.end >= next.start) into one, taking the max end.
// The result contains pairwise disjoint, non-adjacent ranges; the operation
// is idempotent.
func NormalizeRanges(ranges []TimeRange) []TimeRange {
	if len(ranges) <= 1 {
		return append([]TimeRange(nil), ranges...)
	}

	type span struct{ start, end int }

	sorted := make([]span, 0, len(ranges))
	for _, r := range ranges {
		sorted = append(sorted, span{start: r.Start.Minutes(), end: r.End.Minutes()})
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })

	merged := make([]span, 0, len(sorted))
	for _, s := range sorted {
		if len(merged) == 0 {
			merged = append(merged, s)
			continue
		}
		last := &merged[len(merged)-1]
		if last.end >= s.start {
			if s.end > last.end {
				last.end = s.end
			}
		} else {
			merged = append(merged, s)
		}
	}

	result := make([]TimeRange, 0, len(merged))
	for _, s := range merged {
		start, _ := types.NewTimeStringFromMinutes(s.start)
		end, _ := types.NewTimeStringFromMinutes(s.end)
		result = append(result, TimeRange{Start: start, End: end})
	}
	return result
}
