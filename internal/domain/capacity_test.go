package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appointment(id string, start time.Time, duration int) Appointment {
	return Appointment{
		ID:              id,
		QueueItemID:     "queue-" + id,
		Source:          SourceQueue,
		Start:           start,
		DurationMinutes: duration,
	}
}

func TestOverlappingCount(t *testing.T) {
	base := at(0, 10, 0)
	existing := []Appointment{
		appointment("a", base, 60),                     // 10:00-11:00
		appointment("b", base.Add(30*time.Minute), 60), // 10:30-11:30
	}

	tests := []struct {
		name     string
		start    time.Time
		duration int
		expected int
	}{
		{"three-way overlap", base.Add(45 * time.Minute), 60, 2},  // 10:45-11:45
		{"clear of both", base.Add(95 * time.Minute), 60, 0},      // 11:35-12:35
		{"back-to-back is no conflict", base.Add(-60 * time.Minute), 60, 0}, // 09:00-10:00
		{"touching the end is no conflict", base.Add(90 * time.Minute), 60, 0}, // 11:30-12:30
		{"covers both", base.Add(-15 * time.Minute), 120, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, err := OverlappingCount(tt.start, tt.duration, existing, "")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, count)
		})
	}
}

func TestOverlappingCountExcludesRescheduledItem(t *testing.T) {
	base := at(0, 10, 0)
	existing := []Appointment{
		appointment("a", base, 60),
		appointment("b", base, 60),
	}

	count, err := OverlappingCount(base, 60, existing, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Exclusion also matches the owning queue item ID
	count, err = OverlappingCount(base, 60, existing, "queue-b")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestOverlappingCountRejectsNonPositiveDuration(t *testing.T) {
	for _, duration := range []int{0, -30} {
		_, err := OverlappingCount(at(0, 10, 0), duration, nil, "")
		assert.ErrorIs(t, err, ErrInvalidDuration)
	}
}

func TestOverlappingCountDefaultsUnknownDurations(t *testing.T) {
	base := at(0, 10, 0)
	// Existing appointment with no resolved duration occupies 60 minutes
	existing := []Appointment{appointment("a", base, 0)}

	count, err := OverlappingCount(base.Add(45*time.Minute), 30, existing, "")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = OverlappingCount(base.Add(60*time.Minute), 30, existing, "")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestIsAtCapacity(t *testing.T) {
	base := at(0, 10, 0)
	existing := []Appointment{
		appointment("a", base, 60),
		appointment("b", base.Add(30*time.Minute), 60),
	}

	// maxConcurrentSessions=2: 10:45 overlaps both -> full
	full, err := IsAtCapacity(base.Add(45*time.Minute), 60, existing, "", 2)
	require.NoError(t, err)
	assert.True(t, full)

	// 11:35 overlaps nothing (10:30 appointment ends 11:30) -> available
	full, err = IsAtCapacity(base.Add(95*time.Minute), 60, existing, "", 2)
	require.NoError(t, err)
	assert.False(t, full)

	// Any positive ceiling is accepted
	full, err = IsAtCapacity(base, 60, existing, "", 1)
	require.NoError(t, err)
	assert.True(t, full)

	// Non-positive ceiling is a contract violation, not a duration problem
	for _, ceiling := range []int{0, -1} {
		_, err = IsAtCapacity(base, 60, existing, "", ceiling)
		assert.ErrorIs(t, err, ErrInvalidCapacity)
		assert.NotErrorIs(t, err, ErrInvalidDuration)
	}
}
