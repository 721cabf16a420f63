package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ranges(pairs ...string) []TimeRange {
	result := make([]TimeRange, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		result = append(result, TimeRange{
			Start: mustTime(pairs[i]),
			End:   mustTime(pairs[i+1]),
		})
	}
	return result
}

func TestNormalizeRanges(t *testing.T) {
	tests := []struct {
		name     string
		input    []TimeRange
		expected []TimeRange
	}{
		{
			name:     "empty input",
			input:    nil,
			expected: nil,
		},
		{
			name:     "single range unchanged",
			input:    ranges("10:00", "12:00"),
			expected: ranges("10:00", "12:00"),
		},
		{
			name:     "adjacent ranges merge",
			input:    ranges("10:00", "12:00", "12:00", "14:00"),
			expected: ranges("10:00", "14:00"),
		},
		{
			name:     "sorts and merges overlap",
			input:    ranges("14:00", "16:00", "09:00", "10:00", "15:00", "18:00"),
			expected: ranges("09:00", "10:00", "14:00", "18:00"),
		},
		{
			name:     "contained range collapses",
			input:    ranges("10:00", "20:00", "12:00", "14:00"),
			expected: ranges("10:00", "20:00"),
		},
		{
			name:     "disjoint ranges stay separate",
			input:    ranges("08:00", "09:00", "10:00", "11:00"),
			expected: ranges("08:00", "09:00", "10:00", "11:00"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeRanges(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeRangesIdempotent(t *testing.T) {
	inputs := [][]TimeRange{
		ranges("14:00", "16:00", "09:00", "10:00", "15:00", "18:00"),
		ranges("10:00", "12:00", "12:00", "14:00", "13:00", "13:30"),
		ranges("00:00", "24:00"),
		nil,
	}

	for _, input := range inputs {
		once := NormalizeRanges(input)
		twice := NormalizeRanges(once)
		assert.Equal(t, once, twice)
	}
}

func TestTimeRangeValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       TimeRange
		wantErr bool
	}{
		{"valid range", TimeRange{Start: "10:00", End: "12:00"}, false},
		{"zero-length range allowed", TimeRange{Start: "10:00", End: "10:00"}, false},
		{"inverted range", TimeRange{Start: "12:00", End: "10:00"}, true},
		{"bad start format", TimeRange{Start: "1000", End: "12:00"}, true},
		{"bad end format", TimeRange{Start: "10:00", End: "25:00"}, true},
		{"midnight upper bound", TimeRange{Start: "22:00", End: "24:00"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeRange)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAvailabilityNormalizeDropsEmptyDays(t *testing.T) {
	avail := Availability{
		Monday:  ranges("12:00", "14:00", "10:00", "12:00"),
		Tuesday: nil,
		Friday:  []TimeRange{},
	}

	normalized := avail.Normalize()

	require.Len(t, normalized, 1)
	assert.Equal(t, ranges("10:00", "14:00"), normalized[Monday])
	_, hasTuesday := normalized[Tuesday]
	assert.False(t, hasTuesday)
}

func TestAvailabilityCopyDay(t *testing.T) {
	avail := Availability{
		Monday: ranges("18:00", "21:00"),
	}

	copied := avail.CopyDay(Monday, Wednesday, Friday)

	assert.Equal(t, avail[Monday], copied[Wednesday])
	assert.Equal(t, avail[Monday], copied[Friday])

	// Deep clone: mutating the copy must not touch the source
	copied[Wednesday][0].Start = "08:00"
	assert.Equal(t, mustTime("18:00"), avail[Monday][0].Start)
}

func TestAvailabilityCoversMinute(t *testing.T) {
	avail := Availability{
		Monday: ranges("18:00", "21:00"),
	}

	assert.True(t, avail.CoversMinute(Monday, 19*60))
	assert.True(t, avail.CoversMinute(Monday, 18*60), "start boundary is inclusive")
	assert.True(t, avail.CoversMinute(Monday, 21*60), "end boundary is inclusive")
	assert.False(t, avail.CoversMinute(Monday, 15*60))
	assert.False(t, avail.CoversMinute(Tuesday, 19*60))

	// Empty availability accepts any time
	assert.True(t, Availability{}.CoversMinute(Tuesday, 19*60))
}
