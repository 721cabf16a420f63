package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBusinessHours(t *testing.T) {
	hours := DefaultBusinessHours()

	require.Len(t, hours, 7)
	for _, day := range Weekdays {
		dh := hours[day]
		assert.True(t, dh.Enabled)
		assert.Equal(t, mustTime("14:00"), dh.Start)
		assert.Equal(t, mustTime("22:00"), dh.End)
	}
	require.NoError(t, hours.Validate())
}

func TestBusinessHoursSpan(t *testing.T) {
	hours := DefaultBusinessHours()
	hours[Saturday] = DayHours{Enabled: true, Start: "10:00", End: "23:00"}
	hours[Sunday] = DayHours{Enabled: false, Start: "00:00", End: "00:00"}

	earliest, latest, ok := hours.Span()
	require.True(t, ok)
	assert.Equal(t, 10*60, earliest)
	assert.Equal(t, 23*60, latest)

	// Disabled days do not contribute to the span
	allClosed := BusinessHours{}
	for _, day := range Weekdays {
		allClosed[day] = DayHours{Enabled: false}
	}
	_, _, ok = allClosed.Span()
	assert.False(t, ok)
}

func TestBusinessHoursContainsMinute(t *testing.T) {
	hours := DefaultBusinessHours()

	assert.True(t, hours.ContainsMinute(Monday, 14*60))
	assert.True(t, hours.ContainsMinute(Monday, 21*60+30))
	assert.False(t, hours.ContainsMinute(Monday, 22*60), "closing time is exclusive")
	assert.False(t, hours.ContainsMinute(Monday, 13*60))

	hours[Monday] = DayHours{Enabled: false, Start: "14:00", End: "22:00"}
	assert.False(t, hours.ContainsMinute(Monday, 15*60))
}

func TestWeekdayFromTime(t *testing.T) {
	tests := []struct {
		jsDay    time.Weekday
		expected Weekday
	}{
		{time.Sunday, Sunday},
		{time.Monday, Monday},
		{time.Wednesday, Wednesday},
		{time.Saturday, Saturday},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, WeekdayFromTime(tt.jsDay))
	}

	// Round-trip against real dates
	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		assert.Equal(t, Weekday(i), WeekdayFromTime(day.Weekday()))
	}
}

func TestParseWeekday(t *testing.T) {
	day, err := ParseWeekday("thursday")
	require.NoError(t, err)
	assert.Equal(t, Thursday, day)

	_, err = ParseWeekday("Thursday")
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}
