package domain

import (
	"time"

	"github.com/avdeevsv/GBS-QueueService/pkg/types"
)

func mustTime(s string) types.TimeString {
	ts, err := types.NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func at(day int, hour, minute int) time.Time {
	// Base week: Monday 2025-03-03
	return time.Date(2025, 3, 3+day, hour, minute, 0, 0, time.UTC)
}
