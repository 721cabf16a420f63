package get_week_grid

import (
	"time"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
	getWeekGrid "github.com/avdeevsv/GBS-QueueService/internal/usecase/get_week_grid"
)

// GridResponse недельная сетка слотов
type GridResponse struct {
	QueueItemID     string        `json:"queueItemId"`
	WeekStart       string        `json:"weekStart"` // YYYY-MM-DD
	DurationMinutes int           `json:"durationMinutes"`
	MaxConcurrent   int           `json:"maxConcurrent"`
	Days            []DayResponse `json:"days"`
}

// DayResponse один день сетки
type DayResponse struct {
	Date    string         `json:"date"` // YYYY-MM-DD
	Weekday string         `json:"weekday"`
	Slots   []SlotResponse `json:"slots"`
}

// SlotResponse одна ячейка сетки
type SlotResponse struct {
	Start         time.Time `json:"start"`
	State         string    `json:"state"`
	SessionCount  int       `json:"sessionCount"`
	MaxConcurrent int       `json:"maxConcurrent"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP DTO
func FromUseCaseResponse(resp *getWeekGrid.Response) *GridResponse {
	days := make([]DayResponse, 0, len(resp.Days))
	for _, day := range resp.Days {
		slots := make([]SlotResponse, 0, len(day.Slots))
		for _, slot := range day.Slots {
			slots = append(slots, SlotResponse{
				Start:         slot.Start,
				State:         string(slot.State),
				SessionCount:  slot.SessionCount,
				MaxConcurrent: slot.MaxConcurrent,
			})
		}
		days = append(days, DayResponse{
			Date:    day.Date.Format(domain.DateFormat),
			Weekday: day.Weekday.String(),
			Slots:   slots,
		})
	}

	return &GridResponse{
		QueueItemID:     resp.QueueItemID,
		WeekStart:       resp.WeekStart.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		MaxConcurrent:   resp.MaxConcurrent,
		Days:            days,
	}
}
