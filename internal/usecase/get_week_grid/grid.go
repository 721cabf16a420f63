package get_week_grid

import (
	"time"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
)

// gridBounds вычисляет границы сетки в минутах от полуночи: объединение
// рабочих часов всех открытых дней с запасом GridPaddingMinutes с обеих
// сторон, обрезанное до [00:00, 24:00). ok=false, если нет открытых дней.
func gridBounds(hours domain.BusinessHours) (start, end int, ok bool) {
	earliest, latest, ok := hours.Span()
	if !ok {
		return 0, 0, false
	}

	start = earliest - domain.GridPaddingMinutes
	if start < 0 {
		start = 0
	}
	end = latest + domain.GridPaddingMinutes
	if end > 24*60 {
		end = 24 * 60
	}
	return start, end, true
}

// buildWeekGrid строит сетку на GridDays дней начиная с weekStart.
// Каждый слот получает ровно одно состояние; приоритет:
// closed > outside_business_hours > past > outside_customer > вместимость.
// Вместимость считается для кандидата длительностью durationMinutes -
// сетка и путь подтверждения записи используют одну и ту же проверку.
func buildWeekGrid(
	weekStart time.Time,
	now time.Time,
	hours domain.BusinessHours,
	availability domain.Availability,
	appointments []domain.Appointment,
	durationMinutes int,
	maxConcurrent int,
	excludeID string,
) ([]Day, error) {
	gridStart, gridEnd, open := gridBounds(hours)

	days := make([]Day, 0, domain.GridDays)
	for dayIndex := 0; dayIndex < domain.GridDays; dayIndex++ {
		date := weekStart.AddDate(0, 0, dayIndex)
		weekday := domain.WeekdayFromTime(date.Weekday())

		day := Day{
			Date:    date,
			Weekday: weekday,
			Slots:   make([]Slot, 0),
		}

		if open {
			for minute := gridStart; minute < gridEnd; minute += domain.SlotDurationMinutes {
				slotStart := date.Add(time.Duration(minute) * time.Minute)

				slot, err := classifySlot(
					slotStart, weekday, minute,
					now, hours, availability,
					appointments, durationMinutes, maxConcurrent, excludeID,
				)
				if err != nil {
					return nil, err
				}
				day.Slots = append(day.Slots, slot)
			}
		}

		days = append(days, day)
	}

	return days, nil
}

func classifySlot(
	slotStart time.Time,
	weekday domain.Weekday,
	minute int,
	now time.Time,
	hours domain.BusinessHours,
	availability domain.Availability,
	appointments []domain.Appointment,
	durationMinutes int,
	maxConcurrent int,
	excludeID string,
) (Slot, error) {
	slot := Slot{
		Start:         slotStart,
		MaxConcurrent: maxConcurrent,
	}

	switch {
	case !hours.IsOpen(weekday):
		slot.State = domain.SlotClosed
	case !hours.ContainsMinute(weekday, minute):
		slot.State = domain.SlotOutsideBusinessHours
	case slotStart.Before(now):
		slot.State = domain.SlotPast
	case !availability.CoversMinute(weekday, minute):
		slot.State = domain.SlotOutsideCustomer
	default:
		count, err := domain.OverlappingCount(slotStart, durationMinutes, appointments, excludeID)
		if err != nil {
			return Slot{}, err
		}
		slot.SessionCount = count

		switch {
		case count >= maxConcurrent:
			slot.State = domain.SlotFull
		case count > 0:
			slot.State = domain.SlotPartiallyBooked
		default:
			slot.State = domain.SlotAvailable
		}
	}

	return slot, nil
}

// dayStart обнуляет время, оставляя только дату
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
