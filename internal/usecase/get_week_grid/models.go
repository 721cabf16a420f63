package get_week_grid

import (
	"time"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
)

// Request модель запроса недельной сетки слотов
type Request struct {
	QueueItemID string    // ID позиции очереди (доступность клиента + исключение из подсчёта)
	WeekStart   time.Time // Первый день сетки; нулевое значение - сегодня
}

// Response модель ответа с недельной сеткой
type Response struct {
	QueueItemID     string
	WeekStart       time.Time
	DurationMinutes int // Длительность сеанса, с которой считалась вместимость
	MaxConcurrent   int
	Days            []Day
}

// Day один день сетки
type Day struct {
	Date    time.Time
	Weekday domain.Weekday
	Slots   []Slot
}

// Slot одна ячейка сетки
type Slot struct {
	Start         time.Time
	State         domain.SlotState
	SessionCount  int
	MaxConcurrent int
}
