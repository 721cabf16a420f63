package get_week_grid

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
	catalogRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/catalog"
	queueRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/queue"
)

type fakeQueueRepo struct {
	item         *domain.QueueItem
	appointments []domain.Appointment
}

func (f *fakeQueueRepo) GetByID(_ context.Context, id string) (*domain.QueueItem, error) {
	if f.item == nil || f.item.ID != id {
		return nil, queueRepo.ErrQueueItemNotFound
	}
	return f.item, nil
}

func (f *fakeQueueRepo) GetAppointmentsInWindow(_ context.Context, from, to time.Time) ([]domain.Appointment, error) {
	result := make([]domain.Appointment, 0)
	for _, apt := range f.appointments {
		if !apt.Start.Before(from) && apt.Start.Before(to) {
			result = append(result, apt)
		}
	}
	return result, nil
}

type fakeSettingsRepo struct {
	settings domain.ScheduleSettings
}

func (f *fakeSettingsRepo) GetScheduleSettings(_ context.Context) (domain.ScheduleSettings, error) {
	return f.settings, nil
}

type fakeCatalogRepo struct {
	packages map[string]*domain.Package
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, id string) (*domain.Package, error) {
	pkg, ok := f.packages[id]
	if !ok {
		return nil, catalogRepo.ErrPackageNotFound
	}
	return pkg, nil
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Monday 2025-03-03, week under test
var monday = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func newGridUseCase(t *testing.T, queue *fakeQueueRepo, settings domain.ScheduleSettings, now time.Time) *UseCase {
	t.Helper()
	uc := NewUseCase(
		queue,
		&fakeSettingsRepo{settings: settings},
		&fakeCatalogRepo{packages: map[string]*domain.Package{
			"pkg-1": {ID: "pkg-1", Name: "Duo Boost", EstimatedDuration: 60, Active: true},
		}},
		nopLogger{},
	)
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func queueItem(availability domain.Availability) *domain.QueueItem {
	return &domain.QueueItem{
		ID:           "item-1",
		OrderID:      "order-1",
		PackageID:    "pkg-1",
		PackageName:  "Duo Boost",
		Status:       domain.QueueStatusNew,
		Availability: availability,
	}
}

func slotAt(t *testing.T, day Day, clock string) Slot {
	t.Helper()
	for _, slot := range day.Slots {
		if slot.Start.Format(domain.TimeFormat) == clock {
			return slot
		}
	}
	t.Fatalf("no slot at %s", clock)
	return Slot{}
}

func TestGridShape(t *testing.T) {
	queue := &fakeQueueRepo{item: queueItem(nil)}
	// now well before the week so nothing is past
	uc := newGridUseCase(t, queue, domain.DefaultScheduleSettings(), monday.AddDate(0, 0, -7))

	resp, err := uc.Execute(context.Background(), &Request{QueueItemID: "item-1", WeekStart: monday})
	require.NoError(t, err)

	require.Len(t, resp.Days, 7)
	assert.Equal(t, domain.Monday, resp.Days[0].Weekday)
	assert.Equal(t, domain.Sunday, resp.Days[6].Weekday)
	assert.Equal(t, 60, resp.DurationMinutes)

	// Default hours 14:00-22:00 with 60 min padding: grid 13:00-23:00, 20 slots
	day := resp.Days[0]
	require.Len(t, day.Slots, 20)
	assert.Equal(t, "13:00", day.Slots[0].Start.Format(domain.TimeFormat))
	assert.Equal(t, "22:30", day.Slots[19].Start.Format(domain.TimeFormat))

	// Padding slots are outside business hours, in-hours slots available
	assert.Equal(t, domain.SlotOutsideBusinessHours, slotAt(t, day, "13:30").State)
	assert.Equal(t, domain.SlotOutsideBusinessHours, slotAt(t, day, "22:00").State)
	assert.Equal(t, domain.SlotAvailable, slotAt(t, day, "14:00").State)
	assert.Equal(t, domain.SlotAvailable, slotAt(t, day, "21:30").State)
}

func TestGridClosedDayBeatsEverything(t *testing.T) {
	settings := domain.DefaultScheduleSettings()
	sunday := settings.BusinessHours[domain.Sunday]
	sunday.Enabled = false
	settings.BusinessHours[domain.Sunday] = sunday

	queue := &fakeQueueRepo{item: queueItem(nil)}
	uc := newGridUseCase(t, queue, settings, monday.AddDate(0, 0, -7))

	resp, err := uc.Execute(context.Background(), &Request{QueueItemID: "item-1", WeekStart: monday})
	require.NoError(t, err)

	for _, slot := range resp.Days[6].Slots {
		assert.Equal(t, domain.SlotClosed, slot.State)
	}
}

func TestGridPastSlots(t *testing.T) {
	queue := &fakeQueueRepo{item: queueItem(nil)}
	// Monday 15:10: everything up to 15:00 inclusive is past
	now := monday.Add(15*time.Hour + 10*time.Minute)
	uc := newGridUseCase(t, queue, domain.DefaultScheduleSettings(), now)

	resp, err := uc.Execute(context.Background(), &Request{QueueItemID: "item-1", WeekStart: monday})
	require.NoError(t, err)

	day := resp.Days[0]
	assert.Equal(t, domain.SlotPast, slotAt(t, day, "14:30").State)
	assert.Equal(t, domain.SlotPast, slotAt(t, day, "15:00").State)
	assert.Equal(t, domain.SlotAvailable, slotAt(t, day, "15:30").State)

	// Tuesday is entirely in the future
	assert.Equal(t, domain.SlotAvailable, slotAt(t, resp.Days[1], "14:00").State)
}

func TestGridCustomerAvailability(t *testing.T) {
	availability := domain.Availability{
		domain.Monday: []domain.TimeRange{{Start: "18:00", End: "21:00"}},
	}
	queue := &fakeQueueRepo{item: queueItem(availability)}
	uc := newGridUseCase(t, queue, domain.DefaultScheduleSettings(), monday.AddDate(0, 0, -7))

	resp, err := uc.Execute(context.Background(), &Request{QueueItemID: "item-1", WeekStart: monday})
	require.NoError(t, err)

	day := resp.Days[0]
	assert.Equal(t, domain.SlotOutsideCustomer, slotAt(t, day, "14:00").State)
	assert.Equal(t, domain.SlotAvailable, slotAt(t, day, "18:00").State)
	assert.Equal(t, domain.SlotAvailable, slotAt(t, day, "20:30").State)

	// Days without declared ranges are outside availability
	assert.Equal(t, domain.SlotOutsideCustomer, slotAt(t, resp.Days[1], "14:00").State)
}

func TestGridCapacityStates(t *testing.T) {
	settings := domain.DefaultScheduleSettings()
	settings.MaxConcurrentSessions = 2

	queue := &fakeQueueRepo{
		item: queueItem(nil),
		appointments: []domain.Appointment{
			{ID: "a", QueueItemID: "other-1", Start: monday.Add(14 * time.Hour), DurationMinutes: 60},
			{ID: "b", QueueItemID: "other-2", Start: monday.Add(14*time.Hour + 30*time.Minute), DurationMinutes: 60},
		},
	}
	uc := newGridUseCase(t, queue, settings, monday.AddDate(0, 0, -7))

	resp, err := uc.Execute(context.Background(), &Request{QueueItemID: "item-1", WeekStart: monday})
	require.NoError(t, err)

	day := resp.Days[0]

	// 14:00 candidate (60 min) overlaps both existing sessions -> full
	full := slotAt(t, day, "14:00")
	assert.Equal(t, domain.SlotFull, full.State)
	assert.Equal(t, 2, full.SessionCount)
	assert.False(t, full.State.Selectable())

	// 15:00 candidate overlaps only the 14:30 session -> partially booked
	partial := slotAt(t, day, "15:00")
	assert.Equal(t, domain.SlotPartiallyBooked, partial.State)
	assert.Equal(t, 1, partial.SessionCount)
	assert.True(t, partial.State.Selectable())

	// 15:30 is clear
	assert.Equal(t, domain.SlotAvailable, slotAt(t, day, "15:30").State)
}

func TestGridExcludesOwnAppointment(t *testing.T) {
	settings := domain.DefaultScheduleSettings()
	settings.MaxConcurrentSessions = 1

	queue := &fakeQueueRepo{
		item: queueItem(nil),
		appointments: []domain.Appointment{
			{ID: "apt-own", QueueItemID: "item-1", Start: monday.Add(16 * time.Hour), DurationMinutes: 60},
		},
	}
	uc := newGridUseCase(t, queue, settings, monday.AddDate(0, 0, -7))

	resp, err := uc.Execute(context.Background(), &Request{QueueItemID: "item-1", WeekStart: monday})
	require.NoError(t, err)

	// Rescheduling: the item's own appointment does not block its slots
	assert.Equal(t, domain.SlotAvailable, slotAt(t, resp.Days[0], "16:00").State)
}

func TestGridQueueItemNotFound(t *testing.T) {
	uc := newGridUseCase(t, &fakeQueueRepo{}, domain.DefaultScheduleSettings(), monday)

	_, err := uc.Execute(context.Background(), &Request{QueueItemID: "missing"})
	assert.ErrorIs(t, err, ErrQueueItemNotFound)
}

func TestGridValidation(t *testing.T) {
	uc := newGridUseCase(t, &fakeQueueRepo{}, domain.DefaultScheduleSettings(), monday)

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
