package schedule_appointment

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
	items        map[string]*domain.QueueItem
	appointments []domain.Appointment
	setCalls     int
}

func (f *fakeQueueRepo) GetByID(_ context.Context, id string) (*domain.QueueItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, queueRepo.ErrQueueItemNotFound
	}
	return item, nil
}

func (f *fakeQueueRepo) SetAppointment(_ context.Context, id string, t time.Time) error {
	item, ok := f.items[id]
	if !ok {
		return queueRepo.ErrQueueItemNotFound
	}
	f.setCalls++
	item.AppointmentTime = &t
	item.Status = domain.QueueStatusScheduled
	return nil
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

type fakeOrderRepo struct {
	statuses map[string]domain.OrderStatus
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	f.statuses[id] = status
	return nil
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

type fakeNotifier struct {
	events []domain.QueueEvent
}

func (f *fakeNotifier) NotifyBestEffort(_ context.Context, event domain.QueueEvent) {
	f.events = append(f.events, event)
}

// fakeTxManager выполняет колбэк без реальной транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
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

var monday = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

type fixture struct {
	uc       *UseCase
	queue    *fakeQueueRepo
	orders   *fakeOrderRepo
	notifier *fakeNotifier
	tx       *fakeTxManager
}

func newFixture(t *testing.T, settings domain.ScheduleSettings, now time.Time) *fixture {
	t.Helper()

	customerID := "cust-1"
	queue := &fakeQueueRepo{
		items: map[string]*domain.QueueItem{
			"item-1": {
				ID:          "item-1",
				OrderID:     "order-1",
				CustomerID:  &customerID,
				PackageID:   "pkg-1",
				PackageName: "Duo Boost",
				Status:      domain.QueueStatusNew,
			},
		},
	}
	orders := &fakeOrderRepo{statuses: make(map[string]domain.OrderStatus)}
	notifier := &fakeNotifier{}
	tx := &fakeTxManager{}

	uc := NewUseCase(
		queue,
		orders,
		&fakeSettingsRepo{settings: settings},
		&fakeCatalogRepo{packages: map[string]*domain.Package{
			"pkg-1": {ID: "pkg-1", Name: "Duo Boost", EstimatedDuration: 60, Active: true},
		}},
		notifier,
		tx,
		nopLogger{},
	)
	uc.timeProvider = &fixedTime{now: now}

	return &fixture{uc: uc, queue: queue, orders: orders, notifier: notifier, tx: tx}
}

func TestScheduleHappyPath(t *testing.T) {
	f := newFixture(t, domain.DefaultScheduleSettings(), monday)
	slot := monday.Add(15 * time.Hour) // Monday 15:00, inside default hours

	resp, err := f.uc.Execute(context.Background(), &Request{
		QueueItemID:     "item-1",
		AppointmentTime: slot,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, string(domain.QueueStatusScheduled), resp.Status)
	assert.Equal(t, string(domain.OrderStatusScheduled), resp.OrderStatus)
	assert.Equal(t, 60, resp.DurationMinutes)

	// Queue item, order mirror and notification all reflect the commit
	item := f.queue.items["item-1"]
	require.NotNil(t, item.AppointmentTime)
	assert.True(t, item.AppointmentTime.Equal(slot))
	assert.Equal(t, domain.OrderStatusScheduled, f.orders.statuses["order-1"])

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, domain.EventScheduled, f.notifier.events[0].Type)
	assert.Equal(t, "cust-1", f.notifier.events[0].CustomerID)
}

func TestScheduleRejectsPast(t *testing.T) {
	f := newFixture(t, domain.DefaultScheduleSettings(), monday.Add(16*time.Hour))

	_, err := f.uc.Execute(context.Background(), &Request{
		QueueItemID:     "item-1",
		AppointmentTime: monday.Add(15 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrSlotInPast)
	assert.Zero(t, f.queue.setCalls)
	assert.Empty(t, f.notifier.events)
}

func TestScheduleRejectsOutsideBusinessHours(t *testing.T) {
	f := newFixture(t, domain.DefaultScheduleSettings(), monday)

	// 13:00 is inside the grid padding but outside 14:00-22:00
	_, err := f.uc.Execute(context.Background(), &Request{
		QueueItemID:     "item-1",
		AppointmentTime: monday.Add(13 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)
}

func TestScheduleCustomerAvailabilityOverride(t *testing.T) {
	f := newFixture(t, domain.DefaultScheduleSettings(), monday)
	f.queue.items["item-1"].Availability = domain.Availability{
		domain.Tuesday: []domain.TimeRange{{Start: "18:00", End: "21:00"}},
	}
	slot := monday.Add(15 * time.Hour) // Monday: customer not available

	_, err := f.uc.Execute(context.Background(), &Request{
		QueueItemID:     "item-1",
		AppointmentTime: slot,
	})
	assert.ErrorIs(t, err, ErrOutsideCustomerAvailability)

	// Staff override books anyway; hours and capacity still apply
	resp, err := f.uc.Execute(context.Background(), &Request{
		QueueItemID:     "item-1",
		AppointmentTime: slot,
		Override:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.QueueStatusScheduled), resp.Status)
}

func TestScheduleCapacityRecheck(t *testing.T) {
	settings := domain.DefaultScheduleSettings()
	settings.MaxConcurrentSessions = 2
	f := newFixture(t, settings, monday)

	slot := monday.Add(15 * time.Hour)
	f.queue.appointments = []domain.Appointment{
		{ID: "a", QueueItemID: "other-1", Start: slot.Add(-30 * time.Minute), DurationMinutes: 60},
		{ID: "b", QueueItemID: "other-2", Start: slot, DurationMinutes: 60},
	}

	_, err := f.uc.Execute(context.Background(), &Request{
		QueueItemID:     "item-1",
		AppointmentTime: slot,
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Nothing persisted, no notification on a failed commit
	assert.Zero(t, f.queue.setCalls)
	assert.Empty(t, f.orders.statuses)
	assert.Empty(t, f.notifier.events)
}

func TestScheduleReschedulingExcludesOwnAppointment(t *testing.T) {
	settings := domain.DefaultScheduleSettings()
	settings.MaxConcurrentSessions = 1
	f := newFixture(t, settings, monday)

	oldSlot := monday.Add(15 * time.Hour)
	f.queue.items["item-1"].Status = domain.QueueStatusScheduled
	f.queue.items["item-1"].AppointmentTime = &oldSlot
	f.queue.appointments = []domain.Appointment{
		{ID: "apt-own", QueueItemID: "item-1", Start: oldSlot, DurationMinutes: 60},
	}

	// Moving 30 minutes later overlaps the item's own old slot only
	resp, err := f.uc.Execute(context.Background(), &Request{
		QueueItemID:     "item-1",
		AppointmentTime: oldSlot.Add(30 * time.Minute),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.QueueStatusScheduled), resp.Status)
}

func TestScheduleInvalidStatus(t *testing.T) {
	f := newFixture(t, domain.DefaultScheduleSettings(), monday)
	f.queue.items["item-1"].Status = domain.QueueStatusInProgress

	_, err := f.uc.Execute(context.Background(), &Request{
		QueueItemID:     "item-1",
		AppointmentTime: monday.Add(15 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestScheduleQueueItemNotFound(t *testing.T) {
	f := newFixture(t, domain.DefaultScheduleSettings(), monday)

	_, err := f.uc.Execute(context.Background(), &Request{
		QueueItemID:     "missing",
		AppointmentTime: monday.Add(15 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrQueueItemNotFound)
}
