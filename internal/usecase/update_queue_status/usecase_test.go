package update_queue_status

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
	queueRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/queue"
	"github.com/avdeevsv/GBS-QueueService/pkg/ptr"
)

type fakeQueueRepo struct {
	items   map[string]*domain.QueueItem
	updates []appliedUpdate
}

type appliedUpdate struct {
	id     string
	status domain.QueueStatus
	fields queueRepo.UpdateFields
}

func (f *fakeQueueRepo) GetByID(_ context.Context, id string) (*domain.QueueItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, queueRepo.ErrQueueItemNotFound
	}
	// Чтение возвращает снимок строки, как и настоящий репозиторий
	snapshot := *item
	return &snapshot, nil
}

func (f *fakeQueueRepo) UpdateStatus(_ context.Context, id string, status domain.QueueStatus, fields queueRepo.UpdateFields) error {
	item, ok := f.items[id]
	if !ok {
		return queueRepo.ErrQueueItemNotFound
	}
	f.updates = append(f.updates, appliedUpdate{id: id, status: status, fields: fields})

	item.Status = status
	if fields.AppointmentTime != nil {
		item.AppointmentTime = fields.AppointmentTime
	}
	if fields.RoomCode != nil {
		item.RoomCode = fields.RoomCode
	}
	if fields.ProofAdded != nil {
		item.ProofAdded = *fields.ProofAdded
	}
	if fields.AppendNote != nil {
		note := *fields.AppendNote
		if item.Notes != nil && *item.Notes != "" {
			note = *item.Notes + "\n" + note
		}
		item.Notes = &note
	}
	if fields.IncrementMissed {
		item.MissedCount++
	}
	return nil
}

func (f *fakeQueueRepo) ClearAppointment(_ context.Context, id string) error {
	item, ok := f.items[id]
	if !ok {
		return queueRepo.ErrQueueItemNotFound
	}
	item.AppointmentTime = nil
	return nil
}

type fakeOrderRepo struct {
	statuses map[string]domain.OrderStatus
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	f.statuses[id] = status
	return nil
}

type fakeSettingsRepo struct {
	proofRequired bool
}

func (f *fakeSettingsRepo) GetProofRequired(_ context.Context) (bool, error) {
	return f.proofRequired, nil
}

type fakeNotifier struct {
	events []domain.QueueEvent
}

func (f *fakeNotifier) NotifyBestEffort(_ context.Context, event domain.QueueEvent) {
	f.events = append(f.events, event)
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
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

var now = time.Date(2025, 3, 3, 16, 0, 0, 0, time.UTC)

type fixture struct {
	uc       *UseCase
	queue    *fakeQueueRepo
	orders   *fakeOrderRepo
	notifier *fakeNotifier
}

func newFixture(t *testing.T, status domain.QueueStatus, proofRequired bool) *fixture {
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
				Status:      status,
			},
		},
	}
	orders := &fakeOrderRepo{statuses: make(map[string]domain.OrderStatus)}
	notifier := &fakeNotifier{}

	uc := NewUseCase(
		queue,
		orders,
		&fakeSettingsRepo{proofRequired: proofRequired},
		notifier,
		fakeTxManager{},
		nopLogger{},
	)
	uc.timeProvider = &fixedTime{now: now}

	return &fixture{uc: uc, queue: queue, orders: orders, notifier: notifier}
}

func TestDirectSchedulingRejectedWithoutAppointment(t *testing.T) {
	f := newFixture(t, domain.QueueStatusNew, true)

	_, err := f.uc.Execute(context.Background(), &Request{
		QueueItemID: "item-1",
		Status:      string(domain.QueueStatusScheduled),
	})
	assert.ErrorIs(t, err, ErrAppointmentRequired)
	assert.Empty(t, f.queue.updates)
}

func TestDirectSchedulingAllowedWithAppointment(t *testing.T) {
	f := newFixture(t, domain.QueueStatusNew, true)
	slot := now.Add(24 * time.Hour)
	f.queue.items["item-1"].AppointmentTime = &slot

	resp, err := f.uc.Execute(context.Background(), &Request{
		QueueItemID: "item-1",
		Status:      string(domain.QueueStatusScheduled),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.QueueStatusScheduled), resp.Status)
	assert.Equal(t, domain.OrderStatusScheduled, f.orders.statuses["order-1"])
}

func TestStartRequiresRoomCode(t *testing.T) {
	f := newFixture(t, domain.QueueStatusScheduled, true)

	_, err := f.uc.Execute(context.Background(), &Request{
		QueueItemID: "item-1",
		Status:      string(domain.QueueStatusInProgress),
	})
	assert.ErrorIs(t, err, ErrRoomCodeRequired)

	resp, err := f.uc.Execute(context.Background(), &Request{
		QueueItemID: "item-1",
		Status:      string(domain.QueueStatusInProgress),
		RoomCode:    ptr.Ptr("ROOM-42"),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.QueueStatusInProgress), resp.Status)
	require.NotNil(t, resp.RoomCode)
	assert.Equal(t, "ROOM-42", *resp.RoomCode)

	// Unscheduled item starts right now
	require.NotNil(t, resp.AppointmentTime)
	assert.True(t, resp.AppointmentTime.Equal(now))

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, domain.EventInProgress, f.notifier.events[0].Type)
	require.NotNil(t, f.notifier.events[0].RoomCode)
	assert.Equal(t, "ROOM-42", *f.notifier.events[0].RoomCode)
}

func TestFinishRequiresProof(t *testing.T) {
	f := newFixture(t, domain.QueueStatusReview, true)

	_, err := f.uc.Execute(context.Background(), &Request{
		QueueItemID: "item-1",
		Status:      string(domain.QueueStatusFinished),
	})
	assert.ErrorIs(t, err, ErrProofRequired)

	// Explicit override finishes anyway
	resp, err := f.uc.Execute(context.Background(), &Request{
		QueueItemID:   "item-1",
		Status:        string(domain.QueueStatusFinished),
		ProofOverride: true,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.QueueStatusFinished), resp.Status)
	assert.Equal(t, domain.OrderStatusCompleted, f.orders.statuses["order-1"])

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, domain.EventCompleted, f.notifier.events[0].Type)
}

func TestFinishWithProofDisabled(t *testing.T) {
	f := newFixture(t, domain.QueueStatusReview, false)

	resp, err := f.uc.Execute(context.Background(), &Request{
		QueueItemID: "item-1",
		Status:      string(domain.QueueStatusFinished),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.QueueStatusFinished), resp.Status)
}

func TestBackwardRequiresReason(t *testing.T) {
	f := newFixture(t, domain.QueueStatusReview, true)

	_, err := f.uc.Execute(context.Background(), &Request{
		QueueItemID: "item-1",
		Status:      string(domain.QueueStatusNew),
	})
	assert.ErrorIs(t, err, ErrReasonRequired)

	_, err = f.uc.Execute(context.Background(), &Request{
		QueueItemID: "item-1",
		Status:      string(domain.QueueStatusNew),
		Reason:      ptr.Ptr("   "),
	})
	assert.ErrorIs(t, err, ErrReasonRequired)

	resp, err := f.uc.Execute(context.Background(), &Request{
		QueueItemID: "item-1",
		Status:      string(domain.QueueStatusNew),
		Reason:      ptr.Ptr("booster unavailable, rescheduling"),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.QueueStatusNew), resp.Status)

	// Reason lands in notes with the backward marker, never overwriting
	notes := f.queue.items["item-1"].Notes
	require.NotNil(t, notes)
	assert.True(t, strings.Contains(*notes, "[moved back to new] booster unavailable, rescheduling"))
	assert.Equal(t, domain.OrderStatusInQueue, f.orders.statuses["order-1"])
}

func TestBackwardToNewClearsAppointment(t *testing.T) {
	f := newFixture(t, domain.QueueStatusScheduled, true)
	slot := now.Add(24 * time.Hour)
	f.queue.items["item-1"].AppointmentTime = &slot

	resp, err := f.uc.Execute(context.Background(), &Request{
		QueueItemID: "item-1",
		Status:      string(domain.QueueStatusNew),
		Reason:      ptr.Ptr("customer asked to pick another slot"),
	})
	require.NoError(t, err)

	// Позиция снова ждёт слота
	assert.Nil(t, resp.AppointmentTime)
	assert.Nil(t, f.queue.items["item-1"].AppointmentTime)
}

func TestBackwardAppendsToExistingNotes(t *testing.T) {
	f := newFixture(t, domain.QueueStatusReview, true)
	f.queue.items["item-1"].Notes = ptr.Ptr("first session went fine")

	_, err := f.uc.Execute(context.Background(), &Request{
		QueueItemID: "item-1",
		Status:      string(domain.QueueStatusInProgress),
		Reason:      ptr.Ptr("proof rejected"),
	})
	require.NoError(t, err)

	notes := f.queue.items["item-1"].Notes
	require.NotNil(t, notes)
	assert.True(t, strings.HasPrefix(*notes, "first session went fine"))
	assert.True(t, strings.Contains(*notes, "[moved back to in_progress] proof rejected"))
}

func TestRoomCodeOnlyUpdate(t *testing.T) {
	f := newFixture(t, domain.QueueStatusScheduled, true)

	resp, err := f.uc.Execute(context.Background(), &Request{
		QueueItemID: "item-1",
		RoomCode:    ptr.Ptr("ROOM-7"),
	})
	require.NoError(t, err)

	// Status untouched, room code notification sent
	assert.Equal(t, string(domain.QueueStatusScheduled), resp.Status)
	assert.Empty(t, f.orders.statuses)
	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, domain.EventRoomCode, f.notifier.events[0].Type)
}

func TestMarkMissed(t *testing.T) {
	f := newFixture(t, domain.QueueStatusScheduled, true)

	resp, err := f.uc.Execute(context.Background(), &Request{
		QueueItemID: "item-1",
		MarkMissed:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.MissedCount)
	assert.Equal(t, 1, f.queue.items["item-1"].MissedCount)
	assert.Equal(t, domain.OrderStatusMissed, f.orders.statuses["order-1"])

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, domain.EventMissed, f.notifier.events[0].Type)
}

func TestUnknownStatusRejected(t *testing.T) {
	f := newFixture(t, domain.QueueStatusNew, true)

	_, err := f.uc.Execute(context.Background(), &Request{
		QueueItemID: "item-1",
		Status:      "cancelled",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
