package advance_queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
	queueRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/queue"
)

type fakeQueueRepo struct {
	items map[string]*domain.QueueItem
}

func (f *fakeQueueRepo) ListDueForStart(_ context.Context, now time.Time) ([]*domain.QueueItem, error) {
	due := make([]*domain.QueueItem, 0)
	for _, item := range f.items {
		if item.Status == domain.QueueStatusScheduled &&
			item.AppointmentTime != nil && !item.AppointmentTime.After(now) {
			due = append(due, item)
		}
	}
	return due, nil
}

func (f *fakeQueueRepo) ListDueForReview(_ context.Context, cutoff time.Time) ([]*domain.QueueItem, error) {
	due := make([]*domain.QueueItem, 0)
	for _, item := range f.items {
		if item.Status == domain.QueueStatusInProgress && !item.ProofAdded &&
			item.AppointmentTime != nil && !item.AppointmentTime.After(cutoff) {
			due = append(due, item)
		}
	}
	return due, nil
}

func (f *fakeQueueRepo) UpdateStatus(_ context.Context, id string, status domain.QueueStatus, _ queueRepo.UpdateFields) error {
	item, ok := f.items[id]
	if !ok {
		return queueRepo.ErrQueueItemNotFound
	}
	item.Status = status
	return nil
}

func (f *fakeQueueRepo) DeleteFinishedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	for id, item := range f.items {
		if item.Status == domain.QueueStatusFinished && item.UpdatedAt.Before(cutoff) {
			delete(f.items, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeOrderRepo struct {
	statuses map[string]domain.OrderStatus
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	f.statuses[id] = status
	return nil
}

type fakeSettingsRepo struct {
	archiveDays int
}

func (f *fakeSettingsRepo) GetAutoArchiveDays(_ context.Context) (int, error) {
	return f.archiveDays, nil
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

var now = time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

func item(id string, status domain.QueueStatus, appointment *time.Time) *domain.QueueItem {
	return &domain.QueueItem{
		ID:              id,
		OrderID:         "order-" + id,
		Status:          status,
		AppointmentTime: appointment,
		UpdatedAt:       now.AddDate(0, 0, -1),
	}
}

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func newSweeper(t *testing.T, queue *fakeQueueRepo, orders *fakeOrderRepo) *UseCase {
	t.Helper()
	uc := NewUseCase(queue, orders, &fakeSettingsRepo{archiveDays: 7}, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func TestSweepMovesDueItems(t *testing.T) {
	queue := &fakeQueueRepo{items: map[string]*domain.QueueItem{
		// scheduled, appointment passed -> starts
		"due": item("due", domain.QueueStatusScheduled, at(-10*time.Minute)),
		// scheduled in the future -> untouched
		"future": item("future", domain.QueueStatusScheduled, at(2*time.Hour)),
		// in progress for 90 minutes without proof -> review
		"stale": item("stale", domain.QueueStatusInProgress, at(-90*time.Minute)),
		// in progress only 30 minutes -> untouched
		"fresh": item("fresh", domain.QueueStatusInProgress, at(-30*time.Minute)),
	}}
	orders := &fakeOrderRepo{statuses: make(map[string]domain.OrderStatus)}
	uc := newSweeper(t, queue, orders)

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.MovedToInProgress)
	assert.Equal(t, 1, result.MovedToReview)
	assert.Equal(t, 0, result.Archived)

	assert.Equal(t, domain.QueueStatusInProgress, queue.items["due"].Status)
	assert.Equal(t, domain.QueueStatusScheduled, queue.items["future"].Status)
	assert.Equal(t, domain.QueueStatusReview, queue.items["stale"].Status)
	assert.Equal(t, domain.QueueStatusInProgress, queue.items["fresh"].Status)

	// Order mirrors follow
	assert.Equal(t, domain.OrderStatusInProgress, orders.statuses["order-due"])
	assert.Equal(t, domain.OrderStatusReview, orders.statuses["order-stale"])
}

func TestSweepKeepsProofedSessionsInProgress(t *testing.T) {
	proofed := item("proofed", domain.QueueStatusInProgress, at(-3*time.Hour))
	proofed.ProofAdded = true

	queue := &fakeQueueRepo{items: map[string]*domain.QueueItem{"proofed": proofed}}
	uc := newSweeper(t, queue, &fakeOrderRepo{statuses: make(map[string]domain.OrderStatus)})

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.MovedToReview)
	assert.Equal(t, domain.QueueStatusInProgress, queue.items["proofed"].Status)
}

func TestSweepArchivesOldFinished(t *testing.T) {
	old := item("old", domain.QueueStatusFinished, nil)
	old.UpdatedAt = now.AddDate(0, 0, -10)
	recent := item("recent", domain.QueueStatusFinished, nil)
	recent.UpdatedAt = now.AddDate(0, 0, -3)

	queue := &fakeQueueRepo{items: map[string]*domain.QueueItem{"old": old, "recent": recent}}
	uc := newSweeper(t, queue, &fakeOrderRepo{statuses: make(map[string]domain.OrderStatus)})

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Archived)
	_, oldExists := queue.items["old"]
	assert.False(t, oldExists)
	_, recentExists := queue.items["recent"]
	assert.True(t, recentExists)
}

func TestSweepIsIdempotent(t *testing.T) {
	queue := &fakeQueueRepo{items: map[string]*domain.QueueItem{
		"due": item("due", domain.QueueStatusScheduled, at(-10 * time.Minute)),
	}}
	orders := &fakeOrderRepo{statuses: make(map[string]domain.OrderStatus)}
	uc := newSweeper(t, queue, orders)

	first, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.MovedToInProgress)

	// Second pass within the grace window changes nothing
	second, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, second.IsNoop())
}
