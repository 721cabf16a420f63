package update_availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
	orderRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/order"
	queueRepo "github.com/avdeevsv/GBS-QueueService/internal/infra/storage/queue"
)

type fakeQueueRepo struct {
	itemsByOrder map[string]*domain.QueueItem
	saved        map[string]domain.Availability
}

func (f *fakeQueueRepo) GetByOrderID(_ context.Context, orderID string) (*domain.QueueItem, error) {
	item, ok := f.itemsByOrder[orderID]
	if !ok {
		return nil, queueRepo.ErrQueueItemNotFound
	}
	return item, nil
}

func (f *fakeQueueRepo) UpdateAvailability(_ context.Context, id string, availability domain.Availability) error {
	f.saved[id] = availability
	return nil
}

type fakeOrderRepo struct {
	orders map[string]*domain.Order
	saved  map[string]domain.Availability
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, orderRepo.ErrOrderNotFound
	}
	return o, nil
}

func (f *fakeOrderRepo) UpdateAvailability(_ context.Context, id string, availability domain.Availability) error {
	f.saved[id] = availability
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc     *UseCase
	queue  *fakeQueueRepo
	orders *fakeOrderRepo
}

func newFixture(t *testing.T, queueStatus domain.QueueStatus) *fixture {
	t.Helper()

	queue := &fakeQueueRepo{
		itemsByOrder: map[string]*domain.QueueItem{
			"order-1": {ID: "item-1", OrderID: "order-1", Status: queueStatus},
		},
		saved: make(map[string]domain.Availability),
	}
	orders := &fakeOrderRepo{
		orders: map[string]*domain.Order{
			"order-1": {ID: "order-1", Status: domain.OrderStatusInQueue},
			"order-2": {ID: "order-2", Status: domain.OrderStatusPaid},
		},
		saved: make(map[string]domain.Availability),
	}

	uc := NewUseCase(queue, orders, fakeTxManager{}, nopLogger{})
	return &fixture{uc: uc, queue: queue, orders: orders}
}

func TestAvailabilitySaveNormalizes(t *testing.T) {
	f := newFixture(t, domain.QueueStatusNew)

	resp, err := f.uc.Execute(context.Background(), &Request{
		OrderID: "order-1",
		Availability: domain.Availability{
			domain.Monday: []domain.TimeRange{
				{Start: "14:00", End: "16:00"},
				{Start: "09:00", End: "10:00"},
				{Start: "15:00", End: "18:00"},
			},
			domain.Tuesday: []domain.TimeRange{},
		},
	})
	require.NoError(t, err)

	expected := domain.Availability{
		domain.Monday: []domain.TimeRange{
			{Start: "09:00", End: "10:00"},
			{Start: "14:00", End: "18:00"},
		},
	}
	assert.Equal(t, expected, resp.Availability)

	// Both copies persisted with the same normalized shape
	assert.Equal(t, expected, f.orders.saved["order-1"])
	assert.Equal(t, expected, f.queue.saved["item-1"])
	assert.Equal(t, "item-1", resp.QueueItemID)
}

func TestAvailabilityLockedOnceStarted(t *testing.T) {
	for _, status := range []domain.QueueStatus{
		domain.QueueStatusInProgress,
		domain.QueueStatusReview,
		domain.QueueStatusFinished,
	} {
		f := newFixture(t, status)

		_, err := f.uc.Execute(context.Background(), &Request{
			OrderID:      "order-1",
			Availability: domain.Availability{domain.Monday: []domain.TimeRange{{Start: "10:00", End: "12:00"}}},
		})
		assert.ErrorIs(t, err, ErrEditingLocked, "status %s", status)
		assert.Empty(t, f.orders.saved)
	}
}

func TestAvailabilityEditableWhileScheduled(t *testing.T) {
	f := newFixture(t, domain.QueueStatusScheduled)

	_, err := f.uc.Execute(context.Background(), &Request{
		OrderID:      "order-1",
		Availability: domain.Availability{domain.Friday: []domain.TimeRange{{Start: "10:00", End: "12:00"}}},
	})
	require.NoError(t, err)
}

func TestAvailabilityBeforePaymentHasNoQueueItem(t *testing.T) {
	f := newFixture(t, domain.QueueStatusNew)

	resp, err := f.uc.Execute(context.Background(), &Request{
		OrderID:      "order-2",
		Availability: domain.Availability{domain.Monday: []domain.TimeRange{{Start: "10:00", End: "12:00"}}},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.QueueItemID)
	assert.NotEmpty(t, f.orders.saved["order-2"])
	assert.Empty(t, f.queue.saved)
}

func TestAvailabilityRejectsInvalidRanges(t *testing.T) {
	f := newFixture(t, domain.QueueStatusNew)

	tests := []struct {
		name   string
		ranges []domain.TimeRange
	}{
		{"inverted range", []domain.TimeRange{{Start: "18:00", End: "10:00"}}},
		{"bad format", []domain.TimeRange{{Start: "6pm", End: "21:00"}}},
		{"out of range", []domain.TimeRange{{Start: "10:00", End: "25:00"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), &Request{
				OrderID:      "order-1",
				Availability: domain.Availability{domain.Monday: tt.ranges},
			})
			assert.ErrorIs(t, err, ErrInvalidRange)
		})
	}
}

func TestAvailabilityOrderNotFound(t *testing.T) {
	f := newFixture(t, domain.QueueStatusNew)

	_, err := f.uc.Execute(context.Background(), &Request{OrderID: "missing"})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
