package domain

import "time"

// QueueStatus represents the fulfillment lifecycle stage of a queue item.
// The declaration order is the canonical linear order used to classify
// transitions as forward or backward.
type QueueStatus string

const (
	QueueStatusNew        QueueStatus = "new"
	QueueStatusScheduled  QueueStatus = "scheduled"
	QueueStatusInProgress QueueStatus = "in_progress"
	QueueStatusReview     QueueStatus = "review"
	QueueStatusFinished   QueueStatus = "finished"
)

// queueStatusOrder maps each status to its index in the linear flow
var queueStatusOrder = map[QueueStatus]int{
	QueueStatusNew:        0,
	QueueStatusScheduled:  1,
	QueueStatusInProgress: 2,
	QueueStatusReview:     3,
	QueueStatusFinished:   4,
}

// IsValid returns true for the five lifecycle statuses
func (s QueueStatus) IsValid() bool {
	_, ok := queueStatusOrder[s]
	return ok
}

// Index returns the status position in the linear lifecycle order
func (s QueueStatus) Index() int {
	return queueStatusOrder[s]
}

// IsForwardTransition reports whether moving from s to target advances the
// lifecycle (strictly increasing index)
func (s QueueStatus) IsForwardTransition(target QueueStatus) bool {
	return target.Index() > s.Index()
}

// IsBackwardTransition reports whether moving from s to target goes back in
// the lifecycle (strictly decreasing index). Backward moves always require a
// human-readable reason.
func (s QueueStatus) IsBackwardTransition(target QueueStatus) bool {
	return target.Index() < s.Index()
}

// orderStatusMirror maps each queue status to the order status kept in sync
var orderStatusMirror = map[QueueStatus]OrderStatus{
	QueueStatusNew:        OrderStatusInQueue,
	QueueStatusScheduled:  OrderStatusScheduled,
	QueueStatusInProgress: OrderStatusInProgress,
	QueueStatusReview:     OrderStatusReview,
	QueueStatusFinished:   OrderStatusCompleted,
}

// OrderStatusFor returns the order status mirrored for a queue status
func OrderStatusFor(s QueueStatus) OrderStatus {
	return orderStatusMirror[s]
}

// QueueItem is one fulfillment in the queue. It is created when payment
// confirms and mutated by staff through the state machine; it is only ever
// deleted by the archival sweep after reaching finished.
type QueueItem struct {
	ID           string
	OrderID      string
	CustomerID   *string
	CustomerName *string
	PackageID    string
	PackageName  string
	Status       QueueStatus
	Availability Availability

	// Single-session scheduling; multi-session fulfillments use Session rows
	AppointmentTime *time.Time

	RoomCode    *string
	Notes       *string
	ProofAdded  bool
	MissedCount int
	Position    int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeScheduled returns true while the item may receive an appointment
func (q *QueueItem) CanBeScheduled() bool {
	return q.Status == QueueStatusNew || q.Status == QueueStatusScheduled
}

// CanEditAvailability returns true while the customer may still change
// their availability
func (q *QueueItem) CanEditAvailability() bool {
	return q.Status == QueueStatusNew || q.Status == QueueStatusScheduled
}

// IsFinished returns true for the terminal status
func (q *QueueItem) IsFinished() bool {
	return q.Status == QueueStatusFinished
}

// QueueFilter filters queue listings
type QueueFilter struct {
	Status *QueueStatus
}
