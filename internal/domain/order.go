package domain

import "time"

// OrderStatus represents the customer-facing order state. From in_queue
// onward it is a derived mirror of the queue item's status, kept in sync by
// the commit/update paths rather than being independently authoritative.
type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "pending_payment"
	OrderStatusPaid           OrderStatus = "paid"
	OrderStatusInQueue        OrderStatus = "in_queue"
	OrderStatusScheduled      OrderStatus = "scheduled"
	OrderStatusInProgress     OrderStatus = "in_progress"
	OrderStatusReview         OrderStatus = "review"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusMissed         OrderStatus = "missed"
	OrderStatusDispute        OrderStatus = "dispute"
	OrderStatusRefunded       OrderStatus = "refunded"
)

// Order is one purchase. Availability is captured at purchase time and stays
// editable by the customer only while the fulfillment is new or scheduled.
type Order struct {
	ID             string
	CustomerID     *string
	CustomerName   *string
	PackageID      string
	PackageName    string
	Amount         float64
	RefundedAmount *float64
	Availability   Availability
	Status         OrderStatus

	CreatedAt time.Time
	UpdatedAt time.Time
	PaidAt    *time.Time
}
