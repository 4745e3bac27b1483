package repository

import (
	"context"
	"time"

	"laundromat/internal/domain/model"
)

// EscrowTotal is the sum of order prices currently held per status.
type EscrowTotal struct {
	Status model.OrderStatus
	Orders int64
	Sum    int64
}

// OrderRepository describes persistence operations for orders.
type OrderRepository interface {
	// Create inserts the order and marks the owning customer as updated in
	// one transaction. The order must reference an existing customer.
	Create(ctx context.Context, order *model.Order) error
	Get(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]model.Order, error)
	// UpdateStatus persists the transition from one status to another. It
	// fails with a conflict when the stored status no longer matches from,
	// so of two concurrent attempts at a transition only one can claim it.
	UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus, deliveredAt *time.Time) error
	SetFeedback(ctx context.Context, id string, feedback model.Feedback, comment string) error
	// ListStale returns non-terminal orders whose pickup predates cutoff.
	ListStale(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error)
	// EscrowTotals aggregates held funds by status for reconciliation.
	EscrowTotals(ctx context.Context) ([]EscrowTotal, error)
}
