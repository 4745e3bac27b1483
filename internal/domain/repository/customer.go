package repository

import (
	"context"

	"laundromat/internal/domain/model"
)

// CustomerRepository describes persistence operations for customer accounts.
type CustomerRepository interface {
	Create(ctx context.Context, id string, profile model.CustomerProfile) (*model.Customer, error)
	Get(ctx context.Context, id string) (*model.Customer, error)
	Update(ctx context.Context, id string, profile model.CustomerProfile) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
}
