package repository

import (
	"context"

	"laundromat/internal/domain/model"
)

// AdminRepository describes persistence operations for operator accounts.
type AdminRepository interface {
	Create(ctx context.Context, id string) (*model.Admin, error)
	Get(ctx context.Context, id string) (*model.Admin, error)
	List(ctx context.Context) ([]model.Admin, error)
}
