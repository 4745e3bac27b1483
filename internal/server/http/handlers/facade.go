package handlers

import (
	"context"

	"laundromat/internal/domain/model"
)

// AccountFacade describes directory operations exposed via HTTP.
type AccountFacade interface {
	RegisterAdmin(ctx context.Context, callerID, operatorKey, newAdminID string) (*model.Admin, error)
	RegisterCustomer(ctx context.Context, callerID string, profile model.CustomerProfile) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, callerID string, profile model.CustomerProfile) (*model.Customer, error)
	Customer(ctx context.Context, callerID, customerID string) (*model.Customer, error)
	Customers(ctx context.Context, callerID string) ([]model.Customer, error)
	Admins(ctx context.Context) ([]model.Admin, error)
}

// OrderFacade describes order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, callerID, orderID, description string, weightGrams int, attachedValue int64) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, callerID, orderID string, status model.OrderStatus) (*model.Order, error)
	SubmitFeedback(ctx context.Context, callerID, orderID string, rating int, comment string) (*model.Order, error)
	Order(ctx context.Context, callerID, orderID string) (*model.Order, error)
	Orders(ctx context.Context, callerID string) ([]model.Order, error)
	OrdersForCustomer(ctx context.Context, callerID, customerID string) ([]model.Order, error)
}

// LaundryFacade aggregates the full set of operations used across handlers.
type LaundryFacade interface {
	About() string
	ParseToken(token string) (string, error)
	AccountFacade
	OrderFacade
}
