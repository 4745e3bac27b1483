package app

import (
	"context"
	"time"

	"laundromat/internal/adapter/events"
	"laundromat/internal/domain/model"
	"laundromat/internal/domain/repository"
	"laundromat/internal/pkg/auth"
	"laundromat/internal/usecase"
)

const aboutProject = "Laundromat: a prepaid laundry pickup ledger. Customers deposit the wash " +
	"price when placing an order; funds sit in escrow until an operator delivers (payout) or " +
	"cancels (refund) the order."

// LaundryFacade aggregates the ledger operations exposed to the transport
// layer, the reminder worker, and the reconciliation job. Mutations publish
// order events after they commit.
type LaundryFacade struct {
	accounts *usecase.AccountUseCase
	orders   *usecase.OrderUseCase
	tokens   auth.Strategy
	events   events.Publisher
}

func NewLaundryFacade(accounts *usecase.AccountUseCase, orders *usecase.OrderUseCase, tokens auth.Strategy, publisher events.Publisher) *LaundryFacade {
	return &LaundryFacade{accounts: accounts, orders: orders, tokens: tokens, events: publisher}
}

func (f *LaundryFacade) About() string {
	return aboutProject
}

// ParseToken resolves the gateway-asserted caller identity from a token.
func (f *LaundryFacade) ParseToken(token string) (string, error) {
	return f.tokens.ParseToken(token)
}

func (f *LaundryFacade) RegisterAdmin(ctx context.Context, callerID, operatorKey, newAdminID string) (*model.Admin, error) {
	return f.accounts.RegisterAdmin(ctx, callerID, operatorKey, newAdminID)
}

func (f *LaundryFacade) RegisterCustomer(ctx context.Context, callerID string, profile model.CustomerProfile) (*model.Customer, error) {
	return f.accounts.RegisterCustomer(ctx, callerID, profile)
}

func (f *LaundryFacade) UpdateCustomer(ctx context.Context, callerID string, profile model.CustomerProfile) (*model.Customer, error) {
	return f.accounts.UpdateCustomer(ctx, callerID, profile)
}

func (f *LaundryFacade) Customer(ctx context.Context, callerID, customerID string) (*model.Customer, error) {
	return f.accounts.GetCustomer(ctx, callerID, customerID)
}

func (f *LaundryFacade) Customers(ctx context.Context, callerID string) ([]model.Customer, error) {
	return f.accounts.ListCustomers(ctx, callerID)
}

func (f *LaundryFacade) Admins(ctx context.Context) ([]model.Admin, error) {
	return f.accounts.ListAdmins(ctx)
}

func (f *LaundryFacade) PlaceOrder(ctx context.Context, callerID, orderID, description string, weightGrams int, attachedValue int64) (*model.Order, error) {
	order, err := f.orders.Place(ctx, callerID, orderID, description, weightGrams, attachedValue)
	if err != nil {
		return nil, err
	}
	f.events.Publish(ctx, events.KeyOrderCreated, orderEvent(order))
	return order, nil
}

func (f *LaundryFacade) UpdateOrderStatus(ctx context.Context, callerID, orderID string, status model.OrderStatus) (*model.Order, error) {
	order, err := f.orders.UpdateStatus(ctx, callerID, orderID, status)
	if err != nil {
		return nil, err
	}
	f.events.Publish(ctx, events.KeyStatusChanged, orderEvent(order))
	return order, nil
}

func (f *LaundryFacade) SubmitFeedback(ctx context.Context, callerID, orderID string, rating int, comment string) (*model.Order, error) {
	order, err := f.orders.SubmitFeedback(ctx, callerID, orderID, rating, comment)
	if err != nil {
		return nil, err
	}
	f.events.Publish(ctx, events.KeyFeedback, orderEvent(order))
	return order, nil
}

func (f *LaundryFacade) Order(ctx context.Context, callerID, orderID string) (*model.Order, error) {
	return f.orders.Get(ctx, callerID, orderID)
}

func (f *LaundryFacade) Orders(ctx context.Context, callerID string) ([]model.Order, error) {
	return f.orders.List(ctx, callerID)
}

func (f *LaundryFacade) OrdersForCustomer(ctx context.Context, callerID, customerID string) ([]model.Order, error) {
	return f.orders.ListByCustomer(ctx, callerID, customerID)
}

// StaleOrders returns non-terminal orders whose pickup predates cutoff.
func (f *LaundryFacade) StaleOrders(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	return f.orders.ListStale(ctx, cutoff, limit)
}

// NotifyStale publishes a reminder event for a stuck order.
func (f *LaundryFacade) NotifyStale(ctx context.Context, order model.Order) {
	f.events.Publish(ctx, events.KeyOrderStale, orderEvent(&order))
}

// EscrowTotals aggregates escrowed funds per status.
func (f *LaundryFacade) EscrowTotals(ctx context.Context) ([]repository.EscrowTotal, error) {
	return f.orders.EscrowTotals(ctx)
}

func orderEvent(order *model.Order) events.OrderEvent {
	return events.OrderEvent{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Status:     string(order.Status),
		PriceNear:  order.PriceNear,
		Feedback:   string(order.Feedback),
		OccurredAt: time.Now().UTC(),
	}
}
