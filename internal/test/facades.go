package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"laundromat/internal/adapter/events"
	"laundromat/internal/domain/model"
	"laundromat/internal/domain/repository"
)

// AccountFacadeStub provides controllable behaviour for directory endpoints.
type AccountFacadeStub struct {
	RegisterAdminFn    func(context.Context, string, string, string) (*model.Admin, error)
	RegisterCustomerFn func(context.Context, string, model.CustomerProfile) (*model.Customer, error)
	UpdateCustomerFn   func(context.Context, string, model.CustomerProfile) (*model.Customer, error)
	CustomerFn         func(context.Context, string, string) (*model.Customer, error)
	CustomersFn        func(context.Context, string) ([]model.Customer, error)
	AdminsFn           func(context.Context) ([]model.Admin, error)
}

// RegisterAdmin delegates to provided function or returns a default admin.
func (s AccountFacadeStub) RegisterAdmin(ctx context.Context, callerID, operatorKey, newAdminID string) (*model.Admin, error) {
	if s.RegisterAdminFn != nil {
		return s.RegisterAdminFn(ctx, callerID, operatorKey, newAdminID)
	}
	return &model.Admin{ID: newAdminID, Role: model.RoleAdmin}, nil
}

// RegisterCustomer returns a customer assembled from the profile.
func (s AccountFacadeStub) RegisterCustomer(ctx context.Context, callerID string, profile model.CustomerProfile) (*model.Customer, error) {
	if s.RegisterCustomerFn != nil {
		return s.RegisterCustomerFn(ctx, callerID, profile)
	}
	return stubCustomer(callerID, profile), nil
}

// UpdateCustomer returns the updated customer record.
func (s AccountFacadeStub) UpdateCustomer(ctx context.Context, callerID string, profile model.CustomerProfile) (*model.Customer, error) {
	if s.UpdateCustomerFn != nil {
		return s.UpdateCustomerFn(ctx, callerID, profile)
	}
	return stubCustomer(callerID, profile), nil
}

// Customer returns one customer record.
func (s AccountFacadeStub) Customer(ctx context.Context, callerID, customerID string) (*model.Customer, error) {
	if s.CustomerFn != nil {
		return s.CustomerFn(ctx, callerID, customerID)
	}
	return stubCustomer(customerID, model.CustomerProfile{Name: "Alice", FullAddress: "12 Main Street", Phone: "87654321"}), nil
}

// Customers returns predefined customer list.
func (s AccountFacadeStub) Customers(ctx context.Context, callerID string) ([]model.Customer, error) {
	if s.CustomersFn != nil {
		return s.CustomersFn(ctx, callerID)
	}
	return []model.Customer{{ID: "customer.alice", Role: model.RoleCustomer}}, nil
}

// Admins returns predefined operator list.
func (s AccountFacadeStub) Admins(ctx context.Context) ([]model.Admin, error) {
	if s.AdminsFn != nil {
		return s.AdminsFn(ctx)
	}
	return []model.Admin{{ID: "admin.bob", Role: model.RoleAdmin}}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn    func(context.Context, string, string, string, int, int64) (*model.Order, error)
	UpdateFn   func(context.Context, string, string, model.OrderStatus) (*model.Order, error)
	FeedbackFn func(context.Context, string, string, int, string) (*model.Order, error)
	OrderFn    func(context.Context, string, string) (*model.Order, error)
	OrdersFn   func(context.Context, string) ([]model.Order, error)
	ByOwnerFn  func(context.Context, string, string) ([]model.Order, error)
}

// PlaceOrder delegates to override or returns a fresh confirmed order.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, callerID, orderID, description string, weightGrams int, attachedValue int64) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, callerID, orderID, description, weightGrams, attachedValue)
	}
	return &model.Order{
		ID:          orderID,
		CustomerID:  callerID,
		Description: description,
		WeightGrams: weightGrams,
		PriceNear:   attachedValue,
		PaymentType: model.PaymentTypePrepaid,
		Status:      model.OrderStatusConfirmed,
		Feedback:    model.FeedbackNone,
		PickupAt:    time.Unix(0, 0),
	}, nil
}

// UpdateOrderStatus returns the order in the requested status.
func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, callerID, orderID string, status model.OrderStatus) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, callerID, orderID, status)
	}
	return &model.Order{ID: orderID, Status: status, Feedback: model.FeedbackNone}, nil
}

// SubmitFeedback returns a delivered order carrying the rating.
func (s OrderFacadeStub) SubmitFeedback(ctx context.Context, callerID, orderID string, rating int, comment string) (*model.Order, error) {
	if s.FeedbackFn != nil {
		return s.FeedbackFn(ctx, callerID, orderID, rating, comment)
	}
	feedback, err := model.ParseFeedbackRating(rating)
	if err != nil {
		return nil, err
	}
	return &model.Order{ID: orderID, CustomerID: callerID, Status: model.OrderStatusDelivered, Feedback: feedback, FeedbackComment: comment}, nil
}

// Order returns one order record.
func (s OrderFacadeStub) Order(ctx context.Context, callerID, orderID string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, callerID, orderID)
	}
	return &model.Order{ID: orderID, CustomerID: callerID, Status: model.OrderStatusConfirmed, Feedback: model.FeedbackNone}, nil
}

// Orders returns predefined orders.
func (s OrderFacadeStub) Orders(ctx context.Context, callerID string) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, callerID)
	}
	return []model.Order{{ID: "order-0001", Status: model.OrderStatusConfirmed}}, nil
}

// OrdersForCustomer returns predefined orders for given customer.
func (s OrderFacadeStub) OrdersForCustomer(ctx context.Context, callerID, customerID string) ([]model.Order, error) {
	if s.ByOwnerFn != nil {
		return s.ByOwnerFn(ctx, callerID, customerID)
	}
	return []model.Order{{ID: "order-0001", CustomerID: customerID, Status: model.OrderStatusConfirmed}}, nil
}

// LaundryFacadeStub aggregates facade dependencies for HTTP layer tests.
type LaundryFacadeStub struct {
	AccountFacadeStub
	OrderFacadeStub
	AboutFn func() string
	ParseFn func(string) (string, error)
}

// About returns project information.
func (s LaundryFacadeStub) About() string {
	if s.AboutFn != nil {
		return s.AboutFn()
	}
	return "laundromat"
}

// ParseToken returns stored identifier for the authenticated account.
func (s LaundryFacadeStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return "customer.alice", nil
}

// StaleFacadeStub mimics worker interactions with the laundry facade.
type StaleFacadeStub struct {
	Batches        [][]model.Order
	StaleFn        func(context.Context, time.Time, int) ([]model.Order, error)
	Notified       []model.Order
	mu             sync.Mutex
	staleCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *StaleFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *StaleFacadeStub) Unlock() { s.mu.Unlock() }

// StaleOrders returns batches from the configured queue.
func (s *StaleFacadeStub) StaleOrders(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	if s.StaleFn != nil {
		return s.StaleFn(ctx, cutoff, limit)
	}
	call := atomic.AddInt32(&s.staleCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// NotifyStale records reminded orders.
func (s *StaleFacadeStub) NotifyStale(ctx context.Context, order model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Notified = append(s.Notified, order)
}

// LedgerFacadeStub provides escrow aggregation for the report job.
type LedgerFacadeStub struct {
	TotalsFn func(context.Context) ([]repository.EscrowTotal, error)
	Totals   []repository.EscrowTotal
	Err      error
}

// EscrowTotals returns the configured aggregation.
func (s *LedgerFacadeStub) EscrowTotals(ctx context.Context) ([]repository.EscrowTotal, error) {
	if s.TotalsFn != nil {
		return s.TotalsFn(ctx)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Totals, nil
}

// PublishedEvent stores one recorded event emission.
type PublishedEvent struct {
	Key   string
	Event events.OrderEvent
}

// PublisherStub records published order events.
type PublisherStub struct {
	mu        sync.Mutex
	Published []PublishedEvent
}

// Publish appends the event to the recorded list.
func (s *PublisherStub) Publish(ctx context.Context, key string, event events.OrderEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Published = append(s.Published, PublishedEvent{Key: key, Event: event})
}

// Events returns a copy of the recorded emissions.
func (s *PublisherStub) Events() []PublishedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PublishedEvent, len(s.Published))
	copy(out, s.Published)
	return out
}

func stubCustomer(id string, profile model.CustomerProfile) *model.Customer {
	return &model.Customer{
		ID:          id,
		Name:        profile.Name,
		FullAddress: profile.FullAddress,
		Landmark:    profile.Landmark,
		MapCode:     profile.MapCode,
		Phone:       profile.Phone,
		Email:       profile.Email,
		Role:        model.RoleCustomer,
		OrderIDs:    []string{},
	}
}
