package test

import (
	"context"
	"time"

	domainErrors "laundromat/internal/domain/errors"
	"laundromat/internal/domain/model"
	"laundromat/internal/domain/repository"
)

// AdminRepositoryStub stores operator accounts in-memory for tests.
type AdminRepositoryStub struct {
	Admins map[string]*model.Admin
	Err    error
}

// NewAdminRepositoryStub constructs stub repository with initialized map.
func NewAdminRepositoryStub(ids ...string) *AdminRepositoryStub {
	stub := &AdminRepositoryStub{Admins: make(map[string]*model.Admin)}
	for _, id := range ids {
		stub.Admins[id] = &model.Admin{ID: id, Role: model.RoleAdmin}
	}
	return stub
}

// Create registers admin unless already present or stub has explicit error.
func (s *AdminRepositoryStub) Create(ctx context.Context, id string) (*model.Admin, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Admins == nil {
		s.Admins = make(map[string]*model.Admin)
	}
	if _, exists := s.Admins[id]; exists {
		return nil, domainErrors.Conflict("admin %s already exists", id)
	}
	admin := &model.Admin{ID: id, Role: model.RoleAdmin, CreatedAt: time.Now()}
	s.Admins[id] = admin
	return admin, nil
}

// Get fetches admin by identifier or returns not found.
func (s *AdminRepositoryStub) Get(ctx context.Context, id string) (*model.Admin, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if admin, ok := s.Admins[id]; ok {
		return admin, nil
	}
	return nil, domainErrors.NotFound("admin %s not found", id)
}

// List returns all stored admins.
func (s *AdminRepositoryStub) List(ctx context.Context) ([]model.Admin, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	result := make([]model.Admin, 0, len(s.Admins))
	for _, admin := range s.Admins {
		result = append(result, *admin)
	}
	return result, nil
}

// CustomerRepositoryStub stores customer accounts in-memory for tests.
type CustomerRepositoryStub struct {
	Customers map[string]*model.Customer
	Err       error
}

// NewCustomerRepositoryStub constructs stub repository with initialized map.
func NewCustomerRepositoryStub(ids ...string) *CustomerRepositoryStub {
	stub := &CustomerRepositoryStub{Customers: make(map[string]*model.Customer)}
	for _, id := range ids {
		stub.Customers[id] = &model.Customer{
			ID:          id,
			Name:        "Alice",
			FullAddress: "12 Main Street",
			Phone:       "87654321",
			Role:        model.RoleCustomer,
		}
	}
	return stub
}

// Create registers customer unless already present.
func (s *CustomerRepositoryStub) Create(ctx context.Context, id string, profile model.CustomerProfile) (*model.Customer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Customers == nil {
		s.Customers = make(map[string]*model.Customer)
	}
	if _, exists := s.Customers[id]; exists {
		return nil, domainErrors.Conflict("customer %s already exists", id)
	}
	customer := &model.Customer{
		ID:          id,
		Name:        profile.Name,
		FullAddress: profile.FullAddress,
		Landmark:    profile.Landmark,
		MapCode:     profile.MapCode,
		Phone:       profile.Phone,
		Email:       profile.Email,
		Role:        model.RoleCustomer,
		CreatedAt:   time.Now(),
	}
	s.Customers[id] = customer
	return customer, nil
}

// Get fetches customer by identifier or returns not found.
func (s *CustomerRepositoryStub) Get(ctx context.Context, id string) (*model.Customer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if customer, ok := s.Customers[id]; ok {
		return customer, nil
	}
	return nil, domainErrors.NotFound("customer %s not found", id)
}

// Update replaces the stored profile or returns not found.
func (s *CustomerRepositoryStub) Update(ctx context.Context, id string, profile model.CustomerProfile) (*model.Customer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	customer, ok := s.Customers[id]
	if !ok {
		return nil, domainErrors.NotFound("customer %s not found", id)
	}
	customer.Name = profile.Name
	customer.FullAddress = profile.FullAddress
	customer.Landmark = profile.Landmark
	customer.MapCode = profile.MapCode
	customer.Phone = profile.Phone
	customer.Email = profile.Email
	customer.UpdatedAt = time.Now()
	return customer, nil
}

// List returns all stored customers.
func (s *CustomerRepositoryStub) List(ctx context.Context) ([]model.Customer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	result := make([]model.Customer, 0, len(s.Customers))
	for _, customer := range s.Customers {
		result = append(result, *customer)
	}
	return result, nil
}

// OrderStatusCall stores information about UpdateStatus invocations.
type OrderStatusCall struct {
	OrderID     string
	From        model.OrderStatus
	Status      model.OrderStatus
	DeliveredAt *time.Time
}

// FeedbackCall stores information about SetFeedback invocations.
type FeedbackCall struct {
	OrderID  string
	Feedback model.Feedback
	Comment  string
}

// OrderRepositoryStub allows tests to customize order persistence behaviour.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, *model.Order) error
	GetFn          func(context.Context, string) (*model.Order, error)
	ListFn         func(context.Context) ([]model.Order, error)
	ListByFn       func(context.Context, string) ([]model.Order, error)
	UpdateStatusFn func(context.Context, string, model.OrderStatus, model.OrderStatus, *time.Time) error
	SetFeedbackFn  func(context.Context, string, model.Feedback, string) error
	ListStaleFn    func(context.Context, time.Time, int) ([]model.Order, error)
	TotalsFn       func(context.Context) ([]repository.EscrowTotal, error)

	Orders        map[string]*model.Order
	Created       []model.Order
	StatusCalls   []OrderStatusCall
	FeedbackCalls []FeedbackCall
	Stale         []model.Order
	Totals        []repository.EscrowTotal
}

// NewOrderRepositoryStub constructs stub repository with initialized map.
func NewOrderRepositoryStub(orders ...*model.Order) *OrderRepositoryStub {
	stub := &OrderRepositoryStub{Orders: make(map[string]*model.Order)}
	for _, order := range orders {
		stub.Orders[order.ID] = order
	}
	return stub
}

// Create stores the order and tracks the invocation.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if s.Orders == nil {
		s.Orders = make(map[string]*model.Order)
	}
	if _, exists := s.Orders[order.ID]; exists {
		return domainErrors.Conflict("order %s already exists", order.ID)
	}
	s.Orders[order.ID] = order
	s.Created = append(s.Created, *order)
	return nil
}

// Get returns the stored order or not found.
func (s *OrderRepositoryStub) Get(ctx context.Context, id string) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	if order, ok := s.Orders[id]; ok {
		return order, nil
	}
	return nil, domainErrors.NotFound("order %s not found", id)
}

// List returns all stored orders.
func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	result := make([]model.Order, 0, len(s.Orders))
	for _, order := range s.Orders {
		result = append(result, *order)
	}
	return result, nil
}

// ListByCustomer filters stored orders by owner.
func (s *OrderRepositoryStub) ListByCustomer(ctx context.Context, customerID string) ([]model.Order, error) {
	if s.ListByFn != nil {
		return s.ListByFn(ctx, customerID)
	}
	var result []model.Order
	for _, order := range s.Orders {
		if order.CustomerID == customerID {
			result = append(result, *order)
		}
	}
	return result, nil
}

// UpdateStatus claims the transition on the stored order and records the
// call. A stored status that no longer matches from conflicts, mirroring the
// real repository.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus, deliveredAt *time.Time) error {
	s.StatusCalls = append(s.StatusCalls, OrderStatusCall{OrderID: id, From: from, Status: to, DeliveredAt: deliveredAt})
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, from, to, deliveredAt)
	}
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.NotFound("order %s not found", id)
	}
	if order.Status != from {
		return domainErrors.Conflict("order %s is already %s", id, order.Status)
	}
	order.Status = to
	if deliveredAt != nil {
		order.DeliveredAt = deliveredAt
	}
	return nil
}

// SetFeedback mutates the stored order and records the call.
func (s *OrderRepositoryStub) SetFeedback(ctx context.Context, id string, feedback model.Feedback, comment string) error {
	s.FeedbackCalls = append(s.FeedbackCalls, FeedbackCall{OrderID: id, Feedback: feedback, Comment: comment})
	if s.SetFeedbackFn != nil {
		return s.SetFeedbackFn(ctx, id, feedback, comment)
	}
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.NotFound("order %s not found", id)
	}
	order.Feedback = feedback
	order.FeedbackComment = comment
	return nil
}

// ListStale returns the configured stale slice.
func (s *OrderRepositoryStub) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	if s.ListStaleFn != nil {
		return s.ListStaleFn(ctx, cutoff, limit)
	}
	return s.Stale, nil
}

// EscrowTotals returns the configured aggregation.
func (s *OrderRepositoryStub) EscrowTotals(ctx context.Context) ([]repository.EscrowTotal, error) {
	if s.TotalsFn != nil {
		return s.TotalsFn(ctx)
	}
	return s.Totals, nil
}

// TransferCall stores one recorded gateway transfer.
type TransferCall struct {
	Account string
	Amount  int64
}

// PaymentGatewayStub records value transfers without moving anything.
type PaymentGatewayStub struct {
	HoldFn   func(context.Context, string, int64) (string, error)
	PayoutFn func(context.Context, string, int64) (string, error)
	RefundFn func(context.Context, string, int64) (string, error)

	Holds   []TransferCall
	Payouts []TransferCall
	Refunds []TransferCall
}

// Hold records an escrow hold.
func (s *PaymentGatewayStub) Hold(ctx context.Context, from string, amount int64) (string, error) {
	s.Holds = append(s.Holds, TransferCall{Account: from, Amount: amount})
	if s.HoldFn != nil {
		return s.HoldFn(ctx, from, amount)
	}
	return "hold-ref", nil
}

// Payout records an escrow release to an operator.
func (s *PaymentGatewayStub) Payout(ctx context.Context, to string, amount int64) (string, error) {
	s.Payouts = append(s.Payouts, TransferCall{Account: to, Amount: amount})
	if s.PayoutFn != nil {
		return s.PayoutFn(ctx, to, amount)
	}
	return "payout-ref", nil
}

// Refund records an escrow release to a customer.
func (s *PaymentGatewayStub) Refund(ctx context.Context, to string, amount int64) (string, error) {
	s.Refunds = append(s.Refunds, TransferCall{Account: to, Amount: amount})
	if s.RefundFn != nil {
		return s.RefundFn(ctx, to, amount)
	}
	return "refund-ref", nil
}
