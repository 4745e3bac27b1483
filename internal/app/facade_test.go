package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"laundromat/internal/adapter/events"
	domainErrors "laundromat/internal/domain/errors"
	"laundromat/internal/domain/model"
	"laundromat/internal/domain/repository"
	"laundromat/internal/pkg/auth"
	testhelpers "laundromat/internal/test"
	"laundromat/internal/usecase"
)

type facadeFixture struct {
	facade    *LaundryFacade
	admins    *testhelpers.AdminRepositoryStub
	customers *testhelpers.CustomerRepositoryStub
	orders    *testhelpers.OrderRepositoryStub
	gateway   *testhelpers.PaymentGatewayStub
	publisher *testhelpers.PublisherStub
}

func newFacade(orders ...*model.Order) *facadeFixture {
	admins := testhelpers.NewAdminRepositoryStub("admin.bob")
	customers := testhelpers.NewCustomerRepositoryStub("customer.alice")
	orderRepo := testhelpers.NewOrderRepositoryStub(orders...)
	gateway := &testhelpers.PaymentGatewayStub{}
	publisher := &testhelpers.PublisherStub{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	guard := auth.NewOperatorGuard("owner.laundry", "hash:master-key", testhelpers.KeyVerifierStub{})
	accountUC := usecase.NewAccountUseCase(admins, customers, guard)
	orderUC := usecase.NewOrderUseCase(admins, customers, orderRepo, gateway, logger)
	strategy := testhelpers.StrategyStub{ParseFn: func(string) (string, error) { return "customer.alice", nil }}

	return &facadeFixture{
		facade:    NewLaundryFacade(accountUC, orderUC, strategy, publisher),
		admins:    admins,
		customers: customers,
		orders:    orderRepo,
		gateway:   gateway,
		publisher: publisher,
	}
}

func TestLaundryFacadeAboutAndToken(t *testing.T) {
	f := newFacade()

	if about := f.facade.About(); about == "" {
		t.Fatal("expected non-empty about text")
	}

	id, err := f.facade.ParseToken("anything")
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if id != "customer.alice" {
		t.Fatalf("expected customer.alice, got %q", id)
	}
}

func TestLaundryFacadeAccounts(t *testing.T) {
	f := newFacade()

	admin, err := f.facade.RegisterAdmin(context.Background(), "owner.laundry", "master-key", "admin.carol")
	if err != nil {
		t.Fatalf("register admin returned error: %v", err)
	}
	if admin.ID != "admin.carol" {
		t.Fatalf("unexpected admin %+v", admin)
	}

	profile := model.CustomerProfile{Name: "Daria", FullAddress: "3 River Lane", Phone: "87001122"}
	customer, err := f.facade.RegisterCustomer(context.Background(), "customer.daria", profile)
	if err != nil {
		t.Fatalf("register customer returned error: %v", err)
	}
	if customer.ID != "customer.daria" {
		t.Fatalf("unexpected customer %+v", customer)
	}

	profile.FullAddress = "4 River Lane"
	updated, err := f.facade.UpdateCustomer(context.Background(), "customer.daria", profile)
	if err != nil {
		t.Fatalf("update customer returned error: %v", err)
	}
	if updated.FullAddress != "4 River Lane" {
		t.Fatalf("unexpected customer %+v", updated)
	}

	if _, err := f.facade.Customer(context.Background(), "admin.bob", "customer.daria"); err != nil {
		t.Fatalf("get customer returned error: %v", err)
	}

	customers, err := f.facade.Customers(context.Background(), "admin.bob")
	if err != nil || len(customers) == 0 {
		t.Fatalf("unexpected customers result: %v err=%v", customers, err)
	}

	admins, err := f.facade.Admins(context.Background())
	if err != nil || len(admins) != 2 {
		t.Fatalf("unexpected admins result: %v err=%v", admins, err)
	}
}

func TestLaundryFacadePlaceOrderPublishes(t *testing.T) {
	f := newFacade()

	order, err := f.facade.PlaceOrder(context.Background(), "customer.alice", "order-9876", "wool blankets", 2000, 5)
	if err != nil {
		t.Fatalf("place order returned error: %v", err)
	}
	if order.Status != model.OrderStatusConfirmed {
		t.Fatalf("unexpected status %q", order.Status)
	}

	published := f.publisher.Events()
	if len(published) != 1 || published[0].Key != events.KeyOrderCreated {
		t.Fatalf("unexpected events: %+v", published)
	}
	if published[0].Event.OrderID != "order-9876" || published[0].Event.PriceNear != 5 {
		t.Fatalf("unexpected event payload: %+v", published[0].Event)
	}
}

func TestLaundryFacadePlaceOrderFailurePublishesNothing(t *testing.T) {
	f := newFacade()

	_, err := f.facade.PlaceOrder(context.Background(), "customer.alice", "order-9876", "", 50, 5)
	if !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if published := f.publisher.Events(); len(published) != 0 {
		t.Fatalf("expected no events, got %+v", published)
	}
}

func TestLaundryFacadeStatusAndFeedbackPublish(t *testing.T) {
	order := &model.Order{
		ID:          "order-9876",
		CustomerID:  "customer.alice",
		WeightGrams: 2000,
		PriceNear:   5,
		PaymentType: model.PaymentTypePrepaid,
		Status:      model.OrderStatusConfirmed,
		Feedback:    model.FeedbackNone,
		PickupAt:    time.Now().Add(-time.Hour),
	}
	f := newFacade(order)

	if _, err := f.facade.UpdateOrderStatus(context.Background(), "admin.bob", "order-9876", model.OrderStatusInProgress); err != nil {
		t.Fatalf("update status returned error: %v", err)
	}
	if _, err := f.facade.UpdateOrderStatus(context.Background(), "admin.bob", "order-9876", model.OrderStatusDelivered); err != nil {
		t.Fatalf("deliver returned error: %v", err)
	}
	if _, err := f.facade.SubmitFeedback(context.Background(), "customer.alice", "order-9876", 3, "spotless"); err != nil {
		t.Fatalf("submit feedback returned error: %v", err)
	}

	published := f.publisher.Events()
	if len(published) != 3 {
		t.Fatalf("expected three events, got %+v", published)
	}
	if published[0].Key != events.KeyStatusChanged || published[1].Key != events.KeyStatusChanged || published[2].Key != events.KeyFeedback {
		t.Fatalf("unexpected event keys: %+v", published)
	}

	if len(f.gateway.Payouts) != 1 || f.gateway.Payouts[0].Account != "admin.bob" {
		t.Fatalf("expected payout to the delivering admin, got %+v", f.gateway.Payouts)
	}
}

func TestLaundryFacadeStatusConflictPublishesNothing(t *testing.T) {
	order := &model.Order{
		ID:         "order-9876",
		CustomerID: "customer.alice",
		Status:     model.OrderStatusConfirmed,
		Feedback:   model.FeedbackNone,
		PickupAt:   time.Now(),
	}
	f := newFacade(order)

	_, err := f.facade.UpdateOrderStatus(context.Background(), "admin.bob", "order-9876", model.OrderStatusConfirmed)
	if !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if published := f.publisher.Events(); len(published) != 0 {
		t.Fatalf("expected no events, got %+v", published)
	}
}

func TestLaundryFacadeOrderReads(t *testing.T) {
	order := &model.Order{
		ID:         "order-9876",
		CustomerID: "customer.alice",
		Status:     model.OrderStatusConfirmed,
		Feedback:   model.FeedbackNone,
		PickupAt:   time.Now(),
	}
	f := newFacade(order)

	got, err := f.facade.Order(context.Background(), "customer.alice", "order-9876")
	if err != nil || got.ID != "order-9876" {
		t.Fatalf("unexpected order: %+v err=%v", got, err)
	}

	listed, err := f.facade.Orders(context.Background(), "admin.bob")
	if err != nil || len(listed) != 1 {
		t.Fatalf("unexpected orders: %v err=%v", listed, err)
	}

	byCustomer, err := f.facade.OrdersForCustomer(context.Background(), "customer.alice", "customer.alice")
	if err != nil || len(byCustomer) != 1 {
		t.Fatalf("unexpected customer orders: %v err=%v", byCustomer, err)
	}
}

func TestLaundryFacadeStaleOrders(t *testing.T) {
	stale := model.Order{ID: "order-9876", CustomerID: "customer.alice", Status: model.OrderStatusConfirmed}
	f := newFacade()
	f.orders.Stale = []model.Order{stale}

	orders, err := f.facade.StaleOrders(context.Background(), time.Now(), 10)
	if err != nil || len(orders) != 1 {
		t.Fatalf("unexpected stale orders: %v err=%v", orders, err)
	}

	f.facade.NotifyStale(context.Background(), stale)
	published := f.publisher.Events()
	if len(published) != 1 || published[0].Key != events.KeyOrderStale {
		t.Fatalf("unexpected events: %+v", published)
	}
}

func TestLaundryFacadeEscrowTotals(t *testing.T) {
	f := newFacade()
	f.orders.Totals = []repository.EscrowTotal{{Status: model.OrderStatusConfirmed, Orders: 2, Sum: 10}}

	totals, err := f.facade.EscrowTotals(context.Background())
	if err != nil || len(totals) != 1 || totals[0].Sum != 10 {
		t.Fatalf("unexpected totals: %v err=%v", totals, err)
	}
}
