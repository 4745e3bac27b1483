package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainErrors "laundromat/internal/domain/errors"
	"laundromat/internal/domain/model"
	"laundromat/internal/domain/repository"
)

// PaymentGateway is the external transfer capability. Hold escrows a deposit
// with the treasury, Payout releases escrowed funds to an operator account,
// Refund returns them to a customer. Each returns an opaque transfer
// reference. A gateway failure fails the whole ledger operation.
type PaymentGateway interface {
	Hold(ctx context.Context, from string, amount int64) (string, error)
	Payout(ctx context.Context, to string, amount int64) (string, error)
	Refund(ctx context.Context, to string, amount int64) (string, error)
}

// OrderUseCase is the order lifecycle engine: placement, status transitions
// with their monetary effects, feedback, and reads.
type OrderUseCase struct {
	admins    repository.AdminRepository
	customers repository.CustomerRepository
	orders    repository.OrderRepository
	payments  PaymentGateway
	logger    *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	admins repository.AdminRepository,
	customers repository.CustomerRepository,
	orders repository.OrderRepository,
	payments PaymentGateway,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{admins: admins, customers: customers, orders: orders, payments: payments, logger: logger}
}

// Place creates a Confirmed order for the calling customer and escrows the
// attached deposit. The full attached value becomes the order price; it is
// what gets paid out or refunded later. The deposit is held before the order
// row is written, so a failed hold leaves no record behind.
func (u *OrderUseCase) Place(ctx context.Context, callerID, orderID, description string, weightGrams int, attachedValue int64) (*model.Order, error) {
	if err := ValidateAccountID(callerID); err != nil {
		return nil, domainErrors.Validation("%v", err)
	}

	isAdmin, err := u.isAdmin(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if isAdmin {
		return nil, domainErrors.Unauthorized("admins cannot place orders")
	}

	if attachedValue < MinOrderPrice {
		return nil, domainErrors.Validation("minimum order price is %d", MinOrderPrice)
	}
	if err := ValidateWeight(weightGrams); err != nil {
		return nil, domainErrors.Validation("%v", err)
	}
	if min := MinPriceForWeight(weightGrams); attachedValue < min {
		return nil, domainErrors.Validation("order price for up to %d grams is %d", weightGrams, min)
	}

	if _, err := u.customers.Get(ctx, callerID); err != nil {
		return nil, err
	}

	if err := ValidateOrderID(orderID); err != nil {
		return nil, domainErrors.Conflict("%v", err)
	}
	if _, err := u.orders.Get(ctx, orderID); err == nil {
		return nil, domainErrors.Conflict("order id %s already exists", orderID)
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	if _, err := u.payments.Hold(ctx, callerID, attachedValue); err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:          orderID,
		CustomerID:  callerID,
		Description: description,
		WeightGrams: weightGrams,
		PriceNear:   attachedValue,
		PaymentType: model.PaymentTypePrepaid,
		Status:      model.OrderStatusConfirmed,
		Feedback:    model.FeedbackNone,
		PickupAt:    time.Now().UTC(),
	}
	if err := u.orders.Create(ctx, order); err != nil {
		// Funds are already escrowed; give them back before failing the call.
		if _, refundErr := u.payments.Refund(ctx, callerID, attachedValue); refundErr != nil {
			u.logger.Error("escrow release after failed order insert",
				slog.String("order_id", orderID),
				slog.String("customer_id", callerID),
				slog.Int64("amount", attachedValue),
				slog.String("error", refundErr.Error()),
			)
		}
		return nil, err
	}

	return order, nil
}

// UpdateStatus applies one lifecycle transition as an admin. The transfer a
// transition requires runs before the new status is persisted, so a failed
// transfer never leaves a stale status behind. Delivery pays the order price
// to the calling admin; cancellation refunds it to the customer.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, callerID, orderID string, requested model.OrderStatus) (*model.Order, error) {
	if err := ValidateAccountID(callerID); err != nil {
		return nil, domainErrors.Validation("%v", err)
	}
	if err := ValidateOrderID(orderID); err != nil {
		return nil, domainErrors.Validation("%v", err)
	}

	isAdmin, err := u.isAdmin(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, domainErrors.Unauthorized("only admins can update order status")
	}

	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	effect, err := order.Status.Transition(requested)
	if err != nil {
		return nil, domainErrors.Conflict("%v", err)
	}

	var deliveredAt *time.Time
	switch effect {
	case model.EffectPayout:
		if _, err := u.payments.Payout(ctx, callerID, order.PriceNear); err != nil {
			return nil, err
		}
		now := time.Now().UTC()
		deliveredAt = &now
	case model.EffectRefund:
		if _, err := u.payments.Refund(ctx, order.CustomerID, order.PriceNear); err != nil {
			return nil, err
		}
	case model.EffectNone:
	}

	// Persisting claims the transition against the snapshot status. A lost
	// claim means a concurrent request already applied a transition; the
	// transfer above already ran, so move the money back before failing.
	if err := u.orders.UpdateStatus(ctx, orderID, order.Status, requested, deliveredAt); err != nil {
		u.reverseTransfer(ctx, effect, callerID, order)
		return nil, err
	}

	order.Status = requested
	order.DeliveredAt = deliveredAt
	return order, nil
}

func (u *OrderUseCase) reverseTransfer(ctx context.Context, effect model.Effect, callerID string, order *model.Order) {
	var beneficiary string
	switch effect {
	case model.EffectPayout:
		beneficiary = callerID
	case model.EffectRefund:
		beneficiary = order.CustomerID
	default:
		return
	}
	if _, err := u.payments.Hold(ctx, beneficiary, order.PriceNear); err != nil {
		u.logger.Error("escrow restore after lost status claim",
			slog.String("order_id", order.ID),
			slog.String("account", beneficiary),
			slog.Int64("amount", order.PriceNear),
			slog.String("error", err.Error()),
		)
	}
}

// SubmitFeedback records the customer rating on a delivered order. A repeat
// submission replaces the previous rating and comment.
func (u *OrderUseCase) SubmitFeedback(ctx context.Context, callerID, orderID string, rating int, comment string) (*model.Order, error) {
	if err := ValidateAccountID(callerID); err != nil {
		return nil, domainErrors.Validation("%v", err)
	}
	if err := ValidateOrderID(orderID); err != nil {
		return nil, domainErrors.Validation("%v", err)
	}

	if _, err := u.customers.Get(ctx, callerID); err != nil {
		return nil, err
	}

	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status != model.OrderStatusDelivered {
		return nil, domainErrors.Conflict("order must be delivered to submit feedback")
	}
	if order.CustomerID != callerID {
		return nil, domainErrors.Unauthorized("only the ordering customer can submit feedback")
	}

	feedback, err := model.ParseFeedbackRating(rating)
	if err != nil {
		return nil, domainErrors.Validation("%v", err)
	}

	if err := u.orders.SetFeedback(ctx, orderID, feedback, comment); err != nil {
		return nil, err
	}

	order.Feedback = feedback
	order.FeedbackComment = comment
	return order, nil
}

// Get returns one order. Admins see any order, customers only their own.
func (u *OrderUseCase) Get(ctx context.Context, callerID, orderID string) (*model.Order, error) {
	if err := ValidateOrderID(orderID); err != nil {
		return nil, domainErrors.Validation("%v", err)
	}

	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.CustomerID != callerID {
		isAdmin, err := u.isAdmin(ctx, callerID)
		if err != nil {
			return nil, err
		}
		if !isAdmin {
			return nil, domainErrors.Unauthorized("not allowed to view this order")
		}
	}

	return order, nil
}

// List returns all orders. Admin only.
func (u *OrderUseCase) List(ctx context.Context, callerID string) ([]model.Order, error) {
	isAdmin, err := u.isAdmin(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, domainErrors.Unauthorized("only admins can list orders")
	}
	return u.orders.List(ctx)
}

// ListByCustomer returns one customer's orders in placement order. Admins see
// anyone's, customers only their own.
func (u *OrderUseCase) ListByCustomer(ctx context.Context, callerID, customerID string) ([]model.Order, error) {
	if err := ValidateAccountID(customerID); err != nil {
		return nil, domainErrors.Validation("%v", err)
	}

	if callerID != customerID {
		isAdmin, err := u.isAdmin(ctx, callerID)
		if err != nil {
			return nil, err
		}
		if !isAdmin {
			return nil, domainErrors.Unauthorized("not allowed to view this customer's orders")
		}
	}

	if _, err := u.customers.Get(ctx, customerID); err != nil {
		return nil, err
	}

	return u.orders.ListByCustomer(ctx, customerID)
}

// ListStale returns non-terminal orders older than cutoff, for reminders.
func (u *OrderUseCase) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	return u.orders.ListStale(ctx, cutoff, limit)
}

// EscrowTotals aggregates escrowed funds per status for reconciliation.
func (u *OrderUseCase) EscrowTotals(ctx context.Context) ([]repository.EscrowTotal, error) {
	return u.orders.EscrowTotals(ctx)
}

func (u *OrderUseCase) isAdmin(ctx context.Context, accountID string) (bool, error) {
	_, err := u.admins.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
