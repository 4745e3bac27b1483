package model

import (
	"fmt"
	"time"
)

// OrderStatus describes the order lifecycle state.
type OrderStatus string

const (
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// PaymentType describes how an order is paid. Orders are prepaid:
// the deposit is escrowed at placement and settled on delivery or cancellation.
type PaymentType string

const PaymentTypePrepaid PaymentType = "PREPAID"

// Effect is the monetary side effect a status transition produces.
type Effect int

const (
	// EffectNone moves status without touching funds.
	EffectNone Effect = iota
	// EffectPayout releases the escrowed price to the operator.
	EffectPayout
	// EffectRefund returns the escrowed price to the customer.
	EffectRefund
)

// ParseOrderStatus converts an external status value into OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusConfirmed, OrderStatusInProgress, OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// Transition validates moving from s to the requested status and returns the
// monetary effect of the move. Requesting the current status again is always
// an error, never a no-op; Delivered and Cancelled are terminal.
func (s OrderStatus) Transition(to OrderStatus) (Effect, error) {
	if to == s {
		return EffectNone, fmt.Errorf("order already %s", s)
	}

	switch to {
	case OrderStatusInProgress:
		if s != OrderStatusConfirmed {
			return EffectNone, fmt.Errorf("invalid status transition %s -> %s", s, to)
		}
		return EffectNone, nil
	case OrderStatusDelivered:
		if s != OrderStatusInProgress {
			return EffectNone, fmt.Errorf("invalid status transition %s -> %s", s, to)
		}
		return EffectPayout, nil
	case OrderStatusCancelled:
		if s != OrderStatusConfirmed && s != OrderStatusInProgress {
			return EffectNone, fmt.Errorf("invalid status transition %s -> %s", s, to)
		}
		return EffectRefund, nil
	case OrderStatusConfirmed:
		return EffectNone, fmt.Errorf("invalid status transition %s -> %s", s, to)
	}
	return EffectNone, fmt.Errorf("unknown order status %q", to)
}

// Order describes a wash order placed by a customer. PriceNear is fixed at
// placement and is exactly the amount later paid out or refunded.
type Order struct {
	ID              string
	CustomerID      string
	Description     string
	WeightGrams     int
	PriceNear       int64
	PaymentType     PaymentType
	Status          OrderStatus
	Feedback        Feedback
	FeedbackComment string
	PickupAt        time.Time
	DeliveredAt     *time.Time
}
