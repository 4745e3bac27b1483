package dto

import "time"

// CreateOrderRequest describes the order placement payload. AttachedValue is
// the deposit the wallet gateway collected alongside the call.
type CreateOrderRequest struct {
	ID            string `json:"id"`
	Description   string `json:"description"`
	WeightGrams   int    `json:"weight_grams"`
	AttachedValue int64  `json:"attached_value"`
}

// UpdateStatusRequest describes the lifecycle transition payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// FeedbackRequest describes the delivered-order feedback payload.
type FeedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// OrderResponse describes an order record.
type OrderResponse struct {
	ID              string     `json:"id"`
	CustomerID      string     `json:"customer_id"`
	Description     string     `json:"description"`
	WeightGrams     int        `json:"weight_grams"`
	PriceNear       int64      `json:"price_near"`
	PaymentType     string     `json:"payment_type"`
	Status          string     `json:"status"`
	Feedback        string     `json:"feedback"`
	FeedbackComment string     `json:"feedback_comment,omitempty"`
	PickupAt        time.Time  `json:"pickup_at"`
	DeliveredAt     *time.Time `json:"delivered_at,omitempty"`
}
