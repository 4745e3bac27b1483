package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	for _, value := range []string{"CONFIRMED", "IN_PROGRESS", "DELIVERED", "CANCELLED"} {
		status, err := ParseOrderStatus(value)
		require.NoError(t, err)
		assert.Equal(t, OrderStatus(value), status)
	}

	_, err := ParseOrderStatus("SHIPPED")
	assert.Error(t, err)
	_, err = ParseOrderStatus("")
	assert.Error(t, err)
}

func TestOrderStatusTransition(t *testing.T) {
	cases := []struct {
		name   string
		from   OrderStatus
		to     OrderStatus
		effect Effect
		ok     bool
	}{
		{"confirmed to in progress", OrderStatusConfirmed, OrderStatusInProgress, EffectNone, true},
		{"in progress to delivered", OrderStatusInProgress, OrderStatusDelivered, EffectPayout, true},
		{"confirmed to cancelled", OrderStatusConfirmed, OrderStatusCancelled, EffectRefund, true},
		{"in progress to cancelled", OrderStatusInProgress, OrderStatusCancelled, EffectRefund, true},
		{"delivery skipping progress", OrderStatusConfirmed, OrderStatusDelivered, EffectNone, false},
		{"cancel after delivery", OrderStatusDelivered, OrderStatusCancelled, EffectNone, false},
		{"resume cancelled order", OrderStatusCancelled, OrderStatusInProgress, EffectNone, false},
		{"back to confirmed", OrderStatusInProgress, OrderStatusConfirmed, EffectNone, false},
		{"deliver cancelled order", OrderStatusCancelled, OrderStatusDelivered, EffectNone, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			effect, err := tc.from.Transition(tc.to)
			if !tc.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.effect, effect)
		})
	}
}

func TestOrderStatusTransitionSameStatusFails(t *testing.T) {
	// Re-applying the current status is an error even for non-terminal states.
	statuses := []OrderStatus{
		OrderStatusConfirmed,
		OrderStatusInProgress,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
	for _, status := range statuses {
		_, err := status.Transition(status)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already")
	}
}

func TestOrderStatusTransitionUnknownTarget(t *testing.T) {
	_, err := OrderStatusConfirmed.Transition(OrderStatus("SHIPPED"))
	assert.Error(t, err)
}

func TestParseFeedbackRating(t *testing.T) {
	cases := []struct {
		rating   int
		expected Feedback
	}{
		{1, FeedbackNone},
		{2, FeedbackExcellent},
		{3, FeedbackGood},
		{4, FeedbackAverage},
		{5, FeedbackBad},
		{6, FeedbackVeryBad},
	}

	for _, tc := range cases {
		feedback, err := ParseFeedbackRating(tc.rating)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, feedback)
	}

	for _, rating := range []int{0, -1, 7, 100} {
		_, err := ParseFeedbackRating(rating)
		assert.Error(t, err, "rating %d", rating)
	}
}
