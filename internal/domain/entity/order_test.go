package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending,
		OrderStatusPaid,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusCompleted,
		OrderStatusCanceled,
	} {
		assert.True(t, s.Valid(), "expected %s to be valid", s)
	}

	assert.False(t, OrderStatus("refunded").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"pending to paid", OrderStatusPending, OrderStatusPaid, true},
		{"pending to canceled", OrderStatusPending, OrderStatusCanceled, true},
		{"paid to processing", OrderStatusPaid, OrderStatusProcessing, true},
		{"paid to canceled", OrderStatusPaid, OrderStatusCanceled, true},
		{"processing to shipped", OrderStatusProcessing, OrderStatusShipped, true},
		{"processing to canceled", OrderStatusProcessing, OrderStatusCanceled, true},
		{"shipped to completed", OrderStatusShipped, OrderStatusCompleted, true},

		// Cancellation closes off once the order has shipped.
		{"shipped to canceled", OrderStatusShipped, OrderStatusCanceled, false},
		{"completed to canceled", OrderStatusCompleted, OrderStatusCanceled, false},

		// No backward or skipped steps.
		{"paid to pending", OrderStatusPaid, OrderStatusPending, false},
		{"pending to processing", OrderStatusPending, OrderStatusProcessing, false},
		{"pending to shipped", OrderStatusPending, OrderStatusShipped, false},
		{"paid to completed", OrderStatusPaid, OrderStatusCompleted, false},
		{"shipped to processing", OrderStatusShipped, OrderStatusProcessing, false},

		// Terminal states go nowhere.
		{"completed to paid", OrderStatusCompleted, OrderStatusPaid, false},
		{"canceled to pending", OrderStatusCanceled, OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}
