package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCart_RecalculateTotal(t *testing.T) {
	cart := &Cart{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Items: []*CartItem{
			{ProductID: uuid.New(), Quantity: 2, Price: 45000},
			{ProductID: uuid.New(), Quantity: 1, Price: 10000},
		},
	}

	cart.RecalculateTotal()
	assert.Equal(t, int64(100000), cart.TotalPrice)

	// Empty carts total zero.
	cart.Items = nil
	cart.RecalculateTotal()
	assert.Equal(t, int64(0), cart.TotalPrice)
}

func TestCart_PayablePrice(t *testing.T) {
	cart := &Cart{TotalPrice: 100000, DiscountPrice: 10000}
	assert.Equal(t, int64(90000), cart.PayablePrice())

	cart.DiscountPrice = 0
	assert.Equal(t, int64(100000), cart.PayablePrice())

	// A discount larger than the total never drives the payable amount negative.
	cart.DiscountPrice = 150000
	assert.Equal(t, int64(0), cart.PayablePrice())
}
