package entity

import (
	"time"

	"github.com/google/uuid"
)

// Cart is a user's mutable pre-order basket. TotalPrice is the gross sum of
// line items; DiscountPrice is the amount deducted by an applied discount
// code, zero when none has been applied. Both are maintained by the cart and
// discount usecases inside the same transaction that mutates the items.
type Cart struct {
	ID             uuid.UUID   `json:"id"`
	UserID         uuid.UUID   `json:"user_id"`
	TotalPrice     int64       `json:"total_price"`
	DiscountPrice  int64       `json:"discount_price"`
	DiscountCodeID *uuid.UUID  `json:"discount_code_id,omitempty"` // The applied code, nil when none. Consumed at checkout.
	Items          []*CartItem `json:"items"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// PayablePrice returns the amount due after the applied discount.
func (c *Cart) PayablePrice() int64 {
	payable := c.TotalPrice - c.DiscountPrice
	if payable < 0 {
		return 0
	}

	return payable
}

// RecalculateTotal recomputes TotalPrice from the line items.
func (c *Cart) RecalculateTotal() {
	var total int64
	for _, item := range c.Items {
		total += item.Price * int64(item.Quantity)
	}
	c.TotalPrice = total
}

// CartItem is one product selection inside a cart. Price and DiscountPrice
// are unit prices snapshotted from the product at the time the item was
// added; they are not re-derived from the live catalog.
// (CartID, ProductID) is unique: re-adding a product adjusts Quantity.
type CartItem struct {
	ID            uuid.UUID `json:"id"`
	CartID        uuid.UUID `json:"cart_id"`
	ProductID     uuid.UUID `json:"product_id"`
	Quantity      int       `json:"quantity"`       // Always >= 1.
	Price         int64     `json:"price"`          // Unit price at add time.
	DiscountPrice int64     `json:"discount_price"` // Discounted unit price at add time; equals Price when no promotion.
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
