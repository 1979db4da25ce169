package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order. Transitions only move
// forward through the enumerated sequence; cancellation is reachable until
// the order has shipped.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCanceled   OrderStatus = "canceled"
)

// orderTransitions is the explicit transition graph. Anything not listed is
// rejected, which forbids backward and skipped transitions.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusPaid, OrderStatusCanceled},
	OrderStatusPaid:       {OrderStatusProcessing, OrderStatusCanceled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCanceled},
	OrderStatusShipped:    {OrderStatusCompleted},
	OrderStatusCompleted:  {},
	OrderStatusCanceled:   {},
}

// Valid reports whether s is one of the enumerated statuses.
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]

	return ok
}

// CanTransitionTo reports whether moving from s to next is a legal step.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// Order is the immutable-once-placed record created at checkout. TotalPrice
// and DiscountPrice are copied from the originating cart and never recomputed
// from the live catalog.
type Order struct {
	ID            uuid.UUID    `json:"id"`
	UserID        uuid.UUID    `json:"user_id"`
	TransportID   *uuid.UUID   `json:"transport_id,omitempty"` // Set by the fulfillment step, nil until shipped.
	Transport     *Transport   `json:"transport,omitempty"`
	TotalPrice    int64        `json:"total_price"`
	DiscountPrice int64        `json:"discount_price"`
	Status        OrderStatus  `json:"status"`
	Items         []*OrderItem `json:"items"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// OrderItem is one line of an order. ProductTitle and ProductSKU are frozen
// copies of the product's name and slug taken at checkout; later catalog
// edits never alter them. (OrderID, ProductID) is unique.
type OrderItem struct {
	ID            uuid.UUID `json:"id"`
	OrderID       uuid.UUID `json:"order_id"`
	ProductID     uuid.UUID `json:"product_id"`
	ProductTitle  string    `json:"product_title"`
	ProductSKU    string    `json:"product_sku"`
	Quantity      int       `json:"quantity"`
	Price         int64     `json:"price"`          // Unit price at checkout.
	DiscountPrice int64     `json:"discount_price"` // Discounted unit price at checkout.
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Transport holds shipment metadata created by the fulfillment step.
type Transport struct {
	ID           uuid.UUID  `json:"id"`
	CompanyName  string     `json:"company_name"`
	TrackingCode string     `json:"tracking_code"`
	SendDate     *time.Time `json:"send_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
