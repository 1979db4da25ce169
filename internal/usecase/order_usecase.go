// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"

	"bookstore/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CheckoutInput defines the data required to turn the user's cart into an order.
type CheckoutInput struct {
	AddressID uuid.UUID
}

// ListOrdersInput narrows and pages order listings.
type ListOrdersInput struct {
	UserID *uuid.UUID
	Status entity.OrderStatus
	Offset int
	Limit  int
}

// UpdateOrderStatusInput carries the requested lifecycle transition.
type UpdateOrderStatusInput struct {
	Status entity.OrderStatus
}

// ShipOrderInput defines the shipment metadata recorded when an order ships.
type ShipOrderInput struct {
	CompanyName  string
	TrackingCode string
	SendDate     *time.Time
}

// --- Output DTOs ---

// OrderListOutput returns one page of orders with the total match count.
type OrderListOutput struct {
	Orders []*entity.Order
	Total  int64
}

// OrderUsecase defines the interface for checkout and order lifecycle
// operations. Checkout, GetOrder, ListMyOrders and CancelOrder act on behalf
// of the calling customer; the remaining operations require the admin role.
type OrderUsecase interface {
	// Checkout atomically snapshots the cart into a new pending order,
	// decrements stock, records any discount redemption and deletes the cart.
	Checkout(ctx context.Context, userID uuid.UUID, input *CheckoutInput) (*entity.Order, error)

	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error)
	ListMyOrders(ctx context.Context, userID uuid.UUID, offset, limit int) (*OrderListOutput, error)

	// CancelOrder is the customer-facing cancellation; it is legal until the
	// order has shipped and restores the reserved stock.
	CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error)

	// Admin operations.
	ListOrders(ctx context.Context, input *ListOrdersInput) (*OrderListOutput, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, input *UpdateOrderStatusInput) (*entity.Order, error)
	ShipOrder(ctx context.Context, orderID uuid.UUID, input *ShipOrderInput) (*entity.Order, error)
}
