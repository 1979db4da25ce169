// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"bookstore/internal/domain/entity"
	"bookstore/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for order persistence.
var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderStatusStale is returned when a guarded status update matched no
	// row, meaning the order moved to another status concurrently.
	ErrOrderStatusStale = errors.New("order status changed concurrently")
	// ErrTransportNotFound is returned when a shipping record is not found.
	ErrTransportNotFound = errors.New("transport not found")
)

// OrderFilter narrows order listings. Zero values mean "no constraint".
type OrderFilter struct {
	UserID *uuid.UUID
	Status entity.OrderStatus
	Offset int
	Limit  int
}

// OrderRepository defines the interface for order, order item and transport persistence.
type OrderRepository interface {
	// CreateOrder persists a new order together with its items.
	CreateOrder(ctx context.Context, order *entity.Order) error

	// FindOrderByID retrieves an order with its items and transport record.
	FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// ListOrders retrieves a page of orders matching the filter, newest first,
	// together with the total match count.
	ListOrders(ctx context.Context, filter OrderFilter) ([]*entity.Order, int64, error)

	// UpdateOrderStatus moves an order from one status to another.
	// The update is guarded by the expected current status and returns
	// ErrOrderStatusStale when the guard does not match.
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) error

	// CreateTransport persists a shipping record and links it to an order.
	CreateTransport(ctx context.Context, orderID uuid.UUID, transport *entity.Transport) error

	// UpdateTransport updates an existing shipping record.
	UpdateTransport(ctx context.Context, transport *entity.Transport) error
}
