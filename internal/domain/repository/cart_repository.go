// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"bookstore/internal/domain/entity"
	"bookstore/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for cart persistence.
var (
	// ErrCartNotFound is returned when a cart is not found.
	ErrCartNotFound = errors.New("cart not found")
	// ErrCartItemNotFound is returned when a cart item is not found.
	ErrCartItemNotFound = errors.New("cart item not found")
)

// CartRepository defines the interface for cart persistence. Each user owns at
// most one open cart at a time.
type CartRepository interface {
	// CreateCart persists a new cart for a user.
	CreateCart(ctx context.Context, cart *entity.Cart) error

	// FindCartByID retrieves a cart with its items by the cart's unique ID.
	FindCartByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error)

	// FindCartByUser retrieves the open cart with its items for a user.
	// Returns ErrCartNotFound when the user has no open cart.
	FindCartByUser(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// UpdateCart updates the cart's aggregate fields (totals, discount link).
	UpdateCart(ctx context.Context, cart *entity.Cart) error

	// DeleteCart removes a cart and, through the schema cascade, its items.
	DeleteCart(ctx context.Context, id uuid.UUID) error

	// UpsertCartItem inserts a cart item, or replaces the quantity and price
	// snapshot of the existing item for the same (cart, product) pair.
	UpsertCartItem(ctx context.Context, item *entity.CartItem) error

	// FindCartItem retrieves the item for a (cart, product) pair.
	FindCartItem(ctx context.Context, cartID, productID uuid.UUID) (*entity.CartItem, error)

	// DeleteCartItem removes a single item from a cart.
	DeleteCartItem(ctx context.Context, cartID, productID uuid.UUID) error
}
