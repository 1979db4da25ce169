// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"bookstore/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// AddCartItemInput defines the data required to put a product in the cart.
// Adding a product that is already present adds to its quantity.
type AddCartItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// UpdateCartItemInput defines the data required to change the quantity of a
// product already in the cart.
type UpdateCartItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CartUsecase defines the interface for cart-related business operations.
// A user's cart is created lazily on first access and every mutation keeps
// the cart totals consistent within one transaction.
type CartUsecase interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)
	AddItem(ctx context.Context, userID uuid.UUID, input *AddCartItemInput) (*entity.Cart, error)
	UpdateItemQuantity(ctx context.Context, userID uuid.UUID, input *UpdateCartItemInput) (*entity.Cart, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*entity.Cart, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
}
