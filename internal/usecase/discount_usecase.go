// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"

	"bookstore/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateDiscountInput defines the data required to create a discount code.
type CreateDiscountInput struct {
	Code              string
	Amount            int64
	UsageLimitPerUser int
	IsActive          bool
	Start             time.Time
	End               time.Time
}

// UpdateDiscountInput defines the optional fields of a discount update.
// Nil fields are left untouched.
type UpdateDiscountInput struct {
	Amount            *int64
	UsageLimitPerUser *int
	IsActive          *bool
	Start             *time.Time
	End               *time.Time
}

// ApplyDiscountInput carries the code a customer wants applied to their cart.
type ApplyDiscountInput struct {
	Code string
}

// DiscountUsecase defines the interface for discount code management and
// redemption. Management operations require the admin role; ApplyToCart and
// RemoveFromCart act on the calling customer's cart.
type DiscountUsecase interface {
	CreateDiscount(ctx context.Context, input *CreateDiscountInput) (*entity.DiscountCode, error)
	ListDiscounts(ctx context.Context) ([]*entity.DiscountCode, error)
	GetDiscount(ctx context.Context, discountID uuid.UUID) (*entity.DiscountCode, error)
	UpdateDiscount(ctx context.Context, discountID uuid.UUID, input *UpdateDiscountInput) (*entity.DiscountCode, error)
	DeleteDiscount(ctx context.Context, discountID uuid.UUID) error

	// ApplyToCart validates eligibility (active, inside window, not yet
	// redeemed by this user) and applies the flat amount to the user's cart.
	ApplyToCart(ctx context.Context, userID uuid.UUID, input *ApplyDiscountInput) (*entity.Cart, error)

	// RemoveFromCart detaches the applied code from the user's cart.
	RemoveFromCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)
}
