// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"bookstore/internal/domain/entity"
	"bookstore/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for discount persistence.
var (
	// ErrDiscountNotFound is returned when a discount code is not found.
	ErrDiscountNotFound = errors.New("discount code not found")
	// ErrDiscountUsageExists is returned when the (user, discount) pair has
	// already been recorded. The unique constraint makes this the arbiter
	// under concurrent redemptions.
	ErrDiscountUsageExists = errors.New("discount already redeemed by user")
)

// DiscountRepository defines the interface for discount code and redemption persistence.
type DiscountRepository interface {
	// CreateDiscount persists a new discount code.
	CreateDiscount(ctx context.Context, discount *entity.DiscountCode) error

	// FindDiscountByID retrieves a discount code by its unique ID.
	FindDiscountByID(ctx context.Context, id uuid.UUID) (*entity.DiscountCode, error)

	// FindDiscountByCode retrieves a discount code by its code string.
	FindDiscountByCode(ctx context.Context, code string) (*entity.DiscountCode, error)

	// ListDiscounts retrieves all discount codes ordered by creation time.
	ListDiscounts(ctx context.Context) ([]*entity.DiscountCode, error)

	// UpdateDiscount updates an existing discount code record.
	UpdateDiscount(ctx context.Context, discount *entity.DiscountCode) error

	// DeleteDiscount removes a discount code by its ID.
	DeleteDiscount(ctx context.Context, id uuid.UUID) error

	// CountUsagesByUser returns how many times a user has redeemed a discount code.
	CountUsagesByUser(ctx context.Context, userID, discountID uuid.UUID) (int64, error)

	// CreateUsage records a redemption of a discount code by a user.
	// Returns ErrDiscountUsageExists when the pair is already recorded.
	CreateUsage(ctx context.Context, usage *entity.DiscountUsage) error
}
