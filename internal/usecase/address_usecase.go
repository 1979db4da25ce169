// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"bookstore/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateAddressInput defines the data required to create a shipping address.
type CreateAddressInput struct {
	Recipient  string
	Province   string
	City       string
	Street     string
	PostalCode string
	IsDefault  bool
}

// UpdateAddressInput defines the optional fields of an address update.
// Nil fields are left untouched.
type UpdateAddressInput struct {
	Recipient  *string
	Province   *string
	City       *string
	Street     *string
	PostalCode *string
	IsDefault  *bool
}

// AddressUsecase defines the interface for address-related business operations.
// All operations act on behalf of the owning user; ownership is checked on
// every access by ID.
type AddressUsecase interface {
	CreateAddress(ctx context.Context, userID uuid.UUID, input *CreateAddressInput) (*entity.Address, error)
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error)
	GetAddress(ctx context.Context, userID, addressID uuid.UUID) (*entity.Address, error)
	UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, input *UpdateAddressInput) (*entity.Address, error)
	DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error
	SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) error
}
