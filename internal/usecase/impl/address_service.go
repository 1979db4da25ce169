// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "bookstore/internal/delivery/context"
	"bookstore/internal/domain/entity"
	domainerrors "bookstore/internal/domain/errors"
	"bookstore/internal/domain/repository"
	"bookstore/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// addressService implements the AddressUsecase interface.
type addressService struct {
	txManager   repository.TransactionManager
	addressRepo repository.AddressRepository
	logger      *slog.Logger
}

// AddressServiceParams holds dependencies for AddressService, injected by Fx.
type AddressServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AddressRepo repository.AddressRepository
	Logger      *slog.Logger
}

// NewAddressService is the constructor for addressService.
func NewAddressService(params AddressServiceParams) usecase.AddressUsecase {
	return &addressService{
		txManager:   params.TxManager,
		addressRepo: params.AddressRepo,
		logger:      params.Logger,
	}
}

func (srv *addressService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateAddress persists a new address. When the new address is flagged as
// default, the previous default is cleared inside the same transaction.
func (srv *addressService) CreateAddress(ctx context.Context, userID uuid.UUID, input *usecase.CreateAddressInput) (*entity.Address, error) {
	newAddress := &entity.Address{
		UserID:     userID,
		Recipient:  input.Recipient,
		Province:   input.Province,
		City:       input.City,
		Street:     input.Street,
		PostalCode: input.PostalCode,
		IsDefault:  input.IsDefault,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.AddressRepo()

		if input.IsDefault {
			if err := addressRepo.ClearDefaultByUser(ctx, userID); err != nil {
				return errors.Wrap(err, "failed to clear previous default address")
			}
		}

		return addressRepo.CreateAddress(ctx, newAddress)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute address creation transaction", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute address creation transaction")
	}

	return newAddress, nil
}

// ListAddresses returns every address of the user, default first.
func (srv *addressService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	addresses, err := srv.addressRepo.FindAddressesByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list addresses")
	}

	return addresses, nil
}

// GetAddress loads one address and verifies the caller owns it.
func (srv *addressService) GetAddress(ctx context.Context, userID, addressID uuid.UUID) (*entity.Address, error) {
	address, err := srv.loadOwnedAddress(ctx, srv.addressRepo, userID, addressID)
	if err != nil {
		return nil, err
	}

	return address, nil
}

// UpdateAddress applies the non-nil fields of the update. Promoting an
// address to default clears the previous default inside the transaction.
func (srv *addressService) UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, input *usecase.UpdateAddressInput) (*entity.Address, error) {
	var updatedAddress *entity.Address

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.AddressRepo()

		address, err := srv.loadOwnedAddress(ctx, addressRepo, userID, addressID)
		if err != nil {
			return err
		}

		if input.Recipient != nil {
			address.Recipient = *input.Recipient
		}
		if input.Province != nil {
			address.Province = *input.Province
		}
		if input.City != nil {
			address.City = *input.City
		}
		if input.Street != nil {
			address.Street = *input.Street
		}
		if input.PostalCode != nil {
			address.PostalCode = *input.PostalCode
		}
		if input.IsDefault != nil && *input.IsDefault && !address.IsDefault {
			if err := addressRepo.ClearDefaultByUser(ctx, userID); err != nil {
				return errors.Wrap(err, "failed to clear previous default address")
			}
			address.IsDefault = true
		}

		if err := addressRepo.UpdateAddress(ctx, address); err != nil {
			return errors.Wrap(err, "failed to update address")
		}
		updatedAddress = address

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute address update transaction", slog.Any("addressID", addressID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute address update transaction")
	}

	return updatedAddress, nil
}

// DeleteAddress removes an owned address. Deleting the default leaves the
// user without one until another address is promoted.
func (srv *addressService) DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	if _, err := srv.loadOwnedAddress(ctx, srv.addressRepo, userID, addressID); err != nil {
		return err
	}

	if err := srv.addressRepo.DeleteAddress(ctx, addressID); err != nil {
		return errors.Wrap(err, "failed to delete address")
	}

	return nil
}

// SetDefaultAddress atomically moves the default flag to the given address.
func (srv *addressService) SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.AddressRepo()

		address, err := srv.loadOwnedAddress(ctx, addressRepo, userID, addressID)
		if err != nil {
			return err
		}
		if address.IsDefault {
			// Already the default; nothing to move.
			return nil
		}

		if err := addressRepo.ClearDefaultByUser(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to clear previous default address")
		}

		address.IsDefault = true

		return addressRepo.UpdateAddress(ctx, address)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute default address transaction", slog.Any("addressID", addressID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute default address transaction")
	}

	return nil
}

// loadOwnedAddress fetches an address and enforces ownership.
func (srv *addressService) loadOwnedAddress(ctx context.Context, addressRepo repository.AddressRepository, userID, addressID uuid.UUID) (*entity.Address, error) {
	address, err := addressRepo.FindAddressByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAddressNotFound, "address not found")
		}

		return nil, errors.Wrap(err, "failed to load address")
	}
	if address.UserID != userID {
		srv.log(ctx).Warn("Address ownership violation", slog.Any("addressID", addressID), slog.Any("userID", userID))

		return nil, errors.Wrap(domainerrors.ErrAddressOwnershipViolation, "address belongs to another user")
	}

	return address, nil
}
