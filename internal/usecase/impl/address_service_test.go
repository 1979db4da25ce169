package impl

import (
	"context"
	"testing"

	"bookstore/internal/domain/entity"
	domainerrors "bookstore/internal/domain/errors"
	"bookstore/internal/domain/repository"
	mockRepo "bookstore/internal/mocks/repository"
	"bookstore/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// addressServiceFixtures holds all test dependencies for address service tests.
type addressServiceFixtures struct {
	txFixture
	service     usecase.AddressUsecase
	addressRepo *mockRepo.MockAddressRepository
}

func createTestAddressService(t *testing.T) addressServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	addressRepo := mockRepo.NewMockAddressRepository(t)

	service := NewAddressService(AddressServiceParams{
		TxManager:   txManager,
		AddressRepo: addressRepo,
		Logger:      newDiscardLogger(),
	})

	return addressServiceFixtures{
		txFixture:   txFixture{t: t, txManager: txManager},
		service:     service,
		addressRepo: addressRepo,
	}
}

func TestAddressService_CreateAddress_Success(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.CreateAddressInput{
		Recipient:  "Ada Reader",
		Province:   "Tehran",
		City:       "Tehran",
		Street:     "Enghelab St. 12",
		PostalCode: "1234567890",
	}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockAddressRepo := mockRepo.NewMockAddressRepository(t)
		factory.EXPECT().AddressRepo().Return(mockAddressRepo)
		mockAddressRepo.EXPECT().CreateAddress(ctx, mock.AnythingOfType("*entity.Address")).Return(nil)
	})

	address, err := fx.service.CreateAddress(ctx, userID, input)

	require.NoError(t, err)
	assert.Equal(t, userID, address.UserID)
	assert.Equal(t, input.Recipient, address.Recipient)
	assert.False(t, address.IsDefault)
}

func TestAddressService_CreateAddress_DefaultDisplacesPrevious(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.CreateAddressInput{
		Recipient:  "Ada Reader",
		Province:   "Tehran",
		City:       "Tehran",
		Street:     "Enghelab St. 12",
		PostalCode: "1234567890",
		IsDefault:  true,
	}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockAddressRepo := mockRepo.NewMockAddressRepository(t)
		factory.EXPECT().AddressRepo().Return(mockAddressRepo)

		// The previous default is cleared in the same transaction.
		mockAddressRepo.EXPECT().ClearDefaultByUser(ctx, userID).Return(nil)
		mockAddressRepo.EXPECT().CreateAddress(ctx, mock.AnythingOfType("*entity.Address")).Return(nil)
	})

	address, err := fx.service.CreateAddress(ctx, userID, input)

	require.NoError(t, err)
	assert.True(t, address.IsDefault)
}

func TestAddressService_GetAddress_OwnershipViolation(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	userID := uuid.New()
	addressID := uuid.New()
	otherOwner := &entity.Address{ID: addressID, UserID: uuid.New()}

	fx.addressRepo.EXPECT().FindAddressByID(ctx, addressID).Return(otherOwner, nil)

	address, err := fx.service.GetAddress(ctx, userID, addressID)

	assert.Error(t, err)
	assert.Nil(t, address)
	assert.True(t, errors.Is(err, domainerrors.ErrAddressOwnershipViolation))
}

func TestAddressService_GetAddress_NotFound(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	userID := uuid.New()
	addressID := uuid.New()

	fx.addressRepo.EXPECT().FindAddressByID(ctx, addressID).Return(nil, repository.ErrAddressNotFound)

	address, err := fx.service.GetAddress(ctx, userID, addressID)

	assert.Error(t, err)
	assert.Nil(t, address)
	assert.True(t, errors.Is(err, domainerrors.ErrAddressNotFound))
}

func TestAddressService_UpdateAddress_PromoteToDefault(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	userID := uuid.New()
	addressID := uuid.New()
	isDefault := true
	input := &usecase.UpdateAddressInput{IsDefault: &isDefault}
	existing := &entity.Address{ID: addressID, UserID: userID, Recipient: "Ada Reader"}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockAddressRepo := mockRepo.NewMockAddressRepository(t)
		factory.EXPECT().AddressRepo().Return(mockAddressRepo)

		mockAddressRepo.EXPECT().FindAddressByID(ctx, addressID).Return(existing, nil)
		mockAddressRepo.EXPECT().ClearDefaultByUser(ctx, userID).Return(nil)
		mockAddressRepo.EXPECT().UpdateAddress(ctx, mock.AnythingOfType("*entity.Address")).Return(nil)
	})

	address, err := fx.service.UpdateAddress(ctx, userID, addressID, input)

	require.NoError(t, err)
	assert.True(t, address.IsDefault)
	// Fields left nil stay untouched.
	assert.Equal(t, "Ada Reader", address.Recipient)
}

func TestAddressService_UpdateAddress_AlreadyDefaultSkipsClear(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	userID := uuid.New()
	addressID := uuid.New()
	isDefault := true
	input := &usecase.UpdateAddressInput{IsDefault: &isDefault}
	existing := &entity.Address{ID: addressID, UserID: userID, IsDefault: true}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockAddressRepo := mockRepo.NewMockAddressRepository(t)
		factory.EXPECT().AddressRepo().Return(mockAddressRepo)

		mockAddressRepo.EXPECT().FindAddressByID(ctx, addressID).Return(existing, nil)
		// No ClearDefaultByUser call when the address already holds the flag.
		mockAddressRepo.EXPECT().UpdateAddress(ctx, mock.AnythingOfType("*entity.Address")).Return(nil)
	})

	address, err := fx.service.UpdateAddress(ctx, userID, addressID, input)

	require.NoError(t, err)
	assert.True(t, address.IsDefault)
}

func TestAddressService_DeleteAddress_Success(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	userID := uuid.New()
	addressID := uuid.New()
	existing := &entity.Address{ID: addressID, UserID: userID}

	fx.addressRepo.EXPECT().FindAddressByID(ctx, addressID).Return(existing, nil)
	fx.addressRepo.EXPECT().DeleteAddress(ctx, addressID).Return(nil)

	err := fx.service.DeleteAddress(ctx, userID, addressID)

	assert.NoError(t, err)
}

func TestAddressService_SetDefaultAddress_Success(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	userID := uuid.New()
	addressID := uuid.New()
	existing := &entity.Address{ID: addressID, UserID: userID}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockAddressRepo := mockRepo.NewMockAddressRepository(t)
		factory.EXPECT().AddressRepo().Return(mockAddressRepo)

		mockAddressRepo.EXPECT().FindAddressByID(ctx, addressID).Return(existing, nil)
		mockAddressRepo.EXPECT().ClearDefaultByUser(ctx, userID).Return(nil)
		mockAddressRepo.EXPECT().UpdateAddress(ctx, mock.AnythingOfType("*entity.Address")).Return(nil)
	})

	err := fx.service.SetDefaultAddress(ctx, userID, addressID)

	assert.NoError(t, err)
	assert.True(t, existing.IsDefault)
}

func TestAddressService_SetDefaultAddress_AlreadyDefault(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	userID := uuid.New()
	addressID := uuid.New()
	existing := &entity.Address{ID: addressID, UserID: userID, IsDefault: true}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockAddressRepo := mockRepo.NewMockAddressRepository(t)
		factory.EXPECT().AddressRepo().Return(mockAddressRepo)

		mockAddressRepo.EXPECT().FindAddressByID(ctx, addressID).Return(existing, nil)
	})

	err := fx.service.SetDefaultAddress(ctx, userID, addressID)

	assert.NoError(t, err)
}

func TestAddressService_ListAddresses_Success(t *testing.T) {
	fx := createTestAddressService(t)

	ctx := context.Background()
	userID := uuid.New()
	addresses := []*entity.Address{
		{ID: uuid.New(), UserID: userID, IsDefault: true},
		{ID: uuid.New(), UserID: userID},
	}

	fx.addressRepo.EXPECT().FindAddressesByUser(ctx, userID).Return(addresses, nil)

	got, err := fx.service.ListAddresses(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, addresses, got)
}
