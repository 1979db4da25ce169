package impl

import (
	"context"
	"testing"
	"time"

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

// discountServiceFixtures holds all test dependencies for discount service tests.
type discountServiceFixtures struct {
	txFixture
	service      usecase.DiscountUsecase
	discountRepo *mockRepo.MockDiscountRepository
}

func createTestDiscountService(t *testing.T) discountServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	discountRepo := mockRepo.NewMockDiscountRepository(t)

	service := NewDiscountService(DiscountServiceParams{
		TxManager:    txManager,
		DiscountRepo: discountRepo,
		Logger:       newDiscardLogger(),
	})

	return discountServiceFixtures{
		txFixture:    txFixture{t: t, txManager: txManager},
		service:      service,
		discountRepo: discountRepo,
	}
}

func redeemableDiscount() *entity.DiscountCode {
	now := time.Now()

	return &entity.DiscountCode{
		ID:                uuid.New(),
		Code:              "SALE10",
		Amount:            10000,
		UsageLimitPerUser: 1,
		IsActive:          true,
		Start:             now.Add(-time.Hour),
		End:               now.Add(time.Hour),
	}
}

func TestDiscountService_CreateDiscount_Success(t *testing.T) {
	fx := createTestDiscountService(t)

	ctx := context.Background()
	now := time.Now()
	input := &usecase.CreateDiscountInput{
		Code:              "SALE10",
		Amount:            10000,
		UsageLimitPerUser: 1,
		IsActive:          true,
		Start:             now,
		End:               now.Add(24 * time.Hour),
	}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockDiscountRepo := mockRepo.NewMockDiscountRepository(t)
		factory.EXPECT().DiscountRepo().Return(mockDiscountRepo)

		mockDiscountRepo.EXPECT().FindDiscountByCode(ctx, "SALE10").Return(nil, repository.ErrDiscountNotFound)
		mockDiscountRepo.EXPECT().CreateDiscount(ctx, mock.AnythingOfType("*entity.DiscountCode")).Return(nil)
	})

	discount, err := fx.service.CreateDiscount(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "SALE10", discount.Code)
	assert.Equal(t, int64(10000), discount.Amount)
}

func TestDiscountService_CreateDiscount_CodeTaken(t *testing.T) {
	fx := createTestDiscountService(t)

	ctx := context.Background()
	now := time.Now()
	input := &usecase.CreateDiscountInput{
		Code:              "SALE10",
		Amount:            10000,
		UsageLimitPerUser: 1,
		Start:             now,
		End:               now.Add(24 * time.Hour),
	}

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrDiscountCodeTaken, "code is already in use"), func(factory *mockRepo.MockRepositoryFactory) {
		mockDiscountRepo := mockRepo.NewMockDiscountRepository(t)
		factory.EXPECT().DiscountRepo().Return(mockDiscountRepo)
		mockDiscountRepo.EXPECT().FindDiscountByCode(ctx, "SALE10").Return(redeemableDiscount(), nil)
	})

	discount, err := fx.service.CreateDiscount(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, discount)
	assert.True(t, errors.Is(err, domainerrors.ErrDiscountCodeTaken))
}

func TestDiscountService_CreateDiscount_InvalidWindow(t *testing.T) {
	fx := createTestDiscountService(t)

	ctx := context.Background()
	now := time.Now()
	input := &usecase.CreateDiscountInput{
		Code:              "BACKWARDS",
		Amount:            5000,
		UsageLimitPerUser: 1,
		Start:             now,
		End:               now.Add(-time.Hour),
	}

	discount, err := fx.service.CreateDiscount(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, discount)
	assert.True(t, errors.Is(err, domainerrors.ErrDiscountWindowInvalid))
}

func TestDiscountService_UpdateDiscount_WindowRechecked(t *testing.T) {
	fx := createTestDiscountService(t)

	ctx := context.Background()
	discount := redeemableDiscount()
	badEnd := discount.Start.Add(-time.Minute)
	input := &usecase.UpdateDiscountInput{End: &badEnd}

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrDiscountWindowInvalid, "end of validity window must be after its start"), func(factory *mockRepo.MockRepositoryFactory) {
		mockDiscountRepo := mockRepo.NewMockDiscountRepository(t)
		factory.EXPECT().DiscountRepo().Return(mockDiscountRepo)
		mockDiscountRepo.EXPECT().FindDiscountByID(ctx, discount.ID).Return(discount, nil)
	})

	updated, err := fx.service.UpdateDiscount(ctx, discount.ID, input)

	assert.Error(t, err)
	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrDiscountWindowInvalid))
}

func TestDiscountService_ApplyToCart_Success(t *testing.T) {
	fx := createTestDiscountService(t)

	ctx := context.Background()
	userID := uuid.New()
	discount := redeemableDiscount()
	cart := &entity.Cart{
		ID:         uuid.New(),
		UserID:     userID,
		TotalPrice: 100000,
		Items:      []*entity.CartItem{{ProductID: uuid.New(), Quantity: 2, Price: 50000}},
	}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockDiscountRepo := mockRepo.NewMockDiscountRepository(t)
		mockCartRepo := mockRepo.NewMockCartRepository(t)

		factory.EXPECT().DiscountRepo().Return(mockDiscountRepo)
		factory.EXPECT().CartRepo().Return(mockCartRepo)

		mockDiscountRepo.EXPECT().FindDiscountByCode(ctx, "SALE10").Return(discount, nil)
		mockDiscountRepo.EXPECT().CountUsagesByUser(ctx, userID, discount.ID).Return(int64(0), nil)
		mockCartRepo.EXPECT().FindCartByUser(ctx, userID).Return(cart, nil)
		mockCartRepo.EXPECT().UpdateCart(ctx, mock.AnythingOfType("*entity.Cart")).Return(nil)
	})

	updated, err := fx.service.ApplyToCart(ctx, userID, &usecase.ApplyDiscountInput{Code: "SALE10"})

	require.NoError(t, err)
	assert.Equal(t, int64(10000), updated.DiscountPrice)
	assert.Equal(t, &discount.ID, updated.DiscountCodeID)
	assert.Equal(t, int64(90000), updated.PayablePrice())
}

func TestDiscountService_ApplyToCart_AlreadyUsed(t *testing.T) {
	fx := createTestDiscountService(t)

	ctx := context.Background()
	userID := uuid.New()
	discount := redeemableDiscount()

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrDiscountAlreadyUsed, "code was already redeemed by this user"), func(factory *mockRepo.MockRepositoryFactory) {
		mockDiscountRepo := mockRepo.NewMockDiscountRepository(t)
		mockCartRepo := mockRepo.NewMockCartRepository(t)

		factory.EXPECT().DiscountRepo().Return(mockDiscountRepo)
		factory.EXPECT().CartRepo().Return(mockCartRepo)

		mockDiscountRepo.EXPECT().FindDiscountByCode(ctx, "SALE10").Return(discount, nil)
		mockDiscountRepo.EXPECT().CountUsagesByUser(ctx, userID, discount.ID).Return(int64(1), nil)
	})

	updated, err := fx.service.ApplyToCart(ctx, userID, &usecase.ApplyDiscountInput{Code: "SALE10"})

	assert.Error(t, err)
	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrDiscountAlreadyUsed))
}

func TestDiscountService_ApplyToCart_ExpiredCode(t *testing.T) {
	fx := createTestDiscountService(t)

	ctx := context.Background()
	userID := uuid.New()
	discount := redeemableDiscount()
	discount.End = time.Now().Add(-time.Minute)

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrDiscountNotRedeemable, "code is inactive or outside its validity window"), func(factory *mockRepo.MockRepositoryFactory) {
		mockDiscountRepo := mockRepo.NewMockDiscountRepository(t)
		mockCartRepo := mockRepo.NewMockCartRepository(t)

		factory.EXPECT().DiscountRepo().Return(mockDiscountRepo)
		factory.EXPECT().CartRepo().Return(mockCartRepo)

		mockDiscountRepo.EXPECT().FindDiscountByCode(ctx, "SALE10").Return(discount, nil)
	})

	updated, err := fx.service.ApplyToCart(ctx, userID, &usecase.ApplyDiscountInput{Code: "SALE10"})

	assert.Error(t, err)
	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrDiscountNotRedeemable))
}

func TestDiscountService_ApplyToCart_EmptyCart(t *testing.T) {
	fx := createTestDiscountService(t)

	ctx := context.Background()
	userID := uuid.New()
	discount := redeemableDiscount()
	emptyCart := &entity.Cart{ID: uuid.New(), UserID: userID}

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrCartEmpty, "cart is empty"), func(factory *mockRepo.MockRepositoryFactory) {
		mockDiscountRepo := mockRepo.NewMockDiscountRepository(t)
		mockCartRepo := mockRepo.NewMockCartRepository(t)

		factory.EXPECT().DiscountRepo().Return(mockDiscountRepo)
		factory.EXPECT().CartRepo().Return(mockCartRepo)

		mockDiscountRepo.EXPECT().FindDiscountByCode(ctx, "SALE10").Return(discount, nil)
		mockDiscountRepo.EXPECT().CountUsagesByUser(ctx, userID, discount.ID).Return(int64(0), nil)
		mockCartRepo.EXPECT().FindCartByUser(ctx, userID).Return(emptyCart, nil)
	})

	updated, err := fx.service.ApplyToCart(ctx, userID, &usecase.ApplyDiscountInput{Code: "SALE10"})

	assert.Error(t, err)
	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrCartEmpty))
}

func TestDiscountService_ApplyToCart_CappedAtCartTotal(t *testing.T) {
	fx := createTestDiscountService(t)

	ctx := context.Background()
	userID := uuid.New()
	discount := redeemableDiscount()
	discount.Amount = 150000
	smallCart := &entity.Cart{
		ID:         uuid.New(),
		UserID:     userID,
		TotalPrice: 100000,
		Items:      []*entity.CartItem{{ProductID: uuid.New(), Quantity: 1, Price: 100000}},
	}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockDiscountRepo := mockRepo.NewMockDiscountRepository(t)
		mockCartRepo := mockRepo.NewMockCartRepository(t)

		factory.EXPECT().DiscountRepo().Return(mockDiscountRepo)
		factory.EXPECT().CartRepo().Return(mockCartRepo)

		mockDiscountRepo.EXPECT().FindDiscountByCode(ctx, "SALE10").Return(discount, nil)
		mockDiscountRepo.EXPECT().CountUsagesByUser(ctx, userID, discount.ID).Return(int64(0), nil)
		mockCartRepo.EXPECT().FindCartByUser(ctx, userID).Return(smallCart, nil)
		mockCartRepo.EXPECT().UpdateCart(ctx, mock.AnythingOfType("*entity.Cart")).Return(nil)
	})

	updated, err := fx.service.ApplyToCart(ctx, userID, &usecase.ApplyDiscountInput{Code: "SALE10"})

	require.NoError(t, err)
	assert.Equal(t, int64(100000), updated.DiscountPrice)
	assert.Equal(t, int64(0), updated.PayablePrice())
}

func TestDiscountService_RemoveFromCart_Success(t *testing.T) {
	fx := createTestDiscountService(t)

	ctx := context.Background()
	userID := uuid.New()
	discountCodeID := uuid.New()
	cart := &entity.Cart{
		ID:             uuid.New(),
		UserID:         userID,
		TotalPrice:     100000,
		DiscountPrice:  10000,
		DiscountCodeID: &discountCodeID,
	}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockCartRepo := mockRepo.NewMockCartRepository(t)
		factory.EXPECT().CartRepo().Return(mockCartRepo)

		mockCartRepo.EXPECT().FindCartByUser(ctx, userID).Return(cart, nil)
		mockCartRepo.EXPECT().UpdateCart(ctx, mock.AnythingOfType("*entity.Cart")).Return(nil)
	})

	updated, err := fx.service.RemoveFromCart(ctx, userID)

	require.NoError(t, err)
	assert.Nil(t, updated.DiscountCodeID)
	assert.Equal(t, int64(0), updated.DiscountPrice)
}

func TestDiscountService_DeleteDiscount_RedeemedCodeRejected(t *testing.T) {
	fx := createTestDiscountService(t)

	ctx := context.Background()
	discountID := uuid.New()

	// Redemption history RESTRICTs the delete; the code can only be
	// deactivated once someone has redeemed it.
	fx.discountRepo.EXPECT().
		DeleteDiscount(ctx, discountID).
		Return(domainerrors.ErrConflict.WrapMessage("discount code has redemption history"))

	err := fx.service.DeleteDiscount(ctx, discountID)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrConflict))
}

func TestDiscountService_RemoveFromCart_NoCodeIsNoop(t *testing.T) {
	fx := createTestDiscountService(t)

	ctx := context.Background()
	userID := uuid.New()
	cart := &entity.Cart{ID: uuid.New(), UserID: userID, TotalPrice: 100000}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockCartRepo := mockRepo.NewMockCartRepository(t)
		factory.EXPECT().CartRepo().Return(mockCartRepo)

		mockCartRepo.EXPECT().FindCartByUser(ctx, userID).Return(cart, nil)
		// No UpdateCart call when no code is applied.
	})

	updated, err := fx.service.RemoveFromCart(ctx, userID)

	require.NoError(t, err)
	assert.Nil(t, updated.DiscountCodeID)
}
