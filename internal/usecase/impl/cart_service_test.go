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

// cartServiceFixtures holds all test dependencies for cart service tests.
type cartServiceFixtures struct {
	txFixture
	service  usecase.CartUsecase
	cartRepo *mockRepo.MockCartRepository
}

func createTestCartService(t *testing.T) cartServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	cartRepo := mockRepo.NewMockCartRepository(t)

	service := NewCartService(CartServiceParams{
		TxManager: txManager,
		CartRepo:  cartRepo,
		Logger:    newDiscardLogger(),
	})

	return cartServiceFixtures{
		txFixture: txFixture{t: t, txManager: txManager},
		service:   service,
		cartRepo:  cartRepo,
	}
}

func TestCartService_GetCart_Existing(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	existing := &entity.Cart{ID: uuid.New(), UserID: userID}

	fx.cartRepo.EXPECT().FindCartByUser(ctx, userID).Return(existing, nil)

	cart, err := fx.service.GetCart(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, existing, cart)
}

func TestCartService_GetCart_LazyCreate(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.cartRepo.EXPECT().FindCartByUser(ctx, userID).Return(nil, repository.ErrCartNotFound)
	fx.cartRepo.EXPECT().CreateCart(ctx, mock.AnythingOfType("*entity.Cart")).Return(nil)

	cart, err := fx.service.GetCart(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, userID, cart.UserID)
	assert.Empty(t, cart.Items)
}

func TestCartService_GetCart_ConcurrentCreateRace(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	winner := &entity.Cart{ID: uuid.New(), UserID: userID}

	// A concurrent first access wins the insert; the loser reloads.
	fx.cartRepo.EXPECT().FindCartByUser(ctx, userID).Return(nil, repository.ErrCartNotFound).Once()
	fx.cartRepo.EXPECT().CreateCart(ctx, mock.AnythingOfType("*entity.Cart")).Return(errors.New("duplicate key"))
	fx.cartRepo.EXPECT().FindCartByUser(ctx, userID).Return(winner, nil).Once()

	cart, err := fx.service.GetCart(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, winner, cart)
}

func TestCartService_AddItem_Success(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	cartID := uuid.New()
	productID := uuid.New()
	discount := int64(40000)
	product := &entity.Product{ID: productID, Price: 45000, DiscountPrice: &discount, Stock: 10}
	input := &usecase.AddCartItemInput{ProductID: productID, Quantity: 2}

	fx.cartRepo.EXPECT().FindCartByUser(ctx, userID).Return(&entity.Cart{ID: cartID, UserID: userID}, nil)

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockCartRepo := mockRepo.NewMockCartRepository(t)
		mockCatalogRepo := mockRepo.NewMockCatalogRepository(t)

		factory.EXPECT().CartRepo().Return(mockCartRepo)
		factory.EXPECT().CatalogRepo().Return(mockCatalogRepo)

		mockCatalogRepo.EXPECT().FindProductByID(ctx, productID).Return(product, nil)
		mockCartRepo.EXPECT().FindCartItem(ctx, cartID, productID).Return(nil, repository.ErrCartItemNotFound)
		mockCartRepo.EXPECT().
			UpsertCartItem(ctx, mock.AnythingOfType("*entity.CartItem")).
			Run(func(ctx context.Context, item *entity.CartItem) {
				assert.Equal(t, 2, item.Quantity)
				assert.Equal(t, int64(45000), item.Price)
				assert.Equal(t, int64(40000), item.DiscountPrice)
			}).
			Return(nil)

		reloaded := &entity.Cart{
			ID:     cartID,
			UserID: userID,
			Items:  []*entity.CartItem{{ProductID: productID, Quantity: 2, Price: 45000}},
		}
		mockCartRepo.EXPECT().FindCartByID(ctx, cartID).Return(reloaded, nil)
		mockCartRepo.EXPECT().UpdateCart(ctx, mock.AnythingOfType("*entity.Cart")).Return(nil)
	})

	cart, err := fx.service.AddItem(ctx, userID, input)

	require.NoError(t, err)
	assert.Equal(t, int64(90000), cart.TotalPrice)
}

func TestCartService_AddItem_InsufficientStock(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	cartID := uuid.New()
	productID := uuid.New()
	product := &entity.Product{ID: productID, Price: 45000, Stock: 1}
	input := &usecase.AddCartItemInput{ProductID: productID, Quantity: 5}

	fx.cartRepo.EXPECT().FindCartByUser(ctx, userID).Return(&entity.Cart{ID: cartID, UserID: userID}, nil)

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrInsufficientStock, "requested quantity exceeds stock"), func(factory *mockRepo.MockRepositoryFactory) {
		mockCartRepo := mockRepo.NewMockCartRepository(t)
		mockCatalogRepo := mockRepo.NewMockCatalogRepository(t)

		factory.EXPECT().CartRepo().Return(mockCartRepo)
		factory.EXPECT().CatalogRepo().Return(mockCatalogRepo)

		mockCatalogRepo.EXPECT().FindProductByID(ctx, productID).Return(product, nil)
		mockCartRepo.EXPECT().FindCartItem(ctx, cartID, productID).Return(nil, repository.ErrCartItemNotFound)
	})

	cart, err := fx.service.AddItem(ctx, userID, input)

	assert.Error(t, err)
	assert.Nil(t, cart)
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientStock))
}

func TestCartService_AddItem_ReAddIncrementsQuantity(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	cartID := uuid.New()
	productID := uuid.New()
	product := &entity.Product{ID: productID, Price: 52000, Stock: 10}
	input := &usecase.AddCartItemInput{ProductID: productID, Quantity: 3}

	fx.cartRepo.EXPECT().FindCartByUser(ctx, userID).Return(&entity.Cart{ID: cartID, UserID: userID}, nil)

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockCartRepo := mockRepo.NewMockCartRepository(t)
		mockCatalogRepo := mockRepo.NewMockCatalogRepository(t)

		factory.EXPECT().CartRepo().Return(mockCartRepo)
		factory.EXPECT().CatalogRepo().Return(mockCatalogRepo)

		mockCatalogRepo.EXPECT().FindProductByID(ctx, productID).Return(product, nil)

		// Two are already in the cart at an older price snapshot; the
		// re-add stacks quantities and keeps that snapshot.
		existing := &entity.CartItem{CartID: cartID, ProductID: productID, Quantity: 2, Price: 45000, DiscountPrice: 40000}
		mockCartRepo.EXPECT().FindCartItem(ctx, cartID, productID).Return(existing, nil)

		mockCartRepo.EXPECT().
			UpsertCartItem(ctx, mock.AnythingOfType("*entity.CartItem")).
			Run(func(ctx context.Context, item *entity.CartItem) {
				assert.Equal(t, 5, item.Quantity)
				assert.Equal(t, int64(45000), item.Price)
				assert.Equal(t, int64(40000), item.DiscountPrice)
			}).
			Return(nil)

		reloaded := &entity.Cart{
			ID:     cartID,
			UserID: userID,
			Items:  []*entity.CartItem{{ProductID: productID, Quantity: 5, Price: 45000}},
		}
		mockCartRepo.EXPECT().FindCartByID(ctx, cartID).Return(reloaded, nil)
		mockCartRepo.EXPECT().UpdateCart(ctx, mock.AnythingOfType("*entity.Cart")).Return(nil)
	})

	cart, err := fx.service.AddItem(ctx, userID, input)

	require.NoError(t, err)
	assert.Equal(t, int64(225000), cart.TotalPrice)
}

func TestCartService_AddItem_ReAddExceedingStockRejected(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	cartID := uuid.New()
	productID := uuid.New()
	product := &entity.Product{ID: productID, Price: 52000, Stock: 4}
	input := &usecase.AddCartItemInput{ProductID: productID, Quantity: 3}

	fx.cartRepo.EXPECT().FindCartByUser(ctx, userID).Return(&entity.Cart{ID: cartID, UserID: userID}, nil)

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrInsufficientStock, "requested quantity exceeds stock"), func(factory *mockRepo.MockRepositoryFactory) {
		mockCartRepo := mockRepo.NewMockCartRepository(t)
		mockCatalogRepo := mockRepo.NewMockCatalogRepository(t)

		factory.EXPECT().CartRepo().Return(mockCartRepo)
		factory.EXPECT().CatalogRepo().Return(mockCatalogRepo)

		mockCatalogRepo.EXPECT().FindProductByID(ctx, productID).Return(product, nil)

		// The combined quantity, not the increment alone, is checked
		// against the stock.
		existing := &entity.CartItem{CartID: cartID, ProductID: productID, Quantity: 2, Price: 52000}
		mockCartRepo.EXPECT().FindCartItem(ctx, cartID, productID).Return(existing, nil)
	})

	cart, err := fx.service.AddItem(ctx, userID, input)

	assert.Error(t, err)
	assert.Nil(t, cart)
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientStock))
}

func TestCartService_AddItem_ZeroQuantity(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.AddCartItemInput{ProductID: uuid.New(), Quantity: 0}

	cart, err := fx.service.AddItem(ctx, userID, input)

	assert.Error(t, err)
	assert.Nil(t, cart)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestCartService_UpdateItemQuantity_KeepsPriceSnapshot(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	cartID := uuid.New()
	productID := uuid.New()
	input := &usecase.UpdateCartItemInput{ProductID: productID, Quantity: 3}

	fx.cartRepo.EXPECT().FindCartByUser(ctx, userID).Return(&entity.Cart{ID: cartID, UserID: userID}, nil)

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockCartRepo := mockRepo.NewMockCartRepository(t)
		mockCatalogRepo := mockRepo.NewMockCatalogRepository(t)

		factory.EXPECT().CartRepo().Return(mockCartRepo)
		factory.EXPECT().CatalogRepo().Return(mockCatalogRepo)

		// The item keeps the price captured when it was added, even though
		// the live catalog price has moved since.
		existing := &entity.CartItem{CartID: cartID, ProductID: productID, Quantity: 1, Price: 45000, DiscountPrice: 40000}
		mockCartRepo.EXPECT().FindCartItem(ctx, cartID, productID).Return(existing, nil)
		mockCatalogRepo.EXPECT().FindProductByID(ctx, productID).Return(&entity.Product{ID: productID, Price: 99000, Stock: 10}, nil)

		mockCartRepo.EXPECT().
			UpsertCartItem(ctx, mock.AnythingOfType("*entity.CartItem")).
			Run(func(ctx context.Context, item *entity.CartItem) {
				assert.Equal(t, 3, item.Quantity)
				assert.Equal(t, int64(45000), item.Price)
				assert.Equal(t, int64(40000), item.DiscountPrice)
			}).
			Return(nil)

		reloaded := &entity.Cart{
			ID:     cartID,
			UserID: userID,
			Items:  []*entity.CartItem{{ProductID: productID, Quantity: 3, Price: 45000}},
		}
		mockCartRepo.EXPECT().FindCartByID(ctx, cartID).Return(reloaded, nil)
		mockCartRepo.EXPECT().UpdateCart(ctx, mock.AnythingOfType("*entity.Cart")).Return(nil)
	})

	cart, err := fx.service.UpdateItemQuantity(ctx, userID, input)

	require.NoError(t, err)
	assert.Equal(t, int64(135000), cart.TotalPrice)
}

func TestCartService_UpdateItemQuantity_InsufficientStock(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	cartID := uuid.New()
	productID := uuid.New()
	input := &usecase.UpdateCartItemInput{ProductID: productID, Quantity: 8}

	fx.cartRepo.EXPECT().FindCartByUser(ctx, userID).Return(&entity.Cart{ID: cartID, UserID: userID}, nil)

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrInsufficientStock, "requested quantity exceeds stock"), func(factory *mockRepo.MockRepositoryFactory) {
		mockCartRepo := mockRepo.NewMockCartRepository(t)
		mockCatalogRepo := mockRepo.NewMockCatalogRepository(t)

		factory.EXPECT().CartRepo().Return(mockCartRepo)
		factory.EXPECT().CatalogRepo().Return(mockCatalogRepo)

		existing := &entity.CartItem{CartID: cartID, ProductID: productID, Quantity: 1, Price: 45000}
		mockCartRepo.EXPECT().FindCartItem(ctx, cartID, productID).Return(existing, nil)
		mockCatalogRepo.EXPECT().FindProductByID(ctx, productID).Return(&entity.Product{ID: productID, Price: 45000, Stock: 2}, nil)
	})

	cart, err := fx.service.UpdateItemQuantity(ctx, userID, input)

	assert.Error(t, err)
	assert.Nil(t, cart)
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientStock))
}

func TestCartService_UpdateItemQuantity_NotInCart(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	cartID := uuid.New()
	productID := uuid.New()
	input := &usecase.UpdateCartItemInput{ProductID: productID, Quantity: 2}

	fx.cartRepo.EXPECT().FindCartByUser(ctx, userID).Return(&entity.Cart{ID: cartID, UserID: userID}, nil)

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrCartItemNotFound, "product is not in the cart"), func(factory *mockRepo.MockRepositoryFactory) {
		mockCartRepo := mockRepo.NewMockCartRepository(t)
		mockCatalogRepo := mockRepo.NewMockCatalogRepository(t)

		factory.EXPECT().CartRepo().Return(mockCartRepo)
		factory.EXPECT().CatalogRepo().Return(mockCatalogRepo)

		mockCartRepo.EXPECT().FindCartItem(ctx, cartID, productID).Return(nil, repository.ErrCartItemNotFound)
	})

	cart, err := fx.service.UpdateItemQuantity(ctx, userID, input)

	assert.Error(t, err)
	assert.Nil(t, cart)
	assert.True(t, errors.Is(err, domainerrors.ErrCartItemNotFound))
}

func TestCartService_UpdateItemQuantity_ZeroQuantity(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.UpdateCartItemInput{ProductID: uuid.New(), Quantity: 0}

	cart, err := fx.service.UpdateItemQuantity(ctx, userID, input)

	assert.Error(t, err)
	assert.Nil(t, cart)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestCartService_RemoveItem_DropsUncoveredDiscount(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	cartID := uuid.New()
	productID := uuid.New()
	keptProduct := uuid.New()
	discountCodeID := uuid.New()

	fx.cartRepo.EXPECT().FindCartByUser(ctx, userID).Return(&entity.Cart{ID: cartID, UserID: userID}, nil)

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockCartRepo := mockRepo.NewMockCartRepository(t)
		factory.EXPECT().CartRepo().Return(mockCartRepo)

		mockCartRepo.EXPECT().DeleteCartItem(ctx, cartID, productID).Return(nil)

		// After the removal the remaining total no longer covers the
		// staged discount, so the code is dropped.
		reloaded := &entity.Cart{
			ID:             cartID,
			UserID:         userID,
			DiscountPrice:  10000,
			DiscountCodeID: &discountCodeID,
			Items:          []*entity.CartItem{{ProductID: keptProduct, Quantity: 1, Price: 5000}},
		}
		mockCartRepo.EXPECT().FindCartByID(ctx, cartID).Return(reloaded, nil)
		mockCartRepo.EXPECT().UpdateCart(ctx, mock.AnythingOfType("*entity.Cart")).Return(nil)
	})

	cart, err := fx.service.RemoveItem(ctx, userID, productID)

	require.NoError(t, err)
	assert.Equal(t, int64(5000), cart.TotalPrice)
	assert.Equal(t, int64(0), cart.DiscountPrice)
	assert.Nil(t, cart.DiscountCodeID)
}

func TestCartService_RemoveItem_NotInCart(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	cartID := uuid.New()
	productID := uuid.New()

	fx.cartRepo.EXPECT().FindCartByUser(ctx, userID).Return(&entity.Cart{ID: cartID, UserID: userID}, nil)

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrCartItemNotFound, "product is not in the cart"), func(factory *mockRepo.MockRepositoryFactory) {
		mockCartRepo := mockRepo.NewMockCartRepository(t)
		factory.EXPECT().CartRepo().Return(mockCartRepo)
		mockCartRepo.EXPECT().DeleteCartItem(ctx, cartID, productID).Return(repository.ErrCartItemNotFound)
	})

	cart, err := fx.service.RemoveItem(ctx, userID, productID)

	assert.Error(t, err)
	assert.Nil(t, cart)
	assert.True(t, errors.Is(err, domainerrors.ErrCartItemNotFound))
}

func TestCartService_ClearCart_Success(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()
	cartID := uuid.New()

	fx.cartRepo.EXPECT().FindCartByUser(ctx, userID).Return(&entity.Cart{ID: cartID, UserID: userID}, nil)
	fx.cartRepo.EXPECT().DeleteCart(ctx, cartID).Return(nil)

	err := fx.service.ClearCart(ctx, userID)

	assert.NoError(t, err)
}

func TestCartService_ClearCart_NoCartIsNoop(t *testing.T) {
	fx := createTestCartService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.cartRepo.EXPECT().FindCartByUser(ctx, userID).Return(nil, repository.ErrCartNotFound)

	err := fx.service.ClearCart(ctx, userID)

	assert.NoError(t, err)
}
