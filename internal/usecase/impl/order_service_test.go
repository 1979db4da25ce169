package impl

import (
	"context"
	"testing"

	"bookstore/internal/domain/entity"
	domainerrors "bookstore/internal/domain/errors"
	"bookstore/internal/domain/repository"
	"bookstore/internal/domain/service"
	mockRepo "bookstore/internal/mocks/repository"
	mockService "bookstore/internal/mocks/service"
	"bookstore/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// orderServiceFixtures holds all test dependencies for order service tests.
type orderServiceFixtures struct {
	txFixture
	service        usecase.OrderUsecase
	orderRepo      *mockRepo.MockOrderRepository
	eventPublisher *mockService.MockEventPublisher
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	eventPublisher := mockService.NewMockEventPublisher(t)

	service := NewOrderService(OrderServiceParams{
		TxManager:      txManager,
		OrderRepo:      orderRepo,
		EventPublisher: eventPublisher,
		Logger:         newDiscardLogger(),
	})

	return orderServiceFixtures{
		txFixture:      txFixture{t: t, txManager: txManager},
		service:        service,
		orderRepo:      orderRepo,
		eventPublisher: eventPublisher,
	}
}

func TestOrderService_Checkout_Success(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	cartID := uuid.New()
	addressID := uuid.New()
	productID := uuid.New()
	discountID := uuid.New()

	cart := &entity.Cart{
		ID:             cartID,
		UserID:         userID,
		TotalPrice:     100000,
		DiscountPrice:  10000,
		DiscountCodeID: &discountID,
		Items: []*entity.CartItem{
			{ProductID: productID, Quantity: 2, Price: 50000, DiscountPrice: 50000},
		},
	}
	address := &entity.Address{ID: addressID, UserID: userID}
	product := &entity.Product{ID: productID, Slug: "the-go-programming-language", Name: "The Go Programming Language"}
	discount := redeemableDiscount()
	discount.ID = discountID

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockCartRepo := mockRepo.NewMockCartRepository(t)
		mockCatalogRepo := mockRepo.NewMockCatalogRepository(t)
		mockAddressRepo := mockRepo.NewMockAddressRepository(t)
		mockDiscountRepo := mockRepo.NewMockDiscountRepository(t)
		mockOrderRepo := mockRepo.NewMockOrderRepository(t)

		factory.EXPECT().CartRepo().Return(mockCartRepo)
		factory.EXPECT().CatalogRepo().Return(mockCatalogRepo)
		factory.EXPECT().AddressRepo().Return(mockAddressRepo)
		factory.EXPECT().DiscountRepo().Return(mockDiscountRepo)
		factory.EXPECT().OrderRepo().Return(mockOrderRepo)

		mockCartRepo.EXPECT().FindCartByUser(ctx, userID).Return(cart, nil)
		mockAddressRepo.EXPECT().FindAddressByID(ctx, addressID).Return(address, nil)
		mockCatalogRepo.EXPECT().AdjustProductStock(ctx, productID, -2).Return(nil)
		mockCatalogRepo.EXPECT().FindProductByID(ctx, productID).Return(product, nil)
		mockDiscountRepo.EXPECT().FindDiscountByID(ctx, discountID).Return(discount, nil)
		mockDiscountRepo.EXPECT().
			CreateUsage(ctx, mock.AnythingOfType("*entity.DiscountUsage")).
			Run(func(ctx context.Context, usage *entity.DiscountUsage) {
				assert.Equal(t, userID, usage.UserID)
				assert.Equal(t, discountID, usage.DiscountCodeID)
				assert.False(t, usage.UsedAt.IsZero())
			}).
			Return(nil)
		mockOrderRepo.EXPECT().CreateOrder(ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
		mockCartRepo.EXPECT().DeleteCart(ctx, cartID).Return(nil)
	})

	fx.eventPublisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Run(func(ctx context.Context, event *service.OrderEvent) {
			assert.Equal(t, service.OrderEventCreated, event.EventType)
			assert.Equal(t, "pending", event.Status)
		}).
		Return(nil)

	order, err := fx.service.Checkout(ctx, userID, &usecase.CheckoutInput{AddressID: addressID})

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, int64(100000), order.TotalPrice)
	assert.Equal(t, int64(10000), order.DiscountPrice)
	require.Len(t, order.Items, 1)
	// Title and SKU are frozen copies of the product at checkout time.
	assert.Equal(t, "The Go Programming Language", order.Items[0].ProductTitle)
	assert.Equal(t, "the-go-programming-language", order.Items[0].ProductSKU)
	assert.Equal(t, int64(50000), order.Items[0].Price)
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrCartEmpty, "cart is empty"), func(factory *mockRepo.MockRepositoryFactory) {
		mockCartRepo := mockRepo.NewMockCartRepository(t)
		mockCatalogRepo := mockRepo.NewMockCatalogRepository(t)
		mockAddressRepo := mockRepo.NewMockAddressRepository(t)
		mockDiscountRepo := mockRepo.NewMockDiscountRepository(t)
		mockOrderRepo := mockRepo.NewMockOrderRepository(t)

		factory.EXPECT().CartRepo().Return(mockCartRepo)
		factory.EXPECT().CatalogRepo().Return(mockCatalogRepo)
		factory.EXPECT().AddressRepo().Return(mockAddressRepo)
		factory.EXPECT().DiscountRepo().Return(mockDiscountRepo)
		factory.EXPECT().OrderRepo().Return(mockOrderRepo)

		mockCartRepo.EXPECT().FindCartByUser(ctx, userID).Return(nil, repository.ErrCartNotFound)
	})

	order, err := fx.service.Checkout(ctx, userID, &usecase.CheckoutInput{AddressID: uuid.New()})

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrCartEmpty))
}

func TestOrderService_Checkout_ForeignAddress(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	addressID := uuid.New()
	cart := &entity.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items:  []*entity.CartItem{{ProductID: uuid.New(), Quantity: 1, Price: 10000}},
	}
	foreignAddress := &entity.Address{ID: addressID, UserID: uuid.New()}

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrAddressOwnershipViolation, "address belongs to another user"), func(factory *mockRepo.MockRepositoryFactory) {
		mockCartRepo := mockRepo.NewMockCartRepository(t)
		mockCatalogRepo := mockRepo.NewMockCatalogRepository(t)
		mockAddressRepo := mockRepo.NewMockAddressRepository(t)
		mockDiscountRepo := mockRepo.NewMockDiscountRepository(t)
		mockOrderRepo := mockRepo.NewMockOrderRepository(t)

		factory.EXPECT().CartRepo().Return(mockCartRepo)
		factory.EXPECT().CatalogRepo().Return(mockCatalogRepo)
		factory.EXPECT().AddressRepo().Return(mockAddressRepo)
		factory.EXPECT().DiscountRepo().Return(mockDiscountRepo)
		factory.EXPECT().OrderRepo().Return(mockOrderRepo)

		mockCartRepo.EXPECT().FindCartByUser(ctx, userID).Return(cart, nil)
		mockAddressRepo.EXPECT().FindAddressByID(ctx, addressID).Return(foreignAddress, nil)
	})

	order, err := fx.service.Checkout(ctx, userID, &usecase.CheckoutInput{AddressID: addressID})

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrAddressOwnershipViolation))
}

func TestOrderService_Checkout_InsufficientStock(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	addressID := uuid.New()
	productID := uuid.New()
	cart := &entity.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items:  []*entity.CartItem{{ProductID: productID, Quantity: 5, Price: 10000}},
	}
	address := &entity.Address{ID: addressID, UserID: userID}

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrInsufficientStock, "out of stock"), func(factory *mockRepo.MockRepositoryFactory) {
		mockCartRepo := mockRepo.NewMockCartRepository(t)
		mockCatalogRepo := mockRepo.NewMockCatalogRepository(t)
		mockAddressRepo := mockRepo.NewMockAddressRepository(t)
		mockDiscountRepo := mockRepo.NewMockDiscountRepository(t)
		mockOrderRepo := mockRepo.NewMockOrderRepository(t)

		factory.EXPECT().CartRepo().Return(mockCartRepo)
		factory.EXPECT().CatalogRepo().Return(mockCatalogRepo)
		factory.EXPECT().AddressRepo().Return(mockAddressRepo)
		factory.EXPECT().DiscountRepo().Return(mockDiscountRepo)
		factory.EXPECT().OrderRepo().Return(mockOrderRepo)

		mockCartRepo.EXPECT().FindCartByUser(ctx, userID).Return(cart, nil)
		mockAddressRepo.EXPECT().FindAddressByID(ctx, addressID).Return(address, nil)
		// The guarded decrement loses against concurrent checkouts.
		mockCatalogRepo.EXPECT().AdjustProductStock(ctx, productID, -5).Return(repository.ErrStockExhausted)
	})

	order, err := fx.service.Checkout(ctx, userID, &usecase.CheckoutInput{AddressID: addressID})

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientStock))
}

func TestOrderService_Checkout_DiscountAlreadyRedeemed(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	addressID := uuid.New()
	productID := uuid.New()
	discountID := uuid.New()
	cart := &entity.Cart{
		ID:             uuid.New(),
		UserID:         userID,
		TotalPrice:     100000,
		DiscountPrice:  10000,
		DiscountCodeID: &discountID,
		Items:          []*entity.CartItem{{ProductID: productID, Quantity: 1, Price: 100000}},
	}
	address := &entity.Address{ID: addressID, UserID: userID}
	product := &entity.Product{ID: productID, Slug: "book", Name: "Book"}
	discount := redeemableDiscount()
	discount.ID = discountID

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrDiscountAlreadyUsed, "applied code was already redeemed"), func(factory *mockRepo.MockRepositoryFactory) {
		mockCartRepo := mockRepo.NewMockCartRepository(t)
		mockCatalogRepo := mockRepo.NewMockCatalogRepository(t)
		mockAddressRepo := mockRepo.NewMockAddressRepository(t)
		mockDiscountRepo := mockRepo.NewMockDiscountRepository(t)
		mockOrderRepo := mockRepo.NewMockOrderRepository(t)

		factory.EXPECT().CartRepo().Return(mockCartRepo)
		factory.EXPECT().CatalogRepo().Return(mockCatalogRepo)
		factory.EXPECT().AddressRepo().Return(mockAddressRepo)
		factory.EXPECT().DiscountRepo().Return(mockDiscountRepo)
		factory.EXPECT().OrderRepo().Return(mockOrderRepo)

		mockCartRepo.EXPECT().FindCartByUser(ctx, userID).Return(cart, nil)
		mockAddressRepo.EXPECT().FindAddressByID(ctx, addressID).Return(address, nil)
		mockCatalogRepo.EXPECT().AdjustProductStock(ctx, productID, -1).Return(nil)
		mockCatalogRepo.EXPECT().FindProductByID(ctx, productID).Return(product, nil)
		mockDiscountRepo.EXPECT().FindDiscountByID(ctx, discountID).Return(discount, nil)
		// A concurrent checkout already wrote the usage row; the unique
		// constraint rejects the second redemption.
		mockDiscountRepo.EXPECT().
			CreateUsage(ctx, mock.AnythingOfType("*entity.DiscountUsage")).
			Return(repository.ErrDiscountUsageExists)
	})

	order, err := fx.service.Checkout(ctx, userID, &usecase.CheckoutInput{AddressID: addressID})

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrDiscountAlreadyUsed))
}

func TestOrderService_GetOrder_ForeignOrderReadsAsNotFound(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()
	foreignOrder := &entity.Order{ID: orderID, UserID: uuid.New(), Status: entity.OrderStatusPending}

	fx.orderRepo.EXPECT().FindOrderByID(ctx, orderID).Return(foreignOrder, nil)

	order, err := fx.service.GetOrder(ctx, userID, orderID)

	assert.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
}

func TestOrderService_ListMyOrders_Success(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	orders := []*entity.Order{{ID: uuid.New(), UserID: userID}}

	fx.orderRepo.EXPECT().
		ListOrders(ctx, mock.MatchedBy(func(filter repository.OrderFilter) bool {
			return filter.UserID != nil && *filter.UserID == userID && filter.Limit == defaultOrderPageSize
		})).
		Return(orders, int64(1), nil)

	out, err := fx.service.ListMyOrders(ctx, userID, 0, 0)

	require.NoError(t, err)
	assert.Equal(t, orders, out.Orders)
	assert.Equal(t, int64(1), out.Total)
}

func TestOrderService_CancelOrder_RestoresStock(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()
	productID := uuid.New()
	order := &entity.Order{
		ID:     orderID,
		UserID: userID,
		Status: entity.OrderStatusPaid,
		Items:  []*entity.OrderItem{{ProductID: productID, Quantity: 3}},
	}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockOrderRepo := mockRepo.NewMockOrderRepository(t)
		mockCatalogRepo := mockRepo.NewMockCatalogRepository(t)

		factory.EXPECT().OrderRepo().Return(mockOrderRepo)
		factory.EXPECT().CatalogRepo().Return(mockCatalogRepo)

		mockOrderRepo.EXPECT().FindOrderByID(ctx, orderID).Return(order, nil)
		mockOrderRepo.EXPECT().
			UpdateOrderStatus(ctx, orderID, entity.OrderStatusPaid, entity.OrderStatusCanceled).
			Return(nil)
		mockCatalogRepo.EXPECT().AdjustProductStock(ctx, productID, 3).Return(nil)
	})

	fx.eventPublisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Run(func(ctx context.Context, event *service.OrderEvent) {
			assert.Equal(t, service.OrderEventStatusChanged, event.EventType)
			assert.Equal(t, "canceled", event.Status)
			assert.Equal(t, "paid", event.FromStatus)
		}).
		Return(nil)

	canceled, err := fx.service.CancelOrder(ctx, userID, orderID)

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCanceled, canceled.Status)
}

func TestOrderService_CancelOrder_ShippedOrderRejected(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()
	order := &entity.Order{ID: orderID, UserID: userID, Status: entity.OrderStatusShipped}

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrOrderStatusTransition, "order in status shipped cannot be canceled"), func(factory *mockRepo.MockRepositoryFactory) {
		mockOrderRepo := mockRepo.NewMockOrderRepository(t)
		mockCatalogRepo := mockRepo.NewMockCatalogRepository(t)

		factory.EXPECT().OrderRepo().Return(mockOrderRepo)
		factory.EXPECT().CatalogRepo().Return(mockCatalogRepo)

		mockOrderRepo.EXPECT().FindOrderByID(ctx, orderID).Return(order, nil)
	})

	canceled, err := fx.service.CancelOrder(ctx, userID, orderID)

	assert.Error(t, err)
	assert.Nil(t, canceled)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderStatusTransition))
}

func TestOrderService_UpdateOrderStatus_SkippedStepRejected(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	order := &entity.Order{ID: orderID, UserID: uuid.New(), Status: entity.OrderStatusPending}

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrOrderStatusTransition, "cannot move order from pending to shipped"), func(factory *mockRepo.MockRepositoryFactory) {
		mockOrderRepo := mockRepo.NewMockOrderRepository(t)
		mockCatalogRepo := mockRepo.NewMockCatalogRepository(t)

		factory.EXPECT().OrderRepo().Return(mockOrderRepo)
		factory.EXPECT().CatalogRepo().Return(mockCatalogRepo)

		mockOrderRepo.EXPECT().FindOrderByID(ctx, orderID).Return(order, nil)
	})

	updated, err := fx.service.UpdateOrderStatus(ctx, orderID, &usecase.UpdateOrderStatusInput{Status: entity.OrderStatusShipped})

	assert.Error(t, err)
	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderStatusTransition))
}

func TestOrderService_UpdateOrderStatus_ConcurrentChange(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	order := &entity.Order{ID: orderID, UserID: uuid.New(), Status: entity.OrderStatusPaid}

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrOrderStatusTransition, "order status changed concurrently"), func(factory *mockRepo.MockRepositoryFactory) {
		mockOrderRepo := mockRepo.NewMockOrderRepository(t)
		mockCatalogRepo := mockRepo.NewMockCatalogRepository(t)

		factory.EXPECT().OrderRepo().Return(mockOrderRepo)
		factory.EXPECT().CatalogRepo().Return(mockCatalogRepo)

		mockOrderRepo.EXPECT().FindOrderByID(ctx, orderID).Return(order, nil)
		mockOrderRepo.EXPECT().
			UpdateOrderStatus(ctx, orderID, entity.OrderStatusPaid, entity.OrderStatusProcessing).
			Return(repository.ErrOrderStatusStale)
	})

	updated, err := fx.service.UpdateOrderStatus(ctx, orderID, &usecase.UpdateOrderStatusInput{Status: entity.OrderStatusProcessing})

	assert.Error(t, err)
	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderStatusTransition))
}

func TestOrderService_UpdateOrderStatus_UnknownStatus(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()

	updated, err := fx.service.UpdateOrderStatus(ctx, uuid.New(), &usecase.UpdateOrderStatusInput{Status: "refunded"})

	assert.Error(t, err)
	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestOrderService_ShipOrder_Success(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	order := &entity.Order{ID: orderID, UserID: uuid.New(), Status: entity.OrderStatusProcessing}
	input := &usecase.ShipOrderInput{CompanyName: "Post", TrackingCode: "TRACK-123"}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockOrderRepo := mockRepo.NewMockOrderRepository(t)
		factory.EXPECT().OrderRepo().Return(mockOrderRepo)

		mockOrderRepo.EXPECT().FindOrderByID(ctx, orderID).Return(order, nil)
		mockOrderRepo.EXPECT().
			CreateTransport(ctx, orderID, mock.AnythingOfType("*entity.Transport")).
			Run(func(ctx context.Context, orderID uuid.UUID, transport *entity.Transport) {
				assert.Equal(t, "Post", transport.CompanyName)
				assert.Equal(t, "TRACK-123", transport.TrackingCode)
			}).
			Return(nil)
		mockOrderRepo.EXPECT().
			UpdateOrderStatus(ctx, orderID, entity.OrderStatusProcessing, entity.OrderStatusShipped).
			Return(nil)
	})

	fx.eventPublisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)

	shipped, err := fx.service.ShipOrder(ctx, orderID, input)

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, shipped.Status)
	require.NotNil(t, shipped.Transport)
	assert.Equal(t, "TRACK-123", shipped.Transport.TrackingCode)
}

func TestOrderService_ShipOrder_NotProcessing(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()
	order := &entity.Order{ID: orderID, UserID: uuid.New(), Status: entity.OrderStatusPending}

	fx.onExecute(ctx, errors.Wrap(domainerrors.ErrOrderStatusTransition, "only processing orders can ship"), func(factory *mockRepo.MockRepositoryFactory) {
		mockOrderRepo := mockRepo.NewMockOrderRepository(t)
		factory.EXPECT().OrderRepo().Return(mockOrderRepo)
		mockOrderRepo.EXPECT().FindOrderByID(ctx, orderID).Return(order, nil)
	})

	shipped, err := fx.service.ShipOrder(ctx, orderID, &usecase.ShipOrderInput{CompanyName: "Post"})

	assert.Error(t, err)
	assert.Nil(t, shipped)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderStatusTransition))
}

func TestOrderService_ListOrders_UnknownStatus(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()

	out, err := fx.service.ListOrders(ctx, &usecase.ListOrdersInput{Status: "refunded"})

	assert.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestOrderService_Checkout_PublishFailureIsSwallowed(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	cartID := uuid.New()
	addressID := uuid.New()
	productID := uuid.New()
	cart := &entity.Cart{
		ID:         cartID,
		UserID:     userID,
		TotalPrice: 10000,
		Items:      []*entity.CartItem{{ProductID: productID, Quantity: 1, Price: 10000}},
	}
	address := &entity.Address{ID: addressID, UserID: userID}
	product := &entity.Product{ID: productID, Slug: "book", Name: "Book"}

	fx.onExecute(ctx, nil, func(factory *mockRepo.MockRepositoryFactory) {
		mockCartRepo := mockRepo.NewMockCartRepository(t)
		mockCatalogRepo := mockRepo.NewMockCatalogRepository(t)
		mockAddressRepo := mockRepo.NewMockAddressRepository(t)
		mockDiscountRepo := mockRepo.NewMockDiscountRepository(t)
		mockOrderRepo := mockRepo.NewMockOrderRepository(t)

		factory.EXPECT().CartRepo().Return(mockCartRepo)
		factory.EXPECT().CatalogRepo().Return(mockCatalogRepo)
		factory.EXPECT().AddressRepo().Return(mockAddressRepo)
		factory.EXPECT().DiscountRepo().Return(mockDiscountRepo)
		factory.EXPECT().OrderRepo().Return(mockOrderRepo)

		mockCartRepo.EXPECT().FindCartByUser(ctx, userID).Return(cart, nil)
		mockAddressRepo.EXPECT().FindAddressByID(ctx, addressID).Return(address, nil)
		mockCatalogRepo.EXPECT().AdjustProductStock(ctx, productID, -1).Return(nil)
		mockCatalogRepo.EXPECT().FindProductByID(ctx, productID).Return(product, nil)
		mockOrderRepo.EXPECT().CreateOrder(ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
		mockCartRepo.EXPECT().DeleteCart(ctx, cartID).Return(nil)
	})

	// The order is already durable; a broken broker must not fail the checkout.
	fx.eventPublisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		Return(errors.New("broker unavailable"))

	order, err := fx.service.Checkout(ctx, userID, &usecase.CheckoutInput{AddressID: addressID})

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
}
