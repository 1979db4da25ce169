package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "bookstore/internal/delivery/context"
	"bookstore/internal/domain/entity"
	domainerrors "bookstore/internal/domain/errors"
	"bookstore/internal/domain/repository"
	"bookstore/internal/domain/service"
	"bookstore/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultOrderPageSize = 20

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager      repository.TransactionManager
	orderRepo      repository.OrderRepository
	eventPublisher service.EventPublisher
	logger         *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	OrderRepo      repository.OrderRepository
	EventPublisher service.EventPublisher
	Logger         *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:      params.TxManager,
		orderRepo:      params.OrderRepo,
		eventPublisher: params.EventPublisher,
		logger:         params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Checkout converts the caller's cart into a pending order in one
// transaction: item and price snapshots are copied, stock is decremented
// through the guarded adjustment, an applied discount is redeemed, and the
// cart is deleted. An order.created event goes out after the commit.
func (srv *orderService) Checkout(ctx context.Context, userID uuid.UUID, input *usecase.CheckoutInput) (*entity.Order, error) {
	var order *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.CartRepo()
		catalogRepo := repoFactory.CatalogRepo()
		addressRepo := repoFactory.AddressRepo()
		discountRepo := repoFactory.DiscountRepo()
		orderRepo := repoFactory.OrderRepo()

		cart, err := cartRepo.FindCartByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrCartNotFound) {
				return errors.Wrap(domainerrors.ErrCartEmpty, "cart is empty")
			}

			return errors.Wrap(err, "failed to load cart")
		}
		if len(cart.Items) == 0 {
			return errors.Wrap(domainerrors.ErrCartEmpty, "cart is empty")
		}

		address, err := addressRepo.FindAddressByID(ctx, input.AddressID)
		if err != nil {
			if errors.Is(err, repository.ErrAddressNotFound) {
				return errors.Wrap(domainerrors.ErrAddressNotFound, "address not found")
			}

			return errors.Wrap(err, "failed to load address")
		}
		if address.UserID != userID {
			return errors.Wrap(domainerrors.ErrAddressOwnershipViolation, "address belongs to another user")
		}

		order = &entity.Order{
			UserID:        userID,
			TotalPrice:    cart.TotalPrice,
			DiscountPrice: cart.DiscountPrice,
			Status:        entity.OrderStatusPending,
			Items:         make([]*entity.OrderItem, 0, len(cart.Items)),
		}

		for _, item := range cart.Items {
			if err := catalogRepo.AdjustProductStock(ctx, item.ProductID, -item.Quantity); err != nil {
				if errors.Is(err, repository.ErrStockExhausted) {
					return errors.Wrapf(domainerrors.ErrInsufficientStock, "product %s is out of stock", item.ProductID)
				}
				if errors.Is(err, repository.ErrProductNotFound) {
					return errors.Wrapf(domainerrors.ErrProductNotFound, "product %s no longer exists", item.ProductID)
				}

				return errors.Wrap(err, "failed to reserve stock")
			}

			product, err := catalogRepo.FindProductByID(ctx, item.ProductID)
			if err != nil {
				return errors.Wrap(err, "failed to load product snapshot")
			}

			order.Items = append(order.Items, &entity.OrderItem{
				ProductID:     item.ProductID,
				ProductTitle:  product.Name,
				ProductSKU:    product.Slug,
				Quantity:      item.Quantity,
				Price:         item.Price,
				DiscountPrice: item.DiscountPrice,
			})
		}

		if cart.DiscountCodeID != nil {
			discount, err := discountRepo.FindDiscountByID(ctx, *cart.DiscountCodeID)
			if err != nil {
				if errors.Is(err, repository.ErrDiscountNotFound) {
					return errors.Wrap(domainerrors.ErrDiscountNotRedeemable, "applied code no longer exists")
				}

				return errors.Wrap(err, "failed to load applied discount")
			}
			if !discount.RedeemableAt(time.Now()) {
				return errors.Wrap(domainerrors.ErrDiscountNotRedeemable, "applied code is no longer redeemable")
			}

			usage := &entity.DiscountUsage{
				UserID:         userID,
				DiscountCodeID: discount.ID,
				UsedAt:         time.Now(),
			}
			if err := discountRepo.CreateUsage(ctx, usage); err != nil {
				if errors.Is(err, repository.ErrDiscountUsageExists) {
					return errors.Wrap(domainerrors.ErrDiscountAlreadyUsed, "applied code was already redeemed")
				}

				return errors.Wrap(err, "failed to record discount usage")
			}
		}

		if err := orderRepo.CreateOrder(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		if err := cartRepo.DeleteCart(ctx, cart.ID); err != nil {
			return errors.Wrap(err, "failed to delete cart")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute checkout transaction", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute checkout transaction")
	}

	srv.publishOrderEvent(ctx, order, service.OrderEventCreated, "")

	return order, nil
}

// GetOrder returns one of the caller's orders. Someone else's order reads as
// not found rather than forbidden, so order IDs cannot be probed.
func (srv *orderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.loadOrder(ctx, srv.orderRepo, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
	}

	return order, nil
}

// ListMyOrders returns a page of the caller's orders, newest first.
func (srv *orderService) ListMyOrders(ctx context.Context, userID uuid.UUID, offset, limit int) (*usecase.OrderListOutput, error) {
	if limit <= 0 {
		limit = defaultOrderPageSize
	}
	if offset < 0 {
		offset = 0
	}

	orders, total, err := srv.orderRepo.ListOrders(ctx, repository.OrderFilter{
		UserID: &userID,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return &usecase.OrderListOutput{Orders: orders, Total: total}, nil
}

// CancelOrder is the customer-facing cancellation. It is legal for orders
// that have not shipped yet and returns the reserved stock.
func (srv *orderService) CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error) {
	var canceled *entity.Order
	var fromStatus entity.OrderStatus
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()
		catalogRepo := repoFactory.CatalogRepo()

		order, err := srv.loadOrder(ctx, orderRepo, orderID)
		if err != nil {
			return err
		}
		if order.UserID != userID {
			return errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
		}
		if !order.Status.CanTransitionTo(entity.OrderStatusCanceled) {
			return errors.Wrapf(domainerrors.ErrOrderStatusTransition, "order in status %s cannot be canceled", order.Status)
		}

		if err := orderRepo.UpdateOrderStatus(ctx, order.ID, order.Status, entity.OrderStatusCanceled); err != nil {
			if errors.Is(err, repository.ErrOrderStatusStale) {
				return errors.Wrap(domainerrors.ErrOrderStatusTransition, "order status changed concurrently")
			}

			return errors.Wrap(err, "failed to update order status")
		}

		for _, item := range order.Items {
			if err := catalogRepo.AdjustProductStock(ctx, item.ProductID, item.Quantity); err != nil {
				// A product removed from the catalog after purchase has no
				// stock row to restore.
				if errors.Is(err, repository.ErrProductNotFound) {
					continue
				}

				return errors.Wrap(err, "failed to restore stock")
			}
		}

		fromStatus = order.Status
		order.Status = entity.OrderStatusCanceled
		canceled = order

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute cancel order transaction", slog.Any("orderID", orderID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute cancel order transaction")
	}

	srv.publishOrderEvent(ctx, canceled, service.OrderEventStatusChanged, fromStatus)

	return canceled, nil
}

// ListOrders returns a page of orders matching the filter. Admin only.
func (srv *orderService) ListOrders(ctx context.Context, input *usecase.ListOrdersInput) (*usecase.OrderListOutput, error) {
	if input.Status != "" && !input.Status.Valid() {
		return nil, errors.Wrapf(domainerrors.ErrValidationFailed, "unknown order status %q", input.Status)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultOrderPageSize
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	orders, total, err := srv.orderRepo.ListOrders(ctx, repository.OrderFilter{
		UserID: input.UserID,
		Status: input.Status,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return &usecase.OrderListOutput{Orders: orders, Total: total}, nil
}

// UpdateOrderStatus moves an order one step through its lifecycle. Admin
// cancellation passes through here and restores stock like CancelOrder does.
func (srv *orderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, input *usecase.UpdateOrderStatusInput) (*entity.Order, error) {
	if !input.Status.Valid() {
		return nil, errors.Wrapf(domainerrors.ErrValidationFailed, "unknown order status %q", input.Status)
	}

	var updated *entity.Order
	var fromStatus entity.OrderStatus
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()
		catalogRepo := repoFactory.CatalogRepo()

		order, err := srv.loadOrder(ctx, orderRepo, orderID)
		if err != nil {
			return err
		}
		if !order.Status.CanTransitionTo(input.Status) {
			return errors.Wrapf(domainerrors.ErrOrderStatusTransition, "cannot move order from %s to %s", order.Status, input.Status)
		}

		if err := orderRepo.UpdateOrderStatus(ctx, order.ID, order.Status, input.Status); err != nil {
			if errors.Is(err, repository.ErrOrderStatusStale) {
				return errors.Wrap(domainerrors.ErrOrderStatusTransition, "order status changed concurrently")
			}

			return errors.Wrap(err, "failed to update order status")
		}

		if input.Status == entity.OrderStatusCanceled {
			for _, item := range order.Items {
				if err := catalogRepo.AdjustProductStock(ctx, item.ProductID, item.Quantity); err != nil {
					if errors.Is(err, repository.ErrProductNotFound) {
						continue
					}

					return errors.Wrap(err, "failed to restore stock")
				}
			}
		}

		fromStatus = order.Status
		order.Status = input.Status
		updated = order

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute update order status transaction", slog.Any("orderID", orderID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute update order status transaction")
	}

	srv.publishOrderEvent(ctx, updated, service.OrderEventStatusChanged, fromStatus)

	return updated, nil
}

// ShipOrder records the shipment and moves the order from processing to
// shipped in the same transaction.
func (srv *orderService) ShipOrder(ctx context.Context, orderID uuid.UUID, input *usecase.ShipOrderInput) (*entity.Order, error) {
	var shipped *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, err := srv.loadOrder(ctx, orderRepo, orderID)
		if err != nil {
			return err
		}
		if order.Status != entity.OrderStatusProcessing {
			return errors.Wrapf(domainerrors.ErrOrderStatusTransition, "only processing orders can ship, order is %s", order.Status)
		}

		transport := &entity.Transport{
			CompanyName:  input.CompanyName,
			TrackingCode: input.TrackingCode,
			SendDate:     input.SendDate,
		}
		if err := orderRepo.CreateTransport(ctx, order.ID, transport); err != nil {
			return errors.Wrap(err, "failed to create transport record")
		}

		if err := orderRepo.UpdateOrderStatus(ctx, order.ID, entity.OrderStatusProcessing, entity.OrderStatusShipped); err != nil {
			if errors.Is(err, repository.ErrOrderStatusStale) {
				return errors.Wrap(domainerrors.ErrOrderStatusTransition, "order status changed concurrently")
			}

			return errors.Wrap(err, "failed to update order status")
		}

		order.Status = entity.OrderStatusShipped
		order.TransportID = &transport.ID
		order.Transport = transport
		shipped = order

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute ship order transaction", slog.Any("orderID", orderID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute ship order transaction")
	}

	srv.publishOrderEvent(ctx, shipped, service.OrderEventStatusChanged, entity.OrderStatusProcessing)

	return shipped, nil
}

func (srv *orderService) loadOrder(ctx context.Context, orderRepo repository.OrderRepository, orderID uuid.UUID) (*entity.Order, error) {
	order, err := orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// publishOrderEvent emits an event after a committed state change. A publish
// failure is logged and swallowed; the order itself is already durable.
func (srv *orderService) publishOrderEvent(ctx context.Context, order *entity.Order, eventType string, fromStatus entity.OrderStatus) {
	event := &service.OrderEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		EventType:  eventType,
		OrderID:    order.ID.String(),
		UserID:     order.UserID.String(),
		Status:     string(order.Status),
		FromStatus: string(fromStatus),
		TotalPrice: order.TotalPrice,
		OccurredAt: time.Now(),
	}
	if err := srv.eventPublisher.PublishOrderEvent(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish order event",
			slog.String("eventType", eventType),
			slog.String("orderID", event.OrderID),
			slog.Any("error", err))
	}
}
