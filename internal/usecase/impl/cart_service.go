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

// cartService implements the CartUsecase interface.
type cartService struct {
	txManager repository.TransactionManager
	cartRepo  repository.CartRepository
	logger    *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	CartRepo  repository.CartRepository
	Logger    *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		txManager: params.TxManager,
		cartRepo:  params.CartRepo,
		logger:    params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetCart returns the user's cart, creating an empty one on first access.
func (srv *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	cart, err := srv.cartRepo.FindCartByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repository.ErrCartNotFound) {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	newCart := &entity.Cart{UserID: userID}
	if err := srv.cartRepo.CreateCart(ctx, newCart); err != nil {
		// A concurrent first access may have created it; reload.
		if existing, findErr := srv.cartRepo.FindCartByUser(ctx, userID); findErr == nil {
			return existing, nil
		}

		return nil, errors.Wrap(err, "failed to create cart")
	}

	return newCart, nil
}

// AddItem puts a product in the cart with a price snapshot taken from the
// live catalog. Re-adding a product adds to its quantity and keeps the
// snapshot taken when it first entered the cart.
func (srv *cartService) AddItem(ctx context.Context, userID uuid.UUID, input *usecase.AddCartItemInput) (*entity.Cart, error) {
	if input.Quantity < 1 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "quantity must be at least 1")
	}

	cart, err := srv.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	var updatedCart *entity.Cart
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.CartRepo()
		catalogRepo := repoFactory.CatalogRepo()

		product, err := catalogRepo.FindProductByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to load product")
		}

		item := &entity.CartItem{
			CartID:        cart.ID,
			ProductID:     product.ID,
			Quantity:      input.Quantity,
			Price:         product.Price,
			DiscountPrice: product.EffectivePrice(),
		}
		existing, err := cartRepo.FindCartItem(ctx, cart.ID, input.ProductID)
		if err == nil {
			item.Quantity += existing.Quantity
			item.Price = existing.Price
			item.DiscountPrice = existing.DiscountPrice
		} else if !errors.Is(err, repository.ErrCartItemNotFound) {
			return errors.Wrap(err, "failed to load cart item")
		}

		if product.Stock < item.Quantity {
			return errors.Wrap(domainerrors.ErrInsufficientStock, "requested quantity exceeds stock")
		}

		if err := cartRepo.UpsertCartItem(ctx, item); err != nil {
			return errors.Wrap(err, "failed to upsert cart item")
		}

		return srv.refreshCartTotals(ctx, cartRepo, cart.ID, &updatedCart)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute add item transaction", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute add item transaction")
	}

	return updatedCart, nil
}

// UpdateItemQuantity changes the quantity of a product already in the cart.
// The price snapshot taken when the item was added is kept untouched.
func (srv *cartService) UpdateItemQuantity(ctx context.Context, userID uuid.UUID, input *usecase.UpdateCartItemInput) (*entity.Cart, error) {
	if input.Quantity < 1 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "quantity must be at least 1")
	}

	cart, err := srv.cartRepo.FindCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCartNotFound, "cart not found")
		}

		return nil, errors.Wrap(err, "failed to load cart")
	}

	var updatedCart *entity.Cart
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.CartRepo()
		catalogRepo := repoFactory.CatalogRepo()

		item, err := cartRepo.FindCartItem(ctx, cart.ID, input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrCartItemNotFound) {
				return errors.Wrap(domainerrors.ErrCartItemNotFound, "product is not in the cart")
			}

			return errors.Wrap(err, "failed to load cart item")
		}

		product, err := catalogRepo.FindProductByID(ctx, input.ProductID)
		if err != nil {
			return errors.Wrap(err, "failed to load product")
		}
		if product.Stock < input.Quantity {
			return errors.Wrap(domainerrors.ErrInsufficientStock, "requested quantity exceeds stock")
		}

		item.Quantity = input.Quantity
		if err := cartRepo.UpsertCartItem(ctx, item); err != nil {
			return errors.Wrap(err, "failed to update cart item")
		}

		return srv.refreshCartTotals(ctx, cartRepo, cart.ID, &updatedCart)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute update item transaction", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute update item transaction")
	}

	return updatedCart, nil
}

// RemoveItem removes a product from the cart and refreshes the totals.
func (srv *cartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*entity.Cart, error) {
	cart, err := srv.cartRepo.FindCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCartNotFound, "cart not found")
		}

		return nil, errors.Wrap(err, "failed to load cart")
	}

	var updatedCart *entity.Cart
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.CartRepo()

		if err := cartRepo.DeleteCartItem(ctx, cart.ID, productID); err != nil {
			if errors.Is(err, repository.ErrCartItemNotFound) {
				return errors.Wrap(domainerrors.ErrCartItemNotFound, "product is not in the cart")
			}

			return errors.Wrap(err, "failed to delete cart item")
		}

		return srv.refreshCartTotals(ctx, cartRepo, cart.ID, &updatedCart)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute remove item transaction", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute remove item transaction")
	}

	return updatedCart, nil
}

// ClearCart drops the user's cart entirely. The next GetCart starts fresh.
func (srv *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	cart, err := srv.cartRepo.FindCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			// Nothing to clear.
			return nil
		}

		return errors.Wrap(err, "failed to load cart")
	}

	if err := srv.cartRepo.DeleteCart(ctx, cart.ID); err != nil {
		return errors.Wrap(err, "failed to delete cart")
	}

	return nil
}

// refreshCartTotals reloads the cart inside the transaction, recomputes the
// gross total from its items and drops a discount the shrunken total can no
// longer cover.
func (srv *cartService) refreshCartTotals(ctx context.Context, cartRepo repository.CartRepository, cartID uuid.UUID, out **entity.Cart) error {
	cart, err := cartRepo.FindCartByID(ctx, cartID)
	if err != nil {
		return errors.Wrap(err, "failed to reload cart")
	}

	cart.RecalculateTotal()
	if cart.DiscountPrice > cart.TotalPrice {
		cart.DiscountPrice = 0
		cart.DiscountCodeID = nil
	}

	if err := cartRepo.UpdateCart(ctx, cart); err != nil {
		return errors.Wrap(err, "failed to persist cart totals")
	}
	*out = cart

	return nil
}
