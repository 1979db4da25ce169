package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "bookstore/internal/delivery/context"
	"bookstore/internal/domain/entity"
	domainerrors "bookstore/internal/domain/errors"
	"bookstore/internal/domain/repository"
	"bookstore/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// discountService implements the DiscountUsecase interface.
type discountService struct {
	txManager    repository.TransactionManager
	discountRepo repository.DiscountRepository
	logger       *slog.Logger
}

// DiscountServiceParams holds dependencies for DiscountService, injected by Fx.
type DiscountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	DiscountRepo repository.DiscountRepository
	Logger       *slog.Logger
}

// NewDiscountService is the constructor for discountService.
func NewDiscountService(params DiscountServiceParams) usecase.DiscountUsecase {
	return &discountService{
		txManager:    params.TxManager,
		discountRepo: params.DiscountRepo,
		logger:       params.Logger,
	}
}

func (srv *discountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateDiscount creates a new discount code after validating the amount and
// the validity window.
func (srv *discountService) CreateDiscount(ctx context.Context, input *usecase.CreateDiscountInput) (*entity.DiscountCode, error) {
	if input.Amount < 1 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "discount amount must be at least 1")
	}
	if input.UsageLimitPerUser < 1 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "usage limit per user must be at least 1")
	}
	if !input.End.After(input.Start) {
		return nil, errors.Wrap(domainerrors.ErrDiscountWindowInvalid, "end of validity window must be after its start")
	}

	discount := &entity.DiscountCode{
		Code:              input.Code,
		Amount:            input.Amount,
		UsageLimitPerUser: input.UsageLimitPerUser,
		IsActive:          input.IsActive,
		Start:             input.Start,
		End:               input.End,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		discountRepo := repoFactory.DiscountRepo()

		if _, err := discountRepo.FindDiscountByCode(ctx, discount.Code); err == nil {
			return errors.Wrap(domainerrors.ErrDiscountCodeTaken, "code is already in use")
		} else if !errors.Is(err, repository.ErrDiscountNotFound) {
			return errors.Wrap(err, "failed to check code uniqueness")
		}

		if err := discountRepo.CreateDiscount(ctx, discount); err != nil {
			return errors.Wrap(err, "failed to create discount")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute create discount transaction", slog.String("code", input.Code), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute create discount transaction")
	}

	return discount, nil
}

// ListDiscounts returns all discount codes.
func (srv *discountService) ListDiscounts(ctx context.Context) ([]*entity.DiscountCode, error) {
	discounts, err := srv.discountRepo.ListDiscounts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list discounts")
	}

	return discounts, nil
}

// GetDiscount returns a single discount code by ID.
func (srv *discountService) GetDiscount(ctx context.Context, discountID uuid.UUID) (*entity.DiscountCode, error) {
	discount, err := srv.discountRepo.FindDiscountByID(ctx, discountID)
	if err != nil {
		if errors.Is(err, repository.ErrDiscountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrDiscountNotFound, "discount not found")
		}

		return nil, errors.Wrap(err, "failed to find discount")
	}

	return discount, nil
}

// UpdateDiscount applies the non-nil fields of the input to an existing code.
// The code string itself is immutable once created.
func (srv *discountService) UpdateDiscount(ctx context.Context, discountID uuid.UUID, input *usecase.UpdateDiscountInput) (*entity.DiscountCode, error) {
	var updated *entity.DiscountCode
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		discountRepo := repoFactory.DiscountRepo()

		discount, err := discountRepo.FindDiscountByID(ctx, discountID)
		if err != nil {
			if errors.Is(err, repository.ErrDiscountNotFound) {
				return errors.Wrap(domainerrors.ErrDiscountNotFound, "discount not found")
			}

			return errors.Wrap(err, "failed to find discount")
		}

		if input.Amount != nil {
			if *input.Amount < 1 {
				return errors.Wrap(domainerrors.ErrValidationFailed, "discount amount must be at least 1")
			}
			discount.Amount = *input.Amount
		}
		if input.UsageLimitPerUser != nil {
			if *input.UsageLimitPerUser < 1 {
				return errors.Wrap(domainerrors.ErrValidationFailed, "usage limit per user must be at least 1")
			}
			discount.UsageLimitPerUser = *input.UsageLimitPerUser
		}
		if input.IsActive != nil {
			discount.IsActive = *input.IsActive
		}
		if input.Start != nil {
			discount.Start = *input.Start
		}
		if input.End != nil {
			discount.End = *input.End
		}
		if !discount.End.After(discount.Start) {
			return errors.Wrap(domainerrors.ErrDiscountWindowInvalid, "end of validity window must be after its start")
		}

		if err := discountRepo.UpdateDiscount(ctx, discount); err != nil {
			return errors.Wrap(err, "failed to update discount")
		}
		updated = discount

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute update discount transaction", slog.Any("discountID", discountID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute update discount transaction")
	}

	return updated, nil
}

// DeleteDiscount removes a discount code. Carts holding the code keep their
// already-applied amount. A code with redemption history cannot be deleted,
// only deactivated; the schema RESTRICTs the usage reference.
func (srv *discountService) DeleteDiscount(ctx context.Context, discountID uuid.UUID) error {
	if err := srv.discountRepo.DeleteDiscount(ctx, discountID); err != nil {
		if errors.Is(err, repository.ErrDiscountNotFound) {
			return errors.Wrap(domainerrors.ErrDiscountNotFound, "discount not found")
		}

		return errors.Wrap(err, "failed to delete discount")
	}

	return nil
}

// ApplyToCart validates the code against the clock and the caller's
// redemption history, then stages the flat amount on the cart. The usage
// record is only written at checkout; until then the customer may still
// remove or swap the code.
func (srv *discountService) ApplyToCart(ctx context.Context, userID uuid.UUID, input *usecase.ApplyDiscountInput) (*entity.Cart, error) {
	var updatedCart *entity.Cart
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		discountRepo := repoFactory.DiscountRepo()
		cartRepo := repoFactory.CartRepo()

		discount, err := discountRepo.FindDiscountByCode(ctx, input.Code)
		if err != nil {
			if errors.Is(err, repository.ErrDiscountNotFound) {
				return errors.Wrap(domainerrors.ErrDiscountNotFound, "discount not found")
			}

			return errors.Wrap(err, "failed to find discount")
		}

		if !discount.RedeemableAt(time.Now()) {
			return errors.Wrap(domainerrors.ErrDiscountNotRedeemable, "code is inactive or outside its validity window")
		}

		usages, err := discountRepo.CountUsagesByUser(ctx, userID, discount.ID)
		if err != nil {
			return errors.Wrap(err, "failed to count discount usages")
		}
		if usages > 0 {
			return errors.Wrap(domainerrors.ErrDiscountAlreadyUsed, "code was already redeemed by this user")
		}

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

		cart.DiscountCodeID = &discount.ID
		cart.DiscountPrice = discount.Amount
		if cart.DiscountPrice > cart.TotalPrice {
			cart.DiscountPrice = cart.TotalPrice
		}

		if err := cartRepo.UpdateCart(ctx, cart); err != nil {
			return errors.Wrap(err, "failed to persist cart discount")
		}
		updatedCart = cart

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute apply discount transaction", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute apply discount transaction")
	}

	return updatedCart, nil
}

// RemoveFromCart detaches the applied code from the user's cart. Removing a
// code that was never applied is a no-op.
func (srv *discountService) RemoveFromCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	var updatedCart *entity.Cart
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.CartRepo()

		cart, err := cartRepo.FindCartByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrCartNotFound) {
				return errors.Wrap(domainerrors.ErrCartNotFound, "cart not found")
			}

			return errors.Wrap(err, "failed to load cart")
		}

		if cart.DiscountCodeID == nil {
			updatedCart = cart

			return nil
		}

		cart.DiscountCodeID = nil
		cart.DiscountPrice = 0

		if err := cartRepo.UpdateCart(ctx, cart); err != nil {
			return errors.Wrap(err, "failed to persist cart discount removal")
		}
		updatedCart = cart

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute remove discount transaction", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute remove discount transaction")
	}

	return updatedCart, nil
}
