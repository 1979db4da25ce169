// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"bookstore/internal/domain/entity"
	domainerrors "bookstore/internal/domain/errors"
	"bookstore/internal/domain/repository"
	"bookstore/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// discountRepository implements the domain.DiscountRepository interface.
type discountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository is the constructor for discountRepository.
func NewDiscountRepository(db *gorm.DB) repository.DiscountRepository {
	return &discountRepository{db: db}
}

// CreateDiscount persists a new discount code.
func (repo *discountRepository) CreateDiscount(ctx context.Context, discount *entity.DiscountCode) error {
	discountM := fromDiscountDomain(discount)

	if err := repo.db.WithContext(ctx).Create(discountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDiscountCodeTaken.WrapMessage("code already exists")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("amount and usage limit must be at least 1")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create discount code")
	}

	discount.ID = discountM.ID
	discount.CreatedAt = discountM.CreatedAt
	discount.UpdatedAt = discountM.UpdatedAt

	return nil
}

// FindDiscountByID retrieves a discount code by its unique ID.
func (repo *discountRepository) FindDiscountByID(ctx context.Context, id uuid.UUID) (*entity.DiscountCode, error) {
	var discountM model.DiscountCodeModel
	err := repo.db.WithContext(ctx).First(&discountM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDiscountNotFound
		}

		return nil, errors.Wrap(err, "failed to find discount by ID")
	}

	return toDiscountDomain(&discountM), nil
}

// FindDiscountByCode retrieves a discount code by its code string.
func (repo *discountRepository) FindDiscountByCode(ctx context.Context, code string) (*entity.DiscountCode, error) {
	var discountM model.DiscountCodeModel
	err := repo.db.WithContext(ctx).First(&discountM, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDiscountNotFound
		}

		return nil, errors.Wrap(err, "failed to find discount by code")
	}

	return toDiscountDomain(&discountM), nil
}

// ListDiscounts retrieves all discount codes ordered by creation time.
func (repo *discountRepository) ListDiscounts(ctx context.Context) ([]*entity.DiscountCode, error) {
	var discountModels []*model.DiscountCodeModel
	err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&discountModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list discounts")
	}

	discounts := make([]*entity.DiscountCode, 0, len(discountModels))
	for _, discountM := range discountModels {
		discounts = append(discounts, toDiscountDomain(discountM))
	}

	return discounts, nil
}

// UpdateDiscount updates an existing discount code record.
func (repo *discountRepository) UpdateDiscount(ctx context.Context, discount *entity.DiscountCode) error {
	result := repo.db.WithContext(ctx).
		Model(&model.DiscountCodeModel{}).
		Where("id = ?", discount.ID).
		Updates(map[string]any{
			"code":                 discount.Code,
			"amount":               discount.Amount,
			"usage_limit_per_user": discount.UsageLimitPerUser,
			"is_active":            discount.IsActive,
			"start_at":             discount.Start,
			"end_at":               discount.End,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrDiscountCodeTaken.WrapMessage("code already exists")
		}
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WrapMessage("amount and usage limit must be at least 1")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update discount code")
	}
	if result.RowsAffected == 0 {
		return repository.ErrDiscountNotFound
	}

	return nil
}

// DeleteDiscount removes a discount code by its ID.
func (repo *discountRepository) DeleteDiscount(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.DiscountCodeModel{}, "id = ?", id)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrConflict.WrapMessage("discount code has redemption history")
		}

		return errors.Wrap(result.Error, "failed to delete discount code")
	}
	if result.RowsAffected == 0 {
		return repository.ErrDiscountNotFound
	}

	return nil
}

// CountUsagesByUser returns how many times a user has redeemed a discount code.
func (repo *discountRepository) CountUsagesByUser(ctx context.Context, userID, discountID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.DiscountUsageModel{}).
		Where("user_id = ? AND discount_code_id = ?", userID, discountID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count discount usages")
	}

	return count, nil
}

// CreateUsage records a redemption of a discount code by a user.
func (repo *discountRepository) CreateUsage(ctx context.Context, usage *entity.DiscountUsage) error {
	usageM := fromDiscountUsageDomain(usage)

	if err := repo.db.WithContext(ctx).Create(usageM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDiscountUsageExists
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrDiscountNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to record discount usage")
	}

	usage.ID = usageM.ID

	return nil
}

// --- Mapper Functions ---

// toDiscountDomain converts a GORM DiscountCodeModel to a domain DiscountCode entity.
func toDiscountDomain(data *model.DiscountCodeModel) *entity.DiscountCode {
	if data == nil {
		return nil
	}

	return &entity.DiscountCode{
		ID:                data.ID,
		Code:              data.Code,
		Amount:            data.Amount,
		UsageLimitPerUser: data.UsageLimitPerUser,
		IsActive:          data.IsActive,
		Start:             data.StartAt,
		End:               data.EndAt,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

// fromDiscountDomain converts a domain DiscountCode entity to a GORM DiscountCodeModel.
func fromDiscountDomain(data *entity.DiscountCode) *model.DiscountCodeModel {
	if data == nil {
		return nil
	}

	return &model.DiscountCodeModel{
		ID:                data.ID,
		Code:              data.Code,
		Amount:            data.Amount,
		UsageLimitPerUser: data.UsageLimitPerUser,
		IsActive:          data.IsActive,
		StartAt:           data.Start,
		EndAt:             data.End,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

// fromDiscountUsageDomain converts a domain DiscountUsage to its GORM model.
func fromDiscountUsageDomain(data *entity.DiscountUsage) *model.DiscountUsageModel {
	if data == nil {
		return nil
	}

	return &model.DiscountUsageModel{
		ID:             data.ID,
		UserID:         data.UserID,
		DiscountCodeID: data.DiscountCodeID,
		UsedAt:         data.UsedAt,
	}
}
