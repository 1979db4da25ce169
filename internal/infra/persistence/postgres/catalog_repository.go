// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"

	"bookstore/internal/domain/entity"
	domainerrors "bookstore/internal/domain/errors"
	"bookstore/internal/domain/repository"
	"bookstore/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// catalogRepository implements the domain.CatalogRepository interface.
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository is the constructor for catalogRepository.
func NewCatalogRepository(db *gorm.DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

// CreateProduct persists a new product.
func (repo *catalogRepository) CreateProduct(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrProductSlugTaken.WrapMessage("slug already in use")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("unknown category or publisher reference")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("price or stock outside allowed range")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// FindProductByID retrieves a product by its unique ID.
func (repo *catalogRepository) FindProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).First(&productM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by ID")
	}

	return toProductDomain(&productM), nil
}

// FindProductBySlug retrieves a product by its URL slug.
func (repo *catalogRepository) FindProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).First(&productM, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by slug")
	}

	return toProductDomain(&productM), nil
}

// ListProducts retrieves a page of products matching the filter.
func (repo *catalogRepository) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.ProductModel{})

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.PublisherID != nil {
		query = query.Where("publisher_id = ?", *filter.PublisherID)
	}
	if filter.Language != "" {
		query = query.Where("language = ?", filter.Language)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR author ILIKE ?", pattern, pattern)
	}
	if filter.InStockOnly {
		query = query.Where("stock > 0")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count products")
	}

	var productModels []*model.ProductModel
	err := query.
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&productModels).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, total, nil
}

// UpdateProduct updates an existing product record.
func (repo *catalogRepository) UpdateProduct(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"slug":            productM.Slug,
			"name":            productM.Name,
			"price":           productM.Price,
			"discount_price":  productM.DiscountPrice,
			"stock":           productM.Stock,
			"author":          productM.Author,
			"translator":      productM.Translator,
			"language":        productM.Language,
			"main_topic":      productM.MainTopic,
			"secondary_topic": productM.SecondaryTopic,
			"description":     productM.Description,
			"category_id":     productM.CategoryID,
			"publisher_id":    productM.PublisherID,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrProductSlugTaken.WrapMessage("slug already in use")
		}
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WrapMessage("unknown category or publisher reference")
		}
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WrapMessage("price or stock outside allowed range")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// DeleteProduct removes a product by its ID.
func (repo *catalogRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrConflict.WrapMessage("product is referenced by carts or orders")
		}

		return errors.Wrap(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// AdjustProductStock atomically changes a product's stock by delta.
// The guard in the WHERE clause makes concurrent oversell lose the race.
func (repo *catalogRepository) AdjustProductStock(ctx context.Context, id uuid.UUID, delta int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return repository.ErrStockExhausted
		}

		return errors.Wrap(result.Error, "failed to adjust product stock")
	}
	if result.RowsAffected == 0 {
		// Either the product is missing or the guard rejected the delta.
		var count int64
		if err := repo.db.WithContext(ctx).Model(&model.ProductModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to adjust product stock")
		}
		if count == 0 {
			return repository.ErrProductNotFound
		}

		return repository.ErrStockExhausted
	}

	return nil
}

// CreateCategory persists a new category.
func (repo *catalogRepository) CreateCategory(ctx context.Context, category *entity.Category) error {
	categoryM := fromCategoryDomain(category)

	if err := repo.db.WithContext(ctx).Create(categoryM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrCategoryNameTaken.WrapMessage("name or slug already in use")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrCategoryNotFound.WrapMessage("unknown parent category")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create category")
	}

	category.ID = categoryM.ID
	category.CreatedAt = categoryM.CreatedAt
	category.UpdatedAt = categoryM.UpdatedAt

	return nil
}

// FindCategoryByID retrieves a category by its unique ID.
func (repo *catalogRepository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryM model.CategoryModel
	err := repo.db.WithContext(ctx).First(&categoryM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by ID")
	}

	return toCategoryDomain(&categoryM), nil
}

// ListCategories retrieves all categories ordered by name.
func (repo *catalogRepository) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	var categoryModels []*model.CategoryModel
	err := repo.db.WithContext(ctx).Order("name ASC").Find(&categoryModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	categories := make([]*entity.Category, 0, len(categoryModels))
	for _, categoryM := range categoryModels {
		categories = append(categories, toCategoryDomain(categoryM))
	}

	return categories, nil
}

// UpdateCategory updates an existing category record.
func (repo *catalogRepository) UpdateCategory(ctx context.Context, category *entity.Category) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("id = ?", category.ID).
		Updates(map[string]any{
			"name":      category.Name,
			"slug":      category.Slug,
			"parent_id": category.ParentID,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrCategoryNameTaken.WrapMessage("name or slug already in use")
		}
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrCategoryNotFound.WrapMessage("unknown parent category")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update category")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

// DeleteCategory removes a category by its ID.
func (repo *catalogRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.CategoryModel{}, "id = ?", id)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrCategoryInUse.WrapMessage("category still referenced")
		}

		return errors.Wrap(result.Error, "failed to delete category")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

// CreatePublisher persists a new publisher.
func (repo *catalogRepository) CreatePublisher(ctx context.Context, publisher *entity.Publisher) error {
	publisherM := fromPublisherDomain(publisher)

	if err := repo.db.WithContext(ctx).Create(publisherM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("publisher name or slug already in use")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create publisher")
	}

	publisher.ID = publisherM.ID
	publisher.CreatedAt = publisherM.CreatedAt
	publisher.UpdatedAt = publisherM.UpdatedAt

	return nil
}

// FindPublisherByID retrieves a publisher by its unique ID.
func (repo *catalogRepository) FindPublisherByID(ctx context.Context, id uuid.UUID) (*entity.Publisher, error) {
	var publisherM model.PublisherModel
	err := repo.db.WithContext(ctx).First(&publisherM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPublisherNotFound
		}

		return nil, errors.Wrap(err, "failed to find publisher by ID")
	}

	return toPublisherDomain(&publisherM), nil
}

// ListPublishers retrieves all publishers ordered by name.
func (repo *catalogRepository) ListPublishers(ctx context.Context) ([]*entity.Publisher, error) {
	var publisherModels []*model.PublisherModel
	err := repo.db.WithContext(ctx).Order("name ASC").Find(&publisherModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list publishers")
	}

	publishers := make([]*entity.Publisher, 0, len(publisherModels))
	for _, publisherM := range publisherModels {
		publishers = append(publishers, toPublisherDomain(publisherM))
	}

	return publishers, nil
}

// UpdatePublisher updates an existing publisher record.
func (repo *catalogRepository) UpdatePublisher(ctx context.Context, publisher *entity.Publisher) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PublisherModel{}).
		Where("id = ?", publisher.ID).
		Updates(map[string]any{
			"name":        publisher.Name,
			"slug":        publisher.Slug,
			"description": publisher.Description,
			"logo_url":    publisher.LogoURL,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrConflict.WrapMessage("publisher name or slug already in use")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update publisher")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPublisherNotFound
	}

	return nil
}

// DeletePublisher removes a publisher by its ID.
func (repo *catalogRepository) DeletePublisher(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.PublisherModel{}, "id = ?", id)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrPublisherInUse.WrapMessage("publisher still referenced")
		}

		return errors.Wrap(result.Error, "failed to delete publisher")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPublisherNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:             data.ID,
		Slug:           data.Slug,
		Name:           data.Name,
		Price:          data.Price,
		DiscountPrice:  data.DiscountPrice,
		Stock:          data.Stock,
		Author:         data.Author,
		Translator:     data.Translator,
		Language:       data.Language,
		MainTopic:      data.MainTopic,
		SecondaryTopic: data.SecondaryTopic,
		Description:    data.Description,
		More:           data.More,
		CategoryID:     data.CategoryID,
		PublisherID:    data.PublisherID,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	more := data.More
	if more == nil {
		more = json.RawMessage("{}")
	}

	return &model.ProductModel{
		ID:             data.ID,
		Slug:           data.Slug,
		Name:           data.Name,
		Price:          data.Price,
		DiscountPrice:  data.DiscountPrice,
		Stock:          data.Stock,
		Author:         data.Author,
		Translator:     data.Translator,
		Language:       data.Language,
		MainTopic:      data.MainTopic,
		SecondaryTopic: data.SecondaryTopic,
		Description:    data.Description,
		More:           more,
		CategoryID:     data.CategoryID,
		PublisherID:    data.PublisherID,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// toCategoryDomain converts a GORM CategoryModel to a domain Category entity.
func toCategoryDomain(data *model.CategoryModel) *entity.Category {
	if data == nil {
		return nil
	}

	return &entity.Category{
		ID:        data.ID,
		Name:      data.Name,
		Slug:      data.Slug,
		ParentID:  data.ParentID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromCategoryDomain converts a domain Category entity to a GORM CategoryModel.
func fromCategoryDomain(data *entity.Category) *model.CategoryModel {
	if data == nil {
		return nil
	}

	return &model.CategoryModel{
		ID:        data.ID,
		Name:      data.Name,
		Slug:      data.Slug,
		ParentID:  data.ParentID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// toPublisherDomain converts a GORM PublisherModel to a domain Publisher entity.
func toPublisherDomain(data *model.PublisherModel) *entity.Publisher {
	if data == nil {
		return nil
	}

	return &entity.Publisher{
		ID:          data.ID,
		Name:        data.Name,
		Slug:        data.Slug,
		Description: data.Description,
		LogoURL:     data.LogoURL,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromPublisherDomain converts a domain Publisher entity to a GORM PublisherModel.
func fromPublisherDomain(data *entity.Publisher) *model.PublisherModel {
	if data == nil {
		return nil
	}

	return &model.PublisherModel{
		ID:          data.ID,
		Name:        data.Name,
		Slug:        data.Slug,
		Description: data.Description,
		LogoURL:     data.LogoURL,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
