// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"

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

const defaultProductPageSize = 20

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	catalogRepo  repository.CatalogRepository
	mediaStorage service.MediaStorage
	logger       *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	CatalogRepo  repository.CatalogRepository
	MediaStorage service.MediaStorage
	Logger       *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		catalogRepo:  params.CatalogRepo,
		mediaStorage: params.MediaStorage,
		logger:       params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateProduct validates prices and references, then persists the product.
func (srv *catalogService) CreateProduct(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	if input.Price < 0 || (input.DiscountPrice != nil && *input.DiscountPrice < 0) {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "price must not be negative")
	}
	if input.DiscountPrice != nil && *input.DiscountPrice > input.Price {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "discount price must not exceed the regular price")
	}
	if input.Stock < 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "stock must not be negative")
	}

	if _, err := srv.catalogRepo.FindCategoryByID(ctx, input.CategoryID); err != nil {
		return nil, errors.Wrap(domainerrors.ErrCategoryNotFound, "unknown category")
	}
	if _, err := srv.catalogRepo.FindPublisherByID(ctx, input.PublisherID); err != nil {
		return nil, errors.Wrap(domainerrors.ErrPublisherNotFound, "unknown publisher")
	}

	newProduct := &entity.Product{
		Slug:           input.Slug,
		Name:           input.Name,
		Price:          input.Price,
		DiscountPrice:  input.DiscountPrice,
		Stock:          input.Stock,
		Author:         input.Author,
		Translator:     input.Translator,
		Language:       input.Language,
		MainTopic:      input.MainTopic,
		SecondaryTopic: input.SecondaryTopic,
		Description:    input.Description,
		More:           input.More,
		CategoryID:     input.CategoryID,
		PublisherID:    input.PublisherID,
	}

	if err := srv.catalogRepo.CreateProduct(ctx, newProduct); err != nil {
		srv.log(ctx).Error("Failed to create product", slog.String("slug", input.Slug), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.Any("productID", newProduct.ID), slog.String("slug", newProduct.Slug))

	return newProduct, nil
}

// GetProduct loads a product by ID.
func (srv *catalogService) GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	product, err := srv.catalogRepo.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return nil, errors.Wrap(err, "failed to load product")
	}

	return product, nil
}

// GetProductBySlug loads a product by its URL slug.
func (srv *catalogService) GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := srv.catalogRepo.FindProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return nil, errors.Wrap(err, "failed to load product")
	}

	return product, nil
}

// ListProducts returns one page of products matching the filter.
func (srv *catalogService) ListProducts(ctx context.Context, input *usecase.ListProductsInput) (*usecase.ProductListOutput, error) {
	if input.Limit <= 0 {
		input.Limit = defaultProductPageSize
	}

	products, total, err := srv.catalogRepo.ListProducts(ctx, input.ToProductFilter())
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return &usecase.ProductListOutput{Products: products, Total: total}, nil
}

// UpdateProduct applies the non-nil fields of the update.
func (srv *catalogService) UpdateProduct(ctx context.Context, productID uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	product, err := srv.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if input.Slug != nil {
		product.Slug = *input.Slug
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.ClearDiscount {
		product.DiscountPrice = nil
	} else if input.DiscountPrice != nil {
		product.DiscountPrice = input.DiscountPrice
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Author != nil {
		product.Author = *input.Author
	}
	if input.Translator != nil {
		product.Translator = *input.Translator
	}
	if input.Language != nil {
		product.Language = *input.Language
	}
	if input.MainTopic != nil {
		product.MainTopic = *input.MainTopic
	}
	if input.SecondaryTopic != nil {
		product.SecondaryTopic = *input.SecondaryTopic
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.More != nil {
		product.More = input.More
	}
	if input.CategoryID != nil {
		product.CategoryID = *input.CategoryID
	}
	if input.PublisherID != nil {
		product.PublisherID = *input.PublisherID
	}

	if product.Price < 0 || product.Stock < 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "price and stock must not be negative")
	}
	if product.DiscountPrice != nil && (*product.DiscountPrice < 0 || *product.DiscountPrice > product.Price) {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "discount price must stay within [0, price]")
	}

	if err := srv.catalogRepo.UpdateProduct(ctx, product); err != nil {
		srv.log(ctx).Error("Failed to update product", slog.Any("productID", productID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}

// DeleteProduct removes a product from the catalog.
func (srv *catalogService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if err := srv.catalogRepo.DeleteProduct(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return errors.Wrap(err, "failed to delete product")
	}

	return nil
}

// CreateCategory persists a new category node, validating its parent.
func (srv *catalogService) CreateCategory(ctx context.Context, input *usecase.CreateCategoryInput) (*entity.Category, error) {
	if input.ParentID != nil {
		if _, err := srv.catalogRepo.FindCategoryByID(ctx, *input.ParentID); err != nil {
			return nil, errors.Wrap(domainerrors.ErrCategoryNotFound, "unknown parent category")
		}
	}

	newCategory := &entity.Category{
		Name:     input.Name,
		Slug:     input.Slug,
		ParentID: input.ParentID,
	}

	if err := srv.catalogRepo.CreateCategory(ctx, newCategory); err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}

	return newCategory, nil
}

// ListCategories returns the full taxonomy ordered by name.
func (srv *catalogService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.catalogRepo.ListCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// UpdateCategory applies the non-nil fields, guarding against self-parenting.
func (srv *catalogService) UpdateCategory(ctx context.Context, categoryID uuid.UUID, input *usecase.UpdateCategoryInput) (*entity.Category, error) {
	category, err := srv.catalogRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCategoryNotFound, "category not found")
		}

		return nil, errors.Wrap(err, "failed to load category")
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Slug != nil {
		category.Slug = *input.Slug
	}
	if input.ClearParent {
		category.ParentID = nil
	} else if input.ParentID != nil {
		if *input.ParentID == categoryID {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed, "category cannot be its own parent")
		}
		if _, err := srv.catalogRepo.FindCategoryByID(ctx, *input.ParentID); err != nil {
			return nil, errors.Wrap(domainerrors.ErrCategoryNotFound, "unknown parent category")
		}
		category.ParentID = input.ParentID
	}

	if err := srv.catalogRepo.UpdateCategory(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to update category")
	}

	return category, nil
}

// DeleteCategory removes a category; the schema rejects the delete while
// products or subcategories still reference it.
func (srv *catalogService) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	if err := srv.catalogRepo.DeleteCategory(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return errors.Wrap(domainerrors.ErrCategoryNotFound, "category not found")
		}

		return errors.Wrap(err, "failed to delete category")
	}

	return nil
}

// CreatePublisher persists a new publisher.
func (srv *catalogService) CreatePublisher(ctx context.Context, input *usecase.CreatePublisherInput) (*entity.Publisher, error) {
	newPublisher := &entity.Publisher{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
	}

	if err := srv.catalogRepo.CreatePublisher(ctx, newPublisher); err != nil {
		return nil, errors.Wrap(err, "failed to create publisher")
	}

	return newPublisher, nil
}

// ListPublishers returns all publishers ordered by name.
func (srv *catalogService) ListPublishers(ctx context.Context) ([]*entity.Publisher, error) {
	publishers, err := srv.catalogRepo.ListPublishers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list publishers")
	}

	return publishers, nil
}

// UpdatePublisher applies the non-nil fields of the update.
func (srv *catalogService) UpdatePublisher(ctx context.Context, publisherID uuid.UUID, input *usecase.UpdatePublisherInput) (*entity.Publisher, error) {
	publisher, err := srv.catalogRepo.FindPublisherByID(ctx, publisherID)
	if err != nil {
		if errors.Is(err, repository.ErrPublisherNotFound) {
			return nil, errors.Wrap(domainerrors.ErrPublisherNotFound, "publisher not found")
		}

		return nil, errors.Wrap(err, "failed to load publisher")
	}

	if input.Name != nil {
		publisher.Name = *input.Name
	}
	if input.Slug != nil {
		publisher.Slug = *input.Slug
	}
	if input.Description != nil {
		publisher.Description = *input.Description
	}

	if err := srv.catalogRepo.UpdatePublisher(ctx, publisher); err != nil {
		return nil, errors.Wrap(err, "failed to update publisher")
	}

	return publisher, nil
}

// DeletePublisher removes a publisher; the schema rejects the delete while
// products still reference it.
func (srv *catalogService) DeletePublisher(ctx context.Context, publisherID uuid.UUID) error {
	if err := srv.catalogRepo.DeletePublisher(ctx, publisherID); err != nil {
		if errors.Is(err, repository.ErrPublisherNotFound) {
			return errors.Wrap(domainerrors.ErrPublisherNotFound, "publisher not found")
		}

		return errors.Wrap(err, "failed to delete publisher")
	}

	return nil
}

// UploadPublisherLogo stores the logo image and records its public URL.
func (srv *catalogService) UploadPublisherLogo(ctx context.Context, publisherID uuid.UUID, input *usecase.UploadPublisherLogoInput) (string, error) {
	publisher, err := srv.catalogRepo.FindPublisherByID(ctx, publisherID)
	if err != nil {
		if errors.Is(err, repository.ErrPublisherNotFound) {
			return "", errors.Wrap(domainerrors.ErrPublisherNotFound, "publisher not found")
		}

		return "", errors.Wrap(err, "failed to load publisher")
	}

	key := fmt.Sprintf("publishers/%s/logo", publisherID)
	url, err := srv.mediaStorage.Save(ctx, key, input.ContentType, input.Content)
	if err != nil {
		srv.log(ctx).Error("Failed to store publisher logo", slog.Any("publisherID", publisherID), slog.Any("error", err))

		return "", errors.Wrap(err, "failed to store publisher logo")
	}

	publisher.LogoURL = url
	if err := srv.catalogRepo.UpdatePublisher(ctx, publisher); err != nil {
		return "", errors.Wrap(err, "failed to record logo URL")
	}

	return url, nil
}
