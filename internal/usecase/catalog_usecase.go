// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"encoding/json"
	"io"

	"bookstore/internal/domain/entity"
	"bookstore/internal/domain/repository"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateProductInput defines the data required to create a product.
type CreateProductInput struct {
	Slug           string
	Name           string
	Price          int64
	DiscountPrice  *int64
	Stock          int
	Author         string
	Translator     string
	Language       string
	MainTopic      string
	SecondaryTopic string
	Description    string
	More           json.RawMessage
	CategoryID     uuid.UUID
	PublisherID    uuid.UUID
}

// UpdateProductInput defines the optional fields of a product update.
// Nil fields are left untouched. ClearDiscount removes the promotional price.
type UpdateProductInput struct {
	Slug           *string
	Name           *string
	Price          *int64
	DiscountPrice  *int64
	ClearDiscount  bool
	Stock          *int
	Author         *string
	Translator     *string
	Language       *string
	MainTopic      *string
	SecondaryTopic *string
	Description    *string
	More           json.RawMessage
	CategoryID     *uuid.UUID
	PublisherID    *uuid.UUID
}

// ListProductsInput narrows and pages the public product listing.
type ListProductsInput struct {
	CategoryID  *uuid.UUID
	PublisherID *uuid.UUID
	Language    string
	Search      string
	InStockOnly bool
	Offset      int
	Limit       int
}

// CreateCategoryInput defines the data required to create a category.
type CreateCategoryInput struct {
	Name     string
	Slug     string
	ParentID *uuid.UUID
}

// UpdateCategoryInput defines the optional fields of a category update.
type UpdateCategoryInput struct {
	Name        *string
	Slug        *string
	ParentID    *uuid.UUID
	ClearParent bool
}

// CreatePublisherInput defines the data required to create a publisher.
type CreatePublisherInput struct {
	Name        string
	Slug        string
	Description string
}

// UpdatePublisherInput defines the optional fields of a publisher update.
type UpdatePublisherInput struct {
	Name        *string
	Slug        *string
	Description *string
}

// UploadPublisherLogoInput carries a publisher logo upload.
type UploadPublisherLogoInput struct {
	ContentType string
	Content     io.Reader
}

// --- Output DTOs ---

// ProductListOutput returns one page of products with the total match count.
type ProductListOutput struct {
	Products []*entity.Product
	Total    int64
}

// CatalogUsecase defines the interface for catalog management and browsing.
// Read operations are public; mutations require the staff role and are
// authorized in the delivery layer.
type CatalogUsecase interface {
	CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error)
	ListProducts(ctx context.Context, input *ListProductsInput) (*ProductListOutput, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input *UpdateProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error

	CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error)
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	UpdateCategory(ctx context.Context, categoryID uuid.UUID, input *UpdateCategoryInput) (*entity.Category, error)
	DeleteCategory(ctx context.Context, categoryID uuid.UUID) error

	CreatePublisher(ctx context.Context, input *CreatePublisherInput) (*entity.Publisher, error)
	ListPublishers(ctx context.Context) ([]*entity.Publisher, error)
	UpdatePublisher(ctx context.Context, publisherID uuid.UUID, input *UpdatePublisherInput) (*entity.Publisher, error)
	DeletePublisher(ctx context.Context, publisherID uuid.UUID) error
	UploadPublisherLogo(ctx context.Context, publisherID uuid.UUID, input *UploadPublisherLogoInput) (string, error)
}

// ToProductFilter converts the listing input into the repository filter.
func (in *ListProductsInput) ToProductFilter() repository.ProductFilter {
	return repository.ProductFilter{
		CategoryID:  in.CategoryID,
		PublisherID: in.PublisherID,
		Language:    in.Language,
		Search:      in.Search,
		InStockOnly: in.InStockOnly,
		Offset:      in.Offset,
		Limit:       in.Limit,
	}
}
