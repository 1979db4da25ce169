// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"bookstore/internal/domain/entity"
	"bookstore/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for catalog persistence.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrPublisherNotFound is returned when a publisher is not found.
	ErrPublisherNotFound = errors.New("publisher not found")
	// ErrStockExhausted is returned when a stock adjustment would drive stock below zero.
	ErrStockExhausted = errors.New("insufficient product stock")
)

// ProductFilter narrows product listings. Zero values mean "no constraint".
type ProductFilter struct {
	CategoryID  *uuid.UUID
	PublisherID *uuid.UUID
	Language    string
	Search      string
	InStockOnly bool
	Offset      int
	Limit       int
}

// CatalogRepository defines the interface for product, category and publisher persistence.
type CatalogRepository interface {
	// CreateProduct persists a new product.
	CreateProduct(ctx context.Context, product *entity.Product) error

	// FindProductByID retrieves a product by its unique ID, preloading its
	// category and publisher associations.
	FindProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindProductBySlug retrieves a product by its URL slug.
	FindProductBySlug(ctx context.Context, slug string) (*entity.Product, error)

	// ListProducts retrieves a page of products matching the filter,
	// together with the total match count.
	ListProducts(ctx context.Context, filter ProductFilter) ([]*entity.Product, int64, error)

	// UpdateProduct updates an existing product record.
	UpdateProduct(ctx context.Context, product *entity.Product) error

	// DeleteProduct removes a product by its ID.
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// AdjustProductStock atomically changes a product's stock by delta.
	// Returns ErrStockExhausted when the adjustment would drive stock negative.
	AdjustProductStock(ctx context.Context, id uuid.UUID, delta int) error

	// CreateCategory persists a new category.
	CreateCategory(ctx context.Context, category *entity.Category) error

	// FindCategoryByID retrieves a category by its unique ID.
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// ListCategories retrieves all categories ordered by name.
	ListCategories(ctx context.Context) ([]*entity.Category, error)

	// UpdateCategory updates an existing category record.
	UpdateCategory(ctx context.Context, category *entity.Category) error

	// DeleteCategory removes a category by its ID. The delete fails while
	// products or child categories still reference it.
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	// CreatePublisher persists a new publisher.
	CreatePublisher(ctx context.Context, publisher *entity.Publisher) error

	// FindPublisherByID retrieves a publisher by its unique ID.
	FindPublisherByID(ctx context.Context, id uuid.UUID) (*entity.Publisher, error)

	// ListPublishers retrieves all publishers ordered by name.
	ListPublishers(ctx context.Context) ([]*entity.Publisher, error)

	// UpdatePublisher updates an existing publisher record.
	UpdatePublisher(ctx context.Context, publisher *entity.Publisher) error

	// DeletePublisher removes a publisher by its ID. The delete fails while
	// products still reference it.
	DeletePublisher(ctx context.Context, id uuid.UUID) error
}
