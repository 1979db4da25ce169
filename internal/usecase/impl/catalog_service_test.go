package impl

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"bookstore/internal/domain/entity"
	domainerrors "bookstore/internal/domain/errors"
	"bookstore/internal/domain/repository"
	mockRepo "bookstore/internal/mocks/repository"
	mockService "bookstore/internal/mocks/service"
	"bookstore/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// catalogServiceFixtures holds all test dependencies for catalog service tests.
type catalogServiceFixtures struct {
	service      usecase.CatalogUsecase
	catalogRepo  *mockRepo.MockCatalogRepository
	mediaStorage *mockService.MockMediaStorage
}

func createTestCatalogService(t *testing.T) catalogServiceFixtures {
	catalogRepo := mockRepo.NewMockCatalogRepository(t)
	mediaStorage := mockService.NewMockMediaStorage(t)

	service := NewCatalogService(CatalogServiceParams{
		CatalogRepo:  catalogRepo,
		MediaStorage: mediaStorage,
		Logger:       newDiscardLogger(),
	})

	return catalogServiceFixtures{
		service:      service,
		catalogRepo:  catalogRepo,
		mediaStorage: mediaStorage,
	}
}

func TestCatalogService_CreateProduct_Success(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	categoryID := uuid.New()
	publisherID := uuid.New()
	input := &usecase.CreateProductInput{
		Slug:        "the-go-programming-language",
		Name:        "The Go Programming Language",
		Price:       45000,
		Stock:       10,
		Author:      "Alan Donovan",
		Language:    "en",
		More:        json.RawMessage(`{"pages":380,"isbn":"978-0134190440"}`),
		CategoryID:  categoryID,
		PublisherID: publisherID,
	}

	fx.catalogRepo.EXPECT().FindCategoryByID(ctx, categoryID).Return(&entity.Category{ID: categoryID}, nil)
	fx.catalogRepo.EXPECT().FindPublisherByID(ctx, publisherID).Return(&entity.Publisher{ID: publisherID}, nil)
	fx.catalogRepo.EXPECT().CreateProduct(ctx, mock.AnythingOfType("*entity.Product")).Return(nil)

	product, err := fx.service.CreateProduct(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, input.Slug, product.Slug)
	assert.Equal(t, input.Price, product.Price)
	assert.JSONEq(t, `{"pages":380,"isbn":"978-0134190440"}`, string(product.More))
	assert.Nil(t, product.DiscountPrice)
}

func TestCatalogService_CreateProduct_DiscountAbovePrice(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	discount := int64(50000)
	input := &usecase.CreateProductInput{
		Slug:          "overpriced-discount",
		Name:          "Bad Pricing",
		Price:         45000,
		DiscountPrice: &discount,
		CategoryID:    uuid.New(),
		PublisherID:   uuid.New(),
	}

	product, err := fx.service.CreateProduct(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, product)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestCatalogService_CreateProduct_UnknownCategory(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	categoryID := uuid.New()
	input := &usecase.CreateProductInput{
		Slug:        "orphan-book",
		Name:        "Orphan",
		Price:       10000,
		CategoryID:  categoryID,
		PublisherID: uuid.New(),
	}

	fx.catalogRepo.EXPECT().FindCategoryByID(ctx, categoryID).Return(nil, repository.ErrCategoryNotFound)

	product, err := fx.service.CreateProduct(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, product)
	assert.True(t, errors.Is(err, domainerrors.ErrCategoryNotFound))
}

func TestCatalogService_GetProductBySlug_NotFound(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()

	fx.catalogRepo.EXPECT().FindProductBySlug(ctx, "no-such-book").Return(nil, repository.ErrProductNotFound)

	product, err := fx.service.GetProductBySlug(ctx, "no-such-book")

	assert.Error(t, err)
	assert.Nil(t, product)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestCatalogService_ListProducts_DefaultsPageSize(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	products := []*entity.Product{{ID: uuid.New()}}

	fx.catalogRepo.EXPECT().
		ListProducts(ctx, mock.MatchedBy(func(filter repository.ProductFilter) bool {
			return filter.Limit == defaultProductPageSize
		})).
		Return(products, int64(1), nil)

	out, err := fx.service.ListProducts(ctx, &usecase.ListProductsInput{})

	require.NoError(t, err)
	assert.Equal(t, products, out.Products)
	assert.Equal(t, int64(1), out.Total)
}

func TestCatalogService_UpdateProduct_ClearDiscount(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	productID := uuid.New()
	discount := int64(30000)
	existing := &entity.Product{ID: productID, Price: 45000, DiscountPrice: &discount}

	fx.catalogRepo.EXPECT().FindProductByID(ctx, productID).Return(existing, nil)
	fx.catalogRepo.EXPECT().UpdateProduct(ctx, mock.AnythingOfType("*entity.Product")).Return(nil)

	product, err := fx.service.UpdateProduct(ctx, productID, &usecase.UpdateProductInput{ClearDiscount: true})

	require.NoError(t, err)
	assert.Nil(t, product.DiscountPrice)
	assert.Equal(t, int64(45000), product.EffectivePrice())
}

func TestCatalogService_UpdateProduct_InvalidDiscount(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	productID := uuid.New()
	existing := &entity.Product{ID: productID, Price: 45000}
	badDiscount := int64(60000)

	fx.catalogRepo.EXPECT().FindProductByID(ctx, productID).Return(existing, nil)

	product, err := fx.service.UpdateProduct(ctx, productID, &usecase.UpdateProductInput{DiscountPrice: &badDiscount})

	assert.Error(t, err)
	assert.Nil(t, product)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestCatalogService_CreateCategory_WithParent(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	parentID := uuid.New()
	input := &usecase.CreateCategoryInput{Name: "Programming", Slug: "programming", ParentID: &parentID}

	fx.catalogRepo.EXPECT().FindCategoryByID(ctx, parentID).Return(&entity.Category{ID: parentID}, nil)
	fx.catalogRepo.EXPECT().CreateCategory(ctx, mock.AnythingOfType("*entity.Category")).Return(nil)

	category, err := fx.service.CreateCategory(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, &parentID, category.ParentID)
}

func TestCatalogService_UpdateCategory_SelfParentRejected(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	categoryID := uuid.New()
	existing := &entity.Category{ID: categoryID, Name: "Fiction"}

	fx.catalogRepo.EXPECT().FindCategoryByID(ctx, categoryID).Return(existing, nil)

	category, err := fx.service.UpdateCategory(ctx, categoryID, &usecase.UpdateCategoryInput{ParentID: &categoryID})

	assert.Error(t, err)
	assert.Nil(t, category)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestCatalogService_DeleteProduct_ReferencedProductRejected(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	productID := uuid.New()

	// The schema RESTRICTs cart and order references; the delete surfaces
	// as a conflict instead of silently emptying customer carts.
	fx.catalogRepo.EXPECT().
		DeleteProduct(ctx, productID).
		Return(domainerrors.ErrConflict.WrapMessage("product is referenced by carts or orders"))

	err := fx.service.DeleteProduct(ctx, productID)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrConflict))
}

func TestCatalogService_DeleteCategory_NotFound(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	categoryID := uuid.New()

	fx.catalogRepo.EXPECT().DeleteCategory(ctx, categoryID).Return(repository.ErrCategoryNotFound)

	err := fx.service.DeleteCategory(ctx, categoryID)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCategoryNotFound))
}

func TestCatalogService_UpdatePublisher_Success(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	publisherID := uuid.New()
	newName := "O'Reilly Media"
	existing := &entity.Publisher{ID: publisherID, Name: "OReilly", Slug: "oreilly"}

	fx.catalogRepo.EXPECT().FindPublisherByID(ctx, publisherID).Return(existing, nil)
	fx.catalogRepo.EXPECT().UpdatePublisher(ctx, mock.AnythingOfType("*entity.Publisher")).Return(nil)

	publisher, err := fx.service.UpdatePublisher(ctx, publisherID, &usecase.UpdatePublisherInput{Name: &newName})

	require.NoError(t, err)
	assert.Equal(t, newName, publisher.Name)
	assert.Equal(t, "oreilly", publisher.Slug)
}

func TestCatalogService_UploadPublisherLogo_Success(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	publisherID := uuid.New()
	existing := &entity.Publisher{ID: publisherID, Name: "OReilly"}
	input := &usecase.UploadPublisherLogoInput{
		ContentType: "image/png",
		Content:     strings.NewReader("png bytes"),
	}

	fx.catalogRepo.EXPECT().FindPublisherByID(ctx, publisherID).Return(existing, nil)
	fx.mediaStorage.EXPECT().
		Save(ctx, "publishers/"+publisherID.String()+"/logo", "image/png", input.Content).
		Return("https://media.example.com/publishers/logo.png", nil)
	fx.catalogRepo.EXPECT().UpdatePublisher(ctx, mock.AnythingOfType("*entity.Publisher")).Return(nil)

	url, err := fx.service.UploadPublisherLogo(ctx, publisherID, input)

	require.NoError(t, err)
	assert.Equal(t, "https://media.example.com/publishers/logo.png", url)
	assert.Equal(t, url, existing.LogoURL)
}
