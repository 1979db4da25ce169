package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"bookstore/internal/delivery/http/response"
	"bookstore/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CatalogHandlerParams holds dependencies for CatalogHandler, injected by Fx.
type CatalogHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// CatalogHandler holds dependencies for catalog-related handlers.
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler.
func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Slug           string          `json:"slug" validate:"required"`
	Name           string          `json:"name" validate:"required"`
	Price          int64           `json:"price" validate:"min=0"`
	DiscountPrice  *int64          `json:"discount_price,omitempty"`
	Stock          int             `json:"stock" validate:"min=0"`
	Author         string          `json:"author"`
	Translator     string          `json:"translator"`
	Language       string          `json:"language"`
	MainTopic      string          `json:"main_topic"`
	SecondaryTopic string          `json:"secondary_topic"`
	Description    string          `json:"description"`
	More           json.RawMessage `json:"more,omitempty"`
	CategoryID     uuid.UUID       `json:"category_id" validate:"required"`
	PublisherID    uuid.UUID       `json:"publisher_id" validate:"required"`
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	Slug           *string         `json:"slug,omitempty"`
	Name           *string         `json:"name,omitempty"`
	Price          *int64          `json:"price,omitempty"`
	DiscountPrice  *int64          `json:"discount_price,omitempty"`
	ClearDiscount  bool            `json:"clear_discount,omitempty"`
	Stock          *int            `json:"stock,omitempty"`
	Author         *string         `json:"author,omitempty"`
	Translator     *string         `json:"translator,omitempty"`
	Language       *string         `json:"language,omitempty"`
	MainTopic      *string         `json:"main_topic,omitempty"`
	SecondaryTopic *string         `json:"secondary_topic,omitempty"`
	Description    *string         `json:"description,omitempty"`
	More           json.RawMessage `json:"more,omitempty"`
	CategoryID     *uuid.UUID      `json:"category_id,omitempty"`
	PublisherID    *uuid.UUID      `json:"publisher_id,omitempty"`
}

// CreateCategoryRequest represents the request body for creating a category
type CreateCategoryRequest struct {
	Name     string     `json:"name" validate:"required"`
	Slug     string     `json:"slug" validate:"required"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

// UpdateCategoryRequest represents the request body for updating a category
type UpdateCategoryRequest struct {
	Name        *string    `json:"name,omitempty"`
	Slug        *string    `json:"slug,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	ClearParent bool       `json:"clear_parent,omitempty"`
}

// CreatePublisherRequest represents the request body for creating a publisher
type CreatePublisherRequest struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description"`
}

// UpdatePublisherRequest represents the request body for updating a publisher
type UpdatePublisherRequest struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateProduct adds a book to the catalog. Staff only.
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	product, err := h.catalogUC.CreateProduct(c.Request().Context(), &usecase.CreateProductInput{
		Slug:           req.Slug,
		Name:           req.Name,
		Price:          req.Price,
		DiscountPrice:  req.DiscountPrice,
		Stock:          req.Stock,
		Author:         req.Author,
		Translator:     req.Translator,
		Language:       req.Language,
		MainTopic:      req.MainTopic,
		SecondaryTopic: req.SecondaryTopic,
		Description:    req.Description,
		More:           req.More,
		CategoryID:     req.CategoryID,
		PublisherID:    req.PublisherID,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created successfully")
}

// GetProduct returns one product by ID. Public.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	productID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.catalogUC.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product, "Product retrieved successfully")
}

// GetProductBySlug returns one product by its slug. Public.
func (h *CatalogHandler) GetProductBySlug(c echo.Context) error {
	slug := c.Param("slug")
	if slug == "" {
		return response.BadRequest(c, "INVALID_ID", "Missing product slug")
	}

	product, err := h.catalogUC.GetProductBySlug(c.Request().Context(), slug)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product, "Product retrieved successfully")
}

// ListProducts returns a filtered, paged product listing. Public.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	input := &usecase.ListProductsInput{
		Language:    c.QueryParam("language"),
		Search:      c.QueryParam("search"),
		InStockOnly: c.QueryParam("in_stock") == "true",
	}
	input.Offset, _ = strconv.Atoi(c.QueryParam("offset"))
	input.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	if raw := c.QueryParam("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_ID", "Invalid category_id parameter")
		}
		input.CategoryID = &id
	}
	if raw := c.QueryParam("publisher_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_ID", "Invalid publisher_id parameter")
		}
		input.PublisherID = &id
	}

	output, err := h.catalogUC.ListProducts(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, output, "Products retrieved successfully")
}

// UpdateProduct updates a product. Staff only.
func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	productID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	product, err := h.catalogUC.UpdateProduct(c.Request().Context(), productID, &usecase.UpdateProductInput{
		Slug:           req.Slug,
		Name:           req.Name,
		Price:          req.Price,
		DiscountPrice:  req.DiscountPrice,
		ClearDiscount:  req.ClearDiscount,
		Stock:          req.Stock,
		Author:         req.Author,
		Translator:     req.Translator,
		Language:       req.Language,
		MainTopic:      req.MainTopic,
		SecondaryTopic: req.SecondaryTopic,
		Description:    req.Description,
		More:           req.More,
		CategoryID:     req.CategoryID,
		PublisherID:    req.PublisherID,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated successfully")
}

// DeleteProduct removes a product from the catalog. Staff only.
func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	productID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalogUC.DeleteProduct(c.Request().Context(), productID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Product deleted successfully"}, "Product deleted successfully")
}

// CreateCategory adds a category node. Staff only.
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	category, err := h.catalogUC.CreateCategory(c.Request().Context(), &usecase.CreateCategoryInput{
		Name:     req.Name,
		Slug:     req.Slug,
		ParentID: req.ParentID,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, category, "Category created successfully")
}

// ListCategories returns the whole category taxonomy. Public.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalogUC.ListCategories(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, categories, "Categories retrieved successfully")
}

// UpdateCategory updates a category node. Staff only.
func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	categoryID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}

	category, err := h.catalogUC.UpdateCategory(c.Request().Context(), categoryID, &usecase.UpdateCategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		ParentID:    req.ParentID,
		ClearParent: req.ClearParent,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, category, "Category updated successfully")
}

// DeleteCategory removes an unreferenced category. Staff only.
func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	categoryID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalogUC.DeleteCategory(c.Request().Context(), categoryID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Category deleted successfully"}, "Category deleted successfully")
}

// CreatePublisher adds a publisher. Staff only.
func (h *CatalogHandler) CreatePublisher(c echo.Context) error {
	var req CreatePublisherRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid publisher input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	publisher, err := h.catalogUC.CreatePublisher(c.Request().Context(), &usecase.CreatePublisherInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, publisher, "Publisher created successfully")
}

// ListPublishers returns all publishers. Public.
func (h *CatalogHandler) ListPublishers(c echo.Context) error {
	publishers, err := h.catalogUC.ListPublishers(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, publishers, "Publishers retrieved successfully")
}

// UpdatePublisher updates a publisher. Staff only.
func (h *CatalogHandler) UpdatePublisher(c echo.Context) error {
	publisherID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req UpdatePublisherRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid publisher input")
	}

	publisher, err := h.catalogUC.UpdatePublisher(c.Request().Context(), publisherID, &usecase.UpdatePublisherInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, publisher, "Publisher updated successfully")
}

// DeletePublisher removes an unreferenced publisher. Staff only.
func (h *CatalogHandler) DeletePublisher(c echo.Context) error {
	publisherID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalogUC.DeletePublisher(c.Request().Context(), publisherID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Publisher deleted successfully"}, "Publisher deleted successfully")
}

// UploadPublisherLogo stores a publisher's logo image. Staff only.
func (h *CatalogHandler) UploadPublisherLogo(c echo.Context) error {
	publisherID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Missing logo file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Unreadable logo file")
	}
	defer file.Close()

	url, err := h.catalogUC.UploadPublisherLogo(c.Request().Context(), publisherID, &usecase.UploadPublisherLogoInput{
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     file,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"logo_url": url}, "Logo uploaded successfully")
}
