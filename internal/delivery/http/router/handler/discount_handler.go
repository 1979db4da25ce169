package handler

import (
	"log/slog"
	"net/http"
	"time"

	"bookstore/internal/delivery/http/response"
	"bookstore/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DiscountHandlerParams holds dependencies for DiscountHandler, injected by Fx.
type DiscountHandlerParams struct {
	fx.In

	DiscountUC usecase.DiscountUsecase
	Logger     *slog.Logger
}

// DiscountHandler holds dependencies for discount-related handlers.
type DiscountHandler struct {
	discountUC usecase.DiscountUsecase
	logger     *slog.Logger
}

// NewDiscountHandler is the constructor for DiscountHandler.
func NewDiscountHandler(params DiscountHandlerParams) *DiscountHandler {
	return &DiscountHandler{
		discountUC: params.DiscountUC,
		logger:     params.Logger,
	}
}

// CreateDiscountRequest represents the request body for creating a discount code
type CreateDiscountRequest struct {
	Code              string    `json:"code" validate:"required"`
	Amount            int64     `json:"amount" validate:"required,min=1"`
	UsageLimitPerUser int       `json:"usage_limit_per_user" validate:"required,min=1"`
	IsActive          bool      `json:"is_active"`
	Start             time.Time `json:"start" validate:"required"`
	End               time.Time `json:"end" validate:"required"`
}

// UpdateDiscountRequest represents the request body for updating a discount code
type UpdateDiscountRequest struct {
	Amount            *int64     `json:"amount,omitempty"`
	UsageLimitPerUser *int       `json:"usage_limit_per_user,omitempty"`
	IsActive          *bool      `json:"is_active,omitempty"`
	Start             *time.Time `json:"start,omitempty"`
	End               *time.Time `json:"end,omitempty"`
}

// ApplyDiscountRequest represents the request body for applying a code to the cart
type ApplyDiscountRequest struct {
	Code string `json:"code" validate:"required"`
}

// CreateDiscount creates a discount code. Admin only.
func (h *DiscountHandler) CreateDiscount(c echo.Context) error {
	var req CreateDiscountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid discount input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	discount, err := h.discountUC.CreateDiscount(c.Request().Context(), &usecase.CreateDiscountInput{
		Code:              req.Code,
		Amount:            req.Amount,
		UsageLimitPerUser: req.UsageLimitPerUser,
		IsActive:          req.IsActive,
		Start:             req.Start,
		End:               req.End,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, discount, "Discount created successfully")
}

// ListDiscounts returns all discount codes. Admin only.
func (h *DiscountHandler) ListDiscounts(c echo.Context) error {
	discounts, err := h.discountUC.ListDiscounts(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, discounts, "Discounts retrieved successfully")
}

// GetDiscount returns one discount code. Admin only.
func (h *DiscountHandler) GetDiscount(c echo.Context) error {
	discountID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	discount, err := h.discountUC.GetDiscount(c.Request().Context(), discountID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, discount, "Discount retrieved successfully")
}

// UpdateDiscount updates a discount code. Admin only.
func (h *DiscountHandler) UpdateDiscount(c echo.Context) error {
	discountID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateDiscountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid discount input")
	}

	discount, err := h.discountUC.UpdateDiscount(c.Request().Context(), discountID, &usecase.UpdateDiscountInput{
		Amount:            req.Amount,
		UsageLimitPerUser: req.UsageLimitPerUser,
		IsActive:          req.IsActive,
		Start:             req.Start,
		End:               req.End,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, discount, "Discount updated successfully")
}

// DeleteDiscount removes a discount code. Admin only.
func (h *DiscountHandler) DeleteDiscount(c echo.Context) error {
	discountID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.discountUC.DeleteDiscount(c.Request().Context(), discountID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Discount deleted successfully"}, "Discount deleted successfully")
}

// ApplyDiscount applies a code to the authenticated user's cart.
func (h *DiscountHandler) ApplyDiscount(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var req ApplyDiscountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid discount input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	cart, err := h.discountUC.ApplyToCart(c.Request().Context(), userID, &usecase.ApplyDiscountInput{
		Code: req.Code,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, cart, "Discount applied successfully")
}

// RemoveDiscount detaches the applied code from the authenticated user's cart.
func (h *DiscountHandler) RemoveDiscount(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	cart, err := h.discountUC.RemoveFromCart(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, cart, "Discount removed successfully")
}
