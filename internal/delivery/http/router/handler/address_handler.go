package handler

import (
	"log/slog"
	"net/http"

	"bookstore/internal/delivery/http/response"
	"bookstore/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AddressHandlerParams holds dependencies for AddressHandler, injected by Fx.
type AddressHandlerParams struct {
	fx.In

	AddressUC usecase.AddressUsecase
	Logger    *slog.Logger
}

// AddressHandler holds dependencies for address-related handlers.
type AddressHandler struct {
	addressUC usecase.AddressUsecase
	logger    *slog.Logger
}

// NewAddressHandler is the constructor for AddressHandler.
func NewAddressHandler(params AddressHandlerParams) *AddressHandler {
	return &AddressHandler{
		addressUC: params.AddressUC,
		logger:    params.Logger,
	}
}

// CreateAddressRequest represents the request body for creating an address
type CreateAddressRequest struct {
	Recipient  string `json:"recipient" validate:"required"`
	Province   string `json:"province" validate:"required"`
	City       string `json:"city" validate:"required"`
	Street     string `json:"street" validate:"required"`
	PostalCode string `json:"postal_code"`
	IsDefault  bool   `json:"is_default"`
}

// UpdateAddressRequest represents the request body for updating an address
type UpdateAddressRequest struct {
	Recipient  *string `json:"recipient,omitempty"`
	Province   *string `json:"province,omitempty"`
	City       *string `json:"city,omitempty"`
	Street     *string `json:"street,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
	IsDefault  *bool   `json:"is_default,omitempty"`
}

// CreateAddress adds a shipping address to the authenticated user.
func (h *AddressHandler) CreateAddress(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var req CreateAddressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid address input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	address, err := h.addressUC.CreateAddress(c.Request().Context(), userID, &usecase.CreateAddressInput{
		Recipient:  req.Recipient,
		Province:   req.Province,
		City:       req.City,
		Street:     req.Street,
		PostalCode: req.PostalCode,
		IsDefault:  req.IsDefault,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, address, "Address created successfully")
}

// ListAddresses returns the authenticated user's addresses, default first.
func (h *AddressHandler) ListAddresses(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	addresses, err := h.addressUC.ListAddresses(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, addresses, "Addresses retrieved successfully")
}

// GetAddress returns one of the authenticated user's addresses.
func (h *AddressHandler) GetAddress(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	addressID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	address, err := h.addressUC.GetAddress(c.Request().Context(), userID, addressID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, address, "Address retrieved successfully")
}

// UpdateAddress updates one of the authenticated user's addresses.
func (h *AddressHandler) UpdateAddress(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	addressID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateAddressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid address input")
	}

	address, err := h.addressUC.UpdateAddress(c.Request().Context(), userID, addressID, &usecase.UpdateAddressInput{
		Recipient:  req.Recipient,
		Province:   req.Province,
		City:       req.City,
		Street:     req.Street,
		PostalCode: req.PostalCode,
		IsDefault:  req.IsDefault,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, address, "Address updated successfully")
}

// DeleteAddress removes one of the authenticated user's addresses.
func (h *AddressHandler) DeleteAddress(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	addressID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.addressUC.DeleteAddress(c.Request().Context(), userID, addressID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Address deleted successfully"}, "Address deleted successfully")
}

// SetDefaultAddress marks one address as the user's checkout default.
func (h *AddressHandler) SetDefaultAddress(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	addressID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.addressUC.SetDefaultAddress(c.Request().Context(), userID, addressID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Default address updated successfully"}, "Default address updated successfully")
}
