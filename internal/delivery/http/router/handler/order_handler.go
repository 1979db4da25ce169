package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"bookstore/internal/delivery/http/response"
	"bookstore/internal/domain/entity"
	"bookstore/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler holds dependencies for order-related handlers.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler.
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// CheckoutRequest represents the request body for placing an order
type CheckoutRequest struct {
	AddressID uuid.UUID `json:"address_id" validate:"required"`
}

// UpdateOrderStatusRequest represents the request body for a lifecycle transition
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ShipOrderRequest represents the request body for recording a shipment
type ShipOrderRequest struct {
	CompanyName  string     `json:"company_name" validate:"required"`
	TrackingCode string     `json:"tracking_code" validate:"required"`
	SendDate     *time.Time `json:"send_date,omitempty"`
}

// Checkout turns the authenticated user's cart into a pending order.
func (h *OrderHandler) Checkout(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	order, err := h.orderUC.Checkout(c.Request().Context(), userID, &usecase.CheckoutInput{
		AddressID: req.AddressID,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, order, "Order placed successfully")
}

// GetOrder returns one of the authenticated user's orders.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), userID, orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "Order retrieved successfully")
}

// ListMyOrders returns a page of the authenticated user's orders.
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	output, err := h.orderUC.ListMyOrders(c.Request().Context(), userID, offset, limit)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, output, "Orders retrieved successfully")
}

// CancelOrder cancels one of the authenticated user's unshipped orders.
func (h *OrderHandler) CancelOrder(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orderUC.CancelOrder(c.Request().Context(), userID, orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "Order canceled successfully")
}

// ListOrders returns a filtered page across all orders. Admin only.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	input := &usecase.ListOrdersInput{
		Status: entity.OrderStatus(c.QueryParam("status")),
	}
	input.Offset, _ = strconv.Atoi(c.QueryParam("offset"))
	input.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	if raw := c.QueryParam("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_ID", "Invalid user_id parameter")
		}
		input.UserID = &id
	}

	output, err := h.orderUC.ListOrders(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, output, "Orders retrieved successfully")
}

// UpdateOrderStatus moves an order one step through its lifecycle. Admin only.
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	order, err := h.orderUC.UpdateOrderStatus(c.Request().Context(), orderID, &usecase.UpdateOrderStatusInput{
		Status: entity.OrderStatus(req.Status),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated successfully")
}

// ShipOrder records the shipment metadata and marks the order shipped. Admin only.
func (h *OrderHandler) ShipOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req ShipOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shipment input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	order, err := h.orderUC.ShipOrder(c.Request().Context(), orderID, &usecase.ShipOrderInput{
		CompanyName:  req.CompanyName,
		TrackingCode: req.TrackingCode,
		SendDate:     req.SendDate,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order, "Order shipped successfully")
}
