package handler

import (
	"net/http"

	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orders *usecase.OrderUsecase
}

func NewOrderHandler(orders *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type checkoutRequest struct {
	Items            []usecase.CheckoutItemInput `json:"items"`
	AddressID        int64                       `json:"address_id"`
	ShippingProvider string                      `json:"shipping_provider"`
}

func (h *OrderHandler) Checkout(c echo.Context) error {
	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: usecase.CodeValidation, Error: "invalid request body"})
	}

	out, err := h.orders.Checkout(c.Request().Context(), identityFromContext(c), usecase.CheckoutInput{
		Items:            req.Items,
		AddressID:        req.AddressID,
		ShippingProvider: req.ShippingProvider,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) ListMine(c echo.Context) error {
	out, err := h.orders.ListMyOrders(c.Request().Context(), identityFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) Get(c echo.Context) error {
	out, err := h.orders.GetOrderDetail(c.Request().Context(), identityFromContext(c), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type updateStatusRequest struct {
	NewStatus string `json:"new_status"`
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: usecase.CodeValidation, Error: "invalid request body"})
	}

	out, err := h.orders.UpdateStatus(c.Request().Context(), identityFromContext(c), c.Param("id"), usecase.UpdateStatusInput{
		NewStatus: req.NewStatus,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
