package handler

import (
	"net/http"
	"strconv"

	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AddressHandler struct {
	addresses *usecase.AddressUsecase
}

func NewAddressHandler(addresses *usecase.AddressUsecase) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

type addressRequest struct {
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	IsPrimary   bool   `json:"is_primary"`
}

func (h *AddressHandler) Create(c echo.Context) error {
	var req addressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: usecase.CodeValidation, Error: "invalid request body"})
	}

	out, err := h.addresses.Create(c.Request().Context(), identityFromContext(c), usecase.AddressInput{
		AddressLine: req.AddressLine,
		City:        req.City,
		PostalCode:  req.PostalCode,
		IsPrimary:   req.IsPrimary,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AddressHandler) List(c echo.Context) error {
	out, err := h.addresses.List(c.Request().Context(), identityFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AddressHandler) Update(c echo.Context) error {
	addressID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: usecase.CodeValidation, Error: "invalid id"})
	}

	var req addressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: usecase.CodeValidation, Error: "invalid request body"})
	}

	out, err := h.addresses.Update(c.Request().Context(), identityFromContext(c), addressID, usecase.AddressInput{
		AddressLine: req.AddressLine,
		City:        req.City,
		PostalCode:  req.PostalCode,
		IsPrimary:   req.IsPrimary,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
