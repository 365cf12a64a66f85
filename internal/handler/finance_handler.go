package handler

import (
	"net/http"
	"strconv"

	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

type FinanceHandler struct {
	finance *usecase.FinanceUsecase
}

func NewFinanceHandler(finance *usecase.FinanceUsecase) *FinanceHandler {
	return &FinanceHandler{finance: finance}
}

func (h *FinanceHandler) GetBalance(c echo.Context) error {
	out, err := h.finance.GetBalance(c.Request().Context(), identityFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type withdrawalRequest struct {
	Amount          int64  `json:"amount"`
	BankAccountInfo string `json:"bank_account_info"`
}

func (h *FinanceHandler) RequestWithdrawal(c echo.Context) error {
	var req withdrawalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: usecase.CodeValidation, Error: "invalid request body"})
	}

	out, err := h.finance.RequestWithdrawal(c.Request().Context(), identityFromContext(c), usecase.WithdrawalInput{
		Amount:          req.Amount,
		BankAccountInfo: req.BankAccountInfo,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

type processWithdrawalRequest struct {
	NewStatus string `json:"new_status"`
}

func (h *FinanceHandler) ProcessWithdrawal(c echo.Context) error {
	withdrawalID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: usecase.CodeValidation, Error: "invalid id"})
	}

	var req processWithdrawalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: usecase.CodeValidation, Error: "invalid request body"})
	}

	out, err := h.finance.ProcessWithdrawal(c.Request().Context(), identityFromContext(c), withdrawalID, usecase.ProcessWithdrawalInput{
		NewStatus: req.NewStatus,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FinanceHandler) ListMyWithdrawals(c echo.Context) error {
	out, err := h.finance.ListMyWithdrawals(c.Request().Context(), identityFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FinanceHandler) ListMyTransactions(c echo.Context) error {
	out, err := h.finance.ListMyTransactions(c.Request().Context(), identityFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
