package http

import (
	"errors"
	"net/http"

	"communityfund-ledger/internal/domain/fund"
	"communityfund-ledger/internal/domain/loan"
	"communityfund-ledger/internal/domain/repayment"

	"github.com/labstack/echo/v4"
)

// respondDomainError maps domain errors to HTTP responses in one place so the
// handlers stay thin. Financial failures carry the computed shortfall/maximum
// for the caller to surface.
func respondDomainError(c echo.Context, err error) error {
	var ve *loan.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: ve.Field, Message: ve.Reason}},
		})
	}
	var ife *fund.InsufficientFundsError
	if errors.As(err, &ife) {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"error":     "insufficient funds",
			"required":  ife.Required.StringFixed(2),
			"available": ife.Available.StringFixed(2),
		})
	}
	var ele *repayment.ExceedsLoanAmountError
	if errors.As(err, &ele) {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"error": "repayment exceeds loan amount",
			"max":   ele.Max.StringFixed(2),
		})
	}
	switch {
	case errors.Is(err, loan.ErrNotFound), errors.Is(err, repayment.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, loan.ErrDuplicateID):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "loan id already exists"})
	case errors.Is(err, fund.ErrLedgerUnavailable):
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "contribution ledger unavailable"})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
