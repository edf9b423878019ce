package http

import (
	"net/http"

	"communityfund-ledger/internal/usecase/repayment"

	"github.com/labstack/echo/v4"
)

type RepaymentHandler struct{ uc *repayment.Usecase }

func NewRepaymentHandler(uc *repayment.Usecase) *RepaymentHandler {
	return &RepaymentHandler{uc: uc}
}

type addRepaymentReq struct {
	RepayAmount string `json:"repay_amount" validate:"required,amount"`
	RepayDate   string `json:"repay_date"   validate:"required,datetime=2006-01-02"`
}

func (h *RepaymentHandler) AddRepayment(c echo.Context) error {
	var req addRepaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Add(c.Request().Context(), repayment.AddRepaymentInput{
		LoanID:      c.Param("loan_id"),
		RepayAmount: req.RepayAmount,
		RepayDate:   req.RepayDate,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *RepaymentHandler) UpdateRepayment(c echo.Context) error {
	var req addRepaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("repayment_id"), repayment.UpdateRepaymentInput{
		RepayAmount: req.RepayAmount,
		RepayDate:   req.RepayDate,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RepaymentHandler) DeleteRepayment(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("repayment_id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RepaymentHandler) LoanStatement(c echo.Context) error {
	st, err := h.uc.Statement(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *RepaymentHandler) LoanOutstanding(c echo.Context) error {
	out, err := h.uc.Outstanding(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"loan_id":     c.Param("loan_id"),
		"outstanding": out.StringFixed(2),
	})
}
