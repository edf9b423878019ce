package http

import (
	"net/http"

	"communityfund-ledger/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	ApplicantName   string `json:"applicant_name"   validate:"required"`
	GroupName       string `json:"group_name"       validate:"required"`
	Purpose         string `json:"purpose"          validate:"required"`
	LoanAmount      string `json:"loan_amount"      validate:"required,amount"`
	DurationMonths  string `json:"duration_months"  validate:"required"`
	InterestRate    string `json:"interest_rate"    validate:"required,amount"`
	Status          string `json:"status"           validate:"omitempty,oneof=Pending Approved Rejected"`
	RejectionReason string `json:"rejection_reason"`
	ApprovedDate    string `json:"approved_date"    validate:"omitempty,datetime=2006-01-02"`
}

type updateLoanReq struct {
	ApplicantName   string `json:"applicant_name"   validate:"required"`
	GroupName       string `json:"group_name"       validate:"required"`
	Purpose         string `json:"purpose"          validate:"required"`
	LoanAmount      string `json:"loan_amount"      validate:"required,amount"`
	DurationMonths  string `json:"duration_months"  validate:"required"`
	InterestRate    string `json:"interest_rate"    validate:"required,amount"`
	Status          string `json:"status"           validate:"omitempty,oneof=Pending Approved Rejected"`
	RejectionReason string `json:"rejection_reason"`
}

type transitionReq struct {
	Status          string `json:"status"           validate:"required,oneof=Pending Approved Rejected"`
	RejectionReason string `json:"rejection_reason"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), loan.CreateLoanInput(req))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	dtos, err := h.uc.List(c.Request().Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *LoanHandler) UpdateLoan(c echo.Context) error {
	var req updateLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("loan_id"), loan.UpdateLoanInput(req))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) TransitionLoan(c echo.Context) error {
	var req transitionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Transition(c.Request().Context(), c.Param("loan_id"), req.Status, req.RejectionReason)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) DeleteLoan(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("loan_id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LoanHandler) LoanSummary(c echo.Context) error {
	s, err := h.uc.Summary(c.Request().Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}
