package http

import (
	"net/http"

	"communityfund-ledger/internal/usecase/fund"

	"github.com/labstack/echo/v4"
)

type FundHandler struct{ uc *fund.Usecase }

func NewFundHandler(uc *fund.Usecase) *FundHandler { return &FundHandler{uc: uc} }

func (h *FundHandler) FundStatus(c echo.Context) error {
	p, err := h.uc.Status(c.Request().Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"total_available": p.TotalAvailable.StringFixed(2),
		"total_allocated": p.TotalAllocated.StringFixed(2),
		"available":       p.Available().StringFixed(2),
		"last_updated":    p.LastUpdated.UTC().Format("2006-01-02 15:04:05"),
	})
}

// RefreshFunds re-reads the net verified total from the contribution ledger.
func (h *FundHandler) RefreshFunds(c echo.Context) error {
	p, err := h.uc.Refresh(c.Request().Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"total_available": p.TotalAvailable.StringFixed(2),
		"total_allocated": p.TotalAllocated.StringFixed(2),
		"available":       p.Available().StringFixed(2),
		"last_updated":    p.LastUpdated.UTC().Format("2006-01-02 15:04:05"),
	})
}
