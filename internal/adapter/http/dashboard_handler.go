package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sme-finance-engine/internal/usecase/reporting"
)

type DashboardHandler struct{ uc *reporting.Usecase }

func NewDashboardHandler(uc *reporting.Usecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) Summary(c echo.Context) error {
	smeID := c.Param("sme_id")
	if !reHex32.MatchString(smeID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid sme_id path param"})
	}
	summary, err := h.uc.DashboardSummary(c.Request().Context(), smeID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// AvailableSMEs is the lender browsing view: SMEs with financeable
// invoices, ranked by latest credit score.
func (h *DashboardHandler) AvailableSMEs(c echo.Context) error {
	list, err := h.uc.AvailableSMEs(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
