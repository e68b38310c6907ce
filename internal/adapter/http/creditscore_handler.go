package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	appmw "sme-finance-engine/internal/adapter/middleware"
	"sme-finance-engine/internal/domain/actor"
	"sme-finance-engine/internal/usecase/scoring"
)

type CreditScoreHandler struct{ uc *scoring.Usecase }

func NewCreditScoreHandler(uc *scoring.Usecase) *CreditScoreHandler {
	return &CreditScoreHandler{uc: uc}
}

// Assess computes and persists a fresh score snapshot for the SME. Writing
// a snapshot is restricted to the SME itself and to lenders.
func (h *CreditScoreHandler) Assess(c echo.Context) error {
	act, ok := appmw.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no authenticated actor"})
	}
	smeID := c.Param("sme_id")
	if !reHex32.MatchString(smeID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid sme_id path param"})
	}
	if !act.OwnsSME(smeID) && !act.CanDecide() {
		return writeDomainError(c, actor.ErrUnauthorized)
	}
	dto, err := h.uc.Assess(c.Request().Context(), smeID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *CreditScoreHandler) Latest(c echo.Context) error {
	smeID := c.Param("sme_id")
	if !reHex32.MatchString(smeID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid sme_id path param"})
	}
	dto, err := h.uc.Latest(c.Request().Context(), smeID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *CreditScoreHandler) History(c echo.Context) error {
	smeID := c.Param("sme_id")
	if !reHex32.MatchString(smeID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid sme_id path param"})
	}
	list, err := h.uc.History(c.Request().Context(), smeID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
