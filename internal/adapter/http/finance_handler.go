package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	appmw "sme-finance-engine/internal/adapter/middleware"
	"sme-finance-engine/internal/domain/uow"
	"sme-finance-engine/internal/telemetry"
	"sme-finance-engine/internal/usecase/financing"
)

// failureOutcome keeps retryable storage faults out of the business-rejection
// buckets on the operation counters.
func failureOutcome(err error, business string) string {
	if errors.Is(err, uow.ErrPersistence) {
		return "error"
	}
	return business
}

type FinanceHandler struct {
	uc      *financing.Usecase
	metrics *telemetry.Metrics
}

func NewFinanceHandler(uc *financing.Usecase, m *telemetry.Metrics) *FinanceHandler {
	return &FinanceHandler{uc: uc, metrics: m}
}

type submitRequestReq struct {
	InvoiceID       string  `json:"invoice_id"       validate:"required,hex32"`
	SMEID           string  `json:"sme_id"           validate:"required,hex32"`
	AmountRequested float64 `json:"amount_requested" validate:"required,gt=0,dec2"`
}

type decideRequestReq struct {
	Outcome        string   `json:"outcome"         validate:"required,oneof=approve reject"`
	ApprovedAmount *float64 `json:"approved_amount" validate:"omitempty,gt=0,dec2"`
}

func (h *FinanceHandler) SubmitRequest(c echo.Context) error {
	act, ok := appmw.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no authenticated actor"})
	}
	var req submitRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Submit(c.Request().Context(), act, financing.SubmitInput{
		InvoiceID:       req.InvoiceID,
		SMEID:           req.SMEID,
		AmountRequested: decimal.NewFromFloat(req.AmountRequested),
	})
	if err != nil {
		h.metrics.Submissions.WithLabelValues(failureOutcome(err, "rejected")).Inc()
		return writeDomainError(c, err)
	}
	h.metrics.Submissions.WithLabelValues("accepted").Inc()
	return c.JSON(http.StatusCreated, dto)
}

func (h *FinanceHandler) DecideRequest(c echo.Context) error {
	act, ok := appmw.ActorFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "no authenticated actor"})
	}
	requestID := c.Param("request_id")
	if !reHex32.MatchString(requestID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request_id path param"})
	}
	var req decideRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	in := financing.DecideInput{
		RequestID: requestID,
		Outcome:   financing.Outcome(req.Outcome),
	}
	if req.ApprovedAmount != nil {
		amt := decimal.NewFromFloat(*req.ApprovedAmount)
		in.ApprovedAmount = &amt
	}

	dto, err := h.uc.Decide(c.Request().Context(), act, in)
	if err != nil {
		h.metrics.Decisions.WithLabelValues(failureOutcome(err, "failed")).Inc()
		return writeDomainError(c, err)
	}
	h.metrics.Decisions.WithLabelValues(dto.Status).Inc()
	return c.JSON(http.StatusOK, dto)
}

func (h *FinanceHandler) ListBySME(c echo.Context) error {
	smeID := c.Param("sme_id")
	if !reHex32.MatchString(smeID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid sme_id path param"})
	}
	list, err := h.uc.ListBySME(c.Request().Context(), smeID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *FinanceHandler) ListPending(c echo.Context) error {
	list, err := h.uc.ListPending(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
