package financing

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"sme-finance-engine/internal/domain/financerequest"
)

var ErrInvalidOutcome = errors.New("outcome must be approve or reject")

type Outcome string

const (
	OutcomeApprove Outcome = "approve"
	OutcomeReject  Outcome = "reject"
)

type SubmitInput struct {
	InvoiceID       string
	SMEID           string
	AmountRequested decimal.Decimal
}

type DecideInput struct {
	RequestID      string
	Outcome        Outcome
	ApprovedAmount *decimal.Decimal
}

type RequestDTO struct {
	RequestID       string           `json:"request_id"`
	InvoiceID       string           `json:"invoice_id"`
	SMEID           string           `json:"sme_id"`
	AmountRequested decimal.Decimal  `json:"amount_requested"`
	FeeRate         decimal.Decimal  `json:"fee_rate"`
	ApprovedAmount  *decimal.Decimal `json:"approved_amount"`
	Status          string           `json:"status"`
	DecidedBy       *string          `json:"decided_by"`
	CreatedAt       time.Time        `json:"created_at"`
	DecidedAt       *time.Time       `json:"decided_at"`
}

func toDTO(fr *financerequest.FinanceRequest) *RequestDTO {
	return &RequestDTO{
		RequestID:       fr.RequestID,
		InvoiceID:       fr.InvoiceID,
		SMEID:           fr.SMEID,
		AmountRequested: fr.AmountRequested,
		FeeRate:         fr.FeeRate,
		ApprovedAmount:  fr.ApprovedAmount,
		Status:          string(fr.Status),
		DecidedBy:       fr.DecidedBy,
		CreatedAt:       fr.CreatedAt,
		DecidedAt:       fr.DecidedAt,
	}
}
