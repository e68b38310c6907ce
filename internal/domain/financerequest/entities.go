package financerequest

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound               = errors.New("finance request not found")
	ErrAlreadyDecided         = errors.New("finance request already decided")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvoiceNotEligible     = errors.New("invoice not eligible for financing")
	ErrDuplicateActiveRequest = errors.New("invoice already has an active finance request")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Active statuses block a second request on the same invoice.
func (s Status) Active() bool { return s == StatusPending || s == StatusApproved }

// FinanceRequest is an append-only audit record: rows are never deleted,
// and the only mutation after Create is the single pending -> decided
// transition performed by the engine. FeeRate is assigned at submission
// and never rewritten.
type FinanceRequest struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	RequestID       string           `gorm:"column:request_id;type:char(32);not null;uniqueIndex:ux_finance_requests_request_id" json:"request_id"`
	InvoiceID       string           `gorm:"column:invoice_id;type:char(32);not null;index:idx_finance_requests_invoice" json:"invoice_id"`
	SMEID           string           `gorm:"column:sme_id;type:char(32);not null;index:idx_finance_requests_sme" json:"sme_id"`
	AmountRequested decimal.Decimal  `gorm:"column:amount_requested;type:decimal(18,2);not null" json:"amount_requested"`
	FeeRate         decimal.Decimal  `gorm:"column:fee_rate;type:decimal(6,4);not null" json:"fee_rate"`
	ApprovedAmount  *decimal.Decimal `gorm:"column:approved_amount;type:decimal(18,2)" json:"approved_amount"`
	Status          Status           `gorm:"column:status;type:enum('pending','approved','rejected');default:'pending'" json:"status"`
	DecidedBy       *string          `gorm:"column:decided_by;type:char(32)" json:"decided_by"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	DecidedAt       *time.Time       `gorm:"column:decided_at" json:"decided_at"`
}

func (FinanceRequest) TableName() string { return "finance_requests" }
