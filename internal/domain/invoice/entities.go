package invoice

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("invoice not found")

type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusOverdue  Status = "overdue"
	StatusFinanced Status = "financed"
)

// Financeable reports whether the invoice may back a new finance request.
// Paid invoices have nothing left to advance against; financed ones are
// already encumbered by an approved request.
func (s Status) Financeable() bool {
	return s == StatusPending || s == StatusOverdue
}

type Invoice struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	InvoiceID  string          `gorm:"column:invoice_id;type:char(32);not null;uniqueIndex:ux_invoices_invoice_id" json:"invoice_id"`
	SMEID      string          `gorm:"column:sme_id;type:char(32);not null;index:idx_invoices_sme" json:"sme_id"`
	ClientName string          `gorm:"column:client_name;size:255;not null" json:"client_name"`
	Amount     decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	DueDate    time.Time       `gorm:"column:due_date;type:date;not null" json:"due_date"`
	Status     Status          `gorm:"column:status;type:enum('pending','paid','overdue','financed');default:'pending'" json:"status"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }
