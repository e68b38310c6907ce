package uow

import (
	"context"
	"errors"

	"sme-finance-engine/internal/domain/creditscore"
	"sme-finance-engine/internal/domain/financerequest"
	"sme-finance-engine/internal/domain/invoice"
	"sme-finance-engine/internal/domain/sme"
)

// ErrPersistence marks storage-layer faults. It is the only error class a
// caller may retry automatically; business errors never wrap it.
var ErrPersistence = errors.New("persistence failure")

type Repos struct {
	SMEs     sme.Repository
	Invoices invoice.Repository
	Requests financerequest.Repository
	Scores   creditscore.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the invoice row first, then pass it in. The lock
	// serializes admit-then-submit per invoice, so two concurrent
	// submissions can never both pass the duplicate check.
	WithinInvoiceTx(ctx context.Context, invoiceID string, fn func(r Repos, inv *invoice.Invoice) error) error
}
