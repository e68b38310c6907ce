package invoicemock

import (
	"context"

	domain "sme-finance-engine/internal/domain/invoice"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in the function fields a test needs; unfilled getters return
// context.Canceled so misuse is loud.
type Repo struct {
	CreateFn                  func(ctx context.Context, i *domain.Invoice) error
	GetByInvoiceIDFn          func(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	GetByInvoiceIDForUpdateFn func(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListBySMEIDFn             func(ctx context.Context, smeID string) ([]domain.Invoice, error)
	SaveFn                    func(ctx context.Context, i *domain.Invoice) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, i *domain.Invoice) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, i)
	}
	return nil
}

func (m *Repo) GetByInvoiceID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	if m.GetByInvoiceIDFn != nil {
		return m.GetByInvoiceIDFn(ctx, invoiceID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByInvoiceIDForUpdate(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	if m.GetByInvoiceIDForUpdateFn != nil {
		return m.GetByInvoiceIDForUpdateFn(ctx, invoiceID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListBySMEID(ctx context.Context, smeID string) ([]domain.Invoice, error) {
	if m.ListBySMEIDFn != nil {
		return m.ListBySMEIDFn(ctx, smeID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, i *domain.Invoice) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, i)
	}
	return nil
}
