package requestmock

import (
	"context"

	domain "sme-finance-engine/internal/domain/financerequest"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                  func(ctx context.Context, fr *domain.FinanceRequest) error
	GetByRequestIDFn          func(ctx context.Context, requestID string) (*domain.FinanceRequest, error)
	GetByRequestIDForUpdateFn func(ctx context.Context, requestID string) (*domain.FinanceRequest, error)
	GetActiveByInvoiceIDFn    func(ctx context.Context, invoiceID string) (*domain.FinanceRequest, error)
	ListBySMEIDFn             func(ctx context.Context, smeID string) ([]domain.FinanceRequest, error)
	ListPendingFn             func(ctx context.Context) ([]domain.FinanceRequest, error)
	SaveFn                    func(ctx context.Context, fr *domain.FinanceRequest) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, fr *domain.FinanceRequest) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, fr)
	}
	return nil
}

func (m *Repo) GetByRequestID(ctx context.Context, requestID string) (*domain.FinanceRequest, error) {
	if m.GetByRequestIDFn != nil {
		return m.GetByRequestIDFn(ctx, requestID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*domain.FinanceRequest, error) {
	if m.GetByRequestIDForUpdateFn != nil {
		return m.GetByRequestIDForUpdateFn(ctx, requestID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetActiveByInvoiceID(ctx context.Context, invoiceID string) (*domain.FinanceRequest, error) {
	if m.GetActiveByInvoiceIDFn != nil {
		return m.GetActiveByInvoiceIDFn(ctx, invoiceID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListBySMEID(ctx context.Context, smeID string) ([]domain.FinanceRequest, error) {
	if m.ListBySMEIDFn != nil {
		return m.ListBySMEIDFn(ctx, smeID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListPending(ctx context.Context) ([]domain.FinanceRequest, error) {
	if m.ListPendingFn != nil {
		return m.ListPendingFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, fr *domain.FinanceRequest) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, fr)
	}
	return nil
}
