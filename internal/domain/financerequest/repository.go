package financerequest

import "context"

type Repository interface {
	Create(ctx context.Context, fr *FinanceRequest) error
	GetByRequestID(ctx context.Context, requestID string) (*FinanceRequest, error)
	// Locks the row so concurrent decisions on the same request serialize;
	// exactly one caller observes status=pending.
	GetByRequestIDForUpdate(ctx context.Context, requestID string) (*FinanceRequest, error)
	// Returns the pending or approved request on the invoice, if any.
	GetActiveByInvoiceID(ctx context.Context, invoiceID string) (*FinanceRequest, error)
	// Newest first.
	ListBySMEID(ctx context.Context, smeID string) ([]FinanceRequest, error)
	ListPending(ctx context.Context) ([]FinanceRequest, error)
	Save(ctx context.Context, fr *FinanceRequest) error
}
