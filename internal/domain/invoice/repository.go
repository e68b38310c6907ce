package invoice

import "context"

type Repository interface {
	Create(ctx context.Context, i *Invoice) error
	GetByInvoiceID(ctx context.Context, invoiceID string) (*Invoice, error)
	// Locks the row for the duration of the surrounding transaction;
	// the admit-then-submit sequence serializes on this lock.
	GetByInvoiceIDForUpdate(ctx context.Context, invoiceID string) (*Invoice, error)
	ListBySMEID(ctx context.Context, smeID string) ([]Invoice, error)
	Save(ctx context.Context, i *Invoice) error
}
