package mysql

import (
	"context"

	invoiceDomain "sme-finance-engine/internal/domain/invoice"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvoiceRepository struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository { return &InvoiceRepository{db: db} }

func (r *InvoiceRepository) Create(ctx context.Context, i *invoiceDomain.Invoice) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *InvoiceRepository) Save(ctx context.Context, i *invoiceDomain.Invoice) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *InvoiceRepository) GetByInvoiceID(ctx context.Context, invoiceID string) (*invoiceDomain.Invoice, error) {
	var out invoiceDomain.Invoice
	res := r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).First(&out)
	return &out, res.Error
}

// GetByInvoiceIDForUpdate takes a row lock; only meaningful inside a transaction.
func (r *InvoiceRepository) GetByInvoiceIDForUpdate(ctx context.Context, invoiceID string) (*invoiceDomain.Invoice, error) {
	var out invoiceDomain.Invoice
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("invoice_id = ?", invoiceID).
		First(&out)
	return &out, res.Error
}

func (r *InvoiceRepository) ListBySMEID(ctx context.Context, smeID string) ([]invoiceDomain.Invoice, error) {
	var out []invoiceDomain.Invoice
	res := r.db.WithContext(ctx).
		Where("sme_id = ?", smeID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}
