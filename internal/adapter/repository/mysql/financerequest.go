package mysql

import (
	"context"

	requestDomain "sme-finance-engine/internal/domain/financerequest"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FinanceRequestRepository struct{ db *gorm.DB }

func NewFinanceRequestRepository(db *gorm.DB) *FinanceRequestRepository {
	return &FinanceRequestRepository{db: db}
}

func (r *FinanceRequestRepository) Create(ctx context.Context, fr *requestDomain.FinanceRequest) error {
	return r.db.WithContext(ctx).Create(fr).Error
}

func (r *FinanceRequestRepository) Save(ctx context.Context, fr *requestDomain.FinanceRequest) error {
	return r.db.WithContext(ctx).Save(fr).Error
}

func (r *FinanceRequestRepository) GetByRequestID(ctx context.Context, requestID string) (*requestDomain.FinanceRequest, error) {
	var out requestDomain.FinanceRequest
	res := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&out)
	return &out, res.Error
}

// GetByRequestIDForUpdate takes a row lock; only meaningful inside a transaction.
func (r *FinanceRequestRepository) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*requestDomain.FinanceRequest, error) {
	var out requestDomain.FinanceRequest
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("request_id = ?", requestID).
		First(&out)
	return &out, res.Error
}

func (r *FinanceRequestRepository) GetActiveByInvoiceID(ctx context.Context, invoiceID string) (*requestDomain.FinanceRequest, error) {
	var out requestDomain.FinanceRequest
	res := r.db.WithContext(ctx).
		Where("invoice_id = ? AND status IN ?", invoiceID,
			[]requestDomain.Status{requestDomain.StatusPending, requestDomain.StatusApproved}).
		Order("created_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *FinanceRequestRepository) ListBySMEID(ctx context.Context, smeID string) ([]requestDomain.FinanceRequest, error) {
	var out []requestDomain.FinanceRequest
	res := r.db.WithContext(ctx).
		Where("sme_id = ?", smeID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *FinanceRequestRepository) ListPending(ctx context.Context) ([]requestDomain.FinanceRequest, error) {
	var out []requestDomain.FinanceRequest
	res := r.db.WithContext(ctx).
		Where("status = ?", requestDomain.StatusPending).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
