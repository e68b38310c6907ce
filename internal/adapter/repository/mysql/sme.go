package mysql

import (
	"context"

	smeDomain "sme-finance-engine/internal/domain/sme"

	"gorm.io/gorm"
)

type SMERepository struct{ db *gorm.DB }

func NewSMERepository(db *gorm.DB) *SMERepository { return &SMERepository{db: db} }

func (r *SMERepository) Create(ctx context.Context, s *smeDomain.SME) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SMERepository) GetBySMEID(ctx context.Context, smeID string) (*smeDomain.SME, error) {
	var out smeDomain.SME
	res := r.db.WithContext(ctx).Where("sme_id = ?", smeID).First(&out)
	return &out, res.Error
}

func (r *SMERepository) List(ctx context.Context) ([]smeDomain.SME, error) {
	var out []smeDomain.SME
	res := r.db.WithContext(ctx).Order("sme_id ASC").Find(&out)
	return out, res.Error
}
