package mysql

import (
	"context"

	scoreDomain "sme-finance-engine/internal/domain/creditscore"

	"gorm.io/gorm"
)

type CreditScoreRepository struct{ db *gorm.DB }

func NewCreditScoreRepository(db *gorm.DB) *CreditScoreRepository {
	return &CreditScoreRepository{db: db}
}

func (r *CreditScoreRepository) Create(ctx context.Context, cs *scoreDomain.CreditScore) error {
	return r.db.WithContext(ctx).Create(cs).Error
}

func (r *CreditScoreRepository) LatestBySMEID(ctx context.Context, smeID string) (*scoreDomain.CreditScore, error) {
	var out scoreDomain.CreditScore
	res := r.db.WithContext(ctx).
		Where("sme_id = ?", smeID).
		Order("created_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *CreditScoreRepository) HistoryBySMEID(ctx context.Context, smeID string) ([]scoreDomain.CreditScore, error) {
	var out []scoreDomain.CreditScore
	res := r.db.WithContext(ctx).
		Where("sme_id = ?", smeID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}
