package scoremock

import (
	"context"

	domain "sme-finance-engine/internal/domain/creditscore"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, cs *domain.CreditScore) error
	LatestBySMEIDFn  func(ctx context.Context, smeID string) (*domain.CreditScore, error)
	HistoryBySMEIDFn func(ctx context.Context, smeID string) ([]domain.CreditScore, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, cs *domain.CreditScore) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, cs)
	}
	return nil
}

func (m *Repo) LatestBySMEID(ctx context.Context, smeID string) (*domain.CreditScore, error) {
	if m.LatestBySMEIDFn != nil {
		return m.LatestBySMEIDFn(ctx, smeID)
	}
	return nil, context.Canceled
}

func (m *Repo) HistoryBySMEID(ctx context.Context, smeID string) ([]domain.CreditScore, error) {
	if m.HistoryBySMEIDFn != nil {
		return m.HistoryBySMEIDFn(ctx, smeID)
	}
	return nil, context.Canceled
}
