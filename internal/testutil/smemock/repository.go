package smemock

import (
	"context"

	domain "sme-finance-engine/internal/domain/sme"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn     func(ctx context.Context, s *domain.SME) error
	GetBySMEIDFn func(ctx context.Context, smeID string) (*domain.SME, error)
	ListFn       func(ctx context.Context) ([]domain.SME, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, s *domain.SME) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}

func (m *Repo) GetBySMEID(ctx context.Context, smeID string) (*domain.SME, error) {
	if m.GetBySMEIDFn != nil {
		return m.GetBySMEIDFn(ctx, smeID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context) ([]domain.SME, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}
