package sme

import "context"

type Repository interface {
	Create(ctx context.Context, s *SME) error
	GetBySMEID(ctx context.Context, smeID string) (*SME, error)
	List(ctx context.Context) ([]SME, error)
}
