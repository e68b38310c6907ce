package creditscore

import "context"

type Repository interface {
	Create(ctx context.Context, cs *CreditScore) error
	// Most recent snapshot for the SME; ErrNotFound-compatible error when none exists.
	LatestBySMEID(ctx context.Context, smeID string) (*CreditScore, error)
	// Newest first.
	HistoryBySMEID(ctx context.Context, smeID string) ([]CreditScore, error)
}
