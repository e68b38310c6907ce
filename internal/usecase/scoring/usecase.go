package scoring

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"sme-finance-engine/internal/domain/creditscore"
	"sme-finance-engine/internal/domain/sme"
	"sme-finance-engine/internal/domain/uow"
	"sme-finance-engine/pkg/id"
)

type Usecase struct {
	scores creditscore.Repository
	uow    uow.UnitOfWork
	log    *logrus.Logger
}

// NewUsecase: the read repo serves Latest/History; the UoW serves Assess.
func NewUsecase(scores creditscore.Repository, tx uow.UnitOfWork, log *logrus.Logger) *Usecase {
	return &Usecase{scores: scores, uow: tx, log: log}
}

// Snapshot computes a fresh score for the SME from its current invoice
// history and persists it as a new immutable row, all through the repos of
// the surrounding transaction. The finance engine calls this under its
// submit transaction when the latest score is missing or stale.
func Snapshot(ctx context.Context, r uow.Repos, smeID string) (*creditscore.CreditScore, error) {
	s, err := r.SMEs.GetBySMEID(ctx, smeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sme.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", uow.ErrPersistence, err)
	}
	invoices, err := r.Invoices.ListBySMEID(ctx, smeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", uow.ErrPersistence, err)
	}

	score, rating := ComputeScore(BuildInputs(s, invoices))
	cs := &creditscore.CreditScore{
		ScoreID: id.NewID32(),
		SMEID:   smeID,
		Score:   score,
		Rating:  rating,
	}
	if err := r.Scores.Create(ctx, cs); err != nil {
		return nil, fmt.Errorf("%w: %v", uow.ErrPersistence, err)
	}
	return cs, nil
}

func (u *Usecase) Assess(ctx context.Context, smeID string) (*ScoreDTO, error) {
	var dto *ScoreDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		cs, err := Snapshot(ctx, r, smeID)
		if err != nil {
			return err
		}
		dto = toDTO(cs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.WithFields(logrus.Fields{"sme_id": smeID, "score": dto.Score, "rating": dto.Rating}).
		Info("credit score assessed")
	return dto, nil
}

func (u *Usecase) Latest(ctx context.Context, smeID string) (*ScoreDTO, error) {
	cs, err := u.scores.LatestBySMEID(ctx, smeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, creditscore.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", uow.ErrPersistence, err)
	}
	return toDTO(cs), nil
}

func (u *Usecase) History(ctx context.Context, smeID string) ([]ScoreDTO, error) {
	history, err := u.scores.HistoryBySMEID(ctx, smeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", uow.ErrPersistence, err)
	}
	out := make([]ScoreDTO, 0, len(history))
	for i := range history {
		out = append(out, *toDTO(&history[i]))
	}
	return out, nil
}
