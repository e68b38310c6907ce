package financing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"sme-finance-engine/internal/domain/actor"
	"sme-finance-engine/internal/domain/creditscore"
	"sme-finance-engine/internal/domain/financerequest"
	"sme-finance-engine/internal/domain/invoice"
	"sme-finance-engine/internal/domain/uow"
	"sme-finance-engine/internal/usecase/pricing"
	"sme-finance-engine/internal/usecase/scoring"
)

// Usecase is the finance request engine: the single writer-of-record for
// finance requests and the invoice-status side effect of approval.
type Usecase struct {
	requests financerequest.Repository
	uow      uow.UnitOfWork
	// a credit score older than this is re-computed at submission
	scoreMaxAge time.Duration
	log         *logrus.Logger
}

func NewUsecase(requests financerequest.Repository, tx uow.UnitOfWork, scoreMaxAge time.Duration, log *logrus.Logger) *Usecase {
	return &Usecase{requests: requests, uow: tx, scoreMaxAge: scoreMaxAge, log: log}
}

// Submit admits a request against its source invoice and persists it in
// pending state, with the fee rate fixed from the SME's current risk tier.
// The whole admit-quote-persist sequence runs under the invoice row lock.
func (u *Usecase) Submit(ctx context.Context, act actor.Actor, in SubmitInput) (*RequestDTO, error) {
	if !act.OwnsSME(in.SMEID) {
		return nil, actor.ErrUnauthorized
	}

	var dto *RequestDTO
	err := u.uow.WithinInvoiceTx(ctx, in.InvoiceID, func(r uow.Repos, inv *invoice.Invoice) error {
		draft, err := admitDraft(ctx, r.Requests, inv, in.SMEID, in.AmountRequested)
		if err != nil {
			return err
		}

		cs, err := u.currentScore(ctx, r, in.SMEID)
		if err != nil {
			return err
		}
		draft.FeeRate = pricing.Quote(cs.Rating)

		if err := r.Requests.Create(ctx, draft); err != nil {
			return fmt.Errorf("%w: %v", uow.ErrPersistence, err)
		}
		dto = toDTO(draft)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// invoice lock fetch found nothing
			return nil, invoice.ErrNotFound
		}
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"request_id": dto.RequestID,
		"invoice_id": dto.InvoiceID,
		"sme_id":     dto.SMEID,
		"fee_rate":   dto.FeeRate,
	}).Info("finance request submitted")
	return dto, nil
}

// currentScore returns the SME's latest credit score, computing and
// persisting a fresh snapshot when none exists or the latest is older
// than the configured staleness window.
func (u *Usecase) currentScore(ctx context.Context, r uow.Repos, smeID string) (*creditscore.CreditScore, error) {
	cs, err := r.Scores.LatestBySMEID(ctx, smeID)
	switch {
	case err == nil:
		if time.Since(cs.CreatedAt) <= u.scoreMaxAge {
			return cs, nil
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("%w: %v", uow.ErrPersistence, err)
	}
	return scoring.Snapshot(ctx, r, smeID)
}

// Decide transitions a pending request to approved or rejected. The row
// lock plus the pending-only guard give exactly-one-winner semantics under
// concurrent decisions; approval flips the source invoice to financed in
// the same transaction, so no reader ever sees one without the other.
func (u *Usecase) Decide(ctx context.Context, act actor.Actor, in DecideInput) (*RequestDTO, error) {
	if !act.CanDecide() {
		return nil, actor.ErrUnauthorized
	}
	if in.Outcome != OutcomeApprove && in.Outcome != OutcomeReject {
		return nil, ErrInvalidOutcome
	}

	var dto *RequestDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		fr, err := r.Requests.GetByRequestIDForUpdate(ctx, in.RequestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return financerequest.ErrNotFound
			}
			return fmt.Errorf("%w: %v", uow.ErrPersistence, err)
		}
		if fr.Status != financerequest.StatusPending {
			return financerequest.ErrAlreadyDecided
		}

		now := time.Now().UTC()
		switch in.Outcome {
		case OutcomeApprove:
			if in.ApprovedAmount == nil ||
				in.ApprovedAmount.LessThanOrEqual(decimal.Zero) ||
				in.ApprovedAmount.GreaterThan(fr.AmountRequested) {
				return financerequest.ErrInvalidAmount
			}
			inv, err := r.Invoices.GetByInvoiceIDForUpdate(ctx, fr.InvoiceID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return invoice.ErrNotFound
				}
				return fmt.Errorf("%w: %v", uow.ErrPersistence, err)
			}
			amt := *in.ApprovedAmount
			fr.Status = financerequest.StatusApproved
			fr.ApprovedAmount = &amt
			fr.DecidedBy = &act.ID
			fr.DecidedAt = &now
			inv.Status = invoice.StatusFinanced
			if err := r.Requests.Save(ctx, fr); err != nil {
				return fmt.Errorf("%w: %v", uow.ErrPersistence, err)
			}
			if err := r.Invoices.Save(ctx, inv); err != nil {
				return fmt.Errorf("%w: %v", uow.ErrPersistence, err)
			}

		case OutcomeReject:
			// rejection carries no amount and leaves the invoice free
			// for a future request
			if in.ApprovedAmount != nil {
				return financerequest.ErrInvalidAmount
			}
			fr.Status = financerequest.StatusRejected
			fr.DecidedBy = &act.ID
			fr.DecidedAt = &now
			if err := r.Requests.Save(ctx, fr); err != nil {
				return fmt.Errorf("%w: %v", uow.ErrPersistence, err)
			}
		}

		dto = toDTO(fr)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"request_id": dto.RequestID,
		"outcome":    string(in.Outcome),
		"actor_id":   act.ID,
	}).Info("finance request decided")
	return dto, nil
}

// ListBySME returns an SME's requests, newest first.
func (u *Usecase) ListBySME(ctx context.Context, smeID string) ([]RequestDTO, error) {
	list, err := u.requests.ListBySMEID(ctx, smeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", uow.ErrPersistence, err)
	}
	out := make([]RequestDTO, 0, len(list))
	for i := range list {
		out = append(out, *toDTO(&list[i]))
	}
	return out, nil
}

// ListPending returns every pending request, oldest first, for lender triage.
func (u *Usecase) ListPending(ctx context.Context) ([]RequestDTO, error) {
	list, err := u.requests.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", uow.ErrPersistence, err)
	}
	out := make([]RequestDTO, 0, len(list))
	for i := range list {
		out = append(out, *toDTO(&list[i]))
	}
	return out, nil
}
