package reporting

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sme-finance-engine/internal/domain/creditscore"
	"sme-finance-engine/internal/domain/financerequest"
	"sme-finance-engine/internal/domain/invoice"
	"sme-finance-engine/internal/domain/sme"
	"sme-finance-engine/internal/domain/uow"
)

// Usecase derives dashboard metrics by folding over persisted state.
// Read-only: it never mutates anything, and reads run outside the engine's
// transactions, so they see the pre- or post-transition state of a request
// but never a torn mix.
type Usecase struct {
	smes     sme.Repository
	invoices invoice.Repository
	requests financerequest.Repository
	scores   creditscore.Repository
}

func NewUsecase(smes sme.Repository, invoices invoice.Repository, requests financerequest.Repository, scores creditscore.Repository) *Usecase {
	return &Usecase{smes: smes, invoices: invoices, requests: requests, scores: scores}
}

// OutstandingBalance sums the face amounts of invoices not yet paid or
// financed.
func (u *Usecase) OutstandingBalance(ctx context.Context, smeID string) (decimal.Decimal, error) {
	invoices, err := u.invoices.ListBySMEID(ctx, smeID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", uow.ErrPersistence, err)
	}
	return outstanding(invoices), nil
}

func outstanding(invoices []invoice.Invoice) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range invoices {
		if inv.Status == invoice.StatusPaid || inv.Status == invoice.StatusFinanced {
			continue
		}
		total = total.Add(inv.Amount)
	}
	return total
}

func (u *Usecase) DashboardSummary(ctx context.Context, smeID string) (*DashboardSummary, error) {
	if _, err := u.smes.GetBySMEID(ctx, smeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sme.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", uow.ErrPersistence, err)
	}

	invoices, err := u.invoices.ListBySMEID(ctx, smeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", uow.ErrPersistence, err)
	}
	requests, err := u.requests.ListBySMEID(ctx, smeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", uow.ErrPersistence, err)
	}

	summary := &DashboardSummary{
		SMEID:               smeID,
		InvoiceCount:        len(invoices),
		OutstandingBalance:  outstanding(invoices),
		FinanceRequestCount: len(requests),
		InvoicesByStatus:    map[string]int{},
		RequestsByStatus:    map[string]int{},
	}
	for _, inv := range invoices {
		summary.InvoicesByStatus[string(inv.Status)]++
	}
	for _, fr := range requests {
		summary.RequestsByStatus[string(fr.Status)]++
	}

	latest, err := u.scores.LatestBySMEID(ctx, smeID)
	switch {
	case err == nil:
		score := latest.Score
		rating := string(latest.Rating)
		summary.LatestCreditScore = &score
		summary.LatestCreditRating = &rating
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("%w: %v", uow.ErrPersistence, err)
	}

	return summary, nil
}

// AvailableSMEs lists SMEs with at least one invoice still open to
// financing, joined with their latest credit score, ranked best score
// first with ties broken by SME id ascending so the ordering is stable.
func (u *Usecase) AvailableSMEs(ctx context.Context) ([]SMEFinanceView, error) {
	smes, err := u.smes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", uow.ErrPersistence, err)
	}

	out := make([]SMEFinanceView, 0, len(smes))
	for i := range smes {
		s := &smes[i]
		invoices, err := u.invoices.ListBySMEID(ctx, s.SMEID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", uow.ErrPersistence, err)
		}
		financeable := 0
		for _, inv := range invoices {
			if !inv.Status.Financeable() {
				continue
			}
			ok, err := u.invoiceFree(ctx, inv.InvoiceID)
			if err != nil {
				return nil, err
			}
			if ok {
				financeable++
			}
		}
		if financeable == 0 {
			continue
		}

		view := SMEFinanceView{
			SMEID:               s.SMEID,
			Name:                s.Name,
			Industry:            s.Industry,
			Revenue:             s.Revenue,
			FinanceableInvoices: financeable,
		}

		latest, err := u.scores.LatestBySMEID(ctx, s.SMEID)
		switch {
		case err == nil:
			score := latest.Score
			rating := string(latest.Rating)
			view.CreditScore = &score
			view.Rating = &rating
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("%w: %v", uow.ErrPersistence, err)
		}

		requests, err := u.requests.ListBySMEID(ctx, s.SMEID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", uow.ErrPersistence, err)
		}
		for _, fr := range requests {
			if fr.Status == financerequest.StatusPending {
				view.PendingRequests++
			}
		}

		out = append(out, view)
	}

	sort.Slice(out, func(i, j int) bool {
		si, sj := -1, -1
		if out[i].CreditScore != nil {
			si = *out[i].CreditScore
		}
		if out[j].CreditScore != nil {
			sj = *out[j].CreditScore
		}
		if si != sj {
			return si > sj
		}
		return out[i].SMEID < out[j].SMEID
	})
	return out, nil
}

// invoiceFree reports whether no pending or approved request encumbers the invoice.
func (u *Usecase) invoiceFree(ctx context.Context, invoiceID string) (bool, error) {
	_, err := u.requests.GetActiveByInvoiceID(ctx, invoiceID)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return true, nil
	default:
		return false, fmt.Errorf("%w: %v", uow.ErrPersistence, err)
	}
}
