package financing

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sme-finance-engine/internal/domain/financerequest"
	"sme-finance-engine/internal/domain/invoice"
	"sme-finance-engine/internal/domain/uow"
	"sme-finance-engine/pkg/id"
)

// checkAmount and checkInvoice are pure; the duplicate check hits storage.
// Split out so the guard rules are testable without a repository.

func checkAmount(inv *invoice.Invoice, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) || amount.GreaterThan(inv.Amount) {
		return financerequest.ErrInvalidAmount
	}
	return nil
}

func checkInvoice(inv *invoice.Invoice, smeID string) error {
	if inv.SMEID != smeID {
		return financerequest.ErrInvoiceNotEligible
	}
	if !inv.Status.Financeable() {
		return financerequest.ErrInvoiceNotEligible
	}
	return nil
}

// admitDraft validates a submission against the locked invoice and any
// existing request, and returns an unpersisted pending draft. No side
// effects; the caller persists the draft in the same transaction that
// holds the invoice lock, which is what makes the duplicate check safe
// under concurrent submissions.
func admitDraft(ctx context.Context, requests financerequest.Repository, inv *invoice.Invoice, smeID string, amount decimal.Decimal) (*financerequest.FinanceRequest, error) {
	if err := checkAmount(inv, amount); err != nil {
		return nil, err
	}
	if err := checkInvoice(inv, smeID); err != nil {
		return nil, err
	}
	_, err := requests.GetActiveByInvoiceID(ctx, inv.InvoiceID)
	switch {
	case err == nil:
		return nil, financerequest.ErrDuplicateActiveRequest
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("%w: %v", uow.ErrPersistence, err)
	}

	return &financerequest.FinanceRequest{
		RequestID:       id.NewID32(),
		InvoiceID:       inv.InvoiceID,
		SMEID:           smeID,
		AmountRequested: amount,
		Status:          financerequest.StatusPending,
	}, nil
}
