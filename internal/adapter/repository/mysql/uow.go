package mysql

import (
	"context"
	"errors"
	"fmt"

	"sme-finance-engine/internal/domain/invoice"
	"sme-finance-engine/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func txRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		SMEs:     &SMERepository{db: tx},
		Invoices: &InvoiceRepository{db: tx},
		Requests: &FinanceRequestRepository{db: tx},
		Scores:   &CreditScoreRepository{db: tx},
	}
}

// wrapTxErr marks transaction-machinery faults (begin, commit, the invoice
// lock fetch) as retryable persistence failures while letting errors raised
// by the transaction body through untouched.
func wrapTxErr(err, bodyErr error) error {
	if err == nil {
		return nil
	}
	if bodyErr != nil && errors.Is(err, bodyErr) {
		return err
	}
	return fmt.Errorf("%w: %v", uow.ErrPersistence, err)
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	var bodyErr error
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bodyErr = fn(txRepos(tx))
		return bodyErr
	})
	return wrapTxErr(err, bodyErr)
}

func (u *GormUoW) WithinInvoiceTx(ctx context.Context, invoiceID string, fn func(r uow.Repos, inv *invoice.Invoice) error) error {
	var bodyErr error
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos(tx)
		// lock the invoice row up-front to prevent races
		inv, err := r.Invoices.GetByInvoiceIDForUpdate(ctx, invoiceID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				err = fmt.Errorf("%w: %v", uow.ErrPersistence, err)
			}
			bodyErr = err
			return err
		}
		bodyErr = fn(r, inv)
		return bodyErr
	})
	return wrapTxErr(err, bodyErr)
}
