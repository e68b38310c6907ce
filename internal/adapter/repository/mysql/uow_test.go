package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	requestDomain "sme-finance-engine/internal/domain/financerequest"
	invoiceDomain "sme-finance-engine/internal/domain/invoice"
	"sme-finance-engine/internal/domain/uow"
	"sme-finance-engine/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openUowTestDB migrates every table, so UoW can orchestrate all repos.
func openUowTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&smeSQLite{}, &invoiceSQLite{}, &requestSQLite{}, &creditScoreSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

// ----------------------------- Tests -----------------------------

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	invRepo := NewInvoiceRepository(db)
	reqRepo := NewFinanceRequestRepository(db)

	invoiceID := id.NewID32()
	smeID := id.NewID32()
	requestID := id.NewID32()

	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		// Create invoice, then the request that references it
		inv := makeInvoice(invoiceID, smeID, invoiceDomain.StatusPending)
		if err := r.Invoices.Create(ctx, inv); err != nil {
			return err
		}
		if inv.ID == 0 {
			t.Fatalf("invoice auto ID not set")
		}
		return r.Requests.Create(ctx, makeRequest(requestID, invoiceID, smeID, requestDomain.StatusPending))
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	// Verify post-commit visibility
	if _, err := invRepo.GetByInvoiceID(ctx, invoiceID); err != nil {
		t.Fatalf("invoice not visible after commit: %v", err)
	}
	if _, err := reqRepo.GetByRequestID(ctx, requestID); err != nil {
		t.Fatalf("request not visible after commit: %v", err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	invRepo := NewInvoiceRepository(db)
	reqRepo := NewFinanceRequestRepository(db)

	invoiceID := id.NewID32()
	requestID := id.NewID32()
	sentinel := errors.New("boom")

	_ = guow.WithinTx(ctx, func(r uow.Repos) error {
		smeID := id.NewID32()
		if err := r.Invoices.Create(ctx, makeInvoice(invoiceID, smeID, invoiceDomain.StatusPending)); err != nil {
			return err
		}
		if err := r.Requests.Create(ctx, makeRequest(requestID, invoiceID, smeID, requestDomain.StatusPending)); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	// None should exist after rollback
	if _, err := invRepo.GetByInvoiceID(ctx, invoiceID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected invoice not found after rollback, got %v", err)
	}
	if _, err := reqRepo.GetByRequestID(ctx, requestID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected request not found after rollback, got %v", err)
	}
}

func TestGormUoW_WithinInvoiceTx_Commit(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	invRepo := NewInvoiceRepository(db)
	reqRepo := NewFinanceRequestRepository(db)

	invoiceID := id.NewID32()
	smeID := id.NewID32()
	requestID := id.NewID32()

	// Seed a pending invoice (outside tx)
	if err := invRepo.Create(ctx, makeInvoice(invoiceID, smeID, invoiceDomain.StatusPending)); err != nil {
		t.Fatalf("seed invoice: %v", err)
	}

	// Execute WithinInvoiceTx: should fetch the locked invoice and pass it to fn
	if err := guow.WithinInvoiceTx(ctx, invoiceID, func(r uow.Repos, inv *invoiceDomain.Invoice) error {
		if inv == nil || inv.InvoiceID != invoiceID || inv.Status != invoiceDomain.StatusPending {
			t.Fatalf("unexpected invoice passed to fn: %+v", inv)
		}

		// Record the approval and encumber the invoice atomically
		fr := makeRequest(requestID, invoiceID, smeID, requestDomain.StatusPending)
		if err := r.Requests.Create(ctx, fr); err != nil {
			return err
		}
		approved := decimal.RequireFromString("3000.00")
		lender := id.NewID32()
		now := time.Now().UTC()
		fr.Status = requestDomain.StatusApproved
		fr.ApprovedAmount = &approved
		fr.DecidedBy = &lender
		fr.DecidedAt = &now
		if err := r.Requests.Save(ctx, fr); err != nil {
			return err
		}

		inv.Status = invoiceDomain.StatusFinanced
		return r.Invoices.Save(ctx, inv)
	}); err != nil {
		t.Fatalf("WithinInvoiceTx commit err: %v", err)
	}

	// Verify changes
	gotInv, err := invRepo.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		t.Fatalf("GetByInvoiceID post-commit: %v", err)
	}
	if gotInv.Status != invoiceDomain.StatusFinanced {
		t.Fatalf("invoice status not updated, got=%s", gotInv.Status)
	}
	gotReq, err := reqRepo.GetByRequestID(ctx, requestID)
	if err != nil {
		t.Fatalf("request not visible after commit: %v", err)
	}
	if gotReq.Status != requestDomain.StatusApproved {
		t.Fatalf("request status not updated, got=%s", gotReq.Status)
	}
}

func TestGormUoW_WithinInvoiceTx_Rollback(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	invRepo := NewInvoiceRepository(db)
	reqRepo := NewFinanceRequestRepository(db)

	invoiceID := id.NewID32()
	smeID := id.NewID32()
	requestID := id.NewID32()

	if err := invRepo.Create(ctx, makeInvoice(invoiceID, smeID, invoiceDomain.StatusPending)); err != nil {
		t.Fatalf("seed invoice: %v", err)
	}

	sentinel := errors.New("stop")

	_ = guow.WithinInvoiceTx(ctx, invoiceID, func(r uow.Repos, inv *invoiceDomain.Invoice) error {
		// Make changes inside tx
		if err := r.Requests.Create(ctx, makeRequest(requestID, invoiceID, smeID, requestDomain.StatusPending)); err != nil {
			return err
		}
		inv.Status = invoiceDomain.StatusFinanced
		if err := r.Invoices.Save(ctx, inv); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	// After rollback: status unchanged, request absent
	gotInv, err := invRepo.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		t.Fatalf("post-rollback GetByInvoiceID: %v", err)
	}
	if gotInv.Status != invoiceDomain.StatusPending {
		t.Fatalf("expected pending after rollback, got %s", gotInv.Status)
	}
	if _, err := reqRepo.GetByRequestID(ctx, requestID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected request absent after rollback, got %v", err)
	}
}

func TestGormUoW_WithinInvoiceTx_InvoiceNotFound(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)

	err := guow.WithinInvoiceTx(ctx, "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee", func(uow.Repos, *invoiceDomain.Invoice) error {
		t.Fatalf("callback should not be called when invoice missing")
		return nil
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record-not-found when invoice missing, got %v", err)
	}
	if errors.Is(err, uow.ErrPersistence) {
		t.Fatalf("missing invoice is a lookup miss, not a storage fault: %v", err)
	}
}

func TestGormUoW_WithinTx_StorageFaultWrapped(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.Close()

	guow := NewGormUoW(db)
	err = guow.WithinTx(ctx, func(uow.Repos) error { return nil })
	if !errors.Is(err, uow.ErrPersistence) {
		t.Fatalf("begin failure should wrap ErrPersistence, got %v", err)
	}
}

func TestGormUoW_WithinInvoiceTx_StorageFaultWrapped(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.Close()

	guow := NewGormUoW(db)
	err = guow.WithinInvoiceTx(ctx, id.NewID32(), func(uow.Repos, *invoiceDomain.Invoice) error {
		t.Fatalf("callback should not run on a dead connection")
		return nil
	})
	if !errors.Is(err, uow.ErrPersistence) {
		t.Fatalf("storage failure should wrap ErrPersistence, got %v", err)
	}
}

func TestGormUoW_WithinTx_BodyErrorNotWrapped(t *testing.T) {
	db := openUowTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	sentinel := errors.New("business rule says no")
	err := guow.WithinTx(ctx, func(uow.Repos) error { return sentinel })
	if !errors.Is(err, sentinel) {
		t.Fatalf("body error lost: %v", err)
	}
	if errors.Is(err, uow.ErrPersistence) {
		t.Fatalf("body error must not look retryable: %v", err)
	}
}
