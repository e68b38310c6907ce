package jobs

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"sme-finance-engine/internal/domain/creditscore"
	"sme-finance-engine/internal/domain/invoice"
	"sme-finance-engine/internal/domain/sme"
	"sme-finance-engine/internal/domain/uow"
	"sme-finance-engine/internal/testutil/invoicemock"
	"sme-finance-engine/internal/testutil/scoremock"
	"sme-finance-engine/internal/testutil/smemock"
	"sme-finance-engine/internal/testutil/uowmock"
)

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRunOnce_RefreshesOnlyStale(t *testing.T) {
	ctx := context.Background()

	// fresh: scored just now; stale: scored long ago; unscored: never scored
	smes := &smemock.Repo{
		ListFn: func(context.Context) ([]sme.SME, error) {
			return []sme.SME{{SMEID: "fresh"}, {SMEID: "stale"}, {SMEID: "unscored"}}, nil
		},
		GetBySMEIDFn: func(_ context.Context, smeID string) (*sme.SME, error) {
			return &sme.SME{SMEID: smeID, Revenue: decimal.RequireFromString("120000")}, nil
		},
	}

	snapshotted := map[string]int{}
	scores := &scoremock.Repo{
		LatestBySMEIDFn: func(_ context.Context, smeID string) (*creditscore.CreditScore, error) {
			switch smeID {
			case "fresh":
				return &creditscore.CreditScore{SMEID: smeID, CreatedAt: time.Now().UTC()}, nil
			case "stale":
				return &creditscore.CreditScore{SMEID: smeID, CreatedAt: time.Now().UTC().Add(-60 * 24 * time.Hour)}, nil
			default:
				return nil, gorm.ErrRecordNotFound
			}
		},
		CreateFn: func(_ context.Context, cs *creditscore.CreditScore) error {
			snapshotted[cs.SMEID]++
			return nil
		},
	}

	repos := uow.Repos{
		SMEs:   smes,
		Scores: scores,
		Invoices: &invoicemock.Repo{
			ListBySMEIDFn: func(context.Context, string) ([]invoice.Invoice, error) {
				return []invoice.Invoice{{Status: invoice.StatusPaid}}, nil
			},
		},
	}
	m := uowmock.New().WithWithinTx(func(ctx context.Context, fn func(uow.Repos) error) error {
		return fn(repos)
	})

	j := NewRescorer(smes, m, 30*24*time.Hour, "@daily", quietLog())
	if err := j.RunOnce(ctx); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	if snapshotted["fresh"] != 0 {
		t.Errorf("fresh SME should not be re-scored, got %d snapshots", snapshotted["fresh"])
	}
	if snapshotted["stale"] != 1 {
		t.Errorf("stale SME should be re-scored once, got %d", snapshotted["stale"])
	}
	if snapshotted["unscored"] != 1 {
		t.Errorf("unscored SME should be scored, got %d", snapshotted["unscored"])
	}
}

func TestRunOnce_OneFailureDoesNotStopSweep(t *testing.T) {
	ctx := context.Background()

	smes := &smemock.Repo{
		ListFn: func(context.Context) ([]sme.SME, error) {
			return []sme.SME{{SMEID: "bad"}, {SMEID: "good"}}, nil
		},
		GetBySMEIDFn: func(_ context.Context, smeID string) (*sme.SME, error) {
			if smeID == "bad" {
				return nil, errors.New("db hiccup")
			}
			return &sme.SME{SMEID: smeID, Revenue: decimal.RequireFromString("50000")}, nil
		},
	}
	snapshotted := map[string]int{}
	scores := &scoremock.Repo{
		LatestBySMEIDFn: func(context.Context, string) (*creditscore.CreditScore, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(_ context.Context, cs *creditscore.CreditScore) error {
			snapshotted[cs.SMEID]++
			return nil
		},
	}
	repos := uow.Repos{
		SMEs:   smes,
		Scores: scores,
		Invoices: &invoicemock.Repo{
			ListBySMEIDFn: func(context.Context, string) ([]invoice.Invoice, error) { return nil, nil },
		},
	}
	m := uowmock.New().WithWithinTx(func(ctx context.Context, fn func(uow.Repos) error) error {
		return fn(repos)
	})

	j := NewRescorer(smes, m, time.Hour, "@daily", quietLog())
	err := j.RunOnce(ctx)
	if err == nil {
		t.Fatalf("expected sweep error when one SME fails")
	}
	if snapshotted["good"] != 1 {
		t.Errorf("good SME should still be scored, got %d", snapshotted["good"])
	}
}

func TestStart_RejectsBadSchedule(t *testing.T) {
	j := NewRescorer(&smemock.Repo{}, uowmock.New(), time.Hour, "not-a-schedule", quietLog())
	if err := j.Start(); err == nil {
		j.Stop()
		t.Fatalf("expected error for invalid schedule")
	}
}

func TestStartStop(t *testing.T) {
	j := NewRescorer(&smemock.Repo{}, uowmock.New(), time.Hour, "@daily", quietLog())
	if err := j.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	j.Stop()
}
