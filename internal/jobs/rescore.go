package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"sme-finance-engine/internal/domain/sme"
	"sme-finance-engine/internal/domain/uow"
	"sme-finance-engine/internal/usecase/scoring"
)

// Rescorer refreshes stale credit scores on a schedule. Bulk re-scoring is
// deliberately kept out of the submit path; submit only ever recomputes the
// one score it needs.
type Rescorer struct {
	smes        sme.Repository
	uow         uow.UnitOfWork
	scoreMaxAge time.Duration
	schedule    string
	log         *logrus.Logger
	cron        *cron.Cron
}

func NewRescorer(smes sme.Repository, tx uow.UnitOfWork, scoreMaxAge time.Duration, schedule string, log *logrus.Logger) *Rescorer {
	return &Rescorer{smes: smes, uow: tx, scoreMaxAge: scoreMaxAge, schedule: schedule, log: log}
}

// Start registers the cron entry and begins running in the background.
func (j *Rescorer) Start() error {
	j.cron = cron.New()
	_, err := j.cron.AddFunc(j.schedule, func() {
		if err := j.RunOnce(context.Background()); err != nil {
			j.log.WithError(err).Error("rescore run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid rescore schedule %q: %w", j.schedule, err)
	}
	j.cron.Start()
	return nil
}

func (j *Rescorer) Stop() {
	if j.cron != nil {
		j.cron.Stop()
	}
}

// RunOnce re-scores every SME whose latest snapshot is missing or older
// than the staleness window. Each SME gets its own transaction; one
// failure does not stop the sweep.
func (j *Rescorer) RunOnce(ctx context.Context) error {
	smes, err := j.smes.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", uow.ErrPersistence, err)
	}

	var refreshed, failed int
	for i := range smes {
		smeID := smes[i].SMEID
		err := j.uow.WithinTx(ctx, func(r uow.Repos) error {
			latest, err := r.Scores.LatestBySMEID(ctx, smeID)
			switch {
			case err == nil:
				if time.Since(latest.CreatedAt) <= j.scoreMaxAge {
					return nil // still fresh
				}
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return fmt.Errorf("%w: %v", uow.ErrPersistence, err)
			}
			if _, err := scoring.Snapshot(ctx, r, smeID); err != nil {
				return err
			}
			refreshed++
			return nil
		})
		if err != nil {
			failed++
			j.log.WithError(err).WithField("sme_id", smeID).Warn("rescore failed for sme")
		}
	}

	j.log.WithFields(logrus.Fields{"refreshed": refreshed, "failed": failed}).
		Info("rescore sweep complete")
	if failed > 0 {
		return fmt.Errorf("rescore sweep: %d of %d smes failed", failed, len(smes))
	}
	return nil
}
