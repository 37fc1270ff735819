package balance

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pontobank/pontobank/internal/utils"
	"github.com/pontobank/pontobank/pkg/settings"
	"github.com/pontobank/pontobank/pkg/timeutils"
)

// TransferJob periodically rolls the previous month's balances into the
// current month once a new month begins. The last transferred month is
// persisted in settings so restarts never apply a month twice.
type TransferJob struct {
	balanceService  Service
	settingsService settings.Service
	clock           utils.Clock
	interval        time.Duration
}

func NewTransferJob(
	balanceService Service,
	settingsService settings.Service,
	clock utils.Clock,
	interval time.Duration,
) *TransferJob {
	return &TransferJob{
		balanceService:  balanceService,
		settingsService: settingsService,
		clock:           clock,
		interval:        interval,
	}
}

// Start runs one check immediately and then on every tick until the context
// is cancelled.
func (j *TransferJob) Start(ctx context.Context) {
	go func() {
		j.RunOnce(ctx)

		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				j.RunOnce(ctx)
			}
		}
	}()
}

// RunOnce transfers the previous month's balances if automatic transfer is
// enabled and that month has not been transferred yet.
func (j *TransferJob) RunOnce(ctx context.Context) {
	cfg, err := j.settingsService.Get(ctx)
	if err != nil {
		log.Errorf("transfer job could not load settings: %v", err)
		return
	}
	if !cfg.AutoTransferEnabled {
		return
	}

	now := j.clock.Now()
	previous := now.AddDate(0, -1, -now.Day()+1).Format(timeutils.MonthLayout)
	if cfg.LastTransferMonth >= previous {
		return
	}

	log.Infof("running automatic balance transfer for %s", previous)
	if err := j.balanceService.TransferAll(ctx, previous); err != nil {
		log.Errorf("automatic balance transfer failed: %v", err)
		return
	}
	if err := j.settingsService.MarkTransferRun(ctx, previous); err != nil {
		log.Errorf("could not record transfer month: %v", err)
	}
}
