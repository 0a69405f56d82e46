package app

import (
	"context"
	"errors"
	"time"

	"github.com/centsible/centsible/internal/common"
	"github.com/centsible/centsible/internal/interfaces"
	"github.com/centsible/centsible/internal/models"
)

// StartAutoPayScheduler launches the background bill processing loop: a
// fixed-interval tick plus a store watch so a bill or wallet change triggers
// a pass without waiting for the next tick.
func (a *App) StartAutoPayScheduler() {
	ctx, cancel := context.WithCancel(context.Background())
	a.schedulerCancel = cancel
	a.startWatch()
	go runAutoPayScheduler(ctx, a.BillService, a.Logger, a.Config.AutoPay.GetInterval())
}

// startWatch subscribes to ledger changes and nudges the processor when bill
// or wallet records move. The guard inside the bill service absorbs bursts.
func (a *App) startWatch() {
	events, cancel := a.Storage.Ledger().Watch(common.ResolveUserID(context.Background()))
	a.watchCancel = cancel
	go func() {
		for ev := range events {
			if ev.Collection != models.CollectionBills && ev.Collection != models.CollectionWallets {
				continue
			}
			processDueBills(context.Background(), a.BillService, a.Logger)
		}
	}()
}

// runAutoPayScheduler processes due bills on a fixed interval.
func runAutoPayScheduler(ctx context.Context, billService interfaces.BillService, logger *common.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// One pass at startup to catch bills that came due while offline.
	processDueBills(ctx, billService, logger)

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Auto-pay scheduler: stopped")
			return
		case <-ticker.C:
			processDueBills(ctx, billService, logger)
		}
	}
}

func processDueBills(ctx context.Context, billService interfaces.BillService, logger *common.Logger) {
	today := time.Now()

	due, err := billService.HasDueBills(ctx, today)
	if err != nil {
		logger.Warn().Err(err).Msg("Auto-pay: due-bill check failed")
		return
	}
	if !due {
		return
	}

	start := time.Now()
	result, err := billService.ProcessDueBills(ctx, today)
	if err != nil {
		if errors.Is(err, models.ErrPassInProgress) {
			return
		}
		logger.Warn().Err(err).Msg("Auto-pay: processing pass failed")
		return
	}

	logger.Info().
		Int("processed", result.Processed).
		Int("failed", result.Failed).
		Int("recurring", result.Recurring).
		Dur("elapsed", time.Since(start)).
		Msg("Auto-pay: pass complete")
}
