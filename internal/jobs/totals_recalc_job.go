package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// TotalsRecalcJobName is the name of the proposal totals reconciliation job
const TotalsRecalcJobName = "proposal_totals_recalc"

// recalcTimeout bounds one reconciliation run
const recalcTimeout = 5 * time.Minute

// TotalsRecalculator recomputes cached proposal totals from their room
// trees and repairs any drift. The interface keeps the job decoupled
// from the service package.
type TotalsRecalculator interface {
	RecalculateTotals(ctx context.Context) (fixed int, err error)
}

// TotalsRecalcJob periodically reconciles cached proposal totals
type TotalsRecalcJob struct {
	recalculator TotalsRecalculator
	logger       *zap.Logger
}

// NewTotalsRecalcJob creates a new totals reconciliation job
func NewTotalsRecalcJob(recalculator TotalsRecalculator, logger *zap.Logger) *TotalsRecalcJob {
	return &TotalsRecalcJob{
		recalculator: recalculator,
		logger:       logger,
	}
}

// Run executes one reconciliation pass. Called by the scheduler.
func (j *TotalsRecalcJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), recalcTimeout)
	defer cancel()

	start := time.Now()
	fixed, err := j.recalculator.RecalculateTotals(ctx)
	if err != nil {
		j.logger.Error("proposal totals reconciliation failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("proposal totals reconciliation completed",
		zap.Int("repaired", fixed),
		zap.Duration("duration", time.Since(start)))
}

// RegisterTotalsRecalcJob registers the reconciliation job with the
// scheduler and runs one pass immediately in the background so stale
// totals do not wait for the first tick.
func RegisterTotalsRecalcJob(scheduler *Scheduler, recalculator TotalsRecalculator, logger *zap.Logger, cronExpr string) error {
	job := NewTotalsRecalcJob(recalculator, logger)

	if err := scheduler.AddJob(TotalsRecalcJobName, cronExpr, job.Run); err != nil {
		return err
	}

	go job.Run()

	return nil
}
