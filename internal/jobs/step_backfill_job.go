package jobs

import (
	"context"
	"log/slog"
	"sync/atomic"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultBackfillSchedule    = "0 */15 * * * *"
	DefaultBackfillBatchSize   = 200
	DefaultBackfillConcurrency = 4
)

// OrderLister finds orders whose stored steps are missing or use the legacy
// layout.
type OrderLister interface {
	ListNeedingSteps(ctx context.Context, limit int) ([]kernel.UUID, error)
}

// StepBackfiller persists generated or migrated steps for one order.
type StepBackfiller interface {
	Handle(ctx context.Context, cmd commands.BackfillStepsCommand) (bool, error)
}

type BackfillConfig struct {
	// Schedule is a cron spec with seconds.
	Schedule    string
	BatchSize   int
	Concurrency int
}

func (c BackfillConfig) withDefaults() BackfillConfig {
	if c.Schedule == "" {
		c.Schedule = DefaultBackfillSchedule
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBackfillBatchSize
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultBackfillConcurrency
	}
	return c
}

// StepBackfillJob writes processing steps for orders stored without them and
// migrates legacy single-step authority records. It never changes the status
// of a step.
type StepBackfillJob struct {
	orders  OrderLister
	handler StepBackfiller
	cfg     BackfillConfig
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewStepBackfillJob(orders OrderLister, handler StepBackfiller, cfg BackfillConfig, logger *slog.Logger) *StepBackfillJob {
	return &StepBackfillJob{
		orders:  orders,
		handler: handler,
		cfg:     cfg.withDefaults(),
		// a slow batch must not overlap the next tick
		cron:   cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger.With("component", "step_backfill_job"),
	}
}

// Start schedules the job.
func (j *StepBackfillJob) Start() error {
	_, err := j.cron.AddFunc(j.cfg.Schedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Step backfill job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Step backfill job started", "schedule", j.cfg.Schedule)
	return nil
}

// Stop stops the scheduler and waits for a running batch to finish.
func (j *StepBackfillJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Step backfill job stopped")
}

// RunOnce processes one batch and returns how many orders were updated.
// A failing order is logged and skipped; only a failed listing is an error.
func (j *StepBackfillJob) RunOnce(ctx context.Context) (int, error) {
	ids, err := j.orders.ListNeedingSteps(ctx, j.cfg.BatchSize)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var updated atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.cfg.Concurrency)

	for _, id := range ids {
		g.Go(func() error {
			cmd, cmdErr := commands.NewBackfillStepsCommand(id)
			if cmdErr != nil {
				return cmdErr
			}

			changed, handleErr := j.handler.Handle(gctx, cmd)
			if handleErr != nil {
				j.logger.WarnContext(gctx, "Order steps not backfilled", "orderId", id.String(), "error", handleErr)
				return nil
			}
			if changed {
				updated.Add(1)
			}
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return int(updated.Load()), err
	}

	j.logger.InfoContext(ctx, "Step backfill batch done", "candidates", len(ids), "updated", updated.Load())
	return int(updated.Load()), nil
}
