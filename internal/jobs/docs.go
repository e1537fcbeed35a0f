// Package jobs provides scheduled background tasks for the fulfillment system.
//
// Jobs run on github.com/robfig/cron/v3 with second-level specs.
//
// # Available Jobs
//
// StepBackfillJob runs every 15 minutes by default. It looks up orders whose
// stored processing steps are empty or still carry the legacy single-step
// authority layout, and writes the generated or migrated list back through
// BackfillStepsCommandHandler. Orders are handled concurrently with a bounded
// errgroup. The job never moves a step to another status.
//
// # Usage
//
//	job := jobs.NewStepBackfillJob(orderRepo, backfillHandler, jobs.BackfillConfig{}, logger)
//	jobManager := jobs.NewJobManager(job)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - A failing order is logged and retried on the next run
//   - A failed listing is logged as a job failure
//   - Overlapping runs are skipped
package jobs
