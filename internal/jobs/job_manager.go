package jobs

import (
	"fmt"
)

// JobManager starts and stops the scheduled jobs together.
type JobManager struct {
	stepBackfillJob *StepBackfillJob
}

func NewJobManager(stepBackfillJob *StepBackfillJob) *JobManager {
	return &JobManager{stepBackfillJob: stepBackfillJob}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.stepBackfillJob.Start(); err != nil {
		return fmt.Errorf("failed to start step backfill job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.stepBackfillJob.Stop()
}
