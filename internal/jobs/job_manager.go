package jobs

import (
	"fmt"
)

type job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs    []job
	started []job
}

// NewJobManager creates a job manager. Nil jobs are skipped, which lets the
// caller switch single jobs off by configuration.
func NewJobManager(urgency *UrgencyRefreshJob, heads *HeadAssignmentJob) *JobManager {
	jm := &JobManager{}
	if urgency != nil {
		jm.jobs = append(jm.jobs, urgency)
	}
	if heads != nil {
		jm.jobs = append(jm.jobs, heads)
	}
	return jm
}

// StartAll starts all scheduled jobs. When one fails to start, the jobs
// started before it are stopped again.
func (jm *JobManager) StartAll() error {
	for _, j := range jm.jobs {
		if err := j.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %T: %w", j, err)
		}
		jm.started = append(jm.started, j)
	}
	return nil
}

// StopAll stops the started jobs gracefully, waiting for running ones.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].Stop()
	}
	jm.started = nil
}
