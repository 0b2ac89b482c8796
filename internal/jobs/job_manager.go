package jobs

import (
	"fmt"
	"log/slog"

	"dashboard/internal/core/ports"
	"dashboard/internal/pkg/eventloop"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	summaryJob *DashboardSummaryJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	executor eventloop.Executor,
	reader ports.OrderReader,
	monitor ports.ConnectionMonitor,
	summarySchedule string,
	logger *slog.Logger,
) (*JobManager, error) {
	summaryJob, err := NewDashboardSummaryJob(executor, reader, monitor, summarySchedule, logger)
	if err != nil {
		return nil, err
	}
	return &JobManager{summaryJob: summaryJob}, nil
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.summaryJob.Start(); err != nil {
		return fmt.Errorf("failed to start dashboard summary job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.summaryJob.Stop()
}
