package jobs

import (
	"fmt"
	"log/slog"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderArchivalJob *OrderArchivalJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	archiveStaleOrdersHandler commands.ArchiveStaleOrdersCommandHandler,
	archivalSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderArchivalJob: NewOrderArchivalJob(archiveStaleOrdersHandler, archivalSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderArchivalJob.Start(); err != nil {
		return fmt.Errorf("failed to start order archival job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderArchivalJob.Stop()
}
