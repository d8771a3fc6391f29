package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderArchivalJob runs the end-of-day sweep on a cron schedule. Every run
// archives the live orders created before the start of the current local
// day, keeping the live store small and the board fast.
type OrderArchivalJob struct {
	handler  commands.ArchiveStaleOrdersCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderArchivalJob creates the archival job. The schedule is a standard
// five-field cron expression, e.g. "0 4 * * *" for 04:00 every day.
func NewOrderArchivalJob(
	handler commands.ArchiveStaleOrdersCommandHandler,
	schedule string,
	logger *slog.Logger,
) *OrderArchivalJob {
	return &OrderArchivalJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "order_archival_job"),
	}
}

// Start schedules the job.
func (j *OrderArchivalJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order archival job started", "schedule", j.schedule)
	return nil
}

// Stop stops the job. Runs already in flight finish on their own.
func (j *OrderArchivalJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order archival job stopped")
}

// run archives everything created before today's start of day. The cutoff
// uses local time so "yesterday's orders" matches the shop's working day.
func (j *OrderArchivalJob) run() {
	ctx := context.Background()

	now := time.Now()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	cmd, err := commands.NewArchiveStaleOrdersCommand(cutoff)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order archival job misconfigured", "error", err)
		return
	}

	archived, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order archival job failed", "archived", archived, "error", err)
		return
	}

	if archived > 0 {
		j.logger.InfoContext(ctx, "Order archival job finished", "archived", archived)
	}
}
