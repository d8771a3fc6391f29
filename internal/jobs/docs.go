// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OrderArchivalJob - Runs on a configurable cron schedule (by default
// once per day after closing) to move every live order created before the
// start of the current day into the history tables.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(archiveStaleOrdersHandler, schedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Archival runs order by order; a failure is logged and the job retries on
// the next scheduled run. Orders that disappear between listing and
// archival are skipped silently.
package jobs
