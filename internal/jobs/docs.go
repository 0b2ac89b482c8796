// Package jobs provides scheduled background tasks for the orders dashboard.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field and reach loop-owned
// state through an eventloop.Executor, never directly from the cron goroutine.
//
// # Available Jobs
//
// 1. DashboardSummaryJob - logs order counts per status and the feed connection status
//
// # Usage
//
//	jobManager, err := jobs.NewJobManager(loop, store, manager, "*/30 * * * * *", logger)
//	if err != nil {
//		return err
//	}
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
package jobs
