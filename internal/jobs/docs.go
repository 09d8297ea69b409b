// Package jobs provides scheduled background tasks for the fuel delivery
// marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the service.
//
// # Available Jobs
//
// 1. DeliveryQueueJob - Runs every second to claim due queue jobs and run their handlers
// 2. DuePaymentJob - Runs every five minutes during the evening window to remind users about failed or refunded payments
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(consumer, paymentRepo, summaries, dispatcher, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Queue poll errors are logged; individual job failures are retried through the queue itself
// - The payment sweep aborts on enumeration errors and isolates per-record dispatch failures
// - Failed job starts will stop any already running jobs
package jobs
