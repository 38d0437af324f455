// Package jobs provides scheduled background tasks for the fulfillment
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. NotificationRelayJob - publishes stored notifications that have not
// reached Kafka yet
// 2. LocationReconciliationJob - recounts storage occupancy from products
// and repairs drifted counters
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, reconcileHandler,
//		jobs.Schedules{Relay: "*/5 * * * * *", Reconcile: "0 */10 * * * *"}, 100, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use six fields with seconds first. Each job skips a tick while
// its previous run is still in progress.
//
// # Error Handling
//
// Failed runs are logged and retried on the next tick. A failed job start
// stops any already running jobs.
package jobs
