package jobs

import (
	"fmt"
	"log/slog"
)

// Schedules holds six-field cron expressions (seconds first).
type Schedules struct {
	Relay     string
	Reconcile string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	notificationRelayJob      *NotificationRelayJob
	locationReconciliationJob *LocationReconciliationJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	relayHandler notificationRelayer,
	reconcileHandler locationReconciler,
	schedules Schedules,
	relayBatchSize int,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		notificationRelayJob:      NewNotificationRelayJob(relayHandler, schedules.Relay, relayBatchSize, logger),
		locationReconciliationJob: NewLocationReconciliationJob(reconcileHandler, schedules.Reconcile, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification relay job: %w", err)
	}

	if err := jm.locationReconciliationJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.notificationRelayJob.Stop()
		return fmt.Errorf("failed to start location reconciliation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones.
func (jm *JobManager) StopAll() {
	jm.locationReconciliationJob.Stop()
	jm.notificationRelayJob.Stop()
}
