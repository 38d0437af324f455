package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type notificationRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayNotificationsCommand) (int, error)
}

// NotificationRelayJob forwards unpublished notifications to Kafka on a
// schedule. A run that is still going when the next tick fires makes that
// tick a no-op.
type NotificationRelayJob struct {
	handler   notificationRelayer
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewNotificationRelayJob(handler notificationRelayer, schedule string, batchSize int, logger *slog.Logger) *NotificationRelayJob {
	return &NotificationRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "notification_relay_job"),
	}
}

func (j *NotificationRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification relay job started", "schedule", j.schedule)
	return nil
}

// RunOnce relays one batch and reports how many notifications went out.
func (j *NotificationRelayJob) RunOnce(ctx context.Context) int {
	cmd, err := commands.NewRelayNotificationsCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification relay job misconfigured", "error", err)
		return 0
	}

	published, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification relay job failed", "published", published, "error", err)
		return published
	}
	if published > 0 {
		j.logger.InfoContext(ctx, "Notifications relayed", "published", published)
	}
	return published
}

// Stop waits for a running relay to finish.
func (j *NotificationRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification relay job stopped")
}
