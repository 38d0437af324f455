package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type locationReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcileLocationsCommand) (int, error)
}

// LocationReconciliationJob recounts storage occupancy from products and
// repairs drifted counters.
type LocationReconciliationJob struct {
	handler  locationReconciler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewLocationReconciliationJob(handler locationReconciler, schedule string, logger *slog.Logger) *LocationReconciliationJob {
	return &LocationReconciliationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "location_reconciliation_job"),
	}
}

func (j *LocationReconciliationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Location reconciliation job started", "schedule", j.schedule)
	return nil
}

func (j *LocationReconciliationJob) RunOnce(ctx context.Context) int {
	repaired, err := j.handler.Handle(ctx, commands.NewReconcileLocationsCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Location reconciliation job failed", "error", err)
		return repaired
	}
	if repaired > 0 {
		j.logger.WarnContext(ctx, "Location counters repaired", "repaired", repaired)
	}
	return repaired
}

func (j *LocationReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Location reconciliation job stopped")
}
