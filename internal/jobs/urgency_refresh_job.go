package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"fulfillment/internal/core/application/usecases/commands"
)

// UrgencyRefreshJob re-flags open orders as their FWD date comes closer.
type UrgencyRefreshJob struct {
	handler  commands.RefreshUrgencyCommandHandler
	window   time.Duration
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewUrgencyRefreshJob(
	handler commands.RefreshUrgencyCommandHandler,
	window time.Duration,
	schedule string,
	logger *slog.Logger,
) *UrgencyRefreshJob {
	return &UrgencyRefreshJob{
		handler:  handler,
		window:   window,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "urgency_refresh_job"),
	}
}

// Start schedules the job and runs it once right away.
func (j *UrgencyRefreshJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.run(context.Background())
	j.cron.Start()
	j.logger.Info("Urgency refresh job started", "schedule", j.schedule, "window", j.window.String())
	return nil
}

func (j *UrgencyRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Urgency refresh job stopped")
}

func (j *UrgencyRefreshJob) run(ctx context.Context) {
	cmd, err := commands.NewRefreshUrgencyCommand(j.window)
	if err != nil {
		j.logger.ErrorContext(ctx, "Urgency refresh job failed", "error", err)
		return
	}
	if err = j.handler.Handle(ctx, cmd); err != nil {
		j.logger.ErrorContext(ctx, "Urgency refresh job failed", "error", err)
	}
}
