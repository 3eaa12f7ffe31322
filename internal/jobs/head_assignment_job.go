package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/robfig/cron/v3"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/pkg/errs"
)

// maxAssignmentsPerRun bounds one run so a long backlog cannot hold the
// scheduler.
const maxAssignmentsPerRun = 100

// HeadAssignmentJob hands items that wait for production to the next head
// of the rotation.
type HeadAssignmentJob struct {
	handler  commands.AssignNextProductionHeadCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewHeadAssignmentJob(
	handler commands.AssignNextProductionHeadCommandHandler,
	schedule string,
	logger *slog.Logger,
) *HeadAssignmentJob {
	return &HeadAssignmentJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "head_assignment_job"),
	}
}

func (j *HeadAssignmentJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Head assignment job started", "schedule", j.schedule)
	return nil
}

func (j *HeadAssignmentJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Head assignment job stopped")
}

// run assigns heads until no item is left waiting. It returns the number of
// assignments made.
func (j *HeadAssignmentJob) run(ctx context.Context) int {
	assigned := 0
	for assigned < maxAssignmentsPerRun {
		cmd, err := commands.NewAssignNextProductionHeadCommand()
		if err != nil {
			j.logger.ErrorContext(ctx, "Head assignment job failed", "error", err)
			return assigned
		}

		err = j.handler.Handle(ctx, cmd)
		switch {
		case err == nil:
			assigned++
		case errors.Is(err, commands.ErrNoItemAwaitsHead):
			return assigned
		case errors.Is(err, errs.ErrStateConflict):
			j.logger.WarnContext(ctx, "Head assignment skipped", "reason", err)
			return assigned
		default:
			j.logger.ErrorContext(ctx, "Head assignment job failed", "error", err)
			return assigned
		}
	}
	return assigned
}
