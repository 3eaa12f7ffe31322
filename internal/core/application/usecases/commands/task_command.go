package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrStartTaskCommandIsNotConstructed = errors.New(
		"StartTaskCommand must be created via NewStartTaskCommand constructor",
	)
	ErrCompleteTaskCommandIsNotConstructed = errors.New(
		"CompleteTaskCommand must be created via NewCompleteTaskCommand constructor",
	)
)

// StartTaskCommand begins a READY production task. Only the task's worker may start it.
type StartTaskCommand struct { //nolint:recvcheck //using for validation
	taskID   kernel.UUID
	workerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewStartTaskCommand(taskID, workerID kernel.UUID) (StartTaskCommand, error) {
	if err := errors.Join(taskID.Validate(), workerID.Validate()); err != nil {
		return StartTaskCommand{}, err
	}
	return StartTaskCommand{taskID: taskID, workerID: workerID, guard: guard.NewConstructorGuard()}, nil
}

func (c StartTaskCommand) Validate() error {
	return c.guard.Validate(ErrStartTaskCommandIsNotConstructed)
}

func (c StartTaskCommand) TaskID() kernel.UUID   { return c.taskID }
func (c StartTaskCommand) WorkerID() kernel.UUID { return c.workerID }

// CompleteTaskCommand finishes an IN_PROGRESS production task.
type CompleteTaskCommand struct { //nolint:recvcheck //using for validation
	taskID   kernel.UUID
	workerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCompleteTaskCommand(taskID, workerID kernel.UUID) (CompleteTaskCommand, error) {
	if err := errors.Join(taskID.Validate(), workerID.Validate()); err != nil {
		return CompleteTaskCommand{}, err
	}
	return CompleteTaskCommand{taskID: taskID, workerID: workerID, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteTaskCommand) Validate() error {
	return c.guard.Validate(ErrCompleteTaskCommandIsNotConstructed)
}

func (c CompleteTaskCommand) TaskID() kernel.UUID   { return c.taskID }
func (c CompleteTaskCommand) WorkerID() kernel.UUID { return c.workerID }
