package production

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrTaskIsNotConstructed = errors.New("Task must be created via NewChain")

// TaskStatus is the lifecycle of a production task.
//
//	Pending ──> Ready ──> InProgress ──> Completed
//
// Only the first task of a chain starts Ready. Completing task k makes task
// k+1 Ready.
type TaskStatus int

const (
	TaskUnknown TaskStatus = iota
	TaskPending
	TaskReady
	TaskInProgress
	TaskCompleted
)

func (s TaskStatus) String() string {
	switch s {
	case TaskPending:
		return "PENDING"
	case TaskReady:
		return "READY"
	case TaskInProgress:
		return "IN_PROGRESS"
	case TaskCompleted:
		return "COMPLETED"
	default:
		return "UNKNOWN"
	}
}

func (s TaskStatus) Validate() error {
	if s < TaskPending || s > TaskCompleted {
		return errs.NewValueIsInvalidErrorWithCause("task status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// Step is one entry of a requested task chain.
type Step struct {
	Name     string
	WorkerID kernel.UUID
}

// TaskState is the persisted form of a Task.
type TaskState struct {
	ID          kernel.UUID
	OrderItemID kernel.UUID
	Section     kernel.Section
	Sequence    int
	Name        string
	WorkerID    kernel.UUID
	Status      TaskStatus
	StartedAt   *time.Time
	CompletedAt *time.Time
	Duration    time.Duration
	CreatedAt   time.Time
}

// Task is one step of the production chain of a section.
type Task struct {
	state         TaskState
	isConstructed bool
}

// NewChain builds the ordered tasks of a section. Sequence numbers start at 1.
func NewChain(orderItemID kernel.UUID, s kernel.Section, steps []Step, now time.Time) ([]*Task, error) {
	if err := errors.Join(orderItemID.Validate(), s.Validate()); err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		return nil, errs.NewValueIsRequiredError("tasks")
	}

	chain := make([]*Task, 0, len(steps))
	for i, step := range steps {
		name := strings.TrimSpace(step.Name)
		if name == "" {
			return nil, errs.NewValueIsRequiredErrorWithCause("task name", fmt.Errorf("step %d", i+1))
		}
		if err := step.WorkerID.Validate(); err != nil {
			return nil, err
		}

		status := TaskPending
		if i == 0 {
			status = TaskReady
		}
		chain = append(chain, &Task{
			state: TaskState{
				ID:          kernel.NewUUID(),
				OrderItemID: orderItemID,
				Section:     s,
				Sequence:    i + 1,
				Name:        name,
				WorkerID:    step.WorkerID,
				Status:      status,
				CreatedAt:   now,
			},
			isConstructed: true,
		})
	}
	return chain, nil
}

func RestoreTask(state TaskState) (*Task, error) {
	if err := errors.Join(state.ID.Validate(), state.OrderItemID.Validate(), state.Status.Validate()); err != nil {
		return nil, err
	}
	state.StartedAt = cloneTime(state.StartedAt)
	state.CompletedAt = cloneTime(state.CompletedAt)
	return &Task{state: state, isConstructed: true}, nil
}

func (t *Task) State() TaskState {
	out := t.state
	out.StartedAt = cloneTime(t.state.StartedAt)
	out.CompletedAt = cloneTime(t.state.CompletedAt)
	return out
}

func (t *Task) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTaskIsNotConstructed
	}
	return nil
}

func (t *Task) ID() kernel.UUID          { return t.state.ID }
func (t *Task) OrderItemID() kernel.UUID { return t.state.OrderItemID }
func (t *Task) Section() kernel.Section  { return t.state.Section }
func (t *Task) Sequence() int            { return t.state.Sequence }
func (t *Task) Name() string             { return t.state.Name }
func (t *Task) WorkerID() kernel.UUID    { return t.state.WorkerID }
func (t *Task) Status() TaskStatus       { return t.state.Status }
func (t *Task) Duration() time.Duration  { return t.state.Duration }

// Start begins a READY task. Only the assigned worker may start it.
func (t *Task) Start(worker kernel.UUID, now time.Time) error {
	if err := t.requireWorker(worker); err != nil {
		return err
	}
	if t.state.Status != TaskReady {
		return errs.NewStateConflictError("task", t.state.Status.String(), TaskReady.String())
	}
	at := now
	t.state.Status = TaskInProgress
	t.state.StartedAt = &at
	return nil
}

// Complete finishes an IN_PROGRESS task and records its wall-clock duration.
func (t *Task) Complete(worker kernel.UUID, now time.Time) error {
	if err := t.requireWorker(worker); err != nil {
		return err
	}
	if t.state.Status != TaskInProgress {
		return errs.NewStateConflictError("task", t.state.Status.String(), TaskInProgress.String())
	}
	at := now
	t.state.Status = TaskCompleted
	t.state.CompletedAt = &at
	if t.state.StartedAt != nil {
		t.state.Duration = now.Sub(*t.state.StartedAt)
	}
	return nil
}

func (t *Task) unblock() {
	if t.state.Status == TaskPending {
		t.state.Status = TaskReady
	}
}

func (t *Task) requireWorker(worker kernel.UUID) error {
	if err := worker.Validate(); err != nil {
		return err
	}
	if !t.state.WorkerID.IsEqual(worker) {
		return errs.NewStateConflictError("task worker", worker.String(), t.state.WorkerID.String())
	}
	return nil
}

// Advance is called after task done completed. It makes the next task of the
// chain READY and returns it, or reports that the whole chain is complete.
func Advance(chain []*Task, done *Task) (next *Task, chainCompleted bool) {
	ordered := slices.Clone(chain)
	slices.SortFunc(ordered, func(a, b *Task) int { return a.state.Sequence - b.state.Sequence })

	for _, t := range ordered {
		if t.state.Sequence == done.state.Sequence+1 {
			t.unblock()
			next = t
			break
		}
	}

	chainCompleted = true
	for _, t := range ordered {
		if t.state.Status != TaskCompleted {
			chainCompleted = false
			break
		}
	}
	return next, chainCompleted
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
