package lifecycle

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"

	"github.com/shangour/URmine149/constants"
)

// Events that drive task status changes. Plain status updates carry no
// event: they never change status.
const (
	EventStart   = "start"
	EventBlock   = "block"
	EventSubmit  = "submit"
	EventApprove = "approve"
	EventReject  = "reject"
	EventResume  = "resume"
)

type transitionContext struct{}

// Transition applies event to a task currently in the given status and
// returns the resulting status, or ErrConflict when the event is not
// legal from that status. The machine declares the legal moves:
//
//	Not Started  --start-->   In Progress
//	In Progress  --block-->   Blocked
//	In Progress  --submit-->  Under Review
//	Blocked      --resume-->  In Progress
//	Under Review --approve--> Completed
//	Under Review --reject-->  In Progress
//
// Completed is terminal.
func Transition(current, event string) (string, error) {
	if !constants.ValidTaskStatus(current) {
		return "", fmt.Errorf("%w: unknown task status %q", ErrConflict, current)
	}

	builder := statekit.NewMachine[transitionContext]("task-status").
		WithInitial(statekit.StateID(current)).
		WithContext(transitionContext{})

	builder.State(constants.TaskStatusNotStarted).
		On(EventStart).Target(constants.TaskStatusInProgress).
		Done()

	builder.State(constants.TaskStatusInProgress).
		On(EventBlock).Target(constants.TaskStatusBlocked).
		On(EventSubmit).Target(constants.TaskStatusUnderReview).
		Done()

	builder.State(constants.TaskStatusBlocked).
		On(EventResume).Target(constants.TaskStatusInProgress).
		Done()

	builder.State(constants.TaskStatusUnderReview).
		On(EventApprove).Target(constants.TaskStatusCompleted).
		On(EventReject).Target(constants.TaskStatusInProgress).
		Done()

	builder.State(constants.TaskStatusCompleted).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("build status machine: %w", err)
	}

	interp := statekit.NewInterpreter(machine)
	interp.Start()
	interp.Send(statekit.Event{Type: statekit.EventType(event)})

	next := string(interp.State().Value)
	if next == current {
		return "", fmt.Errorf("%w: %q is not allowed while the task is %q", ErrConflict, event, current)
	}
	return next, nil
}
