package task

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the task does not exist.
	ErrNotFound = errors.New("task not found")
	// ErrNotOwner indicates an executive tried to move a task assigned to
	// someone else.
	ErrNotOwner = errors.New("you can only update tasks assigned to you")
	// ErrStatusReserved indicates a caller named OVERDUE as a target status.
	ErrStatusReserved = errors.New("OVERDUE status can only be set by the system")
	// ErrCompleted indicates the task is terminal and cannot be modified.
	ErrCompleted = errors.New("completed tasks cannot be modified")
	// ErrInvalidStatus indicates an unknown status value.
	ErrInvalidStatus = errors.New("invalid task status")
	// ErrInvalidPriority indicates an unknown priority value.
	ErrInvalidPriority = errors.New("invalid task priority")
	// ErrMissingFields indicates a create request without required fields.
	ErrMissingFields = errors.New("title, assignee, and due date are required")
	// ErrStale indicates the task changed under a guarded update. The writer
	// that lost the race treats this as a skip, not a failure.
	ErrStale = errors.New("task was modified concurrently")
)

// InvalidTransitionError is returned when a requested status change is not in
// the transition table. It carries the allowed set for client guidance.
type InvalidTransitionError struct {
	From    Status
	To      Status
	Allowed []Status
}

// Error implements the error interface.
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// NewInvalidTransitionError builds the error with the allowed set for from.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{
		From:    from,
		To:      to,
		Allowed: AllowedFrom(from),
	}
}
