package task

import "time"

// EventType represents the type of task lifecycle event.
type EventType string

const (
	// EventTypeAssigned indicates a task was created and assigned.
	EventTypeAssigned EventType = "task.assigned"
	// EventTypeCompleted indicates a task was completed by its assignee.
	EventTypeCompleted EventType = "task.completed"
	// EventTypeOverdue indicates the sweeper marked a task overdue.
	EventTypeOverdue EventType = "task.overdue"
)

// Event is published on the event bus when a task changes state in a way that
// interests other modules. Delivery is best-effort: the state change is the
// source of truth, not the event.
type Event struct {
	Type       EventType `json:"type"`
	TaskID     string    `json:"task_id"`
	Title      string    `json:"title"`
	AssignedTo string    `json:"assigned_to"`
	CreatedBy  string    `json:"created_by"`
	DueDate    time.Time `json:"due_date"`
	Priority   Priority  `json:"priority"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewAssignedEvent creates an event for a newly created task.
func NewAssignedEvent(t *Task) Event {
	return newEvent(EventTypeAssigned, t)
}

// NewCompletedEvent creates an event for a completed task.
func NewCompletedEvent(t *Task) Event {
	return newEvent(EventTypeCompleted, t)
}

// NewOverdueEvent creates an event for a task the sweeper marked overdue.
func NewOverdueEvent(t *Task) Event {
	return newEvent(EventTypeOverdue, t)
}

func newEvent(typ EventType, t *Task) Event {
	return Event{
		Type:       typ,
		TaskID:     t.ID,
		Title:      t.Title,
		AssignedTo: t.AssignedTo,
		CreatedBy:  t.CreatedBy,
		DueDate:    t.DueDate,
		Priority:   t.Priority,
		Timestamp:  time.Now(),
	}
}
