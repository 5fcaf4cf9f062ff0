package notifier

import (
	"context"
	"fmt"
	"log"

	"github.com/stack-Tech-1/dept-exec-backend/domain/task"
	"github.com/stack-Tech-1/dept-exec-backend/domain/user"
)

// Directory looks up users so notifications can address them by name and
// email. The auth module's user repository satisfies it.
type Directory interface {
	FindByID(id string) (*user.User, error)
}

// Notifier turns task events into email and in-app notifications. Every
// delivery is best-effort: errors are logged and never surfaced to the
// operation that produced the event.
type Notifier struct {
	mailer EmailSender
	store  Store
	users  Directory
}

// New creates a Notifier.
func New(mailer EmailSender, store Store, users Directory) *Notifier {
	return &Notifier{
		mailer: mailer,
		store:  store,
		users:  users,
	}
}

// HandleEvent dispatches one task event to the appropriate notifications.
func (n *Notifier) HandleEvent(event task.Event) {
	ctx := context.Background()

	switch event.Type {
	case task.EventTypeAssigned:
		n.notifyAssigned(ctx, event)
	case task.EventTypeCompleted:
		n.notifyCompleted(ctx, event)
	case task.EventTypeOverdue:
		n.notifyOverdue(ctx, event)
	default:
		log.Printf("[notifier] Ignoring unknown event type %s", event.Type)
	}
}

func (n *Notifier) notifyAssigned(ctx context.Context, event task.Event) {
	assignee, err := n.users.FindByID(event.AssignedTo)
	if err != nil {
		log.Printf("[notifier] Cannot notify assignee for task %s: %v", event.TaskID, err)
		return
	}

	assigner := n.displayName(event.CreatedBy)
	body := fmt.Sprintf(
		"Hello %s,\n\nYou have been assigned a new task:\n\nTask: %s\nDue Date: %s\nPriority: %s\nAssigned By: %s\n\nPlease log in to the system to begin work.\n\n– Dept Exec System\n",
		assignee.Name, event.Title, event.DueDate.Format("Mon Jan 2 2006"), event.Priority, assigner,
	)

	n.deliver(ctx, assignee, "New Task Assigned to You", body,
		fmt.Sprintf("New task assigned: %s", event.Title))
}

func (n *Notifier) notifyCompleted(ctx context.Context, event task.Event) {
	creator, err := n.users.FindByID(event.CreatedBy)
	if err != nil {
		log.Printf("[notifier] Cannot notify creator for task %s: %v", event.TaskID, err)
		return
	}

	assignee := n.displayName(event.AssignedTo)
	body := fmt.Sprintf(
		"Hello %s,\n\nThe following task has been completed:\n\nTask: %s\nCompleted By: %s\n\n– Dept Exec System\n",
		creator.Name, event.Title, assignee,
	)

	n.deliver(ctx, creator, "Task Completed", body,
		fmt.Sprintf("Task completed: %s by %s", event.Title, assignee))
}

func (n *Notifier) notifyOverdue(ctx context.Context, event task.Event) {
	if assignee, err := n.users.FindByID(event.AssignedTo); err != nil {
		log.Printf("[notifier] Cannot notify assignee for task %s: %v", event.TaskID, err)
	} else {
		body := fmt.Sprintf(
			"Hello %s,\n\nThe following task is now OVERDUE:\n\nTask: %s\nDue Date: %s\n\nPlease take immediate action.\n\n– Dept Exec System\n",
			assignee.Name, event.Title, event.DueDate.Format("Mon Jan 2 2006"),
		)
		n.deliver(ctx, assignee, "Task Overdue", body,
			fmt.Sprintf("Task overdue: %s", event.Title))
	}

	if creator, err := n.users.FindByID(event.CreatedBy); err != nil {
		log.Printf("[notifier] Cannot notify creator for task %s: %v", event.TaskID, err)
	} else {
		assignee := n.displayName(event.AssignedTo)
		body := fmt.Sprintf(
			"Hello %s,\n\nThe following task has been marked as OVERDUE:\n\nTask: %s\nAssigned To: %s\n\n– Dept Exec System\n",
			creator.Name, event.Title, assignee,
		)
		n.deliver(ctx, creator, "Task Marked as Overdue", body,
			fmt.Sprintf("Task overdue: %s (assigned to %s)", event.Title, assignee))
	}
}

// deliver sends the email and records the in-app notification. Both legs are
// independent; a failure in one does not skip the other.
func (n *Notifier) deliver(ctx context.Context, to *user.User, subject, body, inApp string) {
	if err := n.mailer.Send(to.Email, subject, body); err != nil {
		log.Printf("[notifier] Email to %s failed: %v", to.Email, err)
	}
	if err := n.store.Add(ctx, to.ID, inApp); err != nil {
		log.Printf("[notifier] In-app notification for %s failed: %v", to.ID, err)
	}
}

func (n *Notifier) displayName(userID string) string {
	u, err := n.users.FindByID(userID)
	if err != nil {
		return "Unknown"
	}
	return u.Name
}
