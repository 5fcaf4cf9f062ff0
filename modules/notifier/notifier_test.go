package notifier

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stack-Tech-1/dept-exec-backend/domain/task"
	"github.com/stack-Tech-1/dept-exec-backend/domain/user"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type fakeDirectory struct {
	users map[string]*user.User
}

func (d *fakeDirectory) FindByID(id string) (*user.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func newTestNotifier() (*Notifier, *fakeMailer, *MemoryStore) {
	mailer := &fakeMailer{}
	store := NewMemoryStore()
	dir := &fakeDirectory{users: map[string]*user.User{
		"admin-1": {ID: "admin-1", Name: "Ada Admin", Email: "ada@dept.edu", Role: user.RoleAdmin},
		"exec-1":  {ID: "exec-1", Name: "Eve Exec", Email: "eve@dept.edu", Role: user.RoleExec},
	}}
	return New(mailer, store, dir), mailer, store
}

func testEvent(typ task.EventType) task.Event {
	return task.Event{
		Type:       typ,
		TaskID:     "task-1",
		Title:      "Prepare budget",
		AssignedTo: "exec-1",
		CreatedBy:  "admin-1",
		DueDate:    time.Now().Add(24 * time.Hour),
		Priority:   task.PriorityHigh,
		Timestamp:  time.Now(),
	}
}

func TestAssignedNotifiesAssignee(t *testing.T) {
	n, mailer, store := newTestNotifier()

	n.HandleEvent(testEvent(task.EventTypeAssigned))

	if len(mailer.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(mailer.sent))
	}
	mail := mailer.sent[0]
	if mail.to != "eve@dept.edu" {
		t.Errorf("email to %q, want assignee", mail.to)
	}
	if !strings.Contains(mail.body, "Prepare budget") {
		t.Error("email body missing the task title")
	}
	if !strings.Contains(mail.body, "Ada Admin") {
		t.Error("email body missing the assigner name")
	}

	items, _ := store.ListForUser(context.Background(), "exec-1")
	if len(items) != 1 {
		t.Fatalf("assignee has %d in-app notifications, want 1", len(items))
	}
	if items[0].Read {
		t.Error("new notification must start unread")
	}
}

func TestCompletedNotifiesCreator(t *testing.T) {
	n, mailer, store := newTestNotifier()

	n.HandleEvent(testEvent(task.EventTypeCompleted))

	if len(mailer.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(mailer.sent))
	}
	if mailer.sent[0].to != "ada@dept.edu" {
		t.Errorf("email to %q, want creator", mailer.sent[0].to)
	}

	items, _ := store.ListForUser(context.Background(), "admin-1")
	if len(items) != 1 {
		t.Errorf("creator has %d in-app notifications, want 1", len(items))
	}
}

func TestOverdueNotifiesBothParties(t *testing.T) {
	n, mailer, store := newTestNotifier()

	n.HandleEvent(testEvent(task.EventTypeOverdue))

	if len(mailer.sent) != 2 {
		t.Fatalf("sent %d emails, want 2", len(mailer.sent))
	}

	for _, id := range []string{"exec-1", "admin-1"} {
		items, _ := store.ListForUser(context.Background(), id)
		if len(items) != 1 {
			t.Errorf("%s has %d in-app notifications, want 1", id, len(items))
		}
	}
}

func TestEmailFailureStillRecordsInApp(t *testing.T) {
	n, mailer, store := newTestNotifier()
	mailer.err = errors.New("smtp unreachable")

	n.HandleEvent(testEvent(task.EventTypeAssigned))

	items, _ := store.ListForUser(context.Background(), "exec-1")
	if len(items) != 1 {
		t.Errorf("in-app notification missing after email failure, got %d", len(items))
	}
}

func TestUnknownRecipientIsSkipped(t *testing.T) {
	n, mailer, _ := newTestNotifier()

	event := testEvent(task.EventTypeAssigned)
	event.AssignedTo = "ghost"
	n.HandleEvent(event)

	if len(mailer.sent) != 0 {
		t.Errorf("sent %d emails for unknown recipient, want 0", len(mailer.sent))
	}
}

func TestMemoryStoreNewestFirstAndMarkRead(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Add(ctx, "exec-1", "first"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := store.Add(ctx, "exec-1", "second"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	items, err := store.ListForUser(ctx, "exec-1")
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d notifications, want 2", len(items))
	}
	if items[0].Message != "second" {
		t.Errorf("first item = %q, want newest first", items[0].Message)
	}

	if err := store.MarkAllRead(ctx, "exec-1"); err != nil {
		t.Fatalf("MarkAllRead() error = %v", err)
	}
	items, _ = store.ListForUser(ctx, "exec-1")
	for _, it := range items {
		if !it.Read {
			t.Errorf("notification %q still unread", it.Message)
		}
	}

	other, _ := store.ListForUser(ctx, "admin-1")
	if len(other) != 0 {
		t.Errorf("unrelated user has %d notifications, want 0", len(other))
	}
}
