package task

import (
	"errors"
	"testing"
	"time"
)

func newStoredTask(t *testing.T, store *MemoryStore, assignee string, due time.Time) *Task {
	t.Helper()
	task := New("Title", "", assignee, "admin-1", due, PriorityMedium)
	if err := store.Create(task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return task
}

func TestMemoryStoreFindByID(t *testing.T) {
	store := NewMemoryStore()
	task := newStoredTask(t, store, "exec-1", time.Now().Add(time.Hour))

	got, err := store.FindByID(task.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.ID != task.ID {
		t.Errorf("FindByID() ID = %q, want %q", got.ID, task.ID)
	}

	if _, err := store.FindByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByID(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreReturnsClones(t *testing.T) {
	store := NewMemoryStore()
	task := newStoredTask(t, store, "exec-1", time.Now().Add(time.Hour))

	got, _ := store.FindByID(task.ID)
	got.Title = "mutated"
	got.StatusHistory[0].Status = StatusCompleted

	fresh, _ := store.FindByID(task.ID)
	if fresh.Title == "mutated" {
		t.Error("mutating a returned task leaked into the store")
	}
	if fresh.StatusHistory[0].Status != StatusPending {
		t.Error("mutating returned history leaked into the store")
	}
}

func TestMemoryStoreFindForUser(t *testing.T) {
	store := NewMemoryStore()
	newStoredTask(t, store, "exec-1", time.Now().Add(2*time.Hour))
	newStoredTask(t, store, "exec-1", time.Now().Add(time.Hour))
	newStoredTask(t, store, "exec-2", time.Now().Add(time.Hour))

	got, err := store.FindForUser("exec-1")
	if err != nil {
		t.Fatalf("FindForUser() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("FindForUser() returned %d tasks, want 2", len(got))
	}
	if got[0].DueDate.After(got[1].DueDate) {
		t.Error("expected tasks ordered by due date")
	}
}

func TestMemoryStoreFindDue(t *testing.T) {
	now := time.Now()
	store := NewMemoryStore()

	past := newStoredTask(t, store, "exec-1", now.Add(-time.Hour))
	newStoredTask(t, store, "exec-1", now.Add(time.Hour))

	done := newStoredTask(t, store, "exec-2", now.Add(-time.Hour))
	done.Apply(StatusInProgress, UserActor("exec-2"), now)
	done.Apply(StatusCompleted, UserActor("exec-2"), now)
	if err := store.SaveTransition(done, StatusPending); err != nil {
		t.Fatalf("SaveTransition() error = %v", err)
	}

	got, err := store.FindDue(now)
	if err != nil {
		t.Fatalf("FindDue() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("FindDue() returned %d tasks, want 1", len(got))
	}
	if got[0].ID != past.ID {
		t.Errorf("FindDue() returned %q, want %q", got[0].ID, past.ID)
	}
}

func TestMemoryStoreSaveTransition(t *testing.T) {
	store := NewMemoryStore()
	task := newStoredTask(t, store, "exec-1", time.Now().Add(time.Hour))

	task.Apply(StatusInProgress, UserActor("exec-1"), time.Now())
	if err := store.SaveTransition(task, StatusPending); err != nil {
		t.Fatalf("SaveTransition() error = %v", err)
	}

	got, _ := store.FindByID(task.ID)
	if got.Status != StatusInProgress {
		t.Errorf("stored status = %q, want %q", got.Status, StatusInProgress)
	}
	if len(got.StatusHistory) != 2 {
		t.Errorf("stored history has %d entries, want 2", len(got.StatusHistory))
	}
}

func TestMemoryStoreSaveTransitionStale(t *testing.T) {
	store := NewMemoryStore()
	task := newStoredTask(t, store, "exec-1", time.Now().Add(time.Hour))

	// First writer wins
	first, _ := store.FindByID(task.ID)
	first.Apply(StatusInProgress, UserActor("exec-1"), time.Now())
	if err := store.SaveTransition(first, StatusPending); err != nil {
		t.Fatalf("first SaveTransition() error = %v", err)
	}

	// Second writer still thinks the task is PENDING
	second, _ := store.FindByID(task.ID)
	second.Status = StatusPending
	second.Apply(StatusInProgress, UserActor("exec-1"), time.Now())
	if err := store.SaveTransition(second, StatusPending); !errors.Is(err, ErrStale) {
		t.Errorf("second SaveTransition() error = %v, want ErrStale", err)
	}

	if err := store.SaveTransition(&Task{ID: "missing"}, StatusPending); !errors.Is(err, ErrNotFound) {
		t.Errorf("SaveTransition(missing) error = %v, want ErrNotFound", err)
	}
}
