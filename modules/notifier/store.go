// Package notifier delivers email and in-app notifications for task events.
package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notification is one in-app notification for a user.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Store holds per-user in-app notifications. Implementations must be safe for
// concurrent use; the sweeper and request handlers both write through it.
type Store interface {
	Add(ctx context.Context, userID, message string) error
	ListForUser(ctx context.Context, userID string) ([]Notification, error)
	MarkAllRead(ctx context.Context, userID string) error
}

// MemoryStore is the default in-process Store.
type MemoryStore struct {
	byUser map[string][]Notification
	mu     sync.RWMutex
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byUser: make(map[string][]Notification),
	}
}

// Add prepends a notification to the user's list, newest first.
func (s *MemoryStore) Add(_ context.Context, userID, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := Notification{
		ID:        uuid.New().String(),
		Message:   message,
		CreatedAt: time.Now(),
	}
	s.byUser[userID] = append([]Notification{n}, s.byUser[userID]...)
	return nil
}

// ListForUser returns a copy of the user's notifications.
func (s *MemoryStore) ListForUser(_ context.Context, userID string) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.byUser[userID]
	out := make([]Notification, len(list))
	copy(out, list)
	return out, nil
}

// MarkAllRead marks every notification for the user as read.
func (s *MemoryStore) MarkAllRead(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byUser[userID]
	for i := range list {
		list[i].Read = true
	}
	return nil
}
