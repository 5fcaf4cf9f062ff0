package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore persists in-app notifications in Redis so they survive process
// restarts. Each user's notifications live in one list key, newest first.
type RedisStore struct {
	client *redis.Client
	prefix string
	maxLen int64
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore on an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "notifications:",
		maxLen: 100,
		ttl:    30 * 24 * time.Hour,
	}
}

func (s *RedisStore) key(userID string) string {
	return s.prefix + userID
}

// Add prepends a notification to the user's list and trims it to maxLen.
func (s *RedisStore) Add(ctx context.Context, userID, message string) error {
	n := Notification{
		ID:        uuid.New().String(),
		Message:   message,
		CreatedAt: time.Now(),
	}

	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	key := s.key(userID)
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, s.maxLen-1)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}
	return nil
}

// ListForUser returns the user's notifications, newest first.
func (s *RedisStore) ListForUser(ctx context.Context, userID string) ([]Notification, error) {
	items, err := s.client.LRange(ctx, s.key(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	out := make([]Notification, 0, len(items))
	for _, item := range items {
		var n Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// MarkAllRead rewrites the user's list with every entry marked read.
func (s *RedisStore) MarkAllRead(ctx context.Context, userID string) error {
	key := s.key(userID)
	items, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("list notifications: %w", err)
	}
	if len(items) == 0 {
		return nil
	}

	updated := make([]interface{}, 0, len(items))
	for _, item := range items {
		var n Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			continue
		}
		n.Read = true
		data, err := json.Marshal(n)
		if err != nil {
			continue
		}
		// RPush preserves order after the delete below
		updated = append(updated, data)
	}
	if len(updated) == 0 {
		return nil
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.RPush(ctx, key, updated...)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rewrite notifications: %w", err)
	}
	return nil
}
