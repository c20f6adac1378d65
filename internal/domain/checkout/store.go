// internal/domain/checkout/store.go
package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Drafts expire alongside the session cart.
const draftTTL = 24 * time.Hour

// RedisDraftStore persists each session's Draft as a JSON blob in Redis.
type RedisDraftStore struct {
	redisClient *redis.Client
}

// NewRedisDraftStore creates a Redis-backed draft store
func NewRedisDraftStore(redisClient *redis.Client) *RedisDraftStore {
	return &RedisDraftStore{redisClient: redisClient}
}

// Draft loads the session's draft, returning an empty draft when none exists.
func (s *RedisDraftStore) Draft(ctx context.Context, sessionID string) (*Draft, error) {
	data, err := s.redisClient.Get(ctx, draftKey(sessionID)).Result()
	if err == redis.Nil {
		return &Draft{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load checkout draft: %w", err)
	}

	var draft Draft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, fmt.Errorf("failed to decode checkout draft: %w", err)
	}
	return &draft, nil
}

// Save writes the session's draft back with a refreshed TTL.
func (s *RedisDraftStore) Save(ctx context.Context, sessionID string, draft *Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode checkout draft: %w", err)
	}
	if err := s.redisClient.Set(ctx, draftKey(sessionID), data, draftTTL).Err(); err != nil {
		return fmt.Errorf("failed to store checkout draft: %w", err)
	}
	return nil
}

// Reset drops the session's draft entirely.
func (s *RedisDraftStore) Reset(ctx context.Context, sessionID string) error {
	if err := s.redisClient.Del(ctx, draftKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to reset checkout draft: %w", err)
	}
	return nil
}

func draftKey(sessionID string) string {
	return fmt.Sprintf("checkout:draft:%s", sessionID)
}
