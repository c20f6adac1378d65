// internal/domain/session/service.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront/internal/config"
)

// Identities expire alongside the session cart.
const identityTTL = 24 * time.Hour

// Service caches the authenticated identity per browser session. It performs
// no authentication itself; establishing an identity is the job of the auth
// flow, which hands the resulting identity here.
type Service struct {
	redisClient *redis.Client
	config      *config.Config
}

// NewService creates a new session service
func NewService(redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		redisClient: redisClient,
		config:      cfg,
	}
}

// Establish overwrites any prior identity for the session.
func (s *Service) Establish(ctx context.Context, sessionID string, identity Identity) error {
	if identity.UserID == "" {
		return fmt.Errorf("identity requires a user id")
	}

	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to encode identity: %w", err)
	}
	if err := s.redisClient.Set(ctx, identityKey(sessionID), data, identityTTL).Err(); err != nil {
		return fmt.Errorf("failed to store identity: %w", err)
	}
	return nil
}

// Current returns the session's identity, or (nil, nil) when the session is
// not authenticated.
func (s *Service) Current(ctx context.Context, sessionID string) (*Identity, error) {
	data, err := s.redisClient.Get(ctx, identityKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load identity: %w", err)
	}

	var identity Identity
	if err := json.Unmarshal([]byte(data), &identity); err != nil {
		return nil, fmt.Errorf("failed to decode identity: %w", err)
	}
	return &identity, nil
}

// Clear drops the session's identity.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.redisClient.Del(ctx, identityKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear identity: %w", err)
	}
	return nil
}

func identityKey(sessionID string) string {
	return fmt.Sprintf("session:identity:%s", sessionID)
}
