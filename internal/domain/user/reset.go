// internal/domain/user/reset.go
package user

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Reset links are short-lived and single use.
const resetTokenTTL = time.Hour

// ResetTokenStore keeps password reset tokens in Redis. A token binds the
// account it was issued for to the email the reset link was sent to; both
// must match at consumption time.
type ResetTokenStore struct {
	redisClient *redis.Client
}

// NewResetTokenStore creates a new reset token store
func NewResetTokenStore(redisClient *redis.Client) *ResetTokenStore {
	return &ResetTokenStore{redisClient: redisClient}
}

type resetClaim struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Issue creates a fresh reset token for the account.
func (s *ResetTokenStore) Issue(ctx context.Context, userID, email string) (string, error) {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")

	data, err := json.Marshal(resetClaim{
		UserID: userID,
		Email:  strings.ToLower(email),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode reset token: %w", err)
	}

	if err := s.redisClient.Set(ctx, resetTokenKey(token), data, resetTokenTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}
	return token, nil
}

// Consume validates the token against the email it was issued for, deletes it
// and returns the account id. A consumed token cannot be replayed.
func (s *ResetTokenStore) Consume(ctx context.Context, token, email string) (string, error) {
	data, err := s.redisClient.Get(ctx, resetTokenKey(token)).Result()
	if err == redis.Nil {
		return "", fmt.Errorf("invalid or expired reset token")
	} else if err != nil {
		return "", fmt.Errorf("failed to load reset token: %w", err)
	}

	var claim resetClaim
	if err := json.Unmarshal([]byte(data), &claim); err != nil {
		return "", fmt.Errorf("failed to decode reset token: %w", err)
	}

	if claim.Email != strings.ToLower(strings.TrimSpace(email)) {
		return "", fmt.Errorf("invalid or expired reset token")
	}

	if err := s.redisClient.Del(ctx, resetTokenKey(token)).Err(); err != nil {
		return "", fmt.Errorf("failed to invalidate reset token: %w", err)
	}
	return claim.UserID, nil
}

func resetTokenKey(token string) string {
	return fmt.Sprintf("password:reset:%s", token)
}
