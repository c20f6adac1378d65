// internal/pkg/auth/jwt_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront/internal/config"
)

func jwtTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "storefront-test"
	cfg.JWT.Secret = "test-secret-key-that-is-long-enough-123"
	cfg.JWT.AccessTokenExpiry = time.Hour
	return cfg
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager := NewJWTManager(jwtTestConfig())

	token, err := manager.GenerateToken("user-1", "ada@example.com", "customer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, "user:user-1", claims.Subject)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	manager := NewJWTManager(jwtTestConfig())
	token, err := manager.GenerateToken("user-1", "ada@example.com", "customer")
	require.NoError(t, err)

	other := jwtTestConfig()
	other.JWT.Secret = "a-completely-different-secret-key-456"

	_, err = NewJWTManager(other).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	cfg := jwtTestConfig()
	cfg.JWT.AccessTokenExpiry = -time.Minute

	manager := NewJWTManager(cfg)
	token, err := manager.GenerateToken("user-1", "ada@example.com", "customer")
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc123", ExtractTokenFromHeader("Bearer abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader("abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
	assert.Equal(t, "", ExtractTokenFromHeader("Bearer "))
}

func TestPasswordHashAndVerify(t *testing.T) {
	cfg := jwtTestConfig()
	cfg.Security.BcryptCost = 4
	manager := NewPasswordManager(cfg)

	hash, err := manager.HashPassword("Sup3rSafePass")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSafePass", hash)

	assert.NoError(t, manager.VerifyPassword("Sup3rSafePass", hash))
	assert.Error(t, manager.VerifyPassword("WrongPass1", hash))
}

func TestValidatePassword(t *testing.T) {
	manager := NewPasswordManager(jwtTestConfig())

	assert.NoError(t, manager.ValidatePassword("Sup3rSafePass"))
	assert.Error(t, manager.ValidatePassword("short1"))
	assert.Error(t, manager.ValidatePassword("onlyletters"))
	assert.Error(t, manager.ValidatePassword("12345678"))
}
