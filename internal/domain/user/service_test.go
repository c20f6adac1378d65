// internal/domain/user/service_test.go
package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/pkg/auth"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "storefront-test"
	cfg.JWT.Secret = "test-secret-key-that-is-long-enough-123"
	cfg.JWT.AccessTokenExpiry = time.Hour
	cfg.Security.BcryptCost = 4
	return cfg
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))

	return NewService(db, testConfig())
}

func TestRegister(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Register(&RegisterRequest{
		Email:    "Ada@Example.com",
		Password: "Sup3rSafePass",
		Name:     "Ada",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.Equal(t, RoleCustomer, resp.User.Role)
	assert.Equal(t, ProviderLocal, resp.User.Provider)
	assert.Empty(t, resp.User.Password)
	assert.NotEmpty(t, resp.User.ID)

	// The token is valid and carries the account.
	claims, err := auth.NewJWTManager(testConfig()).ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(&RegisterRequest{Email: "ada@example.com", Password: "Sup3rSafePass", Name: "Ada"})
	require.NoError(t, err)

	_, err = svc.Register(&RegisterRequest{Email: "ada@example.com", Password: "An0therPass", Name: "Ada Again"})
	assert.ErrorContains(t, err, "already exists")
}

func TestRegisterWeakPassword(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(&RegisterRequest{Email: "ada@example.com", Password: "short", Name: "Ada"})
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Register(&RegisterRequest{Email: "ada@example.com", Password: "Sup3rSafePass", Name: "Ada"})
	require.NoError(t, err)

	resp, err := svc.Login(&LoginRequest{Email: "ada@example.com", Password: "Sup3rSafePass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.Login(&LoginRequest{Email: "ada@example.com", Password: "WrongPass1"})
	assert.ErrorContains(t, err, "invalid email or password")

	_, err = svc.Login(&LoginRequest{Email: "nobody@example.com", Password: "Sup3rSafePass"})
	assert.ErrorContains(t, err, "invalid email or password")
}

func TestEstablishOAuth(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.EstablishOAuth(&GoogleProfile{Email: "ada@example.com", Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, ProviderGoogle, first.User.Provider)

	// Signing in again reuses the account instead of creating a second one.
	second, err := svc.EstablishOAuth(&GoogleProfile{Email: "ada@example.com", Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestEstablishOAuthMissingEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.EstablishOAuth(&GoogleProfile{Name: "Ada"})
	assert.Error(t, err)
}

func TestUpdateContact(t *testing.T) {
	svc := newTestService(t)
	resp, err := svc.Register(&RegisterRequest{Email: "ada@example.com", Password: "Sup3rSafePass", Name: "Ada"})
	require.NoError(t, err)

	err = svc.UpdateContact(context.Background(), resp.User.ID, "99 New Avenue", "555-0101")
	require.NoError(t, err)

	profile, err := svc.GetProfile(resp.User.ID)
	require.NoError(t, err)
	require.NotNil(t, profile.Address)
	require.NotNil(t, profile.Phone)
	assert.Equal(t, "99 New Avenue", *profile.Address)
	assert.Equal(t, "555-0101", *profile.Phone)
}

func TestUpdateContactUnknownAccount(t *testing.T) {
	svc := newTestService(t)

	err := svc.UpdateContact(context.Background(), "no-such-user", "99 New Avenue", "555-0101")
	assert.ErrorContains(t, err, "account not found")
}

func TestGetByEmail(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Register(&RegisterRequest{Email: "Ada@Example.com", Password: "Sup3rSafePass", Name: "Ada"})
	require.NoError(t, err)

	account, err := svc.GetByEmail("ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", account.Email)

	_, err = svc.GetByEmail("nobody@example.com")
	assert.ErrorContains(t, err, "account not found")
}

func TestResetPassword(t *testing.T) {
	svc := newTestService(t)
	resp, err := svc.Register(&RegisterRequest{Email: "ada@example.com", Password: "Sup3rSafePass", Name: "Ada"})
	require.NoError(t, err)

	err = svc.ResetPassword(context.Background(), resp.User.ID, "Fresh3rPass")
	require.NoError(t, err)

	// The new credential works and the old one is gone.
	_, err = svc.Login(&LoginRequest{Email: "ada@example.com", Password: "Fresh3rPass"})
	assert.NoError(t, err)

	_, err = svc.Login(&LoginRequest{Email: "ada@example.com", Password: "Sup3rSafePass"})
	assert.ErrorContains(t, err, "invalid email or password")
}

func TestResetPasswordWeakPassword(t *testing.T) {
	svc := newTestService(t)
	resp, err := svc.Register(&RegisterRequest{Email: "ada@example.com", Password: "Sup3rSafePass", Name: "Ada"})
	require.NoError(t, err)

	err = svc.ResetPassword(context.Background(), resp.User.ID, "short")
	assert.Error(t, err)
}

func TestResetPasswordUnknownAccount(t *testing.T) {
	svc := newTestService(t)

	err := svc.ResetPassword(context.Background(), "no-such-user", "Fresh3rPass")
	assert.ErrorContains(t, err, "account not found")
}

func TestUserIdentity(t *testing.T) {
	address := "12 Old Street"
	u := &User{
		ID:      "user-1",
		Email:   "ada@example.com",
		Name:    "Ada",
		Address: &address,
		Role:    RoleCustomer,
	}

	identity := u.Identity()

	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, "12 Old Street", identity.Address())
	assert.Equal(t, "", identity.Phone())
}
