// internal/interfaces/http/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestAdminMiddlewareAllowsAdmin(t *testing.T) {
	c, w := newTestContext(t)
	c.Set("user_role", "admin")

	AdminMiddleware()(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminMiddlewareForbidsCustomer(t *testing.T) {
	c, w := newTestContext(t)
	c.Set("user_role", "customer")

	AdminMiddleware()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminMiddlewareRequiresAuthentication(t *testing.T) {
	c, w := newTestContext(t)

	AdminMiddleware()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUserEmailFromContext(t *testing.T) {
	c, _ := newTestContext(t)

	_, ok := GetUserEmailFromContext(c)
	require.False(t, ok)

	c.Set("user_email", "admin@example.com")

	email, ok := GetUserEmailFromContext(c)
	require.True(t, ok)
	assert.Equal(t, "admin@example.com", email)
}

func TestGetSessionIDFromContext(t *testing.T) {
	c, _ := newTestContext(t)

	_, ok := GetSessionIDFromContext(c)
	require.False(t, ok)

	c.Set("session_id", "session-1")

	id, ok := GetSessionIDFromContext(c)
	require.True(t, ok)
	assert.Equal(t, "session-1", id)
}
