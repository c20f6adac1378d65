// internal/interfaces/http/middleware/session.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionCookieName is the browser cookie carrying the session id.
	SessionCookieName = "session_id"

	// sessionCookieMaxAge matches the 24h TTL of session-keyed state.
	sessionCookieMaxAge = 24 * 60 * 60
)

// Session ensures every request carries a session id cookie. The id keys
// the cart, the cached identity and the checkout draft.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookieName, sessionID, sessionCookieMaxAge, "/", "", false, true)
		}

		c.Set("session_id", sessionID)

		c.Next()
	}
}

// GetSessionIDFromContext extracts the session id from gin context
func GetSessionIDFromContext(c *gin.Context) (string, bool) {
	sessionID, exists := c.Get("session_id")
	if !exists {
		return "", false
	}
	return sessionID.(string), true
}
