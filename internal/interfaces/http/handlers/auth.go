// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/session"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/email"
	"gorm.io/gorm"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	userService    *user.Service
	sessionService *session.Service
	resetTokens    *user.ResetTokenStore
	emailService   *email.EmailService
	config         *config.Config
	httpClient     *http.Client
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:    user.NewService(db, cfg),
		sessionService: session.NewService(redisClient, cfg),
		resetTokens:    user.NewResetTokenStore(redisClient),
		emailService:   email.NewEmailService(cfg),
		config:         cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.userService.Register(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	h.establishSession(c, resp.User)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"data":    resp,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.userService.Login(&req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": err.Error(),
		})
		return
	}

	h.establishSession(c, resp.User)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully",
		"data":    resp,
	})
}

// googleSignInRequest carries the id token produced by the browser handshake.
type googleSignInRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// googleTokenInfo is the subset of the tokeninfo response we consume.
type googleTokenInfo struct {
	Audience      string `json:"aud"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
}

// GoogleSignIn handles POST /auth/google. The OAuth handshake happens in the
// browser; this endpoint only verifies the resulting id token against
// Google's tokeninfo endpoint and signs the profile in.
func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	var req googleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	info, err := h.verifyGoogleToken(req.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Google token verification failed",
		})
		return
	}

	resp, err := h.userService.EstablishOAuth(&user.GoogleProfile{
		Email: info.Email,
		Name:  info.Name,
	})
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": err.Error(),
		})
		return
	}

	h.establishSession(c, resp.User)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully",
		"data":    resp,
	})
}

// forgotPasswordRequest asks for a reset link.
type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword handles POST /auth/forgot-password. The response does not
// reveal whether the email belongs to an account.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	account, err := h.userService.GetByEmail(req.Email)
	if err == nil {
		token, issueErr := h.resetTokens.Issue(c.Request.Context(), account.ID, account.Email)
		if issueErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to process request",
			})
			return
		}

		if sendErr := h.emailService.SendPasswordResetEmail(c.Request.Context(), account.Email, account.Name, token); sendErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to send reset email",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "If an account exists for this email, a reset link has been sent",
	})
}

// resetPasswordRequest carries the emailed token back with the new credential.
type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	userID, err := h.resetTokens.Consume(c.Request.Context(), req.Token, req.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or expired reset link",
		})
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), userID, req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset successfully",
	})
}

// Me handles GET /auth/me (requires auth)
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile retrieved successfully",
		"data":    profile,
	})
}

func (h *AuthHandler) verifyGoogleToken(idToken string) (*googleTokenInfo, error) {
	endpoint := fmt.Sprintf("%s?id_token=%s", h.config.Google.TokenInfoURL, url.QueryEscape(idToken))

	resp, err := h.httpClient.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokeninfo rejected token: status %d", resp.StatusCode)
	}

	var info googleTokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	if h.config.Google.ClientID != "" && info.Audience != h.config.Google.ClientID {
		return nil, fmt.Errorf("token issued for a different client")
	}
	if info.EmailVerified != "true" {
		return nil, fmt.Errorf("google account email not verified")
	}

	return &info, nil
}

// establishSession caches the signed-in identity under the browser session so
// checkout can reconcile against it. The cart keyed by the same session id is
// left untouched: checkout resumes after the login round trip.
func (h *AuthHandler) establishSession(c *gin.Context, account *user.User) {
	sessionID, ok := middleware.GetSessionIDFromContext(c)
	if !ok {
		return
	}

	if err := h.sessionService.Establish(c.Request.Context(), sessionID, account.Identity()); err != nil {
		// The JWT still authenticates API calls; only the cached identity is stale.
		c.Error(err)
	}
}
