// internal/interfaces/http/handlers/profile.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/session"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// ProfileHandler handles profile endpoints
type ProfileHandler struct {
	userService    *user.Service
	sessionService *session.Service
	config         *config.Config
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *ProfileHandler {
	return &ProfileHandler{
		userService:    user.NewService(db, cfg),
		sessionService: session.NewService(redisClient, cfg),
		config:         cfg,
	}
}

// updateContactRequest carries the profile contact fields
type updateContactRequest struct {
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
}

// UpdateContact handles PATCH /profile/contact (requires auth)
func (h *ProfileHandler) UpdateContact(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	var req updateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.userService.UpdateContact(c.Request.Context(), userID, req.Address, req.Phone); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	h.refreshSessionIdentity(c, userID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Contact details updated",
	})
}

// refreshSessionIdentity re-caches the identity so checkout resolves against
// the contact fields just written.
func (h *ProfileHandler) refreshSessionIdentity(c *gin.Context, userID string) {
	sessionID, ok := middleware.GetSessionIDFromContext(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		return
	}

	if err := h.sessionService.Establish(c.Request.Context(), sessionID, profile.Identity()); err != nil {
		c.Error(err)
	}
}
