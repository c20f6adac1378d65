// internal/interfaces/http/handlers/support.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/support"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/email"
	"gorm.io/gorm"
)

// SupportHandler handles support ticket endpoints
type SupportHandler struct {
	supportService *support.Service
	config         *config.Config
}

// NewSupportHandler creates a new support handler
func NewSupportHandler(db *gorm.DB, cfg *config.Config) *SupportHandler {
	return &SupportHandler{
		supportService: support.NewService(db, cfg, email.NewEmailService(cfg)),
		config:         cfg,
	}
}

// CreateTicket handles POST /support/tickets
func (h *SupportHandler) CreateTicket(c *gin.Context) {
	var req support.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	// Tickets can be opened without an account; the user id is attached
	// when one is present.
	userID, _ := middleware.GetUserIDFromContext(c)

	ticket, err := h.supportService.CreateTicket(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create support ticket",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Support ticket created",
		"data":    ticket,
	})
}

// ListTickets handles GET /support/tickets (requires auth)
func (h *SupportHandler) ListTickets(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	tickets, err := h.supportService.ListUserTickets(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve tickets",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tickets retrieved successfully",
		"data":    tickets,
	})
}
