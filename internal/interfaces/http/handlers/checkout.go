// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/domain/session"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// CheckoutHandler handles the checkout pipeline endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *CheckoutHandler {
	carts := cart.NewService(redisClient, product.NewService(db, cfg), cfg)
	sessions := session.NewService(redisClient, cfg)
	drafts := checkout.NewRedisDraftStore(redisClient)
	users := user.NewService(db, cfg)
	orders := order.NewService(db, cfg)

	return &CheckoutHandler{
		checkoutService: checkout.NewService(carts, sessions, drafts, users, orders),
		config:          cfg,
	}
}

// SetContact handles PUT /checkout/contact
func (h *CheckoutHandler) SetContact(c *gin.Context) {
	sessionID, _ := middleware.GetSessionIDFromContext(c)

	var req checkout.Overrides
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	draft, err := h.checkoutService.SetContact(c.Request.Context(), sessionID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save contact details",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contact details saved",
		"data":    draft,
	})
}

// Summary handles GET /checkout/summary
func (h *CheckoutHandler) Summary(c *gin.Context) {
	sessionID, _ := middleware.GetSessionIDFromContext(c)

	result, rejection, err := h.checkoutService.Summary(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to prepare checkout summary",
		})
		return
	}

	if rejection != nil {
		h.respondRejection(c, rejection)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout summary ready",
		"data":    result,
	})
}

// Submit handles POST /checkout/submit
func (h *CheckoutHandler) Submit(c *gin.Context) {
	sessionID, _ := middleware.GetSessionIDFromContext(c)

	confirmation, rejection, err := h.checkoutService.Submit(c.Request.Context(), sessionID)
	if err != nil {
		var submission *checkout.SubmissionError
		if errors.As(err, &submission) {
			// Every validation message the order endpoint reported, not
			// just the first.
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "Order was rejected",
				"errors": submission.Messages,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to submit order",
		})
		return
	}

	if rejection != nil {
		h.respondRejection(c, rejection)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    confirmation,
	})
}

// Logout handles POST /auth/logout: it tears down the session's identity,
// cart and draft together.
func (h *CheckoutHandler) Logout(c *gin.Context) {
	sessionID, _ := middleware.GetSessionIDFromContext(c)

	if err := h.checkoutService.EndSession(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to end session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// respondRejection maps a reconciliation rejection onto a navigable status:
// the client routes to login, the cart page or the contact form based on it.
func (h *CheckoutHandler) respondRejection(c *gin.Context, rejection *checkout.Rejection) {
	status := http.StatusConflict
	switch rejection.Reason {
	case checkout.ReasonNotAuthenticated:
		status = http.StatusUnauthorized
	case checkout.ReasonInvalidProductReference:
		status = http.StatusUnprocessableEntity
	}

	c.JSON(status, gin.H{
		"error": "Checkout is not ready",
		"data":  rejection,
	})
}
