// internal/domain/support/service.go
package support

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/pkg/email"
)

// Mailer sends the confirmation email for a new ticket.
type Mailer interface {
	SendSupportConfirmationEmail(ctx context.Context, data email.SupportConfirmationData) error
}

// Service handles support ticket operations
type Service struct {
	db     *gorm.DB
	config *config.Config
	mailer Mailer
}

// NewService creates a new support service
func NewService(db *gorm.DB, cfg *config.Config, mailer Mailer) *Service {
	return &Service{
		db:     db,
		config: cfg,
		mailer: mailer,
	}
}

// CreateTicketRequest represents a new support request
type CreateTicketRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// CreateTicket runs the support intake pipeline: the confirmation email is
// sent first, then the ticket is persisted. A persistence failure after a
// sent email still fails the operation; a retry may produce a duplicate
// confirmation, which is preferable to a silently lost ticket.
func (s *Service) CreateTicket(ctx context.Context, userID string, req *CreateTicketRequest) (*Ticket, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("message is required")
	}

	ticket := &Ticket{
		TicketNumber: GenerateTicketNumber(),
		UserID:       userID,
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Subject:      req.Subject,
		Message:      req.Message,
		Status:       TicketStatusOpen,
	}

	data := email.SupportConfirmationData{
		TicketNumber: ticket.TicketNumber,
		Subject:      ticket.Subject,
		Message:      ticket.Message,
	}
	data.UserName = ticket.Name
	data.UserEmail = ticket.Email

	if err := s.mailer.SendSupportConfirmationEmail(ctx, data); err != nil {
		return nil, fmt.Errorf("failed to send confirmation email: %w", err)
	}

	if err := s.db.WithContext(ctx).Create(ticket).Error; err != nil {
		return nil, fmt.Errorf("failed to save ticket: %w", err)
	}

	return ticket, nil
}

// ListUserTickets returns the tickets opened by a user, newest first.
func (s *Service) ListUserTickets(ctx context.Context, userID string) ([]Ticket, error) {
	var tickets []Ticket
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets).Error; err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, nil
}
