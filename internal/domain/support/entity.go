// internal/domain/support/entity.go
package support

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Ticket statuses
const (
	TicketStatusOpen   = "open"
	TicketStatusClosed = "closed"
)

// Ticket represents a customer support request
type Ticket struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	TicketNumber string    `json:"ticket_number" gorm:"uniqueIndex;not null"`
	UserID       string    `json:"user_id,omitempty" gorm:"index"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"not null"`
	Subject      string    `json:"subject" gorm:"not null"`
	Message      string    `json:"message" gorm:"type:text;not null"`
	Status       string    `json:"status" gorm:"default:'open'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// GenerateTicketNumber generates a unique ticket number
func GenerateTicketNumber() string {
	timestamp := time.Now().Format("20060102")
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("TKT-%s-%s", timestamp, suffix)
}
