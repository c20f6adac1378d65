// internal/pkg/email/types.go
package email

import (
	"time"
)

// EmailType represents the type of email being sent
type EmailType string

const (
	EmailTypeSupportConfirmation EmailType = "support_confirmation"
	EmailTypeOrderConfirmation   EmailType = "order_confirmation"
	EmailTypePasswordReset       EmailType = "password_reset"
)

// Email represents an email message
type Email struct {
	To          []string               `json:"to"`
	Subject     string                 `json:"subject"`
	HTMLContent string                 `json:"html_content"`
	Type        EmailType              `json:"type"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// TemplateData contains common data for all email templates
type TemplateData struct {
	SiteName  string `json:"site_name"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	Year      int    `json:"year"`
}

// SupportConfirmationData contains data for the support ticket confirmation email
type SupportConfirmationData struct {
	TemplateData
	TicketNumber string `json:"ticket_number"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
}

// PasswordResetData contains data for the password reset email
type PasswordResetData struct {
	TemplateData
	ResetURL string `json:"reset_url"`
}

// OrderConfirmationData contains data for the order confirmation email
type OrderConfirmationData struct {
	TemplateData
	OrderNumber string `json:"order_number"`
	OrderTotal  string `json:"order_total"`
	OrderDate   string `json:"order_date"`
}

// BaseTemplateData returns common template data
func BaseTemplateData(siteName, userName, userEmail string) TemplateData {
	return TemplateData{
		SiteName:  siteName,
		UserName:  userName,
		UserEmail: userEmail,
		Year:      time.Now().Year(),
	}
}
