// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"

	"github.com/your-org/storefront/internal/config"
)

// EmailService handles all email operations
type EmailService struct {
	config    *config.Config
	templates map[string]*template.Template
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.Config) *EmailService {
	service := &EmailService{
		config:    cfg,
		templates: make(map[string]*template.Template),
	}

	service.loadTemplates()

	return service
}

// SendEmail sends an email over SMTP
func (s *EmailService) SendEmail(ctx context.Context, email *Email) error {
	return s.sendSMTPEmail(email)
}

// SendSupportConfirmationEmail acknowledges a support request to its sender.
func (s *EmailService) SendSupportConfirmationEmail(ctx context.Context, data SupportConfirmationData) error {
	data.TemplateData = BaseTemplateData(s.config.App.Name, data.UserName, data.UserEmail)

	htmlContent, err := s.renderTemplate("support_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render support confirmation template: %w", err)
	}

	email := &Email{
		To:          []string{data.UserEmail},
		Subject:     fmt.Sprintf("We received your request - %s", data.TicketNumber),
		HTMLContent: htmlContent,
		Type:        EmailTypeSupportConfirmation,
		Data: map[string]interface{}{
			"ticket_number": data.TicketNumber,
		},
	}

	return s.SendEmail(ctx, email)
}

// SendPasswordResetEmail sends a reset link for the account's password. The
// link lands on the storefront's reset page, which posts the token back.
func (s *EmailService) SendPasswordResetEmail(ctx context.Context, userEmail, userName, resetToken string) error {
	data := PasswordResetData{
		TemplateData: BaseTemplateData(s.config.App.Name, userName, userEmail),
		ResetURL: fmt.Sprintf("%s/auth/reset-password?token=%s&email=%s",
			s.config.Email.BaseURL, resetToken, url.QueryEscape(userEmail)),
	}

	htmlContent, err := s.renderTemplate("password_reset", data)
	if err != nil {
		return fmt.Errorf("failed to render password reset template: %w", err)
	}

	email := &Email{
		To:          []string{userEmail},
		Subject:     "Reset Your Password",
		HTMLContent: htmlContent,
		Type:        EmailTypePasswordReset,
	}

	return s.SendEmail(ctx, email)
}

// SendOrderConfirmationEmail sends order confirmation email
func (s *EmailService) SendOrderConfirmationEmail(ctx context.Context, data OrderConfirmationData) error {
	data.TemplateData = BaseTemplateData(s.config.App.Name, data.UserName, data.UserEmail)

	htmlContent, err := s.renderTemplate("order_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render order confirmation template: %w", err)
	}

	email := &Email{
		To:          []string{data.UserEmail},
		Subject:     fmt.Sprintf("Order Confirmation - %s", data.OrderNumber),
		HTMLContent: htmlContent,
		Type:        EmailTypeOrderConfirmation,
		Data: map[string]interface{}{
			"order_number": data.OrderNumber,
		},
	}

	return s.SendEmail(ctx, email)
}

// loadTemplates parses the built-in email templates
func (s *EmailService) loadTemplates() {
	for name, body := range builtinTemplates {
		s.templates[name] = template.Must(template.New(name).Parse(body))
	}
}

// renderTemplate renders an email template with data
func (s *EmailService) renderTemplate(templateName string, data interface{}) (string, error) {
	tmpl, exists := s.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return buf.String(), nil
}

var builtinTemplates = map[string]string{
	"support_confirmation": `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.SiteName}}</title>
</head>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f4f4f4;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 8px;">
        <h1 style="color: #333;">{{.SiteName}}</h1>
        <p>Hello {{.UserName}},</p>
        <p>We received your support request <strong>{{.TicketNumber}}</strong> and will get back to you shortly.</p>
        <p><strong>Subject:</strong> {{.Subject}}</p>
        <p><strong>Your message:</strong></p>
        <blockquote style="border-left: 3px solid #ddd; padding-left: 12px; color: #555;">{{.Message}}</blockquote>
        <p>Best regards,<br>{{.SiteName}} Team</p>
        <hr>
        <p style="font-size: 12px; color: #666;">&copy; {{.Year}} {{.SiteName}}. All rights reserved.</p>
    </div>
</body>
</html>`,
	"password_reset": `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.SiteName}}</title>
</head>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f4f4f4;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 8px;">
        <h1 style="color: #333;">{{.SiteName}}</h1>
        <p>Hello {{.UserName}},</p>
        <p>We received a request to reset the password for your account.</p>
        <p style="text-align: center; margin: 30px 0;">
            <a href="{{.ResetURL}}" style="background-color: #4f46e5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px;">Reset Password</a>
        </p>
        <p>The link expires in one hour. If you did not request a reset, you can ignore this email.</p>
        <p>Best regards,<br>{{.SiteName}} Team</p>
        <hr>
        <p style="font-size: 12px; color: #666;">&copy; {{.Year}} {{.SiteName}}. All rights reserved.</p>
    </div>
</body>
</html>`,
	"order_confirmation": `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.SiteName}}</title>
</head>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f4f4f4;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 8px;">
        <h1 style="color: #333;">{{.SiteName}}</h1>
        <p>Hello {{.UserName}},</p>
        <p>Thank you for your order <strong>{{.OrderNumber}}</strong> placed on {{.OrderDate}}.</p>
        <p><strong>Total:</strong> {{.OrderTotal}}</p>
        <p>Best regards,<br>{{.SiteName}} Team</p>
        <hr>
        <p style="font-size: 12px; color: #666;">&copy; {{.Year}} {{.SiteName}}. All rights reserved.</p>
    </div>
</body>
</html>`,
}
