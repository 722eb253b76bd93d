package utils

import (
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"ramani-storefront/config"
	"ramani-storefront/models"
)

// Mailer delivers a single HTML email
type Mailer interface {
	SendEmail(toEmail, subject, htmlContent string) error
}

// EmailService handles sending emails using SendGrid. Without an API key
// messages are only logged.
type EmailService struct {
	client *sendgrid.Client
	sender string
}

// NewEmailService initializes and returns a new EmailService instance
func NewEmailService(cfg config.Email) *EmailService {
	es := &EmailService{sender: cfg.Sender}
	if cfg.SendgridAPIKey != "" {
		es.client = sendgrid.NewSendClient(cfg.SendgridAPIKey)
	} else {
		zap.S().Warn("SENDGRID_API_KEY is not set, emails will be logged only")
	}
	return es
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	if es.client == nil {
		zap.L().Info("email skipped", zap.String("to", toEmail), zap.String("subject", subject))
		return nil
	}
	from := mail.NewEmail("Ramani", es.sender)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, htmlContent, htmlContent)

	resp, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("failed to send email: status %d", resp.StatusCode)
	}
	return nil
}

// OrderConfirmationHTML renders the body of an order confirmation email.
func OrderConfirmationHTML(order models.Order) string {
	var lines strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&lines, "<li>%s x %d - &#8377;%.2f</li>", item.Name, item.Quantity, item.Price*float64(item.Quantity))
	}
	return fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Thank you for your purchase! Your order <strong>%s</strong> has been placed successfully.<ul>%s</ul>Total Amount: <strong>&#8377;%.2f</strong><br>Payment Method: <strong>%s</strong><br><br>Thank you for shopping with Ramani!",
		order.ShippingAddress.FullName,
		order.OrderNumber,
		lines.String(),
		order.TotalAmount,
		order.PaymentMethod,
	)
}

// SendOrderConfirmationEmail sends an order confirmation email to the user
func SendOrderConfirmationEmail(m Mailer, toEmail string, order models.Order) error {
	return m.SendEmail(toEmail, "Order Confirmation "+order.OrderNumber, OrderConfirmationHTML(order))
}
