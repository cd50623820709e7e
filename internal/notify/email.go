package notify

import (
	"context"
	"fmt"
	"html"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/logger"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// mailClient is the part of *sendgrid.Client used here.
type mailClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// EmailSender delivers notifications through SendGrid.
type EmailSender struct {
	client    mailClient
	fromEmail string
	fromName  string
}

func NewEmailSender(apiKey, fromEmail, fromName string) *EmailSender {
	return &EmailSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *EmailSender) Name() string { return "email" }

func (s *EmailSender) Send(ctx context.Context, to *domain.User, msg Message) error {
	if to.Email == "" {
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(to.FullName(), to.Email)
	htmlContent := fmt.Sprintf("<html><body><p>%s</p></body></html>", html.EscapeString(msg.Body))
	message := mail.NewSingleEmail(from, msg.Subject, recipient, msg.Body, htmlContent)

	logger.ExternalServiceCall("sendgrid", "Send", "to", to.Email, "subject", msg.Subject)
	response, err := s.client.SendWithContext(ctx, message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult("sendgrid", "Send", err, "to", to.Email)

	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
