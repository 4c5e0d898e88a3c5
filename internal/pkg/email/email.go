package email

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendWelcomeEmail(ctx context.Context, toEmail, toName string) error
	SendOrderConfirmation(ctx context.Context, toEmail, toName string, receipt OrderReceipt) error
}

// OrderReceipt is what the order confirmation email shows
type OrderReceipt struct {
	CourseTitle    string
	Amount         string
	TransactionID  string
	PurchaseDate   time.Time
	BatchStartDate time.Time
	ReceiptURL     string
}

// Config holds the SendGrid settings
type Config struct {
	APIKey    string
	FromName  string
	FromEmail string
	BaseURL   string
}

// SendGridService implements EmailService over the SendGrid v3 API
type SendGridService struct {
	config Config
	from   *sgmail.Email
	logger zerolog.Logger
	send   func(m *sgmail.SGMailV3) error
}

// NewEmailService creates a new EmailService. Without an API key every
// message is only logged.
func NewEmailService(config Config, logger zerolog.Logger) *SendGridService {
	s := &SendGridService{
		config: config,
		from:   sgmail.NewEmail(config.FromName, config.FromEmail),
		logger: logger,
	}
	s.send = s.deliver
	return s
}

// SendWelcomeEmail greets a newly registered student
func (s *SendGridService) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	subject := "Welcome to JavaMaster"
	name := html.EscapeString(toName)

	text := fmt.Sprintf("Hello %s,\n\nYour JavaMaster account is ready. Browse the courses at %s/courses.\n\nThe JavaMaster Team", toName, s.config.BaseURL)
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Welcome to JavaMaster!</h2>
				<p>Hello %s,</p>
				<p>Your account is ready. Pick a batch from the <a href="%s/courses">course catalog</a> to get started.</p>
				<p>Best regards,<br>The JavaMaster Team</p>
			</div>
		</body>
		</html>
	`, name, s.config.BaseURL)

	return s.sendMessage(ctx, toEmail, toName, subject, text, body)
}

// SendOrderConfirmation sends the purchase receipt for a completed order
func (s *SendGridService) SendOrderConfirmation(ctx context.Context, toEmail, toName string, receipt OrderReceipt) error {
	subject := "Your enrollment in " + receipt.CourseTitle
	name := html.EscapeString(toName)
	title := html.EscapeString(receipt.CourseTitle)
	link := fmt.Sprintf("%s/order-confirmation/%s", s.config.BaseURL, receipt.TransactionID)

	text := fmt.Sprintf("Hello %s,\n\nPayment received for %s.\nAmount: INR %s\nTransaction: %s\nBatch starts: %s\n\nView your order: %s\n\nThe JavaMaster Team",
		toName, receipt.CourseTitle, receipt.Amount, receipt.TransactionID, receipt.BatchStartDate.Format("02 Jan 2006"), link)
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Payment received</h2>
				<p>Hello %s,</p>
				<p>You are enrolled in <strong>%s</strong>.</p>
				<table style="border-collapse: collapse;">
					<tr><td>Amount paid</td><td>INR %s</td></tr>
					<tr><td>Transaction</td><td>%s</td></tr>
					<tr><td>Purchased on</td><td>%s</td></tr>
					<tr><td>Batch starts</td><td>%s</td></tr>
				</table>
				<p><a href="%s">View your order</a></p>
				<p>Best regards,<br>The JavaMaster Team</p>
			</div>
		</body>
		</html>
	`, name, title, receipt.Amount, html.EscapeString(receipt.TransactionID),
		receipt.PurchaseDate.Format("02 Jan 2006"), receipt.BatchStartDate.Format("02 Jan 2006"), link)

	return s.sendMessage(ctx, toEmail, toName, subject, text, body)
}

func (s *SendGridService) sendMessage(ctx context.Context, toEmail, toName, subject, text, htmlBody string) error {
	if s.config.APIKey == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SendGrid API key not configured - email not sent.")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	p := sgmail.NewPersonalization()
	p.Subject = subject
	p.AddTos(sgmail.NewEmail(toName, toEmail))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(
		sgmail.NewContent("text/plain", text),
		sgmail.NewContent("text/html", htmlBody),
	)

	if err := s.send(m); err != nil {
		s.logger.Error().Err(err).Str("toEmail", toEmail).Str("subject", subject).Msg("Failed to send email")
		return err
	}
	s.logger.Info().Str("toEmail", toEmail).Str("subject", subject).Msg("Email sent")
	return nil
}

func (s *SendGridService) deliver(m *sgmail.SGMailV3) error {
	req := sendgrid.GetRequest(s.config.APIKey, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("sendgrid request failed: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid returned status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}
