package mailer

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	"github.com/velorent/vehicle-rental-backend/internal/config"
)

// Mailer sends transactional email through SendGrid. In dev mode it logs
// the message instead of sending so local setups don't need an API key.
type Mailer struct {
	mode        string
	apiKey      string
	fromAddress string
	fromName    string
	logger      *logrus.Logger
}

// New creates a Mailer from the email configuration
func New(cfg *config.EmailConfig, logger *logrus.Logger) *Mailer {
	return &Mailer{
		mode:        cfg.Mode,
		apiKey:      cfg.APIKey,
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		logger:      logger,
	}
}

// Send delivers a single email
func (m *Mailer) Send(to, toName, subject, plainText, htmlContent string) error {
	if m.mode != "production" {
		m.logger.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("Email suppressed in dev mode")
		return nil
	}

	from := mail.NewEmail(m.fromName, m.fromAddress)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}

	return nil
}

// SendWelcome sends the post-registration welcome email
func (m *Mailer) SendWelcome(to, firstName string) error {
	subject := "Welcome to Velorent"
	plainText := fmt.Sprintf("Hi %s, your Velorent account is ready. Browse the fleet and book your first ride.", firstName)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Welcome, %s!</h2>
				<p>Your Velorent account is ready. Browse the fleet and book your first ride.</p>
			</body>
		</html>
	`, firstName)

	return m.Send(to, firstName, subject, plainText, htmlContent)
}

// SendBookingConfirmation sends the post-payment booking receipt
func (m *Mailer) SendBookingConfirmation(to, firstName, bookingID string, amount float64) error {
	subject := "Your booking is confirmed"
	plainText := fmt.Sprintf("Hi %s, booking %s is confirmed. Amount charged: %.2f.", firstName, bookingID, amount)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Booking confirmed</h2>
				<p>Hi %s, your booking <strong>%s</strong> is confirmed.</p>
				<p>Amount charged: <strong>%.2f</strong></p>
			</body>
		</html>
	`, firstName, bookingID, amount)

	return m.Send(to, firstName, subject, plainText, htmlContent)
}
