package utils

import (
	"fmt"
	"log"

	"coursepay/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends fulfillment notifications through SendGrid. A nil Mailer (no
// API key configured) disables email without touching the call sites.
type Mailer struct {
	client *sendgrid.Client
	sender string
}

// NewMailer returns nil when email is not configured.
func NewMailer(cfg *config.Config) *Mailer {
	if cfg.SendgridAPIKey == "" || cfg.EmailSender == "" {
		log.Println("Warning: SENDGRID_API_KEY or EMAIL_SENDER not set. Confirmation emails disabled.")
		return nil
	}
	return &Mailer{
		client: sendgrid.NewSendClient(cfg.SendgridAPIKey),
		sender: cfg.EmailSender,
	}
}

// SendEnrollmentConfirmation emails a purchase receipt. Best effort only:
// failures are logged and never affect fulfillment.
func (m *Mailer) SendEnrollmentConfirmation(toEmail, courseTitle string) {
	from := mail.NewEmail("CoursePay", m.sender)
	to := mail.NewEmail("", toEmail)
	subject := "You're enrolled: " + courseTitle
	htmlBody := enrollmentEmailBody(courseTitle)

	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)
	resp, err := m.client.Send(message)
	if err != nil {
		log.Printf("[EMAIL] failed to send enrollment confirmation to %s: %v", toEmail, err)
		return
	}
	if resp.StatusCode >= 400 {
		log.Printf("[EMAIL] sendgrid returned %d for %s", resp.StatusCode, toEmail)
		return
	}
	log.Printf("[EMAIL] enrollment confirmation sent to %s", toEmail)
}

func enrollmentEmailBody(courseTitle string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<body style="font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0;">
		<div style="max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden;">
			<div style="background-color: #00004D; padding: 30px; text-align: center;">
				<h1 style="color: #FFFFFF; margin: 0;">Payment received</h1>
			</div>
			<div style="padding: 40px 30px; color: #00004D; line-height: 1.6;">
				<h2>Welcome aboard!</h2>
				<p>Your payment was successful and you are now enrolled in <strong>%s</strong>.</p>
				<p>The course is available from your dashboard right away.</p>
			</div>
			<div style="background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666;">
				This is an automated receipt, replies are not monitored.
			</div>
		</div>
	</body>
	</html>`, courseTitle)
}
