package mailer

import (
	"github.com/horvathb/wedding-rsvp/pkg/logger"
)

// DevMailer logs instead of sending, for local development.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) Send(toEmail, toName, subject, text, html string) (string, error) {
	logger.Info("📧 [DEV MAIL]",
		"to", toEmail,
		"name", toName,
		"subject", subject,
		"text", text,
	)
	return "dev-mail", nil
}

func (d *DevMailer) SendRSVPConfirmation(email, guestName string, attending bool) error {
	logger.Info("📧 [DEV MAIL] RSVP Confirmation",
		"to", email,
		"guest", guestName,
		"attending", attending,
	)
	return nil
}
