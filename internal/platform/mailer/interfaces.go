package mailer

type Service interface {
	Send(toEmail, toName, subject, text, html string) (string, error)
	SendRSVPConfirmation(email, guestName string, attending bool) error
}
