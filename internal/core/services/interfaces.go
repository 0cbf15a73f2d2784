package services

// EmailSender delivers plain-text mail. PasswordResetService invokes it
// synchronously during RequestReset; tests substitute a fake so reset logic
// runs without a live SMTP connection.
type EmailSender interface {
	Send(toAddress, subject, bodyText string) error
}
