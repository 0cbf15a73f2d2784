package services

import (
	"fmt"

	"lms-backend/internal/config"

	"gopkg.in/gomail.v2"
)

// SMTPEmailService sends mail through the configured SMTP relay
type SMTPEmailService struct {
	cfg config.SMTPConfig
}

// NewSMTPEmailService creates a new SMTP email service
func NewSMTPEmailService(cfg config.SMTPConfig) *SMTPEmailService {
	return &SMTPEmailService{cfg: cfg}
}

// Send delivers a plain-text message
func (s *SMTPEmailService) Send(toAddress, subject, bodyText string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.FromEmail, s.cfg.FromName)
	m.SetHeader("To", toAddress)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", bodyText)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", toAddress, err)
	}
	return nil
}
