// internal/app/system/mailer/mailer.go
package mailer

import (
	"fmt"
	"net/smtp"
)

// Email is a fully rendered message ready to send.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Config holds SMTP settings from app configuration.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
}

// Sender delivers Email messages over SMTP.
type Sender struct {
	cfg Config
}

// NewSender builds a Sender from config.
func NewSender(cfg Config) *Sender {
	return &Sender{cfg: cfg}
}

// Send delivers the message. Callers that treat delivery as best-effort
// (join-request notifications) log the returned error and move on.
func (s *Sender) Send(e Email) error {
	from := s.cfg.From
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.From)
	}

	body := e.HTMLBody
	contentType := "text/html; charset=UTF-8"
	if body == "" {
		body = e.TextBody
		contentType = "text/plain; charset=UTF-8"
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: %s\r\n\r\n%s",
		from, e.To, e.Subject, contentType, body)

	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	return smtp.SendMail(addr, auth, s.cfg.From, []string{e.To}, []byte(msg))
}
