package email

import (
	"fmt"
	"net/smtp"
)

// Service handles email sending via SMTP
type Service struct {
	host string
	port string
	from string
}

// NewService creates a new email service
func NewService(host, port, from string) *Service {
	return &Service{
		host: host,
		port: port,
		from: from,
	}
}

// SendContactAck acknowledges a contact-form submission to its sender.
func (s *Service) SendContactAck(to, name, subject string) error {
	body := BuildContactAckBody(name, subject)
	return s.send(to, "We received your message", body)
}

// SendContactNotice forwards a contact-form submission to the support inbox.
func (s *Service) SendContactNotice(to, name, fromEmail, subject, message string) error {
	body := BuildContactNoticeBody(name, fromEmail, subject, message)
	return s.send(to, fmt.Sprintf("New contact message: %s", subject), body)
}

// SendNewsletterWelcome greets a new newsletter subscriber.
func (s *Service) SendNewsletterWelcome(to string) error {
	body := BuildNewsletterWelcomeBody(to)
	return s.send(to, "Welcome to our newsletter", body)
}

func (s *Service) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg))
}
