package email

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/example/ec-shop-api/internal/config"
)

// Service sends transactional mail via SMTP. Without a configured host
// it logs the message instead of sending, so local setups need no mail
// server.
type Service struct {
	cfg config.SMTPConfig
}

func NewService(cfg config.SMTPConfig) *Service {
	return &Service{cfg: cfg}
}

// SendOrderConfirmation mails a customer after their order is placed.
func (s *Service) SendOrderConfirmation(to, name, orderID string, total float64) error {
	subject := fmt.Sprintf("Order confirmation #%s", shortID(orderID))
	return s.send(to, subject, BuildOrderConfirmationBody(name, orderID, total))
}

// SendOrderStatusUpdate mails a customer after an admin status change.
func (s *Service) SendOrderStatusUpdate(to, name, orderID, status string) error {
	subject := fmt.Sprintf("Order #%s is now %s", shortID(orderID), status)
	return s.send(to, subject, BuildStatusUpdateBody(name, orderID, status))
}

func (s *Service) send(to, subject, body string) error {
	if s.cfg.Host == "" {
		log.Printf("[Email] SMTP not configured, would send to %s: %s", to, subject)
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.cfg.From, to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)

	var a smtp.Auth
	if s.cfg.Username != "" {
		a = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	return smtp.SendMail(addr, a, s.cfg.From, []string{to}, []byte(msg))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
