package notification

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/citytickets/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	gomail "gopkg.in/gomail.v2"
)

// TicketMail carries the content of a purchase confirmation email
type TicketMail struct {
	To           string
	TicketNumber string
	EventTitle   string
	EventStarts  time.Time
	VenueLine    string
	Price        decimal.Decimal
	PDF          []byte
	QRPNG        []byte
}

// SMTPMailer sends transactional mail over SMTP
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a mailer from SMTP settings
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func attach(m *gomail.Message, name string, data []byte) {
	m.Attach(name, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}))
}

// SendTicket emails the e-ticket with the PDF and QR image attached
func (s *SMTPMailer) SendTicket(mail TicketMail) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", mail.To)
	m.SetHeader("Subject", fmt.Sprintf("Your ticket for %s", mail.EventTitle))

	var body bytes.Buffer
	fmt.Fprintf(&body, "Thank you for your purchase!\n\n")
	fmt.Fprintf(&body, "Event: %s\n", mail.EventTitle)
	fmt.Fprintf(&body, "Date: %s\n", mail.EventStarts.Format("02.01.2006 15:04"))
	if mail.VenueLine != "" {
		fmt.Fprintf(&body, "Venue: %s\n", mail.VenueLine)
	}
	fmt.Fprintf(&body, "Ticket: %s\n", mail.TicketNumber)
	fmt.Fprintf(&body, "Price: %s\n\n", mail.Price.StringFixed(2))
	fmt.Fprintf(&body, "Your ticket is attached. Show the QR code at the entrance.\n")
	m.SetBody("text/plain", body.String())

	if len(mail.PDF) > 0 {
		attach(m, "ticket.pdf", mail.PDF)
	}
	if len(mail.QRPNG) > 0 {
		attach(m, "ticket-qr.png", mail.QRPNG)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send ticket email: %w", err)
	}
	return nil
}

// SendRefundNotice emails a refund confirmation
func (s *SMTPMailer) SendRefundNotice(to, eventTitle, ticketNumber string, amount decimal.Decimal) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Refund for %s", eventTitle))

	var body bytes.Buffer
	fmt.Fprintf(&body, "Your ticket %s for %s has been refunded.\n", ticketNumber, eventTitle)
	fmt.Fprintf(&body, "Amount: %s\n\n", amount.StringFixed(2))
	fmt.Fprintf(&body, "The money will arrive by the means of the original payment.\n")
	m.SetBody("text/plain", body.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send refund email: %w", err)
	}
	return nil
}

// SendPasswordResetCode emails a one-time password reset code
func (s *SMTPMailer) SendPasswordResetCode(to, code string) error {
	return s.sendCode(to, "Password reset code", code)
}

// SendProfileEditCode emails a one-time profile change confirmation code
func (s *SMTPMailer) SendProfileEditCode(to, code string) error {
	return s.sendCode(to, "Profile change confirmation code", code)
}

func (s *SMTPMailer) sendCode(to, subject, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", fmt.Sprintf("Your confirmation code: %s\n\nThe code is valid for 15 minutes.\n", code))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send code email: %w", err)
	}
	return nil
}
