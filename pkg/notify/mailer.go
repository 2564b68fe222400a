// Package notify sends customer email and internal stock alerts.
package notify

import (
	"fmt"
	"io"
	"log"

	"gopkg.in/gomail.v2"

	"github.com/starkproducts/platform/pkg/models"
)

// Mailer is the outgoing email surface used by the API layer.
type Mailer interface {
	Enabled() bool
	SendQuote(quote *models.Quote, pdfData []byte, message string) error
	SendStatusUpdate(quote *models.Quote, oldStatus models.QuoteStatus) error
	SendFollowUp(quote *models.Quote, message string) error
	SendVerification(email, name, token string) error
	SendPasswordReset(email, name, token string) error
}

// SMTPConfig holds the SMTP connection settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// sender abstracts gomail's DialAndSend for tests.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer sends email through an SMTP relay with gomail.
type SMTPMailer struct {
	config SMTPConfig
	send   sender
}

// NewSMTPMailer builds a mailer. When credentials are missing the mailer is
// disabled and every send returns ErrMailerDisabled.
func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	m := &SMTPMailer{config: config}

	if config.Username != "" && config.Password != "" {
		m.send = gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	}

	return m
}

// Enabled reports whether the mailer can send.
func (m *SMTPMailer) Enabled() bool { return m.send != nil }

// SendQuote emails a quote to its customer with the PDF attached.
func (m *SMTPMailer) SendQuote(quote *models.Quote, pdfData []byte, message string) error {
	if message == "" {
		message = fmt.Sprintf(
			"Dear %s,\n\nPlease find your quotation attached. It is valid until %s.\n\nKind regards,\n%s",
			quote.CustomerInfo.Name,
			quote.ExpiresAt.Format("2 January 2006"),
			m.config.FromName,
		)
	}

	return m.deliver(quote.CustomerInfo.Email,
		fmt.Sprintf("Your quotation from %s", m.config.FromName),
		message,
		&attachment{name: "quotation.pdf", data: pdfData})
}

// SendStatusUpdate notifies the customer that their quote moved to a new
// status.
func (m *SMTPMailer) SendStatusUpdate(quote *models.Quote, oldStatus models.QuoteStatus) error {
	body := fmt.Sprintf(
		"Dear %s,\n\nThe status of your quotation has changed from %s to %s.\n\nKind regards,\n%s",
		quote.CustomerInfo.Name, oldStatus, quote.Status, m.config.FromName,
	)

	return m.deliver(quote.CustomerInfo.Email,
		fmt.Sprintf("Quotation update from %s", m.config.FromName), body, nil)
}

// SendFollowUp sends a follow-up nudge about an open quote.
func (m *SMTPMailer) SendFollowUp(quote *models.Quote, message string) error {
	if message == "" {
		message = fmt.Sprintf(
			"Dear %s,\n\nWe are following up on the quotation we sent you. It remains valid until %s. Please let us know if you have any questions.\n\nKind regards,\n%s",
			quote.CustomerInfo.Name,
			quote.ExpiresAt.Format("2 January 2006"),
			m.config.FromName,
		)
	}

	return m.deliver(quote.CustomerInfo.Email,
		fmt.Sprintf("Following up on your quotation from %s", m.config.FromName), message, nil)
}

// SendVerification sends the email verification link token.
func (m *SMTPMailer) SendVerification(email, name, token string) error {
	body := fmt.Sprintf(
		"Dear %s,\n\nPlease verify your email address using this code:\n\n%s\n\nKind regards,\n%s",
		name, token, m.config.FromName,
	)

	return m.deliver(email, "Verify your email address", body, nil)
}

// SendPasswordReset sends the password reset token.
func (m *SMTPMailer) SendPasswordReset(email, name, token string) error {
	body := fmt.Sprintf(
		"Dear %s,\n\nA password reset was requested for your account. Use this code to choose a new password:\n\n%s\n\nIf you did not request this, you can ignore this email.\n\nKind regards,\n%s",
		name, token, m.config.FromName,
	)

	return m.deliver(email, "Password reset", body, nil)
}

type attachment struct {
	name string
	data []byte
}

func (m *SMTPMailer) deliver(to, subject, body string, att *attachment) error {
	if !m.Enabled() {
		log.Printf("Mailer disabled, skipping email to %s: %s", to, subject)
		return ErrMailerDisabled
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.config.From, m.config.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if att != nil {
		msg.Attach(att.name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(att.data)
			return err
		}))
	}

	if err := m.send.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}
