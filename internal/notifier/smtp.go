package notifier

import (
	"bytes"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"

	"github.com/msme-awards/adjudication-api/internal/config"
)

// SMTPNotifier delivers rendered messages over plain SMTP.
type SMTPNotifier struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewSMTP(cfg *config.Config) *SMTPNotifier {
	return &SMTPNotifier{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
	}
}

func (s *SMTPNotifier) Send(m Message) error {
	subject, body, err := Render(m)
	if err != nil {
		return err
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", m.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := net.JoinHostPort(s.host, s.port)
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	// Auth only when credentials are configured; local relays (Mailpit)
	// accept unauthenticated mail.
	if s.username != "" && s.password != "" {
		auth := smtp.PlainAuth("", s.username, s.password, s.host)
		_ = client.Auth(auth)
	}

	if err := client.Mail(s.envelopeFrom()); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(m.To); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to initiate data transfer: %w", err)
	}
	if _, err := wc.Write(msg.Bytes()); err != nil {
		wc.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to finish message: %w", err)
	}

	return client.Quit()
}

// envelopeFrom strips an RFC 5322 display name so MAIL FROM gets a bare
// address even when SMTP_FROM carries one.
func (s *SMTPNotifier) envelopeFrom() string {
	if addr, err := mail.ParseAddress(s.from); err == nil {
		return addr.Address
	}
	return s.from
}
