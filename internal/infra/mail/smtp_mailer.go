// Package mail provides concrete implementations of the outbound email
// collaborator.
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	netmail "net/mail"
	gosmtp "net/smtp"
	"strings"
	"time"

	"trailhead/config"
	"trailhead/internal/domain/entity"
	"trailhead/internal/domain/service"

	"github.com/pkg/errors"
)

const dialTimeout = 10 * time.Second

// smtpMailer sends plain-text mail over STARTTLS using net/smtp.
type smtpMailer struct {
	host     string
	port     int
	username string
	password string
	from     netmail.Address
}

// NewSMTPMailer is the constructor for smtpMailer.
func NewSMTPMailer(cfg *config.SMTPConfig) service.Mailer {
	return &smtpMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     netmail.Address{Name: "Trailhead", Address: cfg.From},
	}
}

// SendWelcome greets a freshly registered account.
func (m *smtpMailer) SendWelcome(ctx context.Context, account *entity.Account) error {
	body := fmt.Sprintf("Hi %s,\n\nWelcome to Trailhead! We're glad to have you on board.\n", account.Name)

	return m.send(ctx, account.Email, "Welcome to Trailhead!", body)
}

// SendPasswordReset transmits the reset link. The link carries the only
// plaintext copy of the reset secret that will ever exist.
func (m *smtpMailer) SendPasswordReset(ctx context.Context, account *entity.Account, resetURL string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nForgot your password? Submit a PATCH request with your new password to:\n%s\n\nThe link is valid for 10 minutes. If you didn't forget your password, please ignore this email.\n",
		account.Name, resetURL,
	)

	return m.send(ctx, account.Email, "Your password reset token (valid for 10 min)", body)
}

// send builds an RFC 2822 message and delivers it over STARTTLS.
func (m *smtpMailer) send(ctx context.Context, to, subject, body string) error {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", m.from.String()))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z)))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "connecting to %s", addr)
	}
	defer conn.Close()

	client, err := gosmtp.NewClient(conn, m.host)
	if err != nil {
		return errors.Wrap(err, "creating smtp client")
	}
	defer client.Close()

	tlsConfig := &tls.Config{ServerName: m.host, MinVersion: tls.VersionTLS12}
	if err := client.StartTLS(tlsConfig); err != nil {
		return errors.Wrap(err, "starting TLS")
	}

	if m.username != "" {
		auth := gosmtp.PlainAuth("", m.username, m.password, m.host)
		if err := client.Auth(auth); err != nil {
			return errors.Wrap(err, "authenticating")
		}
	}

	if err := client.Mail(m.from.Address); err != nil {
		return errors.Wrap(err, "MAIL FROM")
	}
	if err := client.Rcpt(to); err != nil {
		return errors.Wrapf(err, "RCPT TO %s", to)
	}

	w, err := client.Data()
	if err != nil {
		return errors.Wrap(err, "DATA")
	}
	if _, err := w.Write([]byte(msg.String())); err != nil {
		return errors.Wrap(err, "writing message")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "closing message")
	}

	return errors.Wrap(client.Quit(), "QUIT")
}
