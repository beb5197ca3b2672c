package mail

import (
	"context"
	"log/slog"

	"trailhead/config"
	"trailhead/internal/domain/entity"
	"trailhead/internal/domain/service"
)

// logMailer stands in for SMTP in development. It logs the mail it would
// have sent, including the reset URL, so the flow can be exercised without
// a mail server.
type logMailer struct {
	logger *slog.Logger
}

// NewLogMailer is the constructor for logMailer.
func NewLogMailer(logger *slog.Logger) service.Mailer {
	return &logMailer{logger: logger}
}

// New selects the mailer implementation from configuration: SMTP when a
// host is configured, log-only otherwise.
func New(cfg *config.Config, logger *slog.Logger) service.Mailer {
	if cfg.SMTP != nil && cfg.SMTP.Host != "" {
		return NewSMTPMailer(cfg.SMTP)
	}

	return NewLogMailer(logger)
}

func (m *logMailer) SendWelcome(_ context.Context, account *entity.Account) error {
	m.logger.Info("mail: welcome",
		slog.String("to", account.Email),
		slog.String("name", account.Name),
	)

	return nil
}

func (m *logMailer) SendPasswordReset(_ context.Context, account *entity.Account, resetURL string) error {
	m.logger.Info("mail: password reset",
		slog.String("to", account.Email),
		slog.String("resetURL", resetURL),
	)

	return nil
}
