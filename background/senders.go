package background

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/user/taskmanager-go/config"
	"github.com/user/taskmanager-go/logging"
)

// MailgunSender delivers messages through the Mailgun HTTP API.
type MailgunSender struct {
	mg   mailgun.Mailgun
	from string
}

// NewMailgunSender creates a sender for the configured Mailgun domain.
func NewMailgunSender(cfg *config.MailConfig) *MailgunSender {
	return &MailgunSender{
		mg:   mailgun.NewMailgun(cfg.Domain, cfg.APIKey),
		from: cfg.From,
	}
}

// Send delivers msg. 4xx responses other than 429 are wrapped in ErrUndeliverable.
func (s *MailgunSender) Send(ctx context.Context, msg Message) error {
	m := s.mg.NewMessage(s.from, msg.Subject, msg.Text, msg.To)
	if msg.HTML != "" {
		m.SetHtml(msg.HTML)
	}

	if _, _, err := s.mg.Send(ctx, m); err != nil {
		var unexpected *mailgun.UnexpectedResponseError
		if errors.As(err, &unexpected) &&
			unexpected.Actual >= http.StatusBadRequest &&
			unexpected.Actual < http.StatusInternalServerError &&
			unexpected.Actual != http.StatusTooManyRequests {
			return fmt.Errorf("%w: mailgun: %v", ErrUndeliverable, err)
		}
		return fmt.Errorf("mailgun: %w", err)
	}
	return nil
}

// LogSender only logs messages. It stands in for Mailgun when no credentials are configured.
type LogSender struct {
	log logging.Logger
}

func NewLogSender(log logging.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.log.Info(ctx, "mail (not sent, no provider configured)", "to", msg.To, "subject", msg.Subject, "text", msg.Text)
	return nil
}

// NewSender picks Mailgun when it is configured and the log sender otherwise.
func NewSender(cfg *config.MailConfig, log logging.Logger) Sender {
	if cfg.Enabled() {
		return NewMailgunSender(cfg)
	}
	log.Warn(context.Background(), "MAILGUN_API_KEY or MAILGUN_DOMAIN not set, emails will only be logged")
	return NewLogSender(log)
}

var (
	_ Sender = (*MailgunSender)(nil)
	_ Sender = (*LogSender)(nil)
)
