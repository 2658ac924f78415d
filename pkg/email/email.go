// Package email sends transactional mail. Production uses Postmark;
// development writes messages to disk so no token is needed.
package email

import (
	"context"
	"errors"
	"regexp"
)

var (
	// ErrFailedToSendEmail wraps any delivery failure.
	ErrFailedToSendEmail = errors.New("failed to send email")
	// ErrInvalidConfig is returned for incomplete sender configuration.
	ErrInvalidConfig = errors.New("invalid mailer configuration")
	// ErrInvalidParams is returned for incomplete message parameters.
	ErrInvalidParams = errors.New("invalid email parameters")
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Sender delivers a single message.
type Sender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams describes one outbound message.
type SendEmailParams struct {
	SendTo   string `json:"send_to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	Tag      string `json:"tag,omitempty"`
}

// Validate checks the message is deliverable.
func (p SendEmailParams) Validate() error {
	if p.SendTo == "" || !emailRegex.MatchString(p.SendTo) {
		return errors.Join(ErrInvalidParams, errors.New("recipient must be a valid email address"))
	}
	if p.Subject == "" {
		return errors.Join(ErrInvalidParams, errors.New("subject is required"))
	}
	if p.BodyHTML == "" {
		return errors.Join(ErrInvalidParams, errors.New("body is required"))
	}
	return nil
}

// Config holds mailer settings. The Postmark tokens are optional so
// development environments can fall back to the dev sender.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"no-reply@files-manager.local"`
	DevOutputDir         string `env:"EMAIL_DEV_DIR" envDefault:"./emails"`
}

// NewFromConfig returns a Postmark sender when tokens are configured
// and the disk-backed dev sender otherwise.
func NewFromConfig(cfg Config) (Sender, error) {
	if cfg.PostmarkServerToken != "" && cfg.PostmarkAccountToken != "" {
		return NewPostmarkSender(cfg)
	}
	return NewDevSender(cfg.DevOutputDir), nil
}
