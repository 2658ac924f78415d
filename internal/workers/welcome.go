package workers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Fahleh/alx-files-manager/internal/jobs"
	"github.com/Fahleh/alx-files-manager/internal/storage"
	"github.com/Fahleh/alx-files-manager/pkg/email"
	"github.com/Fahleh/alx-files-manager/pkg/logger"
)

// UserLookup is the slice of the users repository the welcomer needs.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*storage.User, error)
}

// Welcomer sends the greeting email to freshly registered users.
type Welcomer struct {
	users  UserLookup
	sender email.Sender
	logger *slog.Logger
}

// NewWelcomer creates the welcome email job handler.
func NewWelcomer(users UserLookup, sender email.Sender, log *slog.Logger) *Welcomer {
	if log == nil {
		log = logger.NewDiscard()
	}
	return &Welcomer{users: users, sender: sender, logger: log}
}

// Handle resolves the job's user and sends the greeting.
func (w *Welcomer) Handle(ctx context.Context, job jobs.WelcomeEmail) error {
	user, err := w.users.GetByID(ctx, job.UserID)
	if err != nil {
		return fmt.Errorf("failed to load user %s: %w", job.UserID, err)
	}

	err = w.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:  user.Email,
		Subject: "Welcome to Files Manager",
		BodyHTML: fmt.Sprintf(
			"<h1>Hello %s!</h1><p>Welcome to Files Manager, your simple file management solution.</p>",
			user.Email,
		),
		Tag: "welcome",
	})
	if err != nil {
		return fmt.Errorf("failed to send welcome email to %s: %w", user.Email, err)
	}

	w.logger.Info("welcome email sent", slog.String("user_id", user.ID))
	return nil
}
