// Package auth resolves caller identity. Registration and the basic
// credential scheme verify against the users collection; the token
// scheme reads the session store. Password hashes use bcrypt and never
// appear in any outward representation.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/Fahleh/alx-files-manager/internal/jobs"
	"github.com/Fahleh/alx-files-manager/internal/storage"
	"github.com/Fahleh/alx-files-manager/pkg/logger"
)

// UserStore is the slice of the users repository the service needs.
type UserStore interface {
	Create(ctx context.Context, email string, passwordHash []byte) (*storage.User, error)
	GetByEmail(ctx context.Context, email string) (*storage.User, error)
	GetByID(ctx context.Context, id string) (*storage.User, error)
}

// SessionStore mints, resolves and revokes session tokens.
type SessionStore interface {
	Create(ctx context.Context, userID string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
	Destroy(ctx context.Context, token string) error
}

// Enqueuer hands background jobs off without waiting on them.
type Enqueuer interface {
	Enqueue(ctx context.Context, payload any) error
}

// Service implements registration and both credential schemes.
type Service struct {
	users    UserStore
	sessions SessionStore
	enqueuer Enqueuer
	logger   *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithEnqueuer enables the welcome-email handoff on registration.
func WithEnqueuer(enq Enqueuer) Option {
	return func(s *Service) { s.enqueuer = enq }
}

// New creates the auth service.
func New(users UserStore, sessions SessionStore, opts ...Option) *Service {
	s := &Service{
		users:    users,
		sessions: sessions,
		logger:   logger.NewDiscard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a user from an email/password pair. The welcome
// email job is enqueued fire-and-forget: a broker hiccup is logged,
// never surfaced to the caller.
func (s *Service) Register(ctx context.Context, email, password string) (*storage.User, error) {
	if email == "" {
		return nil, ErrMissingEmail
	}
	if password == "" {
		return nil, ErrMissingPassword
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, email, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.enqueuer != nil {
		if err := s.enqueuer.Enqueue(ctx, jobs.WelcomeEmail{UserID: user.ID}); err != nil {
			s.logger.Error("failed to enqueue welcome email",
				slog.String("user_id", user.ID),
				slog.Any("error", err),
			)
		}
	}

	return user, nil
}

// VerifyCredentials checks an email/password pair. Every failure mode
// collapses into ErrUnauthorized.
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (*storage.User, error) {
	if email == "" || password == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// OpenSession mints a session token for an authenticated user.
func (s *Service) OpenSession(ctx context.Context, userID string) (string, error) {
	token, err := s.sessions.Create(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to open session: %w", err)
	}
	return token, nil
}

// CloseSession revokes a token. Idempotent.
func (s *Service) CloseSession(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

// ResolveToken maps a session token to its user, or ErrUnauthorized.
func (s *Service) ResolveToken(ctx context.Context, token string) (*storage.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}
