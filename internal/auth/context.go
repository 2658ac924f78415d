package auth

import (
	"context"

	"github.com/Fahleh/alx-files-manager/internal/storage"
)

type ctxKey struct{}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *storage.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*storage.User, bool) {
	user, ok := ctx.Value(ctxKey{}).(*storage.User)
	return user, ok && user != nil
}
