// Package session maps opaque tokens to user ids in the expiring
// cache. The cache is the sole source of truth for session liveness:
// a missing key means unauthenticated, whether the session expired or
// never existed.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces session keys in the shared cache.
const keyPrefix = "auth_"

// ErrNotFound is returned when a token resolves to nothing, because it
// expired, was destroyed, or never existed.
var ErrNotFound = errors.New("session not found")

// Config holds session settings.
type Config struct {
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"` // TTL is the lifetime of a session after creation.
}

// cache is the slice of the redis API the store needs; narrow so tests
// can fake it.
type cache interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Store creates, resolves and destroys sessions. Every operation is a
// single cache round-trip.
type Store struct {
	cache cache
	ttl   time.Duration
}

// New creates a session store over the given cache client.
func New(client redis.UniversalClient, cfg Config) *Store {
	return &Store{cache: client, ttl: cfg.TTL}
}

// Create mints a random opaque token for the user and stores the
// mapping with the configured TTL.
func (s *Store) Create(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := s.cache.Set(ctx, keyPrefix+token, userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

// Resolve returns the user id the token maps to, or ErrNotFound.
func (s *Store) Resolve(ctx context.Context, token string) (string, error) {
	userID, err := s.cache.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to resolve session: %w", err)
	}
	return userID, nil
}

// Destroy removes the session. Destroying an absent token is not an
// error.
func (s *Store) Destroy(ctx context.Context, token string) error {
	if err := s.cache.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}
