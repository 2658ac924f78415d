// Package api exposes the service over HTTP: registration, token
// sessions, the upload pipeline, listing and content delivery. Routes
// follow the wire contract exactly, including error message text.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Fahleh/alx-files-manager/internal/auth"
	"github.com/Fahleh/alx-files-manager/internal/files"
	"github.com/Fahleh/alx-files-manager/pkg/logger"
)

// Counter reports the number of stored records; the stats endpoint
// takes one per collection.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Healthcheck probes one backing dependency.
type Healthcheck func(ctx context.Context) error

// API is the HTTP surface over the auth and files services.
type API struct {
	auth   *auth.Service
	files  *files.Service
	users  Counter
	store  Counter
	redis  Healthcheck
	db     Healthcheck
	logger *slog.Logger
}

// Option configures optional API collaborators.
type Option func(*API)

// WithLogger sets the request-scope logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *API) {
		if log != nil {
			a.logger = log
		}
	}
}

// WithStats wires the counters behind GET /stats.
func WithStats(users, store Counter) Option {
	return func(a *API) {
		a.users = users
		a.store = store
	}
}

// WithHealthchecks wires the probes behind GET /status.
func WithHealthchecks(redis, db Healthcheck) Option {
	return func(a *API) {
		a.redis = redis
		a.db = db
	}
}

// New assembles the HTTP surface. Auth and files services are
// mandatory; stats and status degrade gracefully without their
// collaborators.
func New(authSvc *auth.Service, filesSvc *files.Service, opts ...Option) *API {
	a := &API{
		auth:   authSvc,
		files:  filesSvc,
		logger: logger.NewDiscard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handler builds the router. Authenticated routes sit behind the token
// middleware; content delivery accepts anonymous callers and lets the
// visibility guard decide.
func (a *API) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(a.recoverer)

	r.Get("/status", a.getStatus)
	r.Get("/stats", a.getStats)

	r.Post("/users", a.postUsers)
	r.With(a.auth.Basic).Get("/connect", a.getConnect)

	r.Group(func(r chi.Router) {
		r.Use(a.auth.Token)
		r.Get("/disconnect", a.getDisconnect)
		r.Get("/users/me", a.getMe)
		r.Post("/files", a.postFiles)
		r.Get("/files", a.getIndex)
		r.Get("/files/{id}", a.getShow)
		r.Put("/files/{id}/publish", a.putPublish)
		r.Put("/files/{id}/unpublish", a.putUnpublish)
	})

	r.With(a.auth.OptionalToken).Get("/files/{id}/data", a.getFileData)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})

	return r
}
