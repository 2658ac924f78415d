package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Fahleh/alx-files-manager/internal/auth"
	"github.com/Fahleh/alx-files-manager/internal/files"
)

// wireError pairs a sentinel with its exact outward status and message.
type wireError struct {
	status  int
	message string
}

var wireErrors = []struct {
	err error
	out wireError
}{
	{auth.ErrMissingEmail, wireError{http.StatusBadRequest, "Missing email"}},
	{auth.ErrMissingPassword, wireError{http.StatusBadRequest, "Missing password"}},
	{auth.ErrEmailTaken, wireError{http.StatusBadRequest, "Already exist"}},
	{auth.ErrUnauthorized, wireError{http.StatusUnauthorized, "Unauthorized"}},
	{files.ErrMissingName, wireError{http.StatusBadRequest, "Missing name"}},
	{files.ErrMissingType, wireError{http.StatusBadRequest, "Missing type"}},
	{files.ErrMissingData, wireError{http.StatusBadRequest, "Missing data"}},
	{files.ErrParentNotFound, wireError{http.StatusBadRequest, "Parent not found"}},
	{files.ErrParentNotAFolder, wireError{http.StatusBadRequest, "Parent is not a folder"}},
	{files.ErrFolderHasNoContent, wireError{http.StatusBadRequest, "A folder doesn't have content"}},
	{files.ErrNotFound, wireError{http.StatusNotFound, "Not found"}},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// respondError maps service sentinels to the wire contract; anything
// unmapped is a server fault and the detail stays out of the response.
func (a *API) respondError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range wireErrors {
		if errors.Is(err, m.err) {
			writeError(w, m.out.status, m.out.message)
			return
		}
	}
	a.logger.ErrorContext(r.Context(), "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// recoverer converts a handler panic into the same JSON 500 every
// other failure path produces.
func (a *API) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}
			a.logger.ErrorContext(r.Context(), "panic recovered",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Any("panic", rvr),
			)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}()
		next.ServeHTTP(w, r)
	})
}
