package auth

import (
	"encoding/json"
	"net/http"
)

// TokenHeader carries the session token on authenticated requests.
const TokenHeader = "X-Token"

// Basic authenticates via the Authorization header's credential pair
// and attaches the user to the request context. It does not open a
// session; the handler behind it decides whether to mint a token.
func (s *Service) Basic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, password, ok := r.BasicAuth()
		if !ok {
			writeUnauthorized(w)
			return
		}

		user, err := s.VerifyCredentials(r.Context(), email, password)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// Token authenticates via the X-Token header and attaches the user to
// the request context, rejecting the request otherwise.
func (s *Service) Token(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.ResolveToken(r.Context(), r.Header.Get(TokenHeader))
		if err != nil {
			writeUnauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// OptionalToken attaches the user when the token resolves but lets the
// request through either way. Used where public access is allowed and
// ownership only widens what the caller can see.
func (s *Service) OptionalToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, err := s.ResolveToken(r.Context(), r.Header.Get(TokenHeader)); err == nil {
			r = r.WithContext(WithUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}
