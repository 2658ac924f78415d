package api

import (
	"encoding/json"
	"net/http"

	"github.com/Fahleh/alx-files-manager/internal/auth"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (a *API) postUsers(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// An unreadable body carries no email; the reply is the same
		// as an empty one.
		writeError(w, http.StatusBadRequest, "Missing email")
		return
	}

	user, err := a.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, userResponse{ID: user.ID, Email: user.Email})
}

func (a *API) getConnect(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		a.respondError(w, r, auth.ErrUnauthorized)
		return
	}

	token, err := a.auth.OpenSession(r.Context(), user.ID)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (a *API) getDisconnect(w http.ResponseWriter, r *http.Request) {
	if err := a.auth.CloseSession(r.Context(), r.Header.Get(auth.TokenHeader)); err != nil {
		a.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) getMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		a.respondError(w, r, auth.ErrUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{ID: user.ID, Email: user.Email})
}
