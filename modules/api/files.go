package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Fahleh/alx-files-manager/internal/auth"
	"github.com/Fahleh/alx-files-manager/internal/files"
)

type uploadRequest struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	ParentID json.RawMessage `json:"parentId"`
	IsPublic bool            `json:"isPublic"`
	Data     string          `json:"data"`
}

// parentIDString flattens the two accepted wire forms of parentId, the
// number 0 and a hex id string, into the service's string form.
func parentIDString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return strings.TrimSpace(string(raw))
}

func (a *API) postFiles(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		a.respondError(w, r, auth.ErrUnauthorized)
		return
	}

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing name")
		return
	}

	view, err := a.files.Upload(r.Context(), files.UploadInput{
		OwnerID:  user.ID,
		Name:     req.Name,
		Type:     req.Type,
		ParentID: parentIDString(req.ParentID),
		IsPublic: req.IsPublic,
		Data:     req.Data,
	})
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

func (a *API) getShow(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		a.respondError(w, r, auth.ErrUnauthorized)
		return
	}

	view, err := a.files.Show(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (a *API) getIndex(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		a.respondError(w, r, auth.ErrUnauthorized)
		return
	}

	// A page value that fails to parse means page zero, it is not an
	// error.
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		page = 0
	}

	list, err := a.files.List(r.Context(), user.ID, r.URL.Query().Get("parentId"), page)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (a *API) setPublic(w http.ResponseWriter, r *http.Request, public bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		a.respondError(w, r, auth.ErrUnauthorized)
		return
	}

	view, err := a.files.SetPublic(r.Context(), user.ID, chi.URLParam(r, "id"), public)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (a *API) putPublish(w http.ResponseWriter, r *http.Request) {
	a.setPublic(w, r, true)
}

func (a *API) putUnpublish(w http.ResponseWriter, r *http.Request) {
	a.setPublic(w, r, false)
}

func (a *API) getFileData(w http.ResponseWriter, r *http.Request) {
	var requesterID string
	if user, ok := auth.UserFromContext(r.Context()); ok {
		requesterID = user.ID
	}

	content, err := a.files.OpenContent(r.Context(), requesterID, chi.URLParam(r, "id"), r.URL.Query().Get("size"))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	defer content.Close()

	w.Header().Set("Content-Type", content.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(content.Size, 10))
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, content)
}
