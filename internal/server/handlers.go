package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"lectio/internal/entitlement"
	"lectio/internal/mirror"
	"lectio/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	success(w, map[string]string{"service": "lectiod"}, "ok")
}

func (s *Server) handleCreateBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		fail(w, http.StatusUnauthorized, mirror.KindPermissionDenied, "user not logged in")
		return
	}

	var b mirror.BookmarkPayload
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		fail(w, http.StatusBadRequest, mirror.KindUnknown, "invalid JSON body")
		return
	}
	if b.ID == "" || b.BookID == 0 || b.Verse == 0 {
		fail(w, http.StatusBadRequest, mirror.KindUnknown, "id, bookId and verse are required")
		return
	}

	if err := s.repo.SaveBookmark(r.Context(), userID, b); err != nil {
		fail(w, http.StatusInternalServerError, mirror.KindUnknown, "failed to save bookmark")
		return
	}
	success(w, map[string]string{"id": b.ID}, "bookmark saved")
}

func (s *Server) handleDeleteBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		fail(w, http.StatusUnauthorized, mirror.KindPermissionDenied, "user not logged in")
		return
	}

	id := chi.URLParam(r, "id")
	err := s.repo.DeleteBookmark(r.Context(), userID, id)
	if errors.Is(err, ErrNotFound) {
		fail(w, http.StatusNotFound, mirror.KindUnknown, "bookmark not found")
		return
	}
	if err != nil {
		fail(w, http.StatusInternalServerError, mirror.KindUnknown, "failed to delete bookmark")
		return
	}
	success(w, nil, "bookmark deleted")
}

func (s *Server) handleCreateHighlight(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		fail(w, http.StatusUnauthorized, mirror.KindPermissionDenied, "user not logged in")
		return
	}

	var h mirror.HighlightPayload
	if err := json.NewDecoder(r.Body).Decode(&h); err != nil {
		fail(w, http.StatusBadRequest, mirror.KindUnknown, "invalid JSON body")
		return
	}
	if !store.Color(h.Color).Valid() {
		fail(w, http.StatusBadRequest, mirror.KindUnknown, "color not in palette")
		return
	}

	if err := s.repo.SaveHighlight(r.Context(), userID, h); err != nil {
		fail(w, http.StatusInternalServerError, mirror.KindUnknown, "failed to save highlight")
		return
	}
	success(w, map[string]string{"id": h.ID}, "highlight saved")
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		fail(w, http.StatusUnauthorized, mirror.KindPermissionDenied, "user not logged in")
		return
	}

	var n mirror.NotePayload
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		fail(w, http.StatusBadRequest, mirror.KindUnknown, "invalid JSON body")
		return
	}
	if n.ID == "" || n.Content == "" {
		fail(w, http.StatusBadRequest, mirror.KindUnknown, "id and content are required")
		return
	}

	if err := s.repo.SaveNote(r.Context(), userID, n); err != nil {
		fail(w, http.StatusInternalServerError, mirror.KindUnknown, "failed to save note")
		return
	}
	success(w, map[string]string{"id": n.ID}, "note saved")
}

func (s *Server) handleEntitlement(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		fail(w, http.StatusUnauthorized, mirror.KindPermissionDenied, "user not logged in")
		return
	}

	premium, err := s.repo.UserPremium(r.Context(), userID)
	if err != nil {
		fail(w, http.StatusInternalServerError, mirror.KindUnknown, "entitlement lookup failed")
		return
	}
	success(w, mirror.Entitlement{Premium: premium}, "ok")
}

type issueTokenRequest struct {
	Subject string `json:"subject"`
	Premium bool   `json:"premium"`
	TTL     string `json:"ttl,omitempty"`
}

// handleIssueToken mints a license token. Guarded by the admin key, not by
// user auth, since this is the provisioning surface.
func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	if s.cfg.AdminKey == "" || r.Header.Get("X-Admin-Key") != s.cfg.AdminKey {
		fail(w, http.StatusForbidden, mirror.KindPermissionDenied, "admin key required")
		return
	}

	var req issueTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, mirror.KindUnknown, "invalid JSON body")
		return
	}
	if req.Subject == "" {
		fail(w, http.StatusBadRequest, mirror.KindUnknown, "subject is required")
		return
	}

	ttl := s.cfg.TokenTTL
	if req.TTL != "" {
		d, err := time.ParseDuration(req.TTL)
		if err != nil {
			fail(w, http.StatusBadRequest, mirror.KindUnknown, "invalid ttl")
			return
		}
		ttl = d
	}

	token, err := entitlement.IssueToken(s.cfg.JWTSecret, req.Subject, req.Premium, ttl)
	if err != nil {
		fail(w, http.StatusInternalServerError, mirror.KindUnknown, "failed to sign token")
		return
	}
	success(w, map[string]string{"token": token}, "token issued")
}
