package server

import (
	"context"
	"net/http"
	"strings"

	"lectio/internal/entitlement"
	"lectio/internal/mirror"
)

type contextKey string

const userIDContextKey contextKey = "user_id"

// authMiddleware validates the bearer license token and stores the user id
// in the request context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			fail(w, http.StatusUnauthorized, mirror.KindPermissionDenied, "missing Authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			fail(w, http.StatusUnauthorized, mirror.KindPermissionDenied, "invalid token format")
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := entitlement.ParseToken(s.cfg.JWTSecret, tokenStr)
		if err != nil {
			fail(w, http.StatusUnauthorized, mirror.KindPermissionDenied, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFromContext(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(userIDContextKey).(string)
	return id, ok && id != ""
}

// requirePremium gates annotation writes on a fresh entitlement lookup.
// The check hits the repository every time so a lapsed subscription takes
// effect immediately, not at next login.
func (s *Server) requirePremium(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
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
		if !premium {
			fail(w, http.StatusPaymentRequired, mirror.KindEntitlementRequired, "premium subscription required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
