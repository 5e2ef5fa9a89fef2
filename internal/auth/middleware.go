// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package auth

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/logging"
)

type contextKey string

const claimsKey contextKey = "auth_claims"

// ClaimsFromContext returns the authenticated caller's claims, or nil for
// an unauthenticated request.
func ClaimsFromContext(ctx context.Context) *Claims {
	if claims, ok := ctx.Value(claimsKey).(*Claims); ok {
		return claims
	}
	return nil
}

// Middleware gates route groups on the configured authenticator.
type Middleware struct {
	authenticator Authenticator
}

// NewMiddleware creates auth middleware over the given authenticator.
func NewMiddleware(authenticator Authenticator) *Middleware {
	return &Middleware{authenticator: authenticator}
}

// RequireAuth rejects requests without valid credentials with 401 and
// stores the caller's claims in the request context.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.authenticator.Authenticate(r)
		if err != nil {
			logger := logging.FromContext(r.Context())
			logger.Debug().Err(err).
				Str("path", r.URL.Path).Msg("Rejected unauthenticated request")
			unauthorized(w, "Authentication required")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin allows only authenticated administrators. It must run inside
// RequireAuth.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil {
			unauthorized(w, "Authentication required")
			return
		}
		if !claims.Admin {
			forbidden(w, "Administrator access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	respondAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func forbidden(w http.ResponseWriter, message string) {
	respondAuthError(w, http.StatusForbidden, "FORBIDDEN", message)
}

// respondAuthError writes the standard error envelope without importing the
// api package.
func respondAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "error",
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
