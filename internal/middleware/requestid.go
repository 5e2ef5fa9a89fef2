// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

// Package middleware holds the HTTP middleware shared across route groups:
// request identity, and Prometheus instrumentation. Rate limiting and CORS
// come from the chi ecosystem and are configured in the router.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/logging"
)

type contextKey string

// RequestIDKey locates the request id in a request context.
const RequestIDKey contextKey = "request_id"

// RequestID tags each request with a unique id, honoring one supplied by an
// upstream proxy, and exposes it in the response header and the logging
// context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", requestID)

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		ctx = logging.ContextWithRequestID(ctx, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID extracts the request id from context.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
