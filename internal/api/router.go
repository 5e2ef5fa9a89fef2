// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/auth"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/middleware"
)

// NewRouter wires every endpoint behind the shared middleware stack.
//
// Read endpoints under /api/v1/spot are open; writes require authentication
// and deletes require the admin role. With auth_mode "none" the authenticator
// accepts every request, which keeps the route tree identical across modes.
func NewRouter(h *Handler, authMW *auth.Middleware) http.Handler {
	r := chi.NewRouter()

	sec := h.config.Security

	// Global stack, applied to every route.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   sec.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "If-Match"},
		ExposedHeaders:   []string{"ETag", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health endpoints get a permissive limit so monitors can poll freely.
	r.Route("/health", func(r chi.Router) {
		r.Use(httprate.LimitByIP(1000, time.Minute))
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Handle("/metrics", promhttp.Handler())

	// Login gets the strictest limit to slow credential stuffing.
	if sec.AuthMode == "jwt" {
		r.Route("/api/v1/auth", func(r chi.Router) {
			r.Use(httprate.LimitByIP(5, 5*time.Minute))
			r.Post("/login", h.Login)
		})
	}

	r.Route("/api/v1/spot", func(r chi.Router) {
		r.Use(httprate.LimitByIP(sec.RateLimitReqs, sec.RateLimitWindow))
		r.Use(middleware.PrometheusMetrics)

		r.Get("/", h.SearchSpots)
		r.Get("/{id}", h.GetSpot)
		r.Get("/{id}/hours", h.ListHours)
		r.Get("/{id}/items", h.ListItems)

		r.Group(func(r chi.Router) {
			r.Use(authMW.RequireAuth)

			r.Post("/", h.CreateSpot)
			r.Put("/{id}", h.UpdateSpot)
			r.Post("/{id}/hours", h.AddHours)
			r.Post("/{id}/items", h.AddItem)

			r.With(authMW.RequireAdmin).Delete("/{id}", h.DeleteSpot)
		})
	})

	return r
}
