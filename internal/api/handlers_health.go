// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package api

import (
	"net/http"
	"time"
)

// Health handles GET /health with a storage reachability check and cache
// statistics.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	status := "healthy"
	code := http.StatusOK
	var dbError string
	if err := h.store.Ping(r.Context()); err != nil {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
		dbError = err.Error()
	}

	stats := h.results.GetStats()
	payload := map[string]interface{}{
		"status":         status,
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
		"cache": map[string]interface{}{
			"keys":     stats.TotalKeys,
			"hit_rate": h.results.HitRate(),
		},
	}
	if dbError != "" {
		payload["database_error"] = dbError
	}

	respondJSON(w, code, successEnvelope(payload, started, false))
}

// HealthLive handles GET /health/live: the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, successEnvelope(map[string]string{"status": "alive"}, time.Now(), false))
}

// HealthReady handles GET /health/ready: ready when storage answers.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "Storage is not reachable", err)
		return
	}
	respondJSON(w, http.StatusOK, successEnvelope(map[string]string{"status": "ready"}, time.Now(), false))
}
