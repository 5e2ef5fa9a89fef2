// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/logging"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/metrics"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/models"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/version"
)

// ListHours handles GET /api/v1/spot/{id}/hours, returning the spot's full
// week schedule with every day present.
func (h *Handler) ListHours(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	id := chi.URLParam(r, "id")

	if _, err := h.store.GetSpot(r.Context(), id); err != nil {
		respondDomainError(w, err)
		return
	}

	schedule, err := h.hours.ListByDay(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, successEnvelope(schedule.HoursByDay(), started, false))
}

// AddHours handles POST /api/v1/spot/{id}/hours. The new window is merged
// with any overlapping or touching stored windows on the same day, and the
// spot's version token advances.
func (h *Handler) AddHours(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	spot, err := h.store.GetSpot(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if err := version.Validate(r.Header.Get("If-Match"), spot.ETag); err != nil {
		respondDomainError(w, err)
		return
	}

	var req WindowRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Malformed request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error:    apiErr,
		})
		return
	}

	day, _ := models.ParseDay(req.Day)
	start, _ := models.ParseClock(req.Start)
	end, _ := models.ParseClock(req.End)

	window, err := h.hours.Insert(r.Context(), &spot, day, start, end)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	metrics.WindowsInserted.Inc()

	h.results.Evict(id)
	h.publishMutation(r, id, spot.ETag, false)

	logging.Info().Str("spot_id", id).Str("day", day.String()).Msg("Availability window added")
	respondJSONWithETag(w, http.StatusCreated, successEnvelope(map[string]interface{}{
		"id":    window.ID,
		"day":   window.Day.String(),
		"start": window.Start,
		"end":   window.End,
		"etag":  spot.ETag,
	}, time.Now(), false), spot.ETag)
}
