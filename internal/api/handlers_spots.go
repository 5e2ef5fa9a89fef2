// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/database"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/events"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/logging"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/metrics"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/models"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/version"
)

// GetSpot handles GET /api/v1/spot/{id}. Cache hits skip the store entirely:
// the cached body is only served while its token matches the spot's current
// ETag, so a stale revision can never be returned.
func (h *Handler) GetSpot(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	id := chi.URLParam(r, "id")

	spot, err := h.store.GetSpot(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if body, ok := h.results.Get(id, spot.ETag); ok {
		respondJSONWithETag(w, http.StatusOK,
			successEnvelope(json.RawMessage(body), started, true), spot.ETag)
		return
	}

	doc, err := h.buildDocument(r, spot)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	body, err := json.Marshal(doc)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	h.results.Put(id, spot.ETag, body)

	respondJSONWithETag(w, http.StatusOK,
		successEnvelope(json.RawMessage(body), started, false), spot.ETag)
}

// CreateSpot handles POST /api/v1/spot.
func (h *Handler) CreateSpot(w http.ResponseWriter, r *http.Request) {
	var req CreateSpotRequest
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

	info := models.NewExtendedInfo(req.ExtendedInfo)
	if err := h.profile.Validate(info); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	spot := models.Spot{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Capacity:     req.Capacity,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Elevation:    req.Elevation,
		ExtendedInfo: info,
		ETag:         version.Issue(),
		LastModified: time.Now().UTC(),
	}

	if err := h.store.CreateSpot(r.Context(), &spot); err != nil {
		respondDomainError(w, err)
		return
	}

	h.publishMutation(r, spot.ID, spot.ETag, false)

	logging.Info().Str("spot_id", spot.ID).Msg("Spot created")
	respondJSONWithETag(w, http.StatusCreated,
		successEnvelope(models.MutationResponse{ID: spot.ID, ETag: spot.ETag}, time.Now(), false),
		spot.ETag)
}

// UpdateSpot handles PUT /api/v1/spot/{id}. The If-Match header must carry
// the token from the client's last read; a stale token leaves the stored
// spot untouched.
func (h *Handler) UpdateSpot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	current, err := h.store.GetSpot(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if err := version.Validate(r.Header.Get("If-Match"), current.ETag); err != nil {
		respondDomainError(w, err)
		return
	}

	var req CreateSpotRequest
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

	info := models.NewExtendedInfo(req.ExtendedInfo)
	if err := h.profile.Validate(info); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	updated := models.Spot{
		ID:           id,
		Name:         req.Name,
		Capacity:     req.Capacity,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Elevation:    req.Elevation,
		ExtendedInfo: info,
		ETag:         version.Issue(),
		LastModified: time.Now().UTC(),
	}

	if err := h.store.UpdateSpot(r.Context(), &updated, current.ETag); err != nil {
		respondDomainError(w, err)
		return
	}

	h.results.Evict(id)
	h.publishMutation(r, id, updated.ETag, false)

	respondJSONWithETag(w, http.StatusOK,
		successEnvelope(models.MutationResponse{ID: id, ETag: updated.ETag}, time.Now(), false),
		updated.ETag)
}

// DeleteSpot handles DELETE /api/v1/spot/{id}. Deletes are guarded by the
// same token as updates; the removed spot's windows and items go with it.
func (h *Handler) DeleteSpot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	current, err := h.store.GetSpot(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if err := version.Validate(r.Header.Get("If-Match"), current.ETag); err != nil {
		respondDomainError(w, err)
		return
	}

	if err := h.store.DeleteSpot(r.Context(), id, current.ETag); err != nil {
		respondDomainError(w, err)
		return
	}

	h.results.Evict(id)
	h.publishMutation(r, id, "", true)

	logging.Info().Str("spot_id", id).Msg("Spot deleted")
	respondJSON(w, http.StatusOK,
		successEnvelope(models.MutationResponse{ID: id}, time.Now(), false))
}

// buildDocument assembles a spot's full serialized form from its parts.
func (h *Handler) buildDocument(r *http.Request, spot models.Spot) (models.SpotDocument, error) {
	schedule, err := database.ScheduleForSpot(r.Context(), h.store, spot.ID)
	if err != nil {
		return models.SpotDocument{}, err
	}
	items, err := h.store.ItemsForSpot(r.Context(), spot.ID)
	if err != nil {
		return models.SpotDocument{}, err
	}
	return models.NewSpotDocument(spot, schedule, items), nil
}

// publishMutation emits a spot.mutated event when a bus is wired. Publish
// failures are logged and swallowed; the write already committed.
func (h *Handler) publishMutation(r *http.Request, id, etag string, deleted bool) {
	if h.bus == nil {
		return
	}
	err := h.bus.PublishMutation(r.Context(), events.SpotMutated{
		SpotID:  id,
		ETag:    etag,
		Deleted: deleted,
	})
	if err != nil {
		logging.Warn().Err(err).Str("spot_id", id).Msg("Failed to publish mutation event")
		return
	}
	metrics.MutationEventsPublished.Inc()
}
