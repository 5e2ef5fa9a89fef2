// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/logging"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/models"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/version"
)

// ListItems handles GET /api/v1/spot/{id}/items.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	id := chi.URLParam(r, "id")

	if _, err := h.store.GetSpot(r.Context(), id); err != nil {
		respondDomainError(w, err)
		return
	}

	items, err := h.store.ItemsForSpot(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if items == nil {
		items = []models.SpotItem{}
	}

	respondJSON(w, http.StatusOK, successEnvelope(items, started, false))
}

// AddItem handles POST /api/v1/spot/{id}/items. An item write advances the
// owning spot's version token, since the spot's serialized form embeds its
// items.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
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

	var req ItemRequest
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

	item := models.SpotItem{
		ID:          uuid.NewString(),
		SpotID:      id,
		Name:        req.Name,
		Category:    req.Category,
		Subcategory: req.Subcategory,
	}

	if err := h.store.CreateItem(r.Context(), &item); err != nil {
		respondDomainError(w, err)
		return
	}

	newToken := version.Issue()
	if err := h.store.TouchSpot(r.Context(), id, spot.ETag, newToken, time.Now().UTC()); err != nil {
		respondDomainError(w, err)
		return
	}

	h.results.Evict(id)
	h.publishMutation(r, id, newToken, false)

	logging.Info().Str("spot_id", id).Str("item_id", item.ID).Msg("Item added")
	respondJSONWithETag(w, http.StatusCreated, successEnvelope(map[string]interface{}{
		"id":   item.ID,
		"etag": newToken,
	}, time.Now(), false), newToken)
}
