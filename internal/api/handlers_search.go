// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package api

import (
	"net/http"
	"time"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/metrics"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/models"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/search"
)

// searchResult is one serialized search hit. Distance is present only on
// centered queries, in meters from the requested center.
type searchResult struct {
	models.SpotDocument
	Distance *float64 `json:"distance,omitempty"`
}

// SearchSpots handles GET /api/v1/spot. With no query parameters it lists
// spots up to the default quota; with parameters it runs the full search
// pipeline.
func (h *Handler) SearchSpots(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	q, err := search.ParseQuery(r.URL.Query(), h.engine.Options())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	results, err := h.engine.Run(r.Context(), q)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]searchResult, 0, len(results))
	for _, res := range results {
		doc, err := h.buildDocument(r, res.Spot)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		out = append(out, searchResult{SpotDocument: doc, Distance: res.Distance})
	}

	metrics.RecordSearch(q.Center != nil, q.HasHoursFilter(), len(out))
	respondJSON(w, http.StatusOK, successEnvelope(out, started, false))
}
