// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package api

import (
	"errors"
	"net/http"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/database"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/hours"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/metrics"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/search"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/version"
)

// respondDomainError maps domain sentinel errors to HTTP statuses. Anything
// unrecognized is a 500 with the detail kept out of the response body.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", "No such entity", nil)

	case errors.Is(err, version.ErrPreconditionRequired):
		metrics.WritesMissingToken.Inc()
		respondError(w, http.StatusPreconditionRequired, "PRECONDITION_REQUIRED",
			"Mutating requests must carry the current version token in If-Match", nil)

	case errors.Is(err, version.ErrConflict):
		metrics.WriteConflicts.Inc()
		respondError(w, http.StatusConflict, "CONFLICT",
			"The presented version token is stale; fetch the current entity and retry", nil)

	case errors.Is(err, hours.ErrInvalidRange):
		respondError(w, http.StatusBadRequest, "INVALID_RANGE",
			"Window start must be before end within a single day", nil)

	case errors.Is(err, hours.ErrIncompleteRange):
		respondError(w, http.StatusBadRequest, "INCOMPLETE_RANGE",
			"Hours ranges require both a start and an end", nil)

	case errors.Is(err, search.ErrLimitWithoutCenter):
		respondError(w, http.StatusBadRequest, "LIMIT_WITHOUT_CENTER",
			"A result limit requires center_latitude, center_longitude and distance", nil)

	case errors.Is(err, search.ErrUnboundedIDQuery):
		respondError(w, http.StatusBadRequest, "UNBOUNDED_ID_QUERY",
			"Queries naming this many ids must set an explicit limit", nil)

	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"Internal server error", err)
	}
}
