// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package models

import (
	"time"
)

// APIResponse is the standardized envelope used by all HTTP endpoints.
//
// Status is "success" or "error". Data carries the payload on success;
// Error carries details on failure. Metadata is always present.
//
//	{
//	  "status": "success",
//	  "data": [...],
//	  "metadata": {"timestamp": "...", "query_time_ms": 4, "cached": true}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains per-response observability fields.
//
// QueryTimeMS is the store/search execution time; it is 0 and Cached is true
// when the body was served from the result cache.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is the structured error payload.
//
// Common codes:
//   - VALIDATION_ERROR: malformed or incomplete request parameters
//   - PRECONDITION_REQUIRED: mutating request without an If-Match token
//   - CONFLICT: stale If-Match token, stored state unchanged
//   - NOT_FOUND: no such entity
//   - AUTHENTICATION_ERROR / AUTHORIZATION_ERROR: identity problems
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// MutationResponse is the success payload for create/update/delete calls.
// ETag is the token the client must present on its next mutation.
type MutationResponse struct {
	ID   string `json:"id"`
	ETag string `json:"etag,omitempty"`
}
