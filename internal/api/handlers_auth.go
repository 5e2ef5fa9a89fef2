// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package api

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/logging"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/models"
)

// Login handles POST /api/v1/auth/login, exchanging admin credentials for a
// bearer token. Mounted only when auth_mode is "jwt".
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
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

	sec := h.config.Security
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(sec.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(sec.AdminPassword)) == 1
	if !userOK || !passOK {
		logging.Warn().Str("username", sanitizeLogValue(req.Username)).Msg("Failed login attempt")
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Invalid credentials", nil)
		return
	}

	token, err := h.jwt.GenerateToken(req.Username, true)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	logging.Info().Str("username", sanitizeLogValue(req.Username)).Msg("Login succeeded")
	respondJSON(w, http.StatusOK, successEnvelope(LoginResponse{
		Token:     token,
		ExpiresIn: int64(sec.SessionTimeout.Seconds()),
	}, time.Now(), false))
}
