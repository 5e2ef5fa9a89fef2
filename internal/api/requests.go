// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package api

// CreateSpotRequest is the payload for POST /api/v1/spot. The same shape is
// accepted by PUT; updates replace the full field set.
type CreateSpotRequest struct {
	Name         string            `json:"name" validate:"required,max=200"`
	Capacity     int               `json:"capacity" validate:"min=0"`
	Latitude     float64           `json:"latitude" validate:"latitude"`
	Longitude    float64           `json:"longitude" validate:"longitude"`
	Elevation    *float64          `json:"elevation,omitempty"`
	ExtendedInfo map[string]string `json:"extended_info,omitempty"`
}

// WindowRequest is the payload for POST /api/v1/spot/{id}/hours. Times use
// HH:MM or HH:MM:SS; days use the short wire codes (su, m, t, w, th, f, sa).
type WindowRequest struct {
	Day   string `json:"day" validate:"required,daycode"`
	Start string `json:"start" validate:"required,clocktime"`
	End   string `json:"end" validate:"required,clocktime"`
}

// ItemRequest is the payload for POST /api/v1/spot/{id}/items.
type ItemRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Category    string `json:"category,omitempty" validate:"max=100"`
	Subcategory string `json:"subcategory,omitempty" validate:"max=100"`
}

// LoginRequest is the payload for POST /api/v1/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}
