// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/config"
)

// ErrUnauthenticated is returned when a request carries no usable
// credentials.
var ErrUnauthenticated = errors.New("authentication required")

// Authenticator resolves a request to the claims of its caller. The
// concrete strategy is chosen once at startup from security.auth_mode.
type Authenticator interface {
	// Authenticate returns the caller's claims, or ErrUnauthenticated
	// (possibly wrapped) when the request carries no valid credentials.
	Authenticate(r *http.Request) (*Claims, error)
}

// NewAuthenticator builds the authenticator named by the configuration.
func NewAuthenticator(cfg *config.SecurityConfig) (Authenticator, error) {
	switch cfg.AuthMode {
	case "jwt":
		manager, err := NewJWTManager(cfg)
		if err != nil {
			return nil, err
		}
		return &JWTAuthenticator{manager: manager}, nil
	case "none":
		return &NoneAuthenticator{}, nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.AuthMode)
	}
}

// JWTAuthenticator validates bearer tokens from the Authorization header.
type JWTAuthenticator struct {
	manager *JWTManager
}

// NewJWTAuthenticator creates a bearer-token authenticator over an
// existing manager.
func NewJWTAuthenticator(manager *JWTManager) *JWTAuthenticator {
	return &JWTAuthenticator{manager: manager}
}

// Authenticate extracts and validates the bearer token.
func (a *JWTAuthenticator) Authenticate(r *http.Request) (*Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, ErrUnauthenticated
	}

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return nil, fmt.Errorf("%w: malformed authorization header", ErrUnauthenticated)
	}

	claims, err := a.manager.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	return claims, nil
}

// NoneAuthenticator accepts every request as an anonymous administrator.
// Development use only; config validation gates it behind auth_mode=none.
type NoneAuthenticator struct{}

// Authenticate returns synthetic admin claims.
func (a *NoneAuthenticator) Authenticate(_ *http.Request) (*Claims, error) {
	return &Claims{Username: "anonymous", Admin: true}, nil
}
