// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

// Package api implements the HTTP surface: spot CRUD guarded by version
// tokens, availability window and item writes, search, auth, and health.
package api

import (
	"time"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/auth"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/cache"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/config"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/database"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/events"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/hours"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/models"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/search"
)

// Handler carries the wired dependencies for every endpoint.
type Handler struct {
	config    *config.Config
	store     database.Store
	hours     *hours.IntervalStore
	engine    *search.Engine
	results   *cache.ResultCache
	bus       *events.Bus
	jwt       *auth.JWTManager
	profile   *models.KeyProfile
	startTime time.Time
}

// Options collects the handler's dependencies. JWT may be nil when the
// server runs with auth disabled; Bus may be nil in tests.
type Options struct {
	Config  *config.Config
	Store   database.Store
	Hours   *hours.IntervalStore
	Engine  *search.Engine
	Results *cache.ResultCache
	Bus     *events.Bus
	JWT     *auth.JWTManager
	Profile *models.KeyProfile
}

// New creates a request handler.
func New(opts Options) *Handler {
	return &Handler{
		config:    opts.Config,
		store:     opts.Store,
		hours:     opts.Hours,
		engine:    opts.Engine,
		results:   opts.Results,
		bus:       opts.Bus,
		jwt:       opts.JWT,
		profile:   opts.Profile,
		startTime: time.Now(),
	}
}
