// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package search

import (
	"context"
	"fmt"
	"time"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/database"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/geo"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/hours"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/logging"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/models"
)

// Result is one matched spot. Distance is set only for centered queries.
type Result struct {
	Spot     models.Spot
	Distance *float64
}

// Engine runs search queries: attribute filters at the store, then the
// availability matcher, then geo ranking and quota.
type Engine struct {
	store database.Store
	opts  Options
	now   func() time.Time
}

// NewEngine creates a search engine over the given store.
func NewEngine(store database.Store, opts Options) *Engine {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = DefaultOptions().DefaultLimit
	}
	if opts.MaxExplicitIDs <= 0 {
		opts.MaxExplicitIDs = DefaultOptions().MaxExplicitIDs
	}
	return &Engine{store: store, opts: opts, now: time.Now}
}

// Options returns the engine's parsing and quota bounds, for ParseQuery.
func (e *Engine) Options() Options {
	return e.opts
}

// Run executes a parsed query and returns the ordered, quota-applied
// results. Centered queries order nearest first; centerless queries keep
// primary-key order.
func (e *Engine) Run(ctx context.Context, q Query) ([]Result, error) {
	if q.MatchesNothing {
		logging.Debug().Msg("Search with malformed parameter values matches nothing")
		return []Result{}, nil
	}

	spots, err := e.store.QuerySpots(ctx, database.SpotFilter{
		IDs:          q.IDs,
		NameContains: q.NameContains,
		MinCapacity:  q.MinCapacity,
		ExtendedInfo: q.ExtendedInfo,
	})
	if err != nil {
		return nil, fmt.Errorf("query spots: %w", err)
	}

	if q.HasHoursFilter() {
		spots, err = e.filterByHours(ctx, spots, q)
		if err != nil {
			return nil, err
		}
	}

	if q.Center != nil {
		limit := e.resolveLimit(q.Limit)
		ranked := geo.Rank(spots, *q.Center, limit)
		results := make([]Result, len(ranked))
		for i, r := range ranked {
			d := r.Distance
			results[i] = Result{Spot: r.Spot, Distance: &d}
		}
		return results, nil
	}

	limit := e.resolveLimit(q.Limit)
	if limit > 0 && len(spots) > limit {
		spots = spots[:limit]
	}
	results := make([]Result, len(spots))
	for i, spot := range spots {
		results[i] = Result{Spot: spot}
	}
	return results, nil
}

// resolveLimit maps the three quota cases: absent takes the default, zero
// means unlimited, positive caps.
func (e *Engine) resolveLimit(limit *int) int {
	if limit == nil {
		return e.opts.DefaultLimit
	}
	return *limit
}

// filterByHours keeps spots whose schedule satisfies the availability
// criterion. A spot with no windows at all never matches.
func (e *Engine) filterByHours(ctx context.Context, spots []models.Spot, q Query) ([]models.Spot, error) {
	matched := spots[:0:0]
	for _, spot := range spots {
		schedule, err := database.ScheduleForSpot(ctx, e.store, spot.ID)
		if err != nil {
			return nil, fmt.Errorf("schedule for %s: %w", spot.ID, err)
		}
		if e.scheduleMatches(schedule, q) {
			matched = append(matched, spot)
		}
	}
	return matched, nil
}

func (e *Engine) scheduleMatches(schedule models.WeekSchedule, q Query) bool {
	if q.OpenNow {
		now := e.now()
		if !hours.OpenAt(schedule, models.DayOf(now), models.ClockOf(now)) {
			return false
		}
	}
	if q.OpenAt != nil {
		if !hours.OpenAt(schedule, q.OpenAt.Day, q.OpenAt.Time) {
			return false
		}
	}
	if len(q.Ranges) > 0 {
		if !hours.MatchesAny(schedule, q.Ranges) {
			return false
		}
	}
	return true
}
