// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

// Package search composes attribute filters, the availability matcher, and
// the geo ranker into one query pipeline over the spot catalog.
package search

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/geo"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/hours"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/models"
)

// Client errors produced while parsing search parameters.
var (
	// ErrLimitWithoutCenter rejects a positive result cap when no center
	// point was supplied: nearest-first truncation needs a center.
	ErrLimitWithoutCenter = errors.New("limit requires center_latitude, center_longitude and distance")

	// ErrUnboundedIDQuery rejects a query naming more ids than the
	// explicit-id ceiling without an explicit limit.
	ErrUnboundedIDQuery = errors.New("too many explicit ids without a limit")
)

// extendedInfoPrefix introduces attribute-equality parameters, as in
// extended_info:has_whiteboards=true.
const extendedInfoPrefix = "extended_info:"

// Instant is a (day, clock) point in the cyclic week.
type Instant struct {
	Day  models.Day
	Time models.ClockTime
}

// Query is the parsed, validated form of a search request.
type Query struct {
	IDs          []string
	NameContains string
	MinCapacity  int
	ExtendedInfo map[string][]string

	// Center is nil when no geo parameters were supplied.
	Center *geo.Center

	// MatchesNothing marks a query carrying a malformed parameter value
	// (center coordinate, capacity, limit, day/time instant). Such a
	// query succeeds with zero results instead of erroring.
	MatchesNothing bool

	// Limit is nil when the caller did not send one. Zero means unlimited.
	Limit *int

	OpenNow bool

	// OpenAt is the instantaneous criterion; an open_until parameter
	// upgrades the pair to a range in Ranges instead.
	OpenAt *Instant
	Ranges []hours.HourRange
}

// HasHoursFilter reports whether any availability criterion was supplied.
func (q *Query) HasHoursFilter() bool {
	return q.OpenNow || q.OpenAt != nil || len(q.Ranges) > 0
}

// Options bound query parsing and quota resolution.
type Options struct {
	// DefaultLimit caps results when the caller sends no limit.
	DefaultLimit int

	// MaxExplicitIDs is the largest id list accepted without a limit.
	MaxExplicitIDs int
}

// DefaultOptions returns the standard parsing bounds.
func DefaultOptions() Options {
	return Options{DefaultLimit: 20, MaxExplicitIDs: 20}
}

// ParseQuery turns raw URL parameters into a Query. Repeated values of the
// same parameter combine with OR; distinct parameters combine with AND.
//
// Malformed parameter values do not error: they mark the query as matching
// nothing. Structural problems, a range missing one side or a limit that
// cannot be applied, are client errors.
func ParseQuery(values url.Values, opts Options) (Query, error) {
	q := Query{}

	q.IDs = values["id"]
	q.NameContains = values.Get("name")

	if raw := values.Get("capacity"); raw != "" {
		capacity, err := strconv.Atoi(raw)
		if err != nil || capacity < 0 {
			q.MatchesNothing = true
		} else {
			q.MinCapacity = capacity
		}
	}

	for key, vals := range values {
		if !strings.HasPrefix(key, extendedInfoPrefix) {
			continue
		}
		attr := strings.TrimPrefix(key, extendedInfoPrefix)
		if attr == "" {
			continue
		}
		if q.ExtendedInfo == nil {
			q.ExtendedInfo = make(map[string][]string)
		}
		q.ExtendedInfo[attr] = vals
	}

	if err := parseGeo(values, &q); err != nil {
		return Query{}, err
	}
	if err := parseHours(values, &q); err != nil {
		return Query{}, err
	}

	// A query that already matches nothing skips the quota rules: it is
	// answered with an empty success before any quota would apply.
	if q.MatchesNothing {
		return q, nil
	}

	if q.Limit != nil && *q.Limit > 0 && q.Center == nil {
		return Query{}, ErrLimitWithoutCenter
	}
	if q.Limit == nil && len(q.IDs) > opts.MaxExplicitIDs {
		return Query{}, ErrUnboundedIDQuery
	}

	return q, nil
}

func parseGeo(values url.Values, q *Query) error {
	lat := values.Get("center_latitude")
	lon := values.Get("center_longitude")
	radius := values.Get("distance")

	if lat != "" || lon != "" || radius != "" {
		center, ok := geo.ParseCenter(lat, lon, radius)
		if ok {
			q.Center = &center
		} else {
			q.MatchesNothing = true
		}
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			q.MatchesNothing = true
		} else {
			q.Limit = &limit
		}
	}
	return nil
}

func parseHours(values url.Values, q *Query) error {
	q.OpenNow = values.Get("open_now") == "true"

	openAt := values.Get("open_at")
	openUntil := values.Get("open_until")
	if openUntil != "" && openAt == "" {
		return hours.ErrIncompleteRange
	}
	if openAt != "" {
		at, err := parseInstant(openAt)
		switch {
		case err != nil:
			q.MatchesNothing = true
		case openUntil == "":
			q.OpenAt = &at
		default:
			until, err := parseInstant(openUntil)
			if err != nil {
				q.MatchesNothing = true
				break
			}
			q.Ranges = append(q.Ranges, hours.HourRange{
				StartDay: at.Day, Start: at.Time,
				EndDay: until.Day, End: until.Time,
			})
		}
	}

	starts := values["fuzzy_hours_start"]
	ends := values["fuzzy_hours_end"]
	if len(starts) != len(ends) {
		return hours.ErrIncompleteRange
	}
	for i := range starts {
		from, err := parseInstant(starts[i])
		if err != nil {
			q.MatchesNothing = true
			continue
		}
		to, err := parseInstant(ends[i])
		if err != nil {
			q.MatchesNothing = true
			continue
		}
		q.Ranges = append(q.Ranges, hours.HourRange{
			StartDay: from.Day, Start: from.Time,
			EndDay: to.Day, End: to.Time,
		})
	}
	return nil
}

// parseInstant parses the wire form "<day>,<HH:MM>".
func parseInstant(raw string) (Instant, error) {
	day, clock, found := strings.Cut(raw, ",")
	if !found {
		return Instant{}, fmt.Errorf("invalid time %q: want <day>,<HH:MM>", raw)
	}
	d, err := models.ParseDay(strings.TrimSpace(day))
	if err != nil {
		return Instant{}, err
	}
	t, err := models.ParseClock(strings.TrimSpace(clock))
	if err != nil {
		return Instant{}, err
	}
	return Instant{Day: d, Time: t}, nil
}
