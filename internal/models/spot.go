// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

// Package models defines the persistent entities of the spot catalog and the
// JSON envelopes shared by every HTTP endpoint.
package models

import (
	"time"
)

// Spot is a searchable physical place or resource: a study room, a café, an
// equipment-loan counter. A spot owns zero or more availability windows and
// zero or more items; any write to an owned child advances the spot's
// version token, because the spot's serialized form embeds its children.
type Spot struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Capacity     int          `json:"capacity"`
	Latitude     float64      `json:"latitude"`
	Longitude    float64      `json:"longitude"`
	Elevation    *float64     `json:"elevation,omitempty"`
	ExtendedInfo ExtendedInfo `json:"extended_info"`

	// ETag is the opaque version token for the spot's current revision.
	// It changes on every successful mutation of the spot or any owned
	// child, and is never derived from content so a delete and recreate
	// with identical fields cannot reuse a token.
	ETag string `json:"etag"`

	LastModified time.Time `json:"last_modified"`
}

// AvailabilityWindow is one contiguous open period on one day of the week.
//
// Invariants, enforced by the interval engine:
//   - Start < End (no zero-length or inverted windows)
//   - for a given (spot, day) no two stored windows overlap or touch;
//     back-to-back inserts coalesce into one window
type AvailabilityWindow struct {
	ID     string    `json:"-"`
	SpotID string    `json:"-"`
	Day    Day       `json:"day"`
	Start  ClockTime `json:"start"`
	End    ClockTime `json:"end"`
}

// SpotItem is an attached sub-resource of a spot (loanable equipment and the
// like). Items are outside the search core but their mutation advances the
// owning spot's version token.
type SpotItem struct {
	ID          string `json:"id"`
	SpotID      string `json:"-"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
}

// WeekSchedule holds a spot's windows keyed by day, each day's windows
// ordered ascending by start time. The ordering is part of the contract:
// consumers serialize it as-is and never re-sort.
type WeekSchedule map[Day][]AvailabilityWindow

// HoursByDay converts a schedule to the wire form: day code to ordered
// [start, end] pairs. Days with no windows are present with an empty list.
func (ws WeekSchedule) HoursByDay() map[string][][2]ClockTime {
	out := make(map[string][][2]ClockTime, DaysPerWeek)
	for d := Sunday; d <= Saturday; d++ {
		pairs := make([][2]ClockTime, 0, len(ws[d]))
		for _, w := range ws[d] {
			pairs = append(pairs, [2]ClockTime{w.Start, w.End})
		}
		out[d.String()] = pairs
	}
	return out
}

// SpotDocument is the full serialized representation of one spot revision:
// the spot with its availability windows and items. This is the value cached
// by the result cache and returned by single-spot reads and search results.
// It is a pure function of the spot's current revision.
type SpotDocument struct {
	Spot
	AvailableHours map[string][][2]ClockTime `json:"available_hours"`
	Items          []SpotItem                `json:"items"`
}

// NewSpotDocument assembles the serialized form of a spot from its parts.
// The windows must already be ordered by start within each day.
func NewSpotDocument(spot Spot, schedule WeekSchedule, items []SpotItem) SpotDocument {
	if items == nil {
		items = []SpotItem{}
	}
	return SpotDocument{
		Spot:           spot,
		AvailableHours: schedule.HoursByDay(),
		Items:          items,
	}
}
