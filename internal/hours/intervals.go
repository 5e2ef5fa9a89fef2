// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

// Package hours owns the availability engine: the interval store that keeps
// each spot's open-hour windows minimal and non-overlapping, and the matcher
// that decides whether a stored week intersects a caller's time criterion.
package hours

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/metrics"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/models"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/version"
)

// Errors surfaced to callers as client errors.
var (
	// ErrInvalidRange rejects a window whose start is not before its end.
	ErrInvalidRange = errors.New("window start must be before end")

	// ErrIncompleteRange rejects an hours query supplying only one side
	// of a start/end pair.
	ErrIncompleteRange = errors.New("hours range requires both start and end")
)

// WindowStore is the persistence the interval engine needs. It is satisfied
// by database.Store.
type WindowStore interface {
	WindowsForSpot(ctx context.Context, spotID string) ([]models.AvailabilityWindow, error)
	WindowsForDay(ctx context.Context, spotID string, day models.Day) ([]models.AvailabilityWindow, error)
	InsertWindow(ctx context.Context, w *models.AvailabilityWindow) error
	DeleteWindow(ctx context.Context, id string) error
	TouchSpot(ctx context.Context, id, expectedToken, newToken string, now time.Time) error
}

// IntervalStore maintains, per (spot, day), the minimal set of
// non-overlapping windows equivalent to the union of everything inserted.
// Every insert advances the owning spot's version token: the spot's
// serialized form embeds its hours, so a child write is a spot revision.
type IntervalStore struct {
	store WindowStore
	now   func() time.Time
}

// NewIntervalStore creates an interval store over the given persistence.
func NewIntervalStore(store WindowStore) *IntervalStore {
	return &IntervalStore{store: store, now: time.Now}
}

// Insert adds an open period for (spot, day), coalescing it with any stored
// windows it overlaps or touches, and advances the spot's version token.
// On success spot.ETag and spot.LastModified are updated in place and the
// stored merged window is returned.
//
// Returns ErrInvalidRange when start >= end; version.ErrConflict when the
// spot was concurrently modified.
func (s *IntervalStore) Insert(ctx context.Context, spot *models.Spot, day models.Day, start, end models.ClockTime) (models.AvailabilityWindow, error) {
	return s.insert(ctx, spot, day, start, end, "")
}

// Update re-merges an existing window in place with a new (day, range):
// the window being modified is excluded from the absorption scan, then the
// new range coalesces with the remaining windows exactly like an insert.
func (s *IntervalStore) Update(ctx context.Context, spot *models.Spot, windowID string, day models.Day, start, end models.ClockTime) (models.AvailabilityWindow, error) {
	if windowID == "" {
		return models.AvailabilityWindow{}, fmt.Errorf("update requires a window id")
	}
	return s.insert(ctx, spot, day, start, end, windowID)
}

func (s *IntervalStore) insert(ctx context.Context, spot *models.Spot, day models.Day, start, end models.ClockTime, excludeID string) (models.AvailabilityWindow, error) {
	if !day.Valid() {
		return models.AvailabilityWindow{}, fmt.Errorf("invalid day %d", int(day))
	}
	if !start.Valid() || !end.Valid() {
		return models.AvailabilityWindow{}, ErrInvalidRange
	}
	if start >= end {
		return models.AvailabilityWindow{}, ErrInvalidRange
	}

	existing, err := s.store.WindowsForDay(ctx, spot.ID, day)
	if err != nil {
		return models.AvailabilityWindow{}, fmt.Errorf("load windows: %w", err)
	}

	candidates := existing[:0:0]
	for _, w := range existing {
		if w.ID != excludeID {
			candidates = append(candidates, w)
		}
	}

	mergedStart, mergedEnd, absorbed := MergeRange(candidates, start, end)
	if len(absorbed) > 0 {
		metrics.WindowMerges.Add(float64(len(absorbed)))
	}

	merged := models.AvailabilityWindow{
		ID:     uuid.NewString(),
		SpotID: spot.ID,
		Day:    day,
		Start:  mergedStart,
		End:    mergedEnd,
	}

	// The token CAS runs before any window write: a conflicting caller
	// fails here with the stored windows untouched.
	newToken := version.Issue()
	now := s.now()
	if err := s.store.TouchSpot(ctx, spot.ID, spot.ETag, newToken, now); err != nil {
		return models.AvailabilityWindow{}, err
	}
	spot.ETag = newToken
	spot.LastModified = now

	if excludeID != "" {
		absorbed = append(absorbed, excludeID)
	}
	for _, id := range absorbed {
		if err := s.store.DeleteWindow(ctx, id); err != nil {
			return models.AvailabilityWindow{}, fmt.Errorf("remove absorbed window: %w", err)
		}
	}
	if err := s.store.InsertWindow(ctx, &merged); err != nil {
		return models.AvailabilityWindow{}, fmt.Errorf("store merged window: %w", err)
	}

	return merged, nil
}

// MergeRange coalesces [start, end] with every window it overlaps or
// touches and returns the final range plus the ids of absorbed windows.
//
// Touching at a single endpoint counts as overlap, so back-to-back windows
// coalesce. The scan repeats until a fixed point: absorbing one neighbor can
// stretch the range far enough to reach a second neighbor that the original
// range never touched.
func MergeRange(existing []models.AvailabilityWindow, start, end models.ClockTime) (models.ClockTime, models.ClockTime, []string) {
	var absorbed []string
	taken := make(map[string]bool, len(existing))

	for {
		grew := false
		for _, w := range existing {
			if taken[w.ID] {
				continue
			}
			if !overlapsOrTouches(w.Start, w.End, start, end) {
				continue
			}
			if w.Start < start {
				start = w.Start
			}
			if w.End > end {
				end = w.End
			}
			taken[w.ID] = true
			absorbed = append(absorbed, w.ID)
			grew = true
		}
		if !grew {
			return start, end, absorbed
		}
	}
}

// overlapsOrTouches reports whether [ws, we] and [ns, ne] intersect or meet
// at an endpoint.
func overlapsOrTouches(ws, we, ns, ne models.ClockTime) bool {
	return (ws <= ns && ns <= we) || (ns <= ws && ws <= ne)
}

// ListByDay returns the spot's full week, each day's windows ordered by
// start time ascending. Days with no windows are present and empty. The
// ordering comes from the store's ordered fetch; callers serialize it as-is.
func (s *IntervalStore) ListByDay(ctx context.Context, spotID string) (models.WeekSchedule, error) {
	windows, err := s.store.WindowsForSpot(ctx, spotID)
	if err != nil {
		return nil, fmt.Errorf("load windows: %w", err)
	}

	schedule := make(models.WeekSchedule, models.DaysPerWeek)
	for d := models.Sunday; d <= models.Saturday; d++ {
		schedule[d] = []models.AvailabilityWindow{}
	}
	for _, w := range windows {
		schedule[w.Day] = append(schedule[w.Day], w)
	}
	return schedule, nil
}
