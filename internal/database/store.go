// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

// Package database provides persistence for spots, availability windows, and
// items. Two implementations exist: a DuckDB-backed store for production and
// an in-memory store for tests and ephemeral deployments. The search core
// depends only on the Store interface, not on a storage technology.
package database

import (
	"context"
	"errors"
	"time"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/models"
)

// ErrNotFound is returned when the requested entity does not exist.
var ErrNotFound = errors.New("entity not found")

// SpotFilter narrows a spot query. Zero-value fields are ignored. Values
// within one field combine with OR; distinct fields combine with AND,
// mirroring the query-parameter combination rules of the search API.
type SpotFilter struct {
	// IDs restricts the result to explicitly named spots.
	IDs []string

	// NameContains matches case-insensitive substrings of the spot name.
	NameContains string

	// MinCapacity keeps spots whose capacity is at least this value.
	MinCapacity int

	// ExtendedInfo keeps spots whose stored value for each key equals one
	// of the supplied values.
	ExtendedInfo map[string][]string
}

// Store is the persistence boundary for the search core.
//
// Ordering contracts:
//   - QuerySpots returns spots in stable primary-key order.
//   - WindowsForSpot returns windows ordered by (day, start).
//   - WindowsForDay returns windows ordered by start.
//
// Consumers rely on these orderings and never re-sort.
//
// Concurrency contract: UpdateSpot, DeleteSpot, and TouchSpot compare the
// expected version token atomically with the stored one and fail with
// version.ErrConflict on mismatch, leaving state unchanged.
type Store interface {
	CreateSpot(ctx context.Context, spot *models.Spot) error
	GetSpot(ctx context.Context, id string) (models.Spot, error)
	QuerySpots(ctx context.Context, filter SpotFilter) ([]models.Spot, error)
	UpdateSpot(ctx context.Context, spot *models.Spot, expectedToken string) error
	DeleteSpot(ctx context.Context, id, expectedToken string) error

	// TouchSpot advances the spot's version token and last-modified
	// timestamp after a child (window, item) write.
	TouchSpot(ctx context.Context, id, expectedToken, newToken string, now time.Time) error

	WindowsForSpot(ctx context.Context, spotID string) ([]models.AvailabilityWindow, error)
	WindowsForDay(ctx context.Context, spotID string, day models.Day) ([]models.AvailabilityWindow, error)
	InsertWindow(ctx context.Context, w *models.AvailabilityWindow) error
	DeleteWindow(ctx context.Context, id string) error

	ItemsForSpot(ctx context.Context, spotID string) ([]models.SpotItem, error)
	CreateItem(ctx context.Context, item *models.SpotItem) error

	// Ping reports whether the backing storage is reachable.
	Ping(ctx context.Context) error

	Close() error
}

// ScheduleForSpot groups a spot's windows by day using the store's ordered
// fetch, preserving the per-day start ordering.
func ScheduleForSpot(ctx context.Context, s Store, spotID string) (models.WeekSchedule, error) {
	windows, err := s.WindowsForSpot(ctx, spotID)
	if err != nil {
		return nil, err
	}
	schedule := make(models.WeekSchedule, models.DaysPerWeek)
	for _, w := range windows {
		schedule[w.Day] = append(schedule[w.Day], w)
	}
	return schedule, nil
}
