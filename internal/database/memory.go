// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package database

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/models"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/version"
)

// MemoryStore is an in-memory Store used by tests and by deployments that
// select the "memory" database driver. All methods are safe for concurrent
// use; token comparisons happen under the store lock, which gives the same
// per-entity linearization as the DuckDB compare-and-swap.
type MemoryStore struct {
	mu      sync.RWMutex
	spots   map[string]models.Spot
	windows map[string]models.AvailabilityWindow
	items   map[string]models.SpotItem
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		spots:   make(map[string]models.Spot),
		windows: make(map[string]models.AvailabilityWindow),
		items:   make(map[string]models.SpotItem),
	}
}

// CreateSpot stores a new spot.
func (m *MemoryStore) CreateSpot(_ context.Context, spot *models.Spot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spots[spot.ID] = *spot
	return nil
}

// GetSpot returns one spot by id.
func (m *MemoryStore) GetSpot(_ context.Context, id string) (models.Spot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	spot, ok := m.spots[id]
	if !ok {
		return models.Spot{}, ErrNotFound
	}
	return spot, nil
}

// QuerySpots returns spots matching the filter in primary-key order.
func (m *MemoryStore) QuerySpots(_ context.Context, filter SpotFilter) ([]models.Spot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Spot
	for _, spot := range m.spots {
		if matchesFilter(spot, filter) {
			out = append(out, spot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func matchesFilter(spot models.Spot, filter SpotFilter) bool {
	if len(filter.IDs) > 0 {
		found := false
		for _, id := range filter.IDs {
			if spot.ID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.NameContains != "" &&
		!strings.Contains(strings.ToLower(spot.Name), strings.ToLower(filter.NameContains)) {
		return false
	}
	if filter.MinCapacity > 0 && spot.Capacity < filter.MinCapacity {
		return false
	}
	for key, wanted := range filter.ExtendedInfo {
		stored, ok := spot.ExtendedInfo.Get(key)
		if !ok {
			return false
		}
		found := false
		for _, v := range wanted {
			if stored == v {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// UpdateSpot replaces a spot's fields after an atomic token comparison.
func (m *MemoryStore) UpdateSpot(_ context.Context, spot *models.Spot, expectedToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.spots[spot.ID]
	if !ok {
		return ErrNotFound
	}
	if current.ETag != expectedToken {
		return version.ErrConflict
	}
	m.spots[spot.ID] = *spot
	return nil
}

// DeleteSpot removes a spot and all owned windows and items after an atomic
// token comparison.
func (m *MemoryStore) DeleteSpot(_ context.Context, id, expectedToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.spots[id]
	if !ok {
		return ErrNotFound
	}
	if current.ETag != expectedToken {
		return version.ErrConflict
	}
	delete(m.spots, id)
	for wid, w := range m.windows {
		if w.SpotID == id {
			delete(m.windows, wid)
		}
	}
	for iid, item := range m.items {
		if item.SpotID == id {
			delete(m.items, iid)
		}
	}
	return nil
}

// TouchSpot advances the version token after a child write.
func (m *MemoryStore) TouchSpot(_ context.Context, id, expectedToken, newToken string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.spots[id]
	if !ok {
		return ErrNotFound
	}
	if current.ETag != expectedToken {
		return version.ErrConflict
	}
	current.ETag = newToken
	current.LastModified = now
	m.spots[id] = current
	return nil
}

// WindowsForSpot returns all windows for a spot ordered by (day, start).
func (m *MemoryStore) WindowsForSpot(_ context.Context, spotID string) ([]models.AvailabilityWindow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.AvailabilityWindow
	for _, w := range m.windows {
		if w.SpotID == spotID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].Start < out[j].Start
	})
	return out, nil
}

// WindowsForDay returns a spot's windows for one day ordered by start.
func (m *MemoryStore) WindowsForDay(_ context.Context, spotID string, day models.Day) ([]models.AvailabilityWindow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.AvailabilityWindow
	for _, w := range m.windows {
		if w.SpotID == spotID && w.Day == day {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

// InsertWindow stores a new window.
func (m *MemoryStore) InsertWindow(_ context.Context, w *models.AvailabilityWindow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.windows[w.ID] = *w
	return nil
}

// DeleteWindow removes a window by id. Deleting a missing window is a no-op.
func (m *MemoryStore) DeleteWindow(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.windows, id)
	return nil
}

// ItemsForSpot returns a spot's items ordered by id.
func (m *MemoryStore) ItemsForSpot(_ context.Context, spotID string) ([]models.SpotItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.SpotItem
	for _, item := range m.items {
		if item.SpotID == spotID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateItem stores a new item.
func (m *MemoryStore) CreateItem(_ context.Context, item *models.SpotItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = *item
	return nil
}

// Ping implements Store; the in-memory store is always reachable.
func (m *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	return nil
}
