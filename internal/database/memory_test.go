// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/models"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/version"
)

func seedSpot(t *testing.T, store *MemoryStore, id, name string) models.Spot {
	t.Helper()
	spot := models.Spot{
		ID:           id,
		Name:         name,
		Capacity:     4,
		Latitude:     47.65,
		Longitude:    -122.30,
		ETag:         version.Issue(),
		LastModified: time.Now().UTC(),
	}
	if err := store.CreateSpot(context.Background(), &spot); err != nil {
		t.Fatalf("CreateSpot: %v", err)
	}
	return spot
}

func TestMemoryStoreGetSpot(t *testing.T) {
	store := NewMemoryStore()
	seeded := seedSpot(t, store, "a", "Suzzallo")

	got, err := store.GetSpot(context.Background(), "a")
	if err != nil {
		t.Fatalf("GetSpot: %v", err)
	}
	if got.Name != seeded.Name || got.ETag != seeded.ETag {
		t.Fatalf("got %+v", got)
	}

	if _, err := store.GetSpot(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreQueryOrder(t *testing.T) {
	store := NewMemoryStore()
	seedSpot(t, store, "c", "Gamma")
	seedSpot(t, store, "a", "Alpha")
	seedSpot(t, store, "b", "Beta")

	spots, err := store.QuerySpots(context.Background(), SpotFilter{})
	if err != nil {
		t.Fatalf("QuerySpots: %v", err)
	}
	if len(spots) != 3 {
		t.Fatalf("got %d spots", len(spots))
	}
	for i, want := range []string{"a", "b", "c"} {
		if spots[i].ID != want {
			t.Fatalf("order = [%s %s %s]", spots[0].ID, spots[1].ID, spots[2].ID)
		}
	}
}

func TestMemoryStoreFilters(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	big := seedSpot(t, store, "big", "Big Study Hall")
	big.Capacity = 80
	if err := store.UpdateSpot(ctx, &big, big.ETag); err != nil {
		t.Fatalf("UpdateSpot: %v", err)
	}
	small := seedSpot(t, store, "small", "Small Nook")
	small.ExtendedInfo = models.NewExtendedInfo(map[string]string{"noise_level": "quiet"})
	if err := store.UpdateSpot(ctx, &small, small.ETag); err != nil {
		t.Fatalf("UpdateSpot: %v", err)
	}

	t.Run("name substring is case-insensitive", func(t *testing.T) {
		spots, err := store.QuerySpots(ctx, SpotFilter{NameContains: "study"})
		if err != nil {
			t.Fatal(err)
		}
		if len(spots) != 1 || spots[0].ID != "big" {
			t.Fatalf("spots = %+v", spots)
		}
	})

	t.Run("minimum capacity", func(t *testing.T) {
		spots, err := store.QuerySpots(ctx, SpotFilter{MinCapacity: 50})
		if err != nil {
			t.Fatal(err)
		}
		if len(spots) != 1 || spots[0].ID != "big" {
			t.Fatalf("spots = %+v", spots)
		}
	})

	t.Run("extended info values OR within a key", func(t *testing.T) {
		spots, err := store.QuerySpots(ctx, SpotFilter{
			ExtendedInfo: map[string][]string{"noise_level": {"quiet", "silent"}},
		})
		if err != nil {
			t.Fatal(err)
		}
		if len(spots) != 1 || spots[0].ID != "small" {
			t.Fatalf("spots = %+v", spots)
		}
	})

	t.Run("explicit ids", func(t *testing.T) {
		spots, err := store.QuerySpots(ctx, SpotFilter{IDs: []string{"small", "missing"}})
		if err != nil {
			t.Fatal(err)
		}
		if len(spots) != 1 || spots[0].ID != "small" {
			t.Fatalf("spots = %+v", spots)
		}
	})
}

func TestMemoryStoreUpdateCAS(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	spot := seedSpot(t, store, "a", "Before")

	stale := spot
	stale.Name = "Stale Write"
	if err := store.UpdateSpot(ctx, &stale, "wrong-token"); !errors.Is(err, version.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}

	current, _ := store.GetSpot(ctx, "a")
	if current.Name != "Before" {
		t.Fatalf("rejected write changed state: %q", current.Name)
	}

	fresh := spot
	fresh.Name = "After"
	fresh.ETag = version.Issue()
	if err := store.UpdateSpot(ctx, &fresh, spot.ETag); err != nil {
		t.Fatalf("UpdateSpot: %v", err)
	}
	current, _ = store.GetSpot(ctx, "a")
	if current.Name != "After" || current.ETag != fresh.ETag {
		t.Fatalf("current = %+v", current)
	}
}

func TestMemoryStoreDeleteCascades(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	spot := seedSpot(t, store, "a", "Doomed")
	seedSpot(t, store, "b", "Survivor")

	w := models.AvailabilityWindow{ID: "w1", SpotID: "a", Day: models.Monday, Start: 9 * 3600, End: 17 * 3600}
	if err := store.InsertWindow(ctx, &w); err != nil {
		t.Fatal(err)
	}
	item := models.SpotItem{ID: "i1", SpotID: "a", Name: "Projector"}
	if err := store.CreateItem(ctx, &item); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteSpot(ctx, "a", "wrong"); !errors.Is(err, version.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if err := store.DeleteSpot(ctx, "a", spot.ETag); err != nil {
		t.Fatalf("DeleteSpot: %v", err)
	}

	if _, err := store.GetSpot(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatal("spot survived delete")
	}
	windows, _ := store.WindowsForSpot(ctx, "a")
	if len(windows) != 0 {
		t.Fatalf("windows survived delete: %v", windows)
	}
	items, _ := store.ItemsForSpot(ctx, "a")
	if len(items) != 0 {
		t.Fatalf("items survived delete: %v", items)
	}
	if _, err := store.GetSpot(ctx, "b"); err != nil {
		t.Fatal("unrelated spot was deleted")
	}
}

func TestMemoryStoreTouchSpot(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	spot := seedSpot(t, store, "a", "Touched")

	newToken := version.Issue()
	now := time.Now().UTC()
	if err := store.TouchSpot(ctx, "a", "wrong", newToken, now); !errors.Is(err, version.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if err := store.TouchSpot(ctx, "a", spot.ETag, newToken, now); err != nil {
		t.Fatalf("TouchSpot: %v", err)
	}

	current, _ := store.GetSpot(ctx, "a")
	if current.ETag != newToken {
		t.Fatalf("etag = %q, want %q", current.ETag, newToken)
	}
	if !current.LastModified.Equal(now) {
		t.Fatalf("last_modified = %v, want %v", current.LastModified, now)
	}
}

func TestMemoryStoreWindowOrdering(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	seedSpot(t, store, "a", "Windowed")

	for _, w := range []models.AvailabilityWindow{
		{ID: "w3", SpotID: "a", Day: models.Tuesday, Start: 8 * 3600, End: 9 * 3600},
		{ID: "w1", SpotID: "a", Day: models.Monday, Start: 14 * 3600, End: 16 * 3600},
		{ID: "w2", SpotID: "a", Day: models.Monday, Start: 9 * 3600, End: 12 * 3600},
	} {
		window := w
		if err := store.InsertWindow(ctx, &window); err != nil {
			t.Fatal(err)
		}
	}

	windows, err := store.WindowsForSpot(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, w := range windows {
		ids = append(ids, w.ID)
	}
	if ids[0] != "w2" || ids[1] != "w1" || ids[2] != "w3" {
		t.Fatalf("order = %v, want [w2 w1 w3]", ids)
	}

	monday, err := store.WindowsForDay(ctx, "a", models.Monday)
	if err != nil {
		t.Fatal(err)
	}
	if len(monday) != 2 || monday[0].ID != "w2" {
		t.Fatalf("monday = %v", monday)
	}

	schedule, err := ScheduleForSpot(ctx, store, "a")
	if err != nil {
		t.Fatal(err)
	}
	if len(schedule[models.Monday]) != 2 || len(schedule[models.Tuesday]) != 1 {
		t.Fatalf("schedule = %v", schedule)
	}
}
