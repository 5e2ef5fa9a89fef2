// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package search

import (
	"context"
	"testing"
	"time"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/database"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/hours"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/models"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/version"
)

type fixture struct {
	store  *database.MemoryStore
	hours  *hours.IntervalStore
	engine *Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := database.NewMemoryStore()
	return &fixture{
		store:  store,
		hours:  hours.NewIntervalStore(store),
		engine: NewEngine(store, DefaultOptions()),
	}
}

func (f *fixture) addSpot(t *testing.T, id string, lat, lon float64, extras map[string]string) *models.Spot {
	t.Helper()
	spot := &models.Spot{
		ID:        id,
		Name:      "Spot " + id,
		Capacity:  4,
		Latitude:  lat,
		Longitude: lon,
		ETag:      version.Issue(),
	}
	for k, v := range extras {
		spot.ExtendedInfo.Set(k, v)
	}
	if err := f.store.CreateSpot(context.Background(), spot); err != nil {
		t.Fatalf("create spot %s: %v", id, err)
	}
	return spot
}

func (f *fixture) addWindow(t *testing.T, spot *models.Spot, day string, start, end string) {
	t.Helper()
	d, err := models.ParseDay(day)
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	s, err := models.ParseClock(start)
	if err != nil {
		t.Fatalf("parse clock: %v", err)
	}
	e, err := models.ParseClock(end)
	if err != nil {
		t.Fatalf("parse clock: %v", err)
	}
	if _, err := f.hours.Insert(context.Background(), spot, d, s, e); err != nil {
		t.Fatalf("insert window: %v", err)
	}
}

func ids(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Spot.ID
	}
	return out
}

func TestRunAttributeFilters(t *testing.T) {
	f := newFixture(t)
	f.addSpot(t, "a", 47.65, -122.31, map[string]string{"has_whiteboards": "true"})
	f.addSpot(t, "b", 47.66, -122.31, nil)

	results, err := f.engine.Run(context.Background(), mustParse(t, "extended_info:has_whiteboards=true"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := ids(results); len(got) != 1 || got[0] != "a" {
		t.Errorf("results = %v, want [a]", got)
	}
}

func TestRunMalformedCenterReturnsEmptySuccess(t *testing.T) {
	f := newFixture(t)
	f.addSpot(t, "a", 47.65, -122.31, nil)

	results, err := f.engine.Run(context.Background(),
		mustParse(t, "center_latitude=north&center_longitude=-122.31&distance=500"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %v, want empty", ids(results))
	}
}

func TestRunCenteredOrderingAndDistance(t *testing.T) {
	f := newFixture(t)
	f.addSpot(t, "far", 47.67, -122.31, nil)
	f.addSpot(t, "near", 47.6501, -122.31, nil)
	f.addSpot(t, "outside", 48.0, -122.31, nil)

	results, err := f.engine.Run(context.Background(),
		mustParse(t, "center_latitude=47.65&center_longitude=-122.31&distance=5000"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := ids(results); len(got) != 2 || got[0] != "near" || got[1] != "far" {
		t.Fatalf("results = %v, want [near far]", got)
	}
	if results[0].Distance == nil || *results[0].Distance > *results[1].Distance {
		t.Error("distances missing or out of order")
	}
}

func TestRunDefaultQuota(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 25; i++ {
		f.addSpot(t, string(rune('a'+i)), 47.65, -122.31, nil)
	}

	results, err := f.engine.Run(context.Background(), mustParse(t, ""))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 20 {
		t.Errorf("got %d results, want default quota of 20", len(results))
	}

	results, err = f.engine.Run(context.Background(), mustParse(t, "limit=0"))
	if err != nil {
		t.Fatalf("run unlimited: %v", err)
	}
	if len(results) != 25 {
		t.Errorf("limit=0 got %d results, want all 25", len(results))
	}
}

func TestRunSpotWithoutWindowsNeverMatchesOpen(t *testing.T) {
	f := newFixture(t)
	withHours := f.addSpot(t, "open", 47.65, -122.31, nil)
	f.addSpot(t, "closed", 47.65, -122.31, nil)
	f.addWindow(t, withHours, "m", "09:00", "17:00")

	results, err := f.engine.Run(context.Background(), mustParse(t, "open_at=m,10:00"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := ids(results); len(got) != 1 || got[0] != "open" {
		t.Errorf("results = %v, want [open]", got)
	}
}

func TestRunOpenNowUsesClock(t *testing.T) {
	f := newFixture(t)
	spot := f.addSpot(t, "a", 47.65, -122.31, nil)
	f.addWindow(t, spot, "w", "09:00", "17:00")

	// Wednesday 2026-09-02, 10:00 local.
	f.engine.now = func() time.Time {
		return time.Date(2026, 9, 2, 10, 0, 0, 0, time.Local)
	}
	results, err := f.engine.Run(context.Background(), mustParse(t, "open_now=true"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("open at wednesday 10:00: results = %v", ids(results))
	}

	f.engine.now = func() time.Time {
		return time.Date(2026, 9, 2, 20, 0, 0, 0, time.Local)
	}
	results, err = f.engine.Run(context.Background(), mustParse(t, "open_now=true"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("closed at wednesday 20:00: results = %v", ids(results))
	}
}

// Two overlapping inserts collapse to one window; the merged week drives
// instant and range matching exactly as if the union had been stored.
func TestRunMergedScheduleEndToEnd(t *testing.T) {
	f := newFixture(t)
	spot := f.addSpot(t, "a", 47.65, -122.31, nil)
	f.addWindow(t, spot, "m", "09:00", "12:00")
	f.addWindow(t, spot, "m", "11:00", "14:00")

	schedule, err := database.ScheduleForSpot(context.Background(), f.store, spot.ID)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	monday := schedule[models.Monday]
	if len(monday) != 1 {
		t.Fatalf("monday windows = %d, want 1 merged", len(monday))
	}

	cases := []struct {
		name  string
		query string
		want  int
	}{
		{"instant inside merged window", "open_at=m,10:00", 1},
		{"instant at merged end is closed", "open_at=m,14:00", 0},
		{"range overlapping merged tail", "fuzzy_hours_start=m,13:00&fuzzy_hours_end=m,15:00", 1},
		{"range after close", "fuzzy_hours_start=m,14:00&fuzzy_hours_end=m,16:00", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			results, err := f.engine.Run(context.Background(), mustParse(t, tc.query))
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if len(results) != tc.want {
				t.Errorf("got %d results, want %d", len(results), tc.want)
			}
		})
	}
}

func TestRunMultipleFuzzyRangesOr(t *testing.T) {
	f := newFixture(t)
	spot := f.addSpot(t, "a", 47.65, -122.31, nil)
	f.addWindow(t, spot, "f", "18:00", "22:00")

	results, err := f.engine.Run(context.Background(),
		mustParse(t, "fuzzy_hours_start=m,09:00&fuzzy_hours_end=m,12:00"+
			"&fuzzy_hours_start=f,19:00&fuzzy_hours_end=f,20:00"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("matching either range should include the spot; got %v", ids(results))
	}
}

func TestRunCombinesGeoAndHours(t *testing.T) {
	f := newFixture(t)
	near := f.addSpot(t, "near", 47.6501, -122.31, nil)
	far := f.addSpot(t, "far", 47.67, -122.31, nil)
	f.addWindow(t, near, "m", "09:00", "17:00")
	f.addWindow(t, far, "m", "09:00", "17:00")

	results, err := f.engine.Run(context.Background(),
		mustParse(t, "open_at=m,10:00&center_latitude=47.65&center_longitude=-122.31&distance=500&limit=1"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := ids(results); len(got) != 1 || got[0] != "near" {
		t.Errorf("results = %v, want [near]", got)
	}
	if results[0].Distance == nil {
		t.Error("centered result missing distance")
	}
}
