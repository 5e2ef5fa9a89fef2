// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package models

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    ClockTime
		wantErr bool
	}{
		{"00:00", Midnight, false},
		{"09:30", 9*3600 + 30*60, false},
		{"23:59", 23*3600 + 59*60, false},
		{"23:59:59", LastSecond, false},
		{"07:05:30", 7*3600 + 5*60 + 30, false},
		{" 12:00 ", 12 * 3600, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12:00:60", 0, true},
		{"noon", 0, true},
		{"12", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) succeeded, want error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestClockString(t *testing.T) {
	if s := ClockTime(9*3600 + 5*60).String(); s != "09:05:00" {
		t.Fatalf("String() = %q, want 09:05:00", s)
	}
	if s := LastSecond.String(); s != "23:59:59" {
		t.Fatalf("LastSecond.String() = %q", s)
	}
}

func TestClockOfAndDayOf(t *testing.T) {
	// 2026-09-02 is a Wednesday.
	at := time.Date(2026, 9, 2, 14, 30, 15, 0, time.UTC)
	if d := DayOf(at); d != Wednesday {
		t.Fatalf("DayOf = %v, want Wednesday", d)
	}
	if c := ClockOf(at); c != 14*3600+30*60+15 {
		t.Fatalf("ClockOf = %d", c)
	}
}

func TestClockValid(t *testing.T) {
	if !Midnight.Valid() || !LastSecond.Valid() {
		t.Fatal("bounds must be valid")
	}
	if ClockTime(-1).Valid() || ClockTime(24*3600).Valid() {
		t.Fatal("out-of-day values must be invalid")
	}
}
