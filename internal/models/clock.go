// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package models

import (
	"fmt"
	"strings"
	"time"
)

// ClockTime is a wall-clock time of day expressed as seconds since midnight.
// It carries no timezone; availability windows are interpreted in the local
// time of the spot.
type ClockTime int

// Clock time bounds. LastSecond is the latest instant a window may end at;
// windows never span a day boundary in storage.
const (
	Midnight   ClockTime = 0
	LastSecond ClockTime = 24*60*60 - 1
)

// ParseClock parses "HH:MM" or "HH:MM:SS" into a ClockTime.
func ParseClock(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}

	var h, m, sec int
	if _, err := fmt.Sscanf(parts[0]+":"+parts[1], "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	if len(parts) == 3 {
		if _, err := fmt.Sscanf(parts[2], "%d", &sec); err != nil {
			return 0, fmt.Errorf("invalid clock time %q", s)
		}
	}

	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return ClockTime(h*3600 + m*60 + sec), nil
}

// ClockOf extracts the ClockTime from a time.Time.
func ClockOf(t time.Time) ClockTime {
	return ClockTime(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// DayOf extracts the Day from a time.Time.
func DayOf(t time.Time) Day {
	return Day(int(t.Weekday()))
}

// Valid reports whether c falls within a single day.
func (c ClockTime) Valid() bool {
	return c >= Midnight && c <= LastSecond
}

// String formats the time as "HH:MM:SS".
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(c)/3600, int(c)%3600/60, int(c)%60)
}

// MarshalJSON encodes the time as an "HH:MM:SS" string.
func (c ClockTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON decodes "HH:MM" or "HH:MM:SS".
func (c *ClockTime) UnmarshalJSON(data []byte) error {
	parsed, err := ParseClock(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
