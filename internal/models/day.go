// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package models

import (
	"fmt"
	"strings"
)

// Day is a day-of-week symbol. The stored week is cyclic: Saturday wraps
// back to Sunday when walking forward.
type Day int

// Days of the week, Sunday first.
const (
	Sunday Day = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// DaysPerWeek is the length of the cyclic week.
const DaysPerWeek = 7

// dayCodes are the wire codes, indexed by Day.
var dayCodes = [DaysPerWeek]string{"su", "m", "t", "w", "th", "f", "sa"}

// dayNames are the long names accepted on input, indexed by Day.
var dayNames = [DaysPerWeek]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// ParseDay parses a day symbol from its wire code ("m", "th", ...) or its
// full name, case-insensitively.
func ParseDay(s string) (Day, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for d := Sunday; d <= Saturday; d++ {
		if needle == dayCodes[d] || needle == dayNames[d] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown day symbol %q", s)
}

// Valid reports whether d is one of the seven defined days.
func (d Day) Valid() bool {
	return d >= Sunday && d <= Saturday
}

// String returns the wire code for the day.
func (d Day) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayCodes[d]
}

// Name returns the full lowercase name for the day.
func (d Day) Name() string {
	if !d.Valid() {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// Next returns the following day, wrapping Saturday to Sunday.
func (d Day) Next() Day {
	return (d + 1) % DaysPerWeek
}

// ForwardDistance returns how many forward steps through the cyclic week
// separate d from other (0 when equal, always 0..6).
func (d Day) ForwardDistance(other Day) int {
	return (int(other) - int(d) + DaysPerWeek) % DaysPerWeek
}

// MarshalJSON encodes the day as its wire code.
func (d Day) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid day %d", int(d))
	}
	return []byte(`"` + dayCodes[d] + `"`), nil
}

// UnmarshalJSON decodes a day from its wire code or full name.
func (d *Day) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
