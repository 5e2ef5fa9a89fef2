// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package hours

import (
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/models"
)

// dayEnd marks the exclusive upper bound of a day's clock, one second past
// LastSecond. A window never reaches it, so it is safe as an open segment end.
const dayEnd = models.ClockTime(models.LastSecond + 1)

// HourRange is a caller's fuzzy availability criterion: a span from
// (StartDay, Start) forward to (EndDay, End). The walk always moves forward
// through the week, so EndDay on or before StartDay means the span crosses
// the week boundary. Equal day with End <= Start covers the full week.
type HourRange struct {
	StartDay models.Day
	Start    models.ClockTime
	EndDay   models.Day
	End      models.ClockTime
}

// OpenAt reports whether the schedule has a window covering the given
// instant. A window covers its start and excludes its end, so a spot open
// until 17:00 does not match open_at=17:00 while one opening at 17:00 does.
func OpenAt(schedule models.WeekSchedule, day models.Day, t models.ClockTime) bool {
	for _, w := range schedule[day] {
		if w.Start <= t && t < w.End {
			return true
		}
	}
	return false
}

// Overlaps reports whether any stored window intersects the range. The range
// is decomposed into per-day segments by walking forward from StartDay to
// EndDay; a window overlaps a segment only when the shared span has positive
// length, so both the range start and the range end behave exclusively at
// a bare touch.
func (r HourRange) Overlaps(schedule models.WeekSchedule) bool {
	span := r.StartDay.ForwardDistance(r.EndDay)
	if span == 0 && r.End <= r.Start {
		span = models.DaysPerWeek
	}

	day := r.StartDay
	for i := 0; i <= span; i++ {
		segStart := models.Midnight
		segEnd := dayEnd
		if i == 0 {
			segStart = r.Start
		}
		if i == span {
			segEnd = r.End
		}
		for _, w := range schedule[day] {
			if w.Start < segEnd && w.End > segStart {
				return true
			}
		}
		day = day.Next()
	}
	return false
}

// MatchesAny reports whether the schedule overlaps at least one of the
// ranges. An empty slice matches nothing.
func MatchesAny(schedule models.WeekSchedule, ranges []HourRange) bool {
	for _, r := range ranges {
		if r.Overlaps(schedule) {
			return true
		}
	}
	return false
}
