// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package report

import "time"

// Range is the effective reporting window applied to an event set. Either
// bound may be absent, in which case the window is open on that side.
type Range struct {
	Start    time.Time
	End      time.Time
	HasStart bool
	HasEnd   bool
	Days     int // inclusive day count, 0 unless both bounds resolved
}

// ResolveRange combines the explicit request bounds with the observed data
// extent. An explicit bound that fails to parse as YYYY-MM-DD degrades to
// "absent" rather than failing the report; an absent bound falls back to the
// observed extreme when there is one.
func ResolveRange(startParam, endParam string, obsMin, obsMax time.Time, observed bool) Range {
	var rng Range

	if t, err := time.ParseInLocation(dayFormat, startParam, time.UTC); err == nil {
		rng.Start, rng.HasStart = t, true
	} else if observed {
		rng.Start, rng.HasStart = obsMin, true
	}

	if t, err := time.ParseInLocation(dayFormat, endParam, time.UTC); err == nil {
		rng.End, rng.HasEnd = t, true
	} else if observed {
		rng.End, rng.HasEnd = obsMax, true
	}

	if rng.HasStart && rng.HasEnd {
		rng.Days = int(rng.End.Sub(rng.Start).Hours()/24) + 1
	}

	return rng
}

// Contains reports whether day falls inside the window.
func (r Range) Contains(day time.Time) bool {
	if r.HasStart && day.Before(r.Start) {
		return false
	}
	if r.HasEnd && day.After(r.End) {
		return false
	}
	return true
}
