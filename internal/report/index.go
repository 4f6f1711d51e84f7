// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package report

import "time"

// DayBucket holds the aggregates for one calendar day. Days with no events
// have no bucket at all.
type DayBucket struct {
	Count int
	Users map[string]struct{}
}

// Index folds events into per-day, per-user, hourly and weekday aggregates.
// It is built fresh for every report from the range-filtered event set.
type Index struct {
	Days       map[string]*DayBucket // keyed by YYYY-MM-DD
	UserTotals map[string]int
	Hourly     [24]int
	Weekday    [7]int // Monday first
	Total      int

	// userOrder remembers the first-encountered order of users so that
	// leaderboard ties resolve deterministically.
	userOrder []string
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		Days:       make(map[string]*DayBucket),
		UserTotals: make(map[string]int),
	}
}

// BuildIndex folds a sequence of events in a single pass.
func BuildIndex(events []Event) *Index {
	ix := NewIndex()
	for _, ev := range events {
		ix.Add(ev)
	}
	return ix
}

// Add records one event.
func (ix *Index) Add(ev Event) {
	key := ev.Date.Format(dayFormat)

	bucket := ix.Days[key]
	if bucket == nil {
		bucket = &DayBucket{Users: make(map[string]struct{})}
		ix.Days[key] = bucket
	}
	bucket.Count++
	bucket.Users[ev.User] = struct{}{}

	if _, seen := ix.UserTotals[ev.User]; !seen {
		ix.userOrder = append(ix.userOrder, ev.User)
	}
	ix.UserTotals[ev.User]++

	if ev.HasHour {
		ix.Hourly[ev.Hour]++
	}
	ix.Weekday[mondayIndex(ev.Date)]++

	ix.Total++
}

// extent returns the min and max event date, pre-filter. It is the first of
// the two passes: the effective range may depend on the data extent, so the
// extent has to be known before any filtering happens.
func extent(events []Event) (minDate, maxDate time.Time, ok bool) {
	for _, ev := range events {
		if !ok {
			minDate, maxDate, ok = ev.Date, ev.Date, true
			continue
		}
		if ev.Date.Before(minDate) {
			minDate = ev.Date
		}
		if ev.Date.After(maxDate) {
			maxDate = ev.Date
		}
	}
	return minDate, maxDate, ok
}

// mondayIndex maps a date's weekday to a Monday-first 0..6 index.
func mondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
