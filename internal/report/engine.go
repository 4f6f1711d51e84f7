// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package report

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// ErrInvalidDate is returned by DayHours when the requested date itself fails
// to parse. Unlike malformed filenames or range parameters, this is surfaced
// to the caller: they asked about one specific date.
var ErrInvalidDate = errors.New("invalid date")

// DayCount is one (date, count) pair of a daily series.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// WindowDay is one day of a rolling window, anchored to the wall-clock day
// rather than to the data extent.
type WindowDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Users int    `json:"users"`
}

// UserCount is one leaderboard entry.
type UserCount struct {
	User  string `json:"user_id"`
	Count int    `json:"count"`
}

// Report is the engine's sole output: an immutable snapshot of all derived
// statistics for one effective range.
type Report struct {
	TotalFiles     int         `json:"total_files"`
	AveragePerDay  float64     `json:"average_per_day"`
	Daily          []DayCount  `json:"daily"`
	Last7Days      []WindowDay `json:"last_7_days"`
	Last30Days     []WindowDay `json:"last_30_days"`
	TopUsers       []UserCount `json:"top_users"`
	Hourly         [24]int     `json:"hourly_distribution"`
	Weekday        [7]int      `json:"weekday_distribution"`
	NewUsersPerDay []DayCount  `json:"new_unique_users_per_day"`
	StartDate      string      `json:"start_date,omitempty"`
	EndDate        string      `json:"end_date,omitempty"`
}

// UserReport is the per-user drill-down: the same shapes as Report, scoped to
// one user's artifacts.
type UserReport struct {
	User       string     `json:"user_id"`
	TotalFiles int        `json:"total_files"`
	Daily      []DayCount `json:"daily_activity"`
	Hourly     [24]int    `json:"hourly_distribution"`
	Weekday    [7]int     `json:"weekday_distribution"`
	StartDate  string     `json:"requested_start_date,omitempty"`
	EndDate    string     `json:"requested_end_date,omitempty"`
}

// DayReport is the single-day drill-down: the hourly histogram of one date.
type DayReport struct {
	Date   string  `json:"date"`
	Hourly [24]int `json:"hourly"`
}

// Engine turns the current artifact listing into reports. It holds no state
// across calls: two Generate calls over an unchanged listing produce
// identical reports.
type Engine struct {
	source Source
	parser Parser
	topN   int
	now    func() time.Time
}

// NewEngine creates an engine over the given source. topN bounds the user
// leaderboard.
func NewEngine(source Source, prefix string, topN int) *Engine {
	return &Engine{
		source: source,
		parser: Parser{Prefix: prefix},
		topN:   topN,
		now:    time.Now,
	}
}

// Generate computes the full report. startParam and endParam are the raw
// YYYY-MM-DD query values; malformed or absent values leave that side of the
// range open.
func (e *Engine) Generate(ctx context.Context, startParam, endParam string) (*Report, error) {
	events, err := e.scan(ctx)
	if err != nil {
		return nil, err
	}

	obsMin, obsMax, observed := extent(events)
	rng := ResolveRange(startParam, endParam, obsMin, obsMax, observed)

	ix := NewIndex()
	for _, ev := range events {
		if rng.Contains(ev.Date) {
			ix.Add(ev)
		}
	}

	rep := &Report{
		TotalFiles:     ix.Total,
		AveragePerDay:  averagePerDay(ix.Total, rng.Days),
		Daily:          dailySeries(ix),
		Last7Days:      e.window(ix, 7),
		Last30Days:     e.window(ix, 30),
		TopUsers:       topUsers(ix, e.topN),
		Hourly:         ix.Hourly,
		Weekday:        ix.Weekday,
		NewUsersPerDay: newUsersPerDay(ix),
	}
	if rng.HasStart {
		rep.StartDate = rng.Start.Format(dayFormat)
	}
	if rng.HasEnd {
		rep.EndDate = rng.End.Format(dayFormat)
	}

	return rep, nil
}

// UserActivity computes the drill-down report for one user: the same parse
// and range-filter pipeline, restricted to filenames whose user segment
// matches userID.
func (e *Engine) UserActivity(ctx context.Context, userID, startParam, endParam string) (*UserReport, error) {
	events, err := e.scan(ctx)
	if err != nil {
		return nil, err
	}

	own := events[:0]
	for _, ev := range events {
		if ev.User == userID {
			own = append(own, ev)
		}
	}

	obsMin, obsMax, observed := extent(own)
	rng := ResolveRange(startParam, endParam, obsMin, obsMax, observed)

	ix := NewIndex()
	for _, ev := range own {
		if rng.Contains(ev.Date) {
			ix.Add(ev)
		}
	}

	rep := &UserReport{
		User:       userID,
		TotalFiles: ix.Total,
		Daily:      dailySeries(ix),
		Hourly:     ix.Hourly,
		Weekday:    ix.Weekday,
	}

	// Echo the bounds the caller actually asked for; unparseable values have
	// already degraded to "absent".
	if t, err := time.ParseInLocation(dayFormat, startParam, time.UTC); err == nil {
		rep.StartDate = t.Format(dayFormat)
	}
	if t, err := time.ParseInLocation(dayFormat, endParam, time.UTC); err == nil {
		rep.EndDate = t.Format(dayFormat)
	}

	return rep, nil
}

// DayHours computes the hourly histogram of a single date. A malformed date
// returns ErrInvalidDate.
func (e *Engine) DayHours(ctx context.Context, dateParam string) (*DayReport, error) {
	day, err := time.ParseInLocation(dayFormat, dateParam, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, dateParam)
	}

	events, err := e.scan(ctx)
	if err != nil {
		return nil, err
	}

	rep := &DayReport{Date: day.Format(dayFormat)}
	for _, ev := range events {
		if ev.HasHour && ev.Date.Equal(day) {
			rep.Hourly[ev.Hour]++
		}
	}

	return rep, nil
}

// scan lists the source and parses every filename, dropping rejects.
func (e *Engine) scan(ctx context.Context) ([]Event, error) {
	names, err := e.source.List(ctx)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(names))
	for _, name := range names {
		if ev, ok := e.parser.Parse(name); ok {
			events = append(events, ev)
		}
	}

	return events, nil
}

// averagePerDay divides total by the inclusive day count, rounded to two
// decimals. A zero (or nonsensical) day count yields 0.
func averagePerDay(total, days int) float64 {
	if days <= 0 {
		return 0
	}
	return math.Round(float64(total)/float64(days)*100) / 100
}

// dailySeries returns the sorted (date, count) pairs of the index.
func dailySeries(ix *Index) []DayCount {
	out := make([]DayCount, 0, len(ix.Days))
	for _, key := range sortedDayKeys(ix) {
		out = append(out, DayCount{Date: key, Count: ix.Days[key].Count})
	}
	return out
}

// window reports the most recent n calendar days ending today. The index is
// already range-filtered, so a day outside an explicit range naturally shows
// zero even when the underlying data would have events for it.
func (e *Engine) window(ix *Index, n int) []WindowDay {
	today := e.now().UTC()

	out := make([]WindowDay, 0, n)
	for i := n - 1; i >= 0; i-- {
		key := today.AddDate(0, 0, -i).Format(dayFormat)
		day := WindowDay{Date: key}
		if bucket, ok := ix.Days[key]; ok {
			day.Count = bucket.Count
			day.Users = len(bucket.Users)
		}
		out = append(out, day)
	}

	return out
}

// topUsers returns the n highest per-user totals. The sort is stable over the
// first-encountered order, so ties keep insertion order.
func topUsers(ix *Index, n int) []UserCount {
	out := make([]UserCount, 0, len(ix.userOrder))
	for _, user := range ix.userOrder {
		out = append(out, UserCount{User: user, Count: ix.UserTotals[user]})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })

	if len(out) > n {
		out = out[:n]
	}
	return out
}

// newUsersPerDay walks the daily series in ascending date order, counting for
// each day the users not seen on any earlier day. The iteration order is load
// bearing: computed out of order the running set is wrong.
func newUsersPerDay(ix *Index) []DayCount {
	seen := make(map[string]struct{})

	out := make([]DayCount, 0, len(ix.Days))
	for _, key := range sortedDayKeys(ix) {
		fresh := 0
		for user := range ix.Days[key].Users {
			if _, ok := seen[user]; !ok {
				fresh++
				seen[user] = struct{}{}
			}
		}
		out = append(out, DayCount{Date: key, Count: fresh})
	}

	return out
}

// sortedDayKeys returns the index's date keys in ascending order. The keys
// are YYYY-MM-DD, so lexicographic order is chronological order.
func sortedDayKeys(ix *Index) []string {
	keys := make([]string, 0, len(ix.Days))
	for key := range ix.Days {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
