// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package report computes activity statistics from output-artifact filenames.
// Every report is a full recomputation over the current listing: there is no
// cache and no state shared across requests.
package report

import (
	"strings"
	"time"
)

// dayFormat is the calendar-date format used in query parameters and report keys.
const dayFormat = "2006-01-02"

// Event is one output artifact attributed to a user and a production day.
type Event struct {
	User    string
	Date    time.Time // midnight UTC of the production day
	Hour    int       // 0-23, meaningful only when HasHour is true
	HasHour bool
}

// Parser extracts activity events from artifact filenames of the form
// <prefix>-<user>-<timestamp><ext>, where the timestamp starts with YYYYMMDD
// and optionally continues with HH.
type Parser struct {
	Prefix string
}

// Parse returns the event encoded in name, or ok=false when the name does not
// match the artifact naming contract. A rejected name is not an error: corrupt
// or foreign files are silently excluded from all statistics.
func (p Parser) Parse(name string) (Event, bool) {
	marker := p.Prefix + "-"
	if !strings.HasPrefix(name, marker) {
		return Event{}, false
	}

	rest := name[len(marker):]

	// The user segment may itself contain dashes, so the timestamp is
	// everything after the last one.
	sep := strings.LastIndexByte(rest, '-')
	if sep <= 0 {
		return Event{}, false
	}

	user, ts := rest[:sep], rest[sep+1:]
	if len(ts) < 8 {
		return Event{}, false
	}

	date, err := time.ParseInLocation("20060102", ts[:8], time.UTC)
	if err != nil {
		return Event{}, false
	}

	ev := Event{User: user, Date: date}

	// Two more leading digits give the production hour. Anything after them
	// (minutes, seconds, the extension) is ignored.
	if leadingDigits(ts) >= 10 {
		hour := int(ts[8]-'0')*10 + int(ts[9]-'0')
		if hour <= 23 {
			ev.Hour = hour
			ev.HasHour = true
		}
	}

	return ev, true
}

// leadingDigits counts the run of ASCII digits at the start of s.
func leadingDigits(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return i
		}
	}
	return len(s)
}
