// Copyright (c) 2026 Dugout. All rights reserved.

// Package calendar parses the calendar dates clients send as plain strings.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the only accepted wire format.
const Layout = "2006-01-02"

// Parse converts "YYYY-MM-DD" to midnight UTC of that day.
// An empty string yields now. Anything else is an error.
func Parse(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now, nil
	}
	parsed, err := time.ParseInLocation(Layout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar: %q is not a YYYY-MM-DD date", raw)
	}
	return parsed, nil
}

// Format renders t as "YYYY-MM-DD" in UTC.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Today returns the current UTC date as "YYYY-MM-DD".
func Today(now time.Time) string {
	return Format(now)
}
