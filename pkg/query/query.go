// Copyright (c) 2026 Dugout. All rights reserved.

// Package query parses loosely formatted query-string and form values.
package query

import (
	"strconv"
	"strings"
)

// StringSlice splits a comma-separated value into trimmed, non-empty parts.
// Duplicates are removed; first occurrence order is kept.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean == "" {
			continue
		}
		if _, dup := seen[clean]; dup {
			continue
		}
		seen[clean] = struct{}{}
		res = append(res, clean)
	}
	return res
}

// Bool parses "true", "1", "yes" style flags. Anything unparsable is false.
func Bool(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "yes", "on":
		return true
	}
	v, _ := strconv.ParseBool(strings.TrimSpace(val))
	return v
}

// Trimmed returns the trimmed value or nil when it is empty.
func Trimmed(val string) *string {
	clean := strings.TrimSpace(val)
	if clean == "" {
		return nil
	}
	return &clean
}
