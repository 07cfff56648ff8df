// Copyright (c) 2026 Dugout. All rights reserved.

// Package schema names every table and column the stores query.
//
// Stores build SQL with fmt.Sprintf over these descriptors so a column rename
// is a one-line change here instead of a grep across packages.
package schema

import "strings"

// Cols joins column names with ", ", optionally prefixing each with alias.
func Cols(alias string, columns ...string) string {
	if alias == "" {
		return strings.Join(columns, ", ")
	}
	prefixed := make([]string, len(columns))
	for i, column := range columns {
		prefixed[i] = alias + "." + column
	}
	return strings.Join(prefixed, ", ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds an ILIKE pattern matching term anywhere, with LIKE
// metacharacters in term matched literally. An empty term yields "".
func ContainsPattern(term string) string {
	term = strings.TrimSpace(term)
	if term == "" {
		return ""
	}
	return "%" + likeEscaper.Replace(term) + "%"
}
