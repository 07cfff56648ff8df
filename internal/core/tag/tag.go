// Copyright (c) 2026 Dugout. All rights reserved.

package tag

import (
	"strings"

	"github.com/dugoutlab/dugout/pkg/query"
)

// Tag is a shared, uniquely named label attached to drills and concepts.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Owner identifies which join table a tag set belongs to.
type Owner int

const (
	OwnerDrill Owner = iota + 1
	OwnerConcept
)

// Field names used in validation errors.
const (
	FieldName     = "name"
	FieldTagNames = "tag_names"
	FieldTags     = "tags"
)

// MaxNameLength bounds a single tag name.
const MaxNameLength = 64

// ParseNames splits a comma separated list of tag names.
//
//	ParseNames(" hitting, tee ,,hitting") // ["hitting", "tee"]
func ParseNames(csv string) []string {
	return CleanNames(query.StringSlice(csv))
}

// CleanNames trims names, drops empties and removes exact duplicates while
// keeping first-seen order.
func CleanNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	cleaned := make([]string, 0, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		cleaned = append(cleaned, name)
	}
	return cleaned
}
