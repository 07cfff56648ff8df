// Copyright (c) 2026 Dugout. All rights reserved.

package encyclopedia

import (
	"encoding/json"

	"github.com/dugoutlab/dugout/internal/core/concept"
	"github.com/dugoutlab/dugout/internal/core/drill"
)

// Entry types.
const (
	TypeConcept = "concept"
	TypeDrill   = "drill"
)

// Entry is a concept or a drill presented in one shape.
type Entry struct {
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Summary    string            `json:"summary"`
	Body       string            `json:"body"`
	Category   string            `json:"category"`
	Tags       []string          `json:"tags"`
	MediaFiles []string          `json:"media_files"`
	History    []json.RawMessage `json:"history"`
}

// FromConcept maps a concept whose media are already resolved to URLs.
func FromConcept(c *concept.Concept) *Entry {
	return &Entry{
		Type:       TypeConcept,
		ID:         c.ID,
		Title:      c.Title,
		Summary:    c.Summary,
		Body:       c.Body,
		Category:   c.Category,
		Tags:       nonNil(c.Tags),
		MediaFiles: nonNil(c.MediaFiles),
		History:    nonNil(c.History),
	}
}

// FromDrill maps a drill. The description becomes the body and the combined
// media list, video included, becomes media_files.
func FromDrill(d *drill.Drill) *Entry {
	entry := &Entry{
		Type:       TypeDrill,
		ID:         d.ID,
		Title:      d.Title,
		Tags:       nonNil(d.Tags),
		MediaFiles: nonNil(d.AllMedia),
		History:    nonNil(d.History),
	}
	if d.Description != nil {
		entry.Body = *d.Description
	}
	if d.Category != nil {
		entry.Category = *d.Category
	}
	return entry
}

func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
