// Copyright (c) 2026 Dugout. All rights reserved.

package drill

import (
	"encoding/json"
	"io"
	"time"
)

// Drill is a repeatable training exercise.
type Drill struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`

	// VideoURL is the single video reference older clients still read.
	VideoURL *string `json:"video_url"`

	MediaFiles []string          `json:"media_files"`
	History    []json.RawMessage `json:"history"`
	Tags       []string          `json:"tags"`

	// AllMedia is MediaFiles plus VideoURL when the list does not hold it.
	AllMedia []string `json:"all_media"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CombinedMedia merges the media list with the legacy video reference.
func (drill *Drill) CombinedMedia() []string {
	media := make([]string, 0, len(drill.MediaFiles)+1)
	media = append(media, drill.MediaFiles...)

	if drill.VideoURL == nil || *drill.VideoURL == "" {
		return media
	}
	for _, ref := range media {
		if ref == *drill.VideoURL {
			return media
		}
	}
	return append(media, *drill.VideoURL)
}

// Filter narrows drill listings. Empty fields match everything.
type Filter struct {
	// Query is matched case-insensitively against title and description.
	Query    string
	Category string
	Tag      string
}

// Upload is a file submitted with a drill.
type Upload struct {
	Name   string
	Reader io.Reader
}

// CreateInput is the multipart form of POST /drills.
type CreateInput struct {
	Title       string
	Description string
	Category    string
	TagNames    string
	VideoLink   string
	Video       *Upload
}

// UpdateInput is the body of PUT /drills/{id}. Absent fields are kept;
// present lists replace the stored ones.
type UpdateInput struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Category    *string            `json:"category"`
	VideoURL    *string            `json:"video_url"`
	MediaFiles  *[]string          `json:"media_files"`
	History     *[]json.RawMessage `json:"history"`
	Tags        *[]string          `json:"tags"`
}

// # Field Names

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldTagNames    = "tag_names"
	FieldVideoFile   = "video_file"
	FieldVideoLink   = "video_link"
	FieldHistory     = "history"
)
