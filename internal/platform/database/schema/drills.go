// Copyright (c) 2026 Dugout. All rights reserved.

package schema

// DrillsTable represents the 'drills' table.
type DrillsTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	Category    string
	VideoURL    string
	MediaFiles  string
	History     string
	CreatedAt   string
	UpdatedAt   string
}

// Drills is the schema definition for drills.
var Drills = DrillsTable{
	Table:       "drills",
	ID:          "id",
	Title:       "title",
	Description: "description",
	Category:    "category",
	VideoURL:    "video_url",
	MediaFiles:  "media_files",
	History:     "history",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

// TagsTable represents the 'tags' table.
type TagsTable struct {
	Table string
	ID    string
	Name  string
}

// Tags is the schema definition for tags.
var Tags = TagsTable{
	Table: "tags",
	ID:    "id",
	Name:  "name",
}

// TagJoinTable represents a many-to-many join between an owner and tags.
type TagJoinTable struct {
	Table   string
	OwnerID string
	TagID   string
}

// DrillTags is the schema definition for drill_tags.
var DrillTags = TagJoinTable{
	Table:   "drill_tags",
	OwnerID: "drill_id",
	TagID:   "tag_id",
}

// ConceptTags is the schema definition for concept_tags.
var ConceptTags = TagJoinTable{
	Table:   "concept_tags",
	OwnerID: "concept_id",
	TagID:   "tag_id",
}
