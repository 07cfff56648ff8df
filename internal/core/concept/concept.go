// Copyright (c) 2026 Dugout. All rights reserved.

package concept

import (
	"encoding/json"
	"time"
)

// Concept is an encyclopedia entry describing a coaching idea.
type Concept struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Summary   string  `json:"summary"`
	Body      string  `json:"body"`
	Category  string  `json:"category"`
	Level     *string `json:"level"`
	CreatedBy *string `json:"created_by"`
	Archived  bool    `json:"archived"`

	MediaFiles []string          `json:"media_files"`
	History    []json.RawMessage `json:"history"`
	Tags       []string          `json:"tags"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Version is one append-only snapshot of a concept body.
type Version struct {
	ID            string    `json:"id"`
	ConceptID     string    `json:"concept_id"`
	Body          string    `json:"body"`
	UpdatedBy     *string   `json:"updated_by"`
	UpdatedAt     time.Time `json:"updated_at"`
	ChangeSummary *string   `json:"change_summary"`
}

// Link attaches a concept to an object elsewhere in the system.
type Link struct {
	ConceptID  string    `json:"concept_id"`
	ObjectType string    `json:"object_type"`
	ObjectID   string    `json:"object_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Link object types.
const (
	ObjectPlayerNote = "player_note"
	ObjectDrill      = "drill"
	ObjectAssessment = "assessment"
)

// ObjectTypes lists the accepted link object types.
var ObjectTypes = []string{ObjectPlayerNote, ObjectDrill, ObjectAssessment}

// Relation types.
const (
	RelationRelated      = "related"
	RelationPrerequisite = "prerequisite"
	RelationCounterpoint = "counterpoint"
	RelationBuildsOn     = "builds_on"
)

// RelationTypes lists the accepted relation types.
var RelationTypes = []string{RelationRelated, RelationPrerequisite, RelationCounterpoint, RelationBuildsOn}

// Relation directions as seen from the concept being read.
const (
	DirectionOutgoing = "outgoing"
	DirectionIncoming = "incoming"
)

// Relation is a directed edge between two concepts, described from one end.
type Relation struct {
	FromConceptID string `json:"from_concept_id"`
	ToConceptID   string `json:"to_concept_id"`
	RelationType  string `json:"relation_type"`
	Direction     string `json:"direction"`

	// OtherID and OtherTitle name the concept at the far end.
	OtherID    string `json:"concept_id"`
	OtherTitle string `json:"title"`
}

// Detail is the single-concept read model.
type Detail struct {
	*Concept
	Relations []*Relation `json:"relations"`
	Links     []*Link     `json:"links"`
}

// Filter narrows searches. Empty fields match everything.
type Filter struct {
	Query           string
	Category        string
	IncludeArchived bool
}

// CreateInput is the body of POST /concepts.
type CreateInput struct {
	Title         string            `json:"title"`
	Summary       string            `json:"summary"`
	Body          string            `json:"body"`
	Category      string            `json:"category"`
	Level         *string           `json:"level"`
	CreatedBy     *string           `json:"created_by"`
	Archived      bool              `json:"archived"`
	MediaFiles    []string          `json:"media_files"`
	History       []json.RawMessage `json:"history"`
	Tags          []string          `json:"tags"`
	ChangeSummary *string           `json:"change_summary"`
}

// UpdateInput is the body of PUT /concepts/{id}. Absent fields are kept.
type UpdateInput struct {
	Title      *string            `json:"title"`
	Summary    *string            `json:"summary"`
	Body       *string            `json:"body"`
	Category   *string            `json:"category"`
	Level      *string            `json:"level"`
	Archived   *bool              `json:"archived"`
	MediaFiles *[]string          `json:"media_files"`
	History    *[]json.RawMessage `json:"history"`
	Tags       *[]string          `json:"tags"`

	// UpdatedBy and ChangeSummary annotate the version recorded when Body changes.
	UpdatedBy     *string `json:"updated_by"`
	ChangeSummary *string `json:"change_summary"`
}

// LinkInput is the body of POST /concepts/{id}/links.
type LinkInput struct {
	ObjectType string `json:"object_type"`
	ObjectID   string `json:"object_id"`
}

// RelationInput is the body of POST /concepts/{id}/relations.
type RelationInput struct {
	ToConceptID  string `json:"to_concept_id"`
	RelationType string `json:"relation_type"`
}

// # Field Names

const (
	FieldTitle         = "title"
	FieldCategory      = "category"
	FieldLevel         = "level"
	FieldObjectType    = "object_type"
	FieldObjectID      = "object_id"
	FieldToConceptID   = "to_concept_id"
	FieldRelationType  = "relation_type"
	FieldChangeSummary = "change_summary"
)
