// Copyright (c) 2026 Dugout. All rights reserved.

package schema

// ConceptsTable represents the 'concepts' table.
type ConceptsTable struct {
	Table      string
	ID         string
	Title      string
	Summary    string
	Body       string
	Category   string
	Level      string
	CreatedBy  string
	Archived   string
	MediaFiles string
	History    string
	CreatedAt  string
	UpdatedAt  string
}

// Concepts is the schema definition for concepts.
var Concepts = ConceptsTable{
	Table:      "concepts",
	ID:         "id",
	Title:      "title",
	Summary:    "summary",
	Body:       "body",
	Category:   "category",
	Level:      "level",
	CreatedBy:  "created_by",
	Archived:   "archived",
	MediaFiles: "media_files",
	History:    "history",
	CreatedAt:  "created_at",
	UpdatedAt:  "updated_at",
}

// ConceptVersionsTable represents the append-only 'concept_versions' table.
type ConceptVersionsTable struct {
	Table         string
	ID            string
	ConceptID     string
	Body          string
	UpdatedBy     string
	UpdatedAt     string
	ChangeSummary string
}

// ConceptVersions is the schema definition for concept_versions.
var ConceptVersions = ConceptVersionsTable{
	Table:         "concept_versions",
	ID:            "id",
	ConceptID:     "concept_id",
	Body:          "body",
	UpdatedBy:     "updated_by",
	UpdatedAt:     "updated_at",
	ChangeSummary: "change_summary",
}

// ConceptLinksTable represents the 'concept_links' table.
type ConceptLinksTable struct {
	Table      string
	ConceptID  string
	ObjectType string
	ObjectID   string
	CreatedAt  string
}

// ConceptLinks is the schema definition for concept_links.
var ConceptLinks = ConceptLinksTable{
	Table:      "concept_links",
	ConceptID:  "concept_id",
	ObjectType: "object_type",
	ObjectID:   "object_id",
	CreatedAt:  "created_at",
}

// ConceptRelationsTable represents the 'concept_relations' table.
type ConceptRelationsTable struct {
	Table         string
	FromConceptID string
	ToConceptID   string
	RelationType  string
}

// ConceptRelations is the schema definition for concept_relations.
var ConceptRelations = ConceptRelationsTable{
	Table:         "concept_relations",
	FromConceptID: "from_concept_id",
	ToConceptID:   "to_concept_id",
	RelationType:  "relation_type",
}
