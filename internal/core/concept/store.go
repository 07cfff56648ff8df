// Copyright (c) 2026 Dugout. All rights reserved.

package concept

import (
	"context"

	"github.com/dugoutlab/dugout/internal/platform/postgres"
)

// Repository defines the data access contract for concepts and their
// versions, links and relations.
type Repository interface {
	// List returns one page ordered by title plus the total row count.
	List(context context.Context, q postgres.DBTX, includeArchived bool, limit, offset int) ([]*Concept, int, error)
	Search(context context.Context, q postgres.DBTX, filter Filter) ([]*Concept, error)
	FindByID(context context.Context, q postgres.DBTX, id string) (*Concept, error)
	Create(context context.Context, q postgres.DBTX, concept *Concept) error
	Update(context context.Context, q postgres.DBTX, concept *Concept) error
	Delete(context context.Context, q postgres.DBTX, id string) (bool, error)

	// Categories returns the distinct non-empty categories, sorted.
	Categories(context context.Context, q postgres.DBTX) ([]string, error)

	AddVersion(context context.Context, q postgres.DBTX, version *Version) error
	// ListVersions returns versions newest first.
	ListVersions(context context.Context, q postgres.DBTX, conceptID string) ([]*Version, error)

	ListLinks(context context.Context, q postgres.DBTX, conceptID string) ([]*Link, error)
	// AddLink reports false when the link already existed.
	AddLink(context context.Context, q postgres.DBTX, link *Link) (bool, error)
	DeleteLink(context context.Context, q postgres.DBTX, conceptID, objectType, objectID string) (bool, error)

	// ListRelations returns edges in both directions.
	ListRelations(context context.Context, q postgres.DBTX, conceptID string) ([]*Relation, error)
	// SaveRelation inserts the edge or updates its type.
	SaveRelation(context context.Context, q postgres.DBTX, fromID, toID, relationType string) error
	DeleteRelation(context context.Context, q postgres.DBTX, fromID, toID string) (bool, error)
}
