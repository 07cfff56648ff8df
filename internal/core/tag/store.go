// Copyright (c) 2026 Dugout. All rights reserved.

package tag

import (
	"context"

	"github.com/dugoutlab/dugout/internal/platform/postgres"
)

// Repository defines the data access contract for tags and their join tables.
//
// Every method takes the query handle of the caller's transaction so tag
// writes commit or roll back together with the owning drill or concept.
type Repository interface {

	// List returns every tag ordered by name.
	List(context context.Context, q postgres.DBTX) ([]*Tag, error)

	// Create inserts a single tag. A duplicate name is a conflict.
	Create(context context.Context, q postgres.DBTX, tag *Tag) error

	/*
		Resolve returns the tags for names, creating the missing ones.

		The insert ignores names that already exist, so concurrent callers
		resolving the same new name converge on one row. The result follows
		the order of names.
	*/
	Resolve(context context.Context, q postgres.DBTX, names []string) ([]*Tag, error)

	// Replace swaps the full tag set of one drill or concept.
	Replace(context context.Context, q postgres.DBTX, owner Owner, ownerID string, tagIDs []string) error
}
