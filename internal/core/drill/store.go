// Copyright (c) 2026 Dugout. All rights reserved.

package drill

import (
	"context"

	"github.com/dugoutlab/dugout/internal/platform/postgres"
)

// Repository defines the data access contract for drills.
//
// Reads return tag names sorted alphabetically. Tag writes go through the
// tag package, never through this store.
type Repository interface {
	List(context context.Context, q postgres.DBTX, filter Filter) ([]*Drill, error)

	// FindByID returns NOT_FOUND when no drill has the id.
	FindByID(context context.Context, q postgres.DBTX, id string) (*Drill, error)

	// Create inserts the row and fills CreatedAt/UpdatedAt.
	Create(context context.Context, q postgres.DBTX, drill *Drill) error

	// Update rewrites every mutable column and refreshes UpdatedAt.
	Update(context context.Context, q postgres.DBTX, drill *Drill) error

	// Touch refreshes UpdatedAt after a tag-only change.
	Touch(context context.Context, q postgres.DBTX, id string) error

	// Delete removes the drill with its tag links and assignments.
	// Reports whether a row existed.
	Delete(context context.Context, q postgres.DBTX, id string) (bool, error)
}
