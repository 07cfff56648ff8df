// Copyright (c) 2026 Dugout. All rights reserved.

package player

import (
	"context"

	"github.com/dugoutlab/dugout/internal/platform/postgres"
)

// Repository defines the data access contract for players and their history.
type Repository interface {

	/*
		List returns a page of players ordered by last then first name.

		Returns:
		  - []*Player: The page
		  - int: Total number of players
		  - error: Storage failures
	*/
	List(context context.Context, q postgres.DBTX, limit, offset int) ([]*Player, int, error)

	// FindByID returns NOT_FOUND when no player has the id.
	FindByID(context context.Context, q postgres.DBTX, id string) (*Player, error)

	// Create inserts the profile and fills CreatedAt/UpdatedAt.
	Create(context context.Context, q postgres.DBTX, player *Player) error

	// Update rewrites every mutable column and refreshes UpdatedAt.
	Update(context context.Context, q postgres.DBTX, player *Player) error

	// Delete removes the player and, through foreign keys, the history,
	// assignments and sessions that belong to it. Reports whether a row existed.
	Delete(context context.Context, q postgres.DBTX, id string) (bool, error)

	// ListHistory returns a player's entries by date ascending.
	ListHistory(context context.Context, q postgres.DBTX, playerID string) ([]*HistoryEntry, error)

	AddHistory(context context.Context, q postgres.DBTX, entry *HistoryEntry) error

	// DeleteHistory removes one entry of one player. Reports whether a row existed.
	DeleteHistory(context context.Context, q postgres.DBTX, playerID, historyID string) (bool, error)
}
