// Copyright (c) 2026 Dugout. All rights reserved.

package assignment

import (
	"context"

	"github.com/dugoutlab/dugout/internal/platform/postgres"
)

// Repository defines the data access contract for player-drill assignments.
type Repository interface {
	PlayerExists(context context.Context, q postgres.DBTX, playerID string) (bool, error)
	DrillExists(context context.Context, q postgres.DBTX, drillID string) (bool, error)

	// SessionPlayer returns the owner of a session, or NOT_FOUND.
	SessionPlayer(context context.Context, q postgres.DBTX, sessionID string) (string, error)

	// Insert stores a new pair. It reports false, without error, when the
	// pair already exists.
	Insert(context context.Context, q postgres.DBTX, assignment *Assignment) (bool, error)

	Find(context context.Context, q postgres.DBTX, playerID, drillID string) (*Assignment, error)

	// Delete removes the pair and reports whether a row existed.
	Delete(context context.Context, q postgres.DBTX, playerID, drillID string) (bool, error)

	// DrillsForPlayer lists the player's drills, oldest assignment first.
	DrillsForPlayer(context context.Context, q postgres.DBTX, playerID string) ([]*AssignedDrill, error)

	// PlayersForDrill lists the drill's players, oldest assignment first.
	PlayersForDrill(context context.Context, q postgres.DBTX, drillID string) ([]*AssignedPlayer, error)
}
