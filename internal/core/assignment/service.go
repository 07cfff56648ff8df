// Copyright (c) 2026 Dugout. All rights reserved.

/*
Package assignment links drills to players.

An assignment may carry the date the drill was performed and the session it
came out of. Reading an assignment back enriches it with that session's type
and date.
*/
package assignment

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dugoutlab/dugout/internal/platform/apperr"
	"github.com/dugoutlab/dugout/internal/platform/ctxutil"
	"github.com/dugoutlab/dugout/internal/platform/postgres"
	"github.com/dugoutlab/dugout/internal/platform/validate"
	"github.com/dugoutlab/dugout/pkg/calendar"
)

// Service orchestrates assignment writes and the enriched read models.
type Service struct {
	repo   Repository
	tx     postgres.Transactor
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new [Service].
func NewService(repo Repository, tx postgres.Transactor, logger *slog.Logger) *Service {
	return &Service{repo: repo, tx: tx, logger: logger, now: time.Now}
}

/*
Assign links a drill to a player.

A pair that is already linked is left untouched; the existing row is
returned with AlreadyAssigned set.

Returns:
  - *Result: The new or existing assignment
  - error: NOT_FOUND for a missing player, drill or session; VALIDATION_ERROR
    for a malformed date or a session owned by another player
*/
func (service *Service) Assign(context context.Context, playerID, drillID string, input Input) (*Result, error) {
	validator := &validate.Validator{}
	performed, err := calendar.Parse(input.SessionDate, service.now().UTC())
	validator.Custom(FieldSessionDate, err != nil, "Must be a date in YYYY-MM-DD format")

	sessionID := strings.ToLower(strings.TrimSpace(input.SessionID))
	if sessionID != "" {
		validator.UUID(FieldSessionID, sessionID)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	assignment := &Assignment{
		PlayerID:      playerID,
		DrillID:       drillID,
		DatePerformed: &performed,
	}
	if notes := strings.TrimSpace(input.Notes); notes != "" {
		assignment.Notes = &notes
	}
	if sessionID != "" {
		assignment.SessionID = &sessionID
	}

	result := &Result{Assignment: assignment}
	err = service.tx.InTx(context, func(q postgres.DBTX) error {
		if err := service.requirePlayerAndDrill(context, q, playerID, drillID); err != nil {
			return err
		}

		if sessionID != "" {
			owner, err := service.repo.SessionPlayer(context, q, sessionID)
			if err != nil {
				return err
			}
			if owner != playerID {
				return validate.FieldError(FieldSessionID, "Session belongs to another player")
			}
		}

		inserted, err := service.repo.Insert(context, q, assignment)
		if err != nil {
			return err
		}
		if inserted {
			return nil
		}

		existing, err := service.repo.Find(context, q, playerID, drillID)
		if err != nil {
			return err
		}
		result.Assignment = existing
		result.AlreadyAssigned = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "drill_assigned",
		slog.String("player_id", playerID),
		slog.String("drill_id", drillID),
		slog.Bool("already_assigned", result.AlreadyAssigned),
	)
	return result, nil
}

// Unassign deletes the pair only. The player and drill are untouched.
func (service *Service) Unassign(context context.Context, playerID, drillID string) error {
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		deleted, err := service.repo.Delete(context, q, playerID, drillID)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.NotFound("Assignment")
		}
		return nil
	})
	if err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "drill_unassigned",
		slog.String("player_id", playerID),
		slog.String("drill_id", drillID),
	)
	return nil
}

// ListDrillsForPlayer returns the player's assigned drills with session provenance.
func (service *Service) ListDrillsForPlayer(context context.Context, playerID string) ([]*AssignedDrill, error) {
	var drills []*AssignedDrill
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		found, err := service.repo.PlayerExists(context, q, playerID)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFound("Player")
		}
		drills, err = service.repo.DrillsForPlayer(context, q, playerID)
		return err
	})
	return drills, err
}

// ListPlayersForDrill returns the drill's assigned players with session provenance.
func (service *Service) ListPlayersForDrill(context context.Context, drillID string) ([]*AssignedPlayer, error) {
	var players []*AssignedPlayer
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		found, err := service.repo.DrillExists(context, q, drillID)
		if err != nil {
			return err
		}
		if !found {
			return apperr.NotFound("Drill")
		}
		players, err = service.repo.PlayersForDrill(context, q, drillID)
		return err
	})
	return players, err
}

// DrillsForPlayer reads assigned drills inside an existing transaction.
// The player read model uses it to assemble its detail view.
func (service *Service) DrillsForPlayer(context context.Context, q postgres.DBTX, playerID string) ([]*AssignedDrill, error) {
	return service.repo.DrillsForPlayer(context, q, playerID)
}

func (service *Service) requirePlayerAndDrill(context context.Context, q postgres.DBTX, playerID, drillID string) error {
	found, err := service.repo.PlayerExists(context, q, playerID)
	if err != nil {
		return err
	}
	if !found {
		return apperr.NotFound("Player")
	}

	found, err = service.repo.DrillExists(context, q, drillID)
	if err != nil {
		return err
	}
	if !found {
		return apperr.NotFound("Drill")
	}
	return nil
}
