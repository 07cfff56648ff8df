// Copyright (c) 2026 Dugout. All rights reserved.

package assignment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dugoutlab/dugout/internal/platform/database/schema"
	"github.com/dugoutlab/dugout/internal/platform/dberr"
	"github.com/dugoutlab/dugout/internal/platform/postgres"
)

const resource = "Assignment"

// PostgresRepository implements [Repository].
type PostgresRepository struct{}

// NewPostgresRepository constructs the assignment store.
func NewPostgresRepository() *PostgresRepository {
	return &PostgresRepository{}
}

func (repository *PostgresRepository) PlayerExists(context context.Context, q postgres.DBTX, playerID string) (bool, error) {
	return exists(context, q, schema.Players.Table, schema.Players.ID, playerID, "Player")
}

func (repository *PostgresRepository) DrillExists(context context.Context, q postgres.DBTX, drillID string) (bool, error) {
	return exists(context, q, schema.Drills.Table, schema.Drills.ID, drillID, "Drill")
}

func exists(context context.Context, q postgres.DBTX, table, column, id, name string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, table, column)

	var found bool
	if err := q.QueryRow(context, query, id).Scan(&found); err != nil {
		return false, dberr.Wrap(err, name)
	}
	return found, nil
}

func (repository *PostgresRepository) SessionPlayer(context context.Context, q postgres.DBTX, sessionID string) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.Sessions.PlayerID, schema.Sessions.Table, schema.Sessions.ID)

	var playerID string
	if err := q.QueryRow(context, query, sessionID).Scan(&playerID); err != nil {
		return "", dberr.Wrap(err, "Session")
	}
	return playerID, nil
}

func (repository *PostgresRepository) Insert(context context.Context, q postgres.DBTX, assignment *Assignment) (bool, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (%s, %s) DO NOTHING
		RETURNING %s
	`,
		schema.PlayerDrills.Table,
		schema.PlayerDrills.PlayerID, schema.PlayerDrills.DrillID, schema.PlayerDrills.Notes,
		schema.PlayerDrills.DatePerformed, schema.PlayerDrills.SessionID,
		schema.PlayerDrills.PlayerID, schema.PlayerDrills.DrillID,
		schema.PlayerDrills.CreatedAt,
	)

	err := q.QueryRow(context, query,
		assignment.PlayerID, assignment.DrillID, assignment.Notes,
		assignment.DatePerformed, assignment.SessionID,
	).Scan(&assignment.CreatedAt)

	// DO NOTHING returns no row for an existing pair
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, dberr.Wrap(err, resource)
	}
	return true, nil
}

func (repository *PostgresRepository) Find(context context.Context, q postgres.DBTX, playerID, drillID string) (*Assignment, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s::text, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		schema.PlayerDrills.PlayerID, schema.PlayerDrills.DrillID, schema.PlayerDrills.Notes,
		schema.PlayerDrills.DatePerformed, schema.PlayerDrills.SessionID, schema.PlayerDrills.CreatedAt,
		schema.PlayerDrills.Table,
		schema.PlayerDrills.PlayerID, schema.PlayerDrills.DrillID,
	)

	a := &Assignment{}
	err := q.QueryRow(context, query, playerID, drillID).Scan(
		&a.PlayerID, &a.DrillID, &a.Notes, &a.DatePerformed, &a.SessionID, &a.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	return a, nil
}

func (repository *PostgresRepository) Delete(context context.Context, q postgres.DBTX, playerID, drillID string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.PlayerDrills.Table, schema.PlayerDrills.PlayerID, schema.PlayerDrills.DrillID)

	tag, err := q.Exec(context, query, playerID, drillID)
	if err != nil {
		return false, dberr.Wrap(err, resource)
	}
	return tag.RowsAffected() > 0, nil
}

func (repository *PostgresRepository) DrillsForPlayer(context context.Context, q postgres.DBTX, playerID string) ([]*AssignedDrill, error) {
	query := fmt.Sprintf(`
		SELECT d.%s, d.%s, d.%s, pd.%s, pd.%s,
		       s.%s::text, s.%s, s.%s
		FROM %s pd
		JOIN %s d ON d.%s = pd.%s
		LEFT JOIN %s s ON s.%s = pd.%s
		WHERE pd.%s = $1
		ORDER BY pd.%s ASC, d.%s ASC
	`,
		schema.Drills.ID, schema.Drills.Title, schema.Drills.Category,
		schema.PlayerDrills.DatePerformed, schema.PlayerDrills.Notes,
		schema.Sessions.ID, schema.Sessions.SessionType, schema.Sessions.Date,
		schema.PlayerDrills.Table,
		schema.Drills.Table, schema.Drills.ID, schema.PlayerDrills.DrillID,
		schema.Sessions.Table, schema.Sessions.ID, schema.PlayerDrills.SessionID,
		schema.PlayerDrills.PlayerID,
		schema.PlayerDrills.CreatedAt, schema.Drills.Title,
	)

	rows, err := q.Query(context, query, playerID)
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	defer rows.Close()

	drills := make([]*AssignedDrill, 0)
	for rows.Next() {
		d := &AssignedDrill{}
		var origin originColumns
		if err := rows.Scan(&d.ID, &d.Title, &d.Category, &d.AssignedDate, &d.Notes,
			&origin.id, &origin.sessionType, &origin.date); err != nil {
			return nil, dberr.Wrap(err, resource)
		}
		d.SessionOrigin = origin.toOrigin()
		drills = append(drills, d)
	}
	return drills, dberr.Wrap(rows.Err(), resource)
}

func (repository *PostgresRepository) PlayersForDrill(context context.Context, q postgres.DBTX, drillID string) ([]*AssignedPlayer, error) {
	query := fmt.Sprintf(`
		SELECT p.%s, p.%s, p.%s, p.%s, p.%s, pd.%s, pd.%s,
		       s.%s::text, s.%s, s.%s
		FROM %s pd
		JOIN %s p ON p.%s = pd.%s
		LEFT JOIN %s s ON s.%s = pd.%s
		WHERE pd.%s = $1
		ORDER BY pd.%s ASC, p.%s ASC, p.%s ASC
	`,
		schema.Players.ID, schema.Players.FirstName, schema.Players.LastName,
		schema.Players.Position, schema.Players.Team,
		schema.PlayerDrills.DatePerformed, schema.PlayerDrills.Notes,
		schema.Sessions.ID, schema.Sessions.SessionType, schema.Sessions.Date,
		schema.PlayerDrills.Table,
		schema.Players.Table, schema.Players.ID, schema.PlayerDrills.PlayerID,
		schema.Sessions.Table, schema.Sessions.ID, schema.PlayerDrills.SessionID,
		schema.PlayerDrills.DrillID,
		schema.PlayerDrills.CreatedAt, schema.Players.LastName, schema.Players.FirstName,
	)

	rows, err := q.Query(context, query, drillID)
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	defer rows.Close()

	players := make([]*AssignedPlayer, 0)
	for rows.Next() {
		p := &AssignedPlayer{}
		var origin originColumns
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Position, &p.Team, &p.AssignedDate, &p.Notes,
			&origin.id, &origin.sessionType, &origin.date); err != nil {
			return nil, dberr.Wrap(err, resource)
		}
		p.SessionOrigin = origin.toOrigin()
		players = append(players, p)
	}
	return players, dberr.Wrap(rows.Err(), resource)
}

// originColumns holds the nullable side of the sessions LEFT JOIN.
type originColumns struct {
	id          *string
	sessionType *string
	date        *time.Time
}

func (o originColumns) toOrigin() *SessionOrigin {
	if o.id == nil {
		return nil
	}
	origin := &SessionOrigin{SessionID: *o.id}
	if o.sessionType != nil {
		origin.SessionType = *o.sessionType
	}
	if o.date != nil {
		origin.Date = *o.date
	}
	return origin
}
