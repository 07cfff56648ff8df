// Copyright (c) 2026 Dugout. All rights reserved.

package player

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dugoutlab/dugout/internal/platform/database/schema"
	"github.com/dugoutlab/dugout/internal/platform/dberr"
	"github.com/dugoutlab/dugout/internal/platform/postgres"
)

const (
	resourcePlayer  = "Player"
	resourceHistory = "History entry"
)

// PostgresRepository implements [Repository].
type PostgresRepository struct{}

// NewPostgresRepository constructs the player store.
func NewPostgresRepository() *PostgresRepository {
	return &PostgresRepository{}
}

// playerColumns is the SELECT list matching [scanPlayer].
func playerColumns() string {
	p := schema.Players
	return fmt.Sprintf(`%s, %s, %s, to_char(%s, 'YYYY-MM-DD'), %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s`,
		p.ID, p.FirstName, p.LastName, p.DOB, p.Position, p.Team,
		p.HeightFt, p.HeightIn, p.WeightLbs, p.Bats, p.Throws,
		p.Notes, p.NotesUpdatedAt, p.CreatedAt, p.UpdatedAt,
	)
}

func scanPlayer(row pgx.Row, extra ...any) (*Player, error) {
	p := &Player{}
	dest := []any{
		&p.ID, &p.FirstName, &p.LastName, &p.DOB, &p.Position, &p.Team,
		&p.HeightFt, &p.HeightIn, &p.WeightLbs, &p.Bats, &p.Throws,
		&p.Notes, &p.NotesUpdatedAt, &p.CreatedAt, &p.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return p, nil
}

func (repository *PostgresRepository) List(context context.Context, q postgres.DBTX, limit, offset int) ([]*Player, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER()
		FROM %s
		ORDER BY %s ASC, %s ASC, %s ASC
		LIMIT $1 OFFSET $2
	`,
		playerColumns(), schema.Players.Table,
		schema.Players.LastName, schema.Players.FirstName, schema.Players.ID,
	)

	rows, err := q.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourcePlayer)
	}
	defer rows.Close()

	players := make([]*Player, 0)
	total := 0
	for rows.Next() {
		p, err := scanPlayer(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourcePlayer)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourcePlayer)
	}
	return players, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, q postgres.DBTX, id string) (*Player, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		playerColumns(), schema.Players.Table, schema.Players.ID)

	p, err := scanPlayer(q.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourcePlayer)
	}
	return p, nil
}

func (repository *PostgresRepository) Create(context context.Context, q postgres.DBTX, player *Player) error {
	p := schema.Players
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING %s, %s
	`,
		p.Table,
		p.ID, p.FirstName, p.LastName, p.DOB, p.Position, p.Team,
		p.HeightFt, p.HeightIn, p.WeightLbs, p.Bats, p.Throws, p.Notes, p.NotesUpdatedAt,
		p.CreatedAt, p.UpdatedAt,
	)

	err := q.QueryRow(context, query,
		player.ID, player.FirstName, player.LastName, player.DOB, player.Position, player.Team,
		player.HeightFt, player.HeightIn, player.WeightLbs, player.Bats, player.Throws,
		player.Notes, player.NotesUpdatedAt,
	).Scan(&player.CreatedAt, &player.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resourcePlayer)
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, q postgres.DBTX, player *Player) error {
	p := schema.Players
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4::date, %s = $5, %s = $6,
			%s = $7, %s = $8, %s = $9, %s = $10, %s = $11,
			%s = $12, %s = $13, %s = now()
		WHERE %s = $1
		RETURNING %s
	`,
		p.Table,
		p.FirstName, p.LastName, p.DOB, p.Position, p.Team,
		p.HeightFt, p.HeightIn, p.WeightLbs, p.Bats, p.Throws,
		p.Notes, p.NotesUpdatedAt, p.UpdatedAt,
		p.ID,
		p.UpdatedAt,
	)

	err := q.QueryRow(context, query,
		player.ID, player.FirstName, player.LastName, player.DOB, player.Position, player.Team,
		player.HeightFt, player.HeightIn, player.WeightLbs, player.Bats, player.Throws,
		player.Notes, player.NotesUpdatedAt,
	).Scan(&player.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resourcePlayer)
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, q postgres.DBTX, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Players.Table, schema.Players.ID)

	tag, err := q.Exec(context, query, id)
	if err != nil {
		return false, dberr.Wrap(err, resourcePlayer)
	}
	return tag.RowsAffected() > 0, nil
}

// # History

func historyColumns() string {
	h := schema.PlayerHistory
	return fmt.Sprintf(`%s, %s, to_char(%s, 'YYYY-MM-DD'), %s, %s, %s`,
		h.ID, h.PlayerID, h.Date, h.ChangeType, h.Notes, h.CreatedAt)
}

func (repository *PostgresRepository) ListHistory(context context.Context, q postgres.DBTX, playerID string) ([]*HistoryEntry, error) {
	h := schema.PlayerHistory
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC, %s ASC`,
		historyColumns(), h.Table, h.PlayerID, h.Date, h.CreatedAt)

	rows, err := q.Query(context, query, playerID)
	if err != nil {
		return nil, dberr.Wrap(err, resourceHistory)
	}
	defer rows.Close()

	entries := make([]*HistoryEntry, 0)
	for rows.Next() {
		e := &HistoryEntry{}
		if err := rows.Scan(&e.ID, &e.PlayerID, &e.Date, &e.ChangeType, &e.Notes, &e.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, resourceHistory)
		}
		entries = append(entries, e)
	}
	return entries, dberr.Wrap(rows.Err(), resourceHistory)
}

func (repository *PostgresRepository) AddHistory(context context.Context, q postgres.DBTX, entry *HistoryEntry) error {
	h := schema.PlayerHistory
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3::date, $4, $5)
		RETURNING %s
	`,
		h.Table, h.ID, h.PlayerID, h.Date, h.ChangeType, h.Notes,
		h.CreatedAt,
	)

	err := q.QueryRow(context, query, entry.ID, entry.PlayerID, entry.Date, entry.ChangeType, entry.Notes).
		Scan(&entry.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, resourceHistory)
	}
	return nil
}

func (repository *PostgresRepository) DeleteHistory(context context.Context, q postgres.DBTX, playerID, historyID string) (bool, error) {
	h := schema.PlayerHistory
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, h.Table, h.PlayerID, h.ID)

	tag, err := q.Exec(context, query, playerID, historyID)
	if err != nil {
		return false, dberr.Wrap(err, resourceHistory)
	}
	return tag.RowsAffected() > 0, nil
}
