// Copyright (c) 2026 Dugout. All rights reserved.

package session

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dugoutlab/dugout/internal/platform/database/schema"
	"github.com/dugoutlab/dugout/internal/platform/dberr"
	"github.com/dugoutlab/dugout/internal/platform/postgres"
	"github.com/dugoutlab/dugout/pkg/uuid"
)

const (
	resource       = "Session"
	resourceMetric = "Session metric"
	resourceMedia  = "Session media"
)

// PostgresRepository implements [Repository].
type PostgresRepository struct{}

// NewPostgresRepository constructs the session store.
func NewPostgresRepository() *PostgresRepository {
	return &PostgresRepository{}
}

func sessionColumns() string {
	s := schema.Sessions
	return schema.Cols("", s.ID, s.PlayerID, s.Date, s.SessionType, s.Notes, s.CreatedAt, s.UpdatedAt)
}

func scanSession(row pgx.Row) (*Session, error) {
	s := &Session{}
	err := row.Scan(&s.ID, &s.PlayerID, &s.Date, &s.SessionType, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (repository *PostgresRepository) PlayerExists(context context.Context, q postgres.DBTX, playerID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, schema.Players.Table, schema.Players.ID)

	var exists bool
	if err := q.QueryRow(context, query, playerID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "Player")
	}
	return exists, nil
}

func (repository *PostgresRepository) ListByPlayer(context context.Context, q postgres.DBTX, playerID string) ([]*Session, error) {
	s := schema.Sessions
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC, %s DESC`,
		sessionColumns(), s.Table, s.PlayerID, s.Date, s.CreatedAt)

	rows, err := q.Query(context, query, playerID)
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	defer rows.Close()

	sessions := make([]*Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resource)
		}
		sessions = append(sessions, session)
	}
	return sessions, dberr.Wrap(rows.Err(), resource)
}

func (repository *PostgresRepository) FindByID(context context.Context, q postgres.DBTX, id string) (*Session, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, sessionColumns(), schema.Sessions.Table, schema.Sessions.ID)

	session, err := scanSession(q.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	return session, nil
}

func (repository *PostgresRepository) Create(context context.Context, q postgres.DBTX, session *Session) error {
	s := schema.Sessions
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s
	`, s.Table, s.ID, s.PlayerID, s.Date, s.SessionType, s.Notes, s.CreatedAt, s.UpdatedAt)

	err := q.QueryRow(context, query, session.ID, session.PlayerID, session.Date, session.SessionType, session.Notes).
		Scan(&session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, q postgres.DBTX, session *Session) error {
	s := schema.Sessions
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = now()
		WHERE %s = $1
		RETURNING %s
	`, s.Table, s.Date, s.SessionType, s.Notes, s.UpdatedAt, s.ID, s.UpdatedAt)

	err := q.QueryRow(context, query, session.ID, session.Date, session.SessionType, session.Notes).
		Scan(&session.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, q postgres.DBTX, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Sessions.Table, schema.Sessions.ID)

	tag, err := q.Exec(context, query, id)
	if err != nil {
		return false, dberr.Wrap(err, resource)
	}
	return tag.RowsAffected() > 0, nil
}

// # Children

func (repository *PostgresRepository) Metrics(context context.Context, q postgres.DBTX, sessionIDs []string) (map[string][]MetricRow, error) {
	m := schema.SessionMetrics
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = ANY($1::text[]::uuid[])
		ORDER BY %s, %s ASC
	`, schema.Cols("", m.SessionID, m.Source, m.PitchType, m.MetricName, m.MetricValue, m.Unit),
		m.Table, m.SessionID, m.SessionID, m.Position)

	rows, err := q.Query(context, query, sessionIDs)
	if err != nil {
		return nil, dberr.Wrap(err, resourceMetric)
	}
	defer rows.Close()

	bySession := make(map[string][]MetricRow, len(sessionIDs))
	for rows.Next() {
		var (
			sessionID string
			row       MetricRow
		)
		if err := rows.Scan(&sessionID, &row.Source, &row.PitchType, &row.MetricName, &row.MetricValue, &row.Unit); err != nil {
			return nil, dberr.Wrap(err, resourceMetric)
		}
		bySession[sessionID] = append(bySession[sessionID], row)
	}
	return bySession, dberr.Wrap(rows.Err(), resourceMetric)
}

func (repository *PostgresRepository) Media(context context.Context, q postgres.DBTX, sessionIDs []string) (map[string][]*Media, error) {
	m := schema.SessionMedia
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = ANY($1::text[]::uuid[])
		ORDER BY %s, %s ASC
	`, schema.Cols("", m.SessionID, m.ID, m.FileURL, m.MediaType),
		m.Table, m.SessionID, m.SessionID, m.Position)

	rows, err := q.Query(context, query, sessionIDs)
	if err != nil {
		return nil, dberr.Wrap(err, resourceMedia)
	}
	defer rows.Close()

	bySession := make(map[string][]*Media, len(sessionIDs))
	for rows.Next() {
		var sessionID string
		media := &Media{}
		if err := rows.Scan(&sessionID, &media.ID, &media.FileURL, &media.MediaType); err != nil {
			return nil, dberr.Wrap(err, resourceMedia)
		}
		bySession[sessionID] = append(bySession[sessionID], media)
	}
	return bySession, dberr.Wrap(rows.Err(), resourceMedia)
}

func (repository *PostgresRepository) ReplaceMetrics(context context.Context, q postgres.DBTX, sessionID string, rows []MetricRow) error {
	m := schema.SessionMetrics

	clearQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, m.Table, m.SessionID)
	if _, err := q.Exec(context, clearQuery, sessionID); err != nil {
		return dberr.Wrap(err, resourceMetric)
	}
	if len(rows) == 0 {
		return nil
	}

	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, m.Table, m.ID, m.SessionID, m.Position, m.Source, m.PitchType, m.MetricName, m.MetricValue, m.Unit)

	batch := &pgx.Batch{}
	for i, row := range rows {
		batch.Queue(insert, uuid.New(), sessionID, i, row.Source, row.PitchType, row.MetricName, row.MetricValue, row.Unit)
	}
	return execBatch(context, q, batch, resourceMetric)
}

func (repository *PostgresRepository) ReplaceMedia(context context.Context, q postgres.DBTX, sessionID string, media []*Media) error {
	m := schema.SessionMedia

	clearQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, m.Table, m.SessionID)
	if _, err := q.Exec(context, clearQuery, sessionID); err != nil {
		return dberr.Wrap(err, resourceMedia)
	}
	if len(media) == 0 {
		return nil
	}

	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
	`, m.Table, m.ID, m.SessionID, m.Position, m.FileURL, m.MediaType)

	batch := &pgx.Batch{}
	for i, item := range media {
		item.ID = uuid.New()
		batch.Queue(insert, item.ID, sessionID, i, item.FileURL, item.MediaType)
	}
	return execBatch(context, q, batch, resourceMedia)
}

// execBatch sends batch and checks every queued statement.
func execBatch(context context.Context, q postgres.DBTX, batch *pgx.Batch, resource string) error {
	results := q.SendBatch(context, batch)
	for range batch.Len() {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return dberr.Wrap(err, resource)
		}
	}
	return dberr.Wrap(results.Close(), resource)
}
