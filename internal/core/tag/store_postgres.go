// Copyright (c) 2026 Dugout. All rights reserved.

package tag

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dugoutlab/dugout/internal/platform/database/schema"
	"github.com/dugoutlab/dugout/internal/platform/dberr"
	"github.com/dugoutlab/dugout/internal/platform/postgres"
	"github.com/dugoutlab/dugout/pkg/uuid"
)

// PostgresRepository implements [Repository] against the tags tables.
type PostgresRepository struct{}

// NewPostgresRepository constructs the tag store.
func NewPostgresRepository() *PostgresRepository {
	return &PostgresRepository{}
}

func (repository *PostgresRepository) List(context context.Context, q postgres.DBTX) ([]*Tag, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s ORDER BY %s ASC`,
		schema.Tags.ID, schema.Tags.Name, schema.Tags.Table, schema.Tags.Name)

	rows, err := q.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "Tag")
	}
	defer rows.Close()

	tags := make([]*Tag, 0)
	for rows.Next() {
		t := &Tag{}
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, dberr.Wrap(err, "Tag")
		}
		tags = append(tags, t)
	}
	return tags, dberr.Wrap(rows.Err(), "Tag")
}

func (repository *PostgresRepository) Create(context context.Context, q postgres.DBTX, tag *Tag) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.Tags.Table, schema.Tags.ID, schema.Tags.Name)

	if _, err := q.Exec(context, query, tag.ID, tag.Name); err != nil {
		return dberr.Wrap(err, "Tag")
	}
	return nil
}

func (repository *PostgresRepository) Resolve(context context.Context, q postgres.DBTX, names []string) ([]*Tag, error) {
	if len(names) == 0 {
		return []*Tag{}, nil
	}

	// 1. Insert the names nobody has created yet
	insert := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT (%s) DO NOTHING`,
		schema.Tags.Table, schema.Tags.ID, schema.Tags.Name, schema.Tags.Name)

	batch := &pgx.Batch{}
	for _, name := range names {
		batch.Queue(insert, uuid.New(), name)
	}
	results := q.SendBatch(context, batch)
	for range names {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return nil, dberr.Wrap(err, "Tag")
		}
	}
	if err := results.Close(); err != nil {
		return nil, dberr.Wrap(err, "Tag")
	}

	// 2. Re-read, which also sees rows a concurrent writer won
	selectQuery := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = ANY($1)`,
		schema.Tags.ID, schema.Tags.Name, schema.Tags.Table, schema.Tags.Name)

	rows, err := q.Query(context, selectQuery, names)
	if err != nil {
		return nil, dberr.Wrap(err, "Tag")
	}
	defer rows.Close()

	byName := make(map[string]*Tag, len(names))
	for rows.Next() {
		t := &Tag{}
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, dberr.Wrap(err, "Tag")
		}
		byName[t.Name] = t
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Tag")
	}

	tags := make([]*Tag, 0, len(names))
	for _, name := range names {
		t, ok := byName[name]
		if !ok {
			return nil, dberr.Wrap(fmt.Errorf("tag %q vanished during resolve", name), "Tag")
		}
		tags = append(tags, t)
	}
	return tags, nil
}

func (repository *PostgresRepository) Replace(context context.Context, q postgres.DBTX, owner Owner, ownerID string, tagIDs []string) error {
	join, err := joinTable(owner)
	if err != nil {
		return dberr.Wrap(err, "Tag")
	}

	clearQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, join.Table, join.OwnerID)
	if _, err := q.Exec(context, clearQuery, ownerID); err != nil {
		return dberr.Wrap(err, "Tag")
	}

	if len(tagIDs) == 0 {
		return nil
	}

	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		SELECT $1, unnest($2::text[]::uuid[])
		ON CONFLICT DO NOTHING
	`, join.Table, join.OwnerID, join.TagID)

	if _, err := q.Exec(context, insert, ownerID, tagIDs); err != nil {
		return dberr.Wrap(err, "Tag")
	}
	return nil
}

func joinTable(owner Owner) (schema.TagJoinTable, error) {
	switch owner {
	case OwnerDrill:
		return schema.DrillTags, nil
	case OwnerConcept:
		return schema.ConceptTags, nil
	default:
		return schema.TagJoinTable{}, fmt.Errorf("tag: unknown owner %d", owner)
	}
}
