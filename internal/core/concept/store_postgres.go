// Copyright (c) 2026 Dugout. All rights reserved.

package concept

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dugoutlab/dugout/internal/platform/database/schema"
	"github.com/dugoutlab/dugout/internal/platform/dberr"
	"github.com/dugoutlab/dugout/internal/platform/postgres"
	"github.com/dugoutlab/dugout/pkg/jsonlist"
)

const (
	resource         = "Concept"
	resourceVersion  = "Concept version"
	resourceLink     = "Concept link"
	resourceRelation = "Concept relation"
)

// PostgresRepository implements [Repository].
type PostgresRepository struct{}

// NewPostgresRepository constructs the concept store.
func NewPostgresRepository() *PostgresRepository {
	return &PostgresRepository{}
}

// conceptColumns is the projection matching [scanConcept], tag names last.
func conceptColumns() string {
	c := schema.Concepts
	return fmt.Sprintf(`
		c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
		COALESCE((
		    SELECT array_agg(t.%s ORDER BY t.%s)
		    FROM %s ct
		    JOIN %s t ON t.%s = ct.%s
		    WHERE ct.%s = c.%s
		), '{}')
	`,
		c.ID, c.Title, c.Summary, c.Body, c.Category, c.Level, c.CreatedBy, c.Archived,
		c.MediaFiles, c.History, c.CreatedAt, c.UpdatedAt,
		schema.Tags.Name, schema.Tags.Name,
		schema.ConceptTags.Table,
		schema.Tags.Table, schema.Tags.ID, schema.ConceptTags.TagID,
		schema.ConceptTags.OwnerID, c.ID,
	)
}

// scanConcept reads one row of [conceptColumns]; extra receives any trailing columns.
func scanConcept(row pgx.Row, extra ...any) (*Concept, error) {
	var (
		c          = &Concept{}
		mediaFiles string
		history    string
	)
	dest := []any{&c.ID, &c.Title, &c.Summary, &c.Body, &c.Category, &c.Level, &c.CreatedBy, &c.Archived,
		&mediaFiles, &history, &c.CreatedAt, &c.UpdatedAt, &c.Tags}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	c.MediaFiles = jsonlist.Decode[string]([]byte(mediaFiles))
	c.History = jsonlist.Decode[json.RawMessage]([]byte(history))
	return c, nil
}

func (repository *PostgresRepository) List(context context.Context, q postgres.DBTX, includeArchived bool, limit, offset int) ([]*Concept, int, error) {
	c := schema.Concepts
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER()
		FROM %s c
		WHERE ($1 OR NOT c.%s)
		ORDER BY c.%s ASC, c.%s ASC
		LIMIT $2 OFFSET $3
	`, conceptColumns(), c.Table, c.Archived, c.Title, c.ID)

	rows, err := q.Query(context, query, includeArchived, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resource)
	}
	defer rows.Close()

	concepts := make([]*Concept, 0)
	total := 0
	for rows.Next() {
		concept, err := scanConcept(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resource)
		}
		concepts = append(concepts, concept)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resource)
	}
	return concepts, total, nil
}

func (repository *PostgresRepository) Search(context context.Context, q postgres.DBTX, filter Filter) ([]*Concept, error) {
	c := schema.Concepts
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s c
		WHERE ($1::text = '' OR c.%s ILIKE $1 OR c.%s ILIKE $1 OR c.%s ILIKE $1)
		  AND ($2::text = '' OR c.%s = $2)
		  AND ($3 OR NOT c.%s)
		ORDER BY c.%s ASC, c.%s ASC
	`,
		conceptColumns(), c.Table,
		c.Title, c.Summary, c.Body,
		c.Category,
		c.Archived,
		c.Title, c.ID,
	)

	rows, err := q.Query(context, query, schema.ContainsPattern(filter.Query), filter.Category, filter.IncludeArchived)
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	defer rows.Close()

	concepts := make([]*Concept, 0)
	for rows.Next() {
		concept, err := scanConcept(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resource)
		}
		concepts = append(concepts, concept)
	}
	return concepts, dberr.Wrap(rows.Err(), resource)
}

func (repository *PostgresRepository) FindByID(context context.Context, q postgres.DBTX, id string) (*Concept, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s c WHERE c.%s = $1`,
		conceptColumns(), schema.Concepts.Table, schema.Concepts.ID)

	concept, err := scanConcept(q.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	return concept, nil
}

func (repository *PostgresRepository) Create(context context.Context, q postgres.DBTX, concept *Concept) error {
	c := schema.Concepts
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s, %s
	`,
		c.Table,
		c.ID, c.Title, c.Summary, c.Body, c.Category, c.Level, c.CreatedBy, c.Archived, c.MediaFiles, c.History,
		c.CreatedAt, c.UpdatedAt,
	)

	err := q.QueryRow(context, query,
		concept.ID, concept.Title, concept.Summary, concept.Body, concept.Category,
		concept.Level, concept.CreatedBy, concept.Archived,
		string(jsonlist.Encode(concept.MediaFiles)), string(jsonlist.Encode(concept.History)),
	).Scan(&concept.CreatedAt, &concept.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, q postgres.DBTX, concept *Concept) error {
	c := schema.Concepts
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = now()
		WHERE %s = $1
		RETURNING %s
	`,
		c.Table,
		c.Title, c.Summary, c.Body, c.Category, c.Level, c.Archived, c.MediaFiles, c.History, c.UpdatedAt,
		c.ID,
		c.UpdatedAt,
	)

	err := q.QueryRow(context, query,
		concept.ID, concept.Title, concept.Summary, concept.Body, concept.Category,
		concept.Level, concept.Archived,
		string(jsonlist.Encode(concept.MediaFiles)), string(jsonlist.Encode(concept.History)),
	).Scan(&concept.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, q postgres.DBTX, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Concepts.Table, schema.Concepts.ID)

	tag, err := q.Exec(context, query, id)
	if err != nil {
		return false, dberr.Wrap(err, resource)
	}
	return tag.RowsAffected() > 0, nil
}

func (repository *PostgresRepository) Categories(context context.Context, q postgres.DBTX) ([]string, error) {
	c := schema.Concepts
	query := fmt.Sprintf(`SELECT DISTINCT %s FROM %s WHERE %s <> '' ORDER BY %s ASC`,
		c.Category, c.Table, c.Category, c.Category)

	rows, err := q.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	return categories, nil
}

// # Versions

func (repository *PostgresRepository) AddVersion(context context.Context, q postgres.DBTX, version *Version) error {
	v := schema.ConceptVersions
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`, v.Table, v.ID, v.ConceptID, v.Body, v.UpdatedBy, v.ChangeSummary, v.UpdatedAt)

	err := q.QueryRow(context, query,
		version.ID, version.ConceptID, version.Body, version.UpdatedBy, version.ChangeSummary,
	).Scan(&version.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resourceVersion)
	}
	return nil
}

func (repository *PostgresRepository) ListVersions(context context.Context, q postgres.DBTX, conceptID string) ([]*Version, error) {
	v := schema.ConceptVersions
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC, %s DESC
	`, schema.Cols("", v.ID, v.ConceptID, v.Body, v.UpdatedBy, v.UpdatedAt, v.ChangeSummary),
		v.Table, v.ConceptID, v.UpdatedAt, v.ID)

	rows, err := q.Query(context, query, conceptID)
	if err != nil {
		return nil, dberr.Wrap(err, resourceVersion)
	}
	defer rows.Close()

	versions := make([]*Version, 0)
	for rows.Next() {
		version := &Version{}
		err := rows.Scan(&version.ID, &version.ConceptID, &version.Body, &version.UpdatedBy,
			&version.UpdatedAt, &version.ChangeSummary)
		if err != nil {
			return nil, dberr.Wrap(err, resourceVersion)
		}
		versions = append(versions, version)
	}
	return versions, dberr.Wrap(rows.Err(), resourceVersion)
}

// # Links

func (repository *PostgresRepository) ListLinks(context context.Context, q postgres.DBTX, conceptID string) ([]*Link, error) {
	l := schema.ConceptLinks
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC, %s ASC
	`, schema.Cols("", l.ConceptID, l.ObjectType, l.ObjectID, l.CreatedAt),
		l.Table, l.ConceptID, l.CreatedAt, l.ObjectID)

	rows, err := q.Query(context, query, conceptID)
	if err != nil {
		return nil, dberr.Wrap(err, resourceLink)
	}
	defer rows.Close()

	links := make([]*Link, 0)
	for rows.Next() {
		link := &Link{}
		if err := rows.Scan(&link.ConceptID, &link.ObjectType, &link.ObjectID, &link.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, resourceLink)
		}
		links = append(links, link)
	}
	return links, dberr.Wrap(rows.Err(), resourceLink)
}

func (repository *PostgresRepository) AddLink(context context.Context, q postgres.DBTX, link *Link) (bool, error) {
	l := schema.ConceptLinks
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
		RETURNING %s
	`, l.Table, l.ConceptID, l.ObjectType, l.ObjectID, l.CreatedAt)

	err := q.QueryRow(context, query, link.ConceptID, link.ObjectType, link.ObjectID).Scan(&link.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, dberr.Wrap(err, resourceLink)
	}
	return true, nil
}

func (repository *PostgresRepository) DeleteLink(context context.Context, q postgres.DBTX, conceptID, objectType, objectID string) (bool, error) {
	l := schema.ConceptLinks
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3`,
		l.Table, l.ConceptID, l.ObjectType, l.ObjectID)

	tag, err := q.Exec(context, query, conceptID, objectType, objectID)
	if err != nil {
		return false, dberr.Wrap(err, resourceLink)
	}
	return tag.RowsAffected() > 0, nil
}

// # Relations

func (repository *PostgresRepository) ListRelations(context context.Context, q postgres.DBTX, conceptID string) ([]*Relation, error) {
	r := schema.ConceptRelations
	c := schema.Concepts
	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, '%s', c.%s, c.%s
		FROM %s r JOIN %s c ON c.%s = r.%s
		WHERE r.%s = $1
		UNION ALL
		SELECT r.%s, r.%s, r.%s, '%s', c.%s, c.%s
		FROM %s r JOIN %s c ON c.%s = r.%s
		WHERE r.%s = $1
		ORDER BY 4 DESC, 6 ASC
	`,
		r.FromConceptID, r.ToConceptID, r.RelationType, DirectionOutgoing, c.ID, c.Title,
		r.Table, c.Table, c.ID, r.ToConceptID,
		r.FromConceptID,
		r.FromConceptID, r.ToConceptID, r.RelationType, DirectionIncoming, c.ID, c.Title,
		r.Table, c.Table, c.ID, r.FromConceptID,
		r.ToConceptID,
	)

	rows, err := q.Query(context, query, conceptID)
	if err != nil {
		return nil, dberr.Wrap(err, resourceRelation)
	}
	defer rows.Close()

	relations := make([]*Relation, 0)
	for rows.Next() {
		rel := &Relation{}
		err := rows.Scan(&rel.FromConceptID, &rel.ToConceptID, &rel.RelationType, &rel.Direction,
			&rel.OtherID, &rel.OtherTitle)
		if err != nil {
			return nil, dberr.Wrap(err, resourceRelation)
		}
		relations = append(relations, rel)
	}
	return relations, dberr.Wrap(rows.Err(), resourceRelation)
}

func (repository *PostgresRepository) SaveRelation(context context.Context, q postgres.DBTX, fromID, toID, relationType string) error {
	r := schema.ConceptRelations
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s
	`,
		r.Table, r.FromConceptID, r.ToConceptID, r.RelationType,
		r.FromConceptID, r.ToConceptID, r.RelationType, r.RelationType,
	)

	if _, err := q.Exec(context, query, fromID, toID, relationType); err != nil {
		return dberr.Wrap(err, resourceRelation)
	}
	return nil
}

func (repository *PostgresRepository) DeleteRelation(context context.Context, q postgres.DBTX, fromID, toID string) (bool, error) {
	r := schema.ConceptRelations
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, r.Table, r.FromConceptID, r.ToConceptID)

	tag, err := q.Exec(context, query, fromID, toID)
	if err != nil {
		return false, dberr.Wrap(err, resourceRelation)
	}
	return tag.RowsAffected() > 0, nil
}
