// Copyright (c) 2026 Dugout. All rights reserved.

package drill

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dugoutlab/dugout/internal/platform/database/schema"
	"github.com/dugoutlab/dugout/internal/platform/dberr"
	"github.com/dugoutlab/dugout/internal/platform/postgres"
	"github.com/dugoutlab/dugout/pkg/jsonlist"
)

const resource = "Drill"

// PostgresRepository implements [Repository].
type PostgresRepository struct{}

// NewPostgresRepository constructs the drill store.
func NewPostgresRepository() *PostgresRepository {
	return &PostgresRepository{}
}

// selectDrill is the column list matching [scanDrill]; the tag names are
// aggregated in a correlated subquery.
func selectDrill() string {
	d := schema.Drills
	return fmt.Sprintf(`
		SELECT d.%s, d.%s, d.%s, d.%s, d.%s, d.%s, d.%s, d.%s, d.%s,
		       COALESCE((
		           SELECT array_agg(t.%s ORDER BY t.%s)
		           FROM %s dt
		           JOIN %s t ON t.%s = dt.%s
		           WHERE dt.%s = d.%s
		       ), '{}')
		FROM %s d
	`,
		d.ID, d.Title, d.Description, d.Category, d.VideoURL, d.MediaFiles, d.History, d.CreatedAt, d.UpdatedAt,
		schema.Tags.Name, schema.Tags.Name,
		schema.DrillTags.Table,
		schema.Tags.Table, schema.Tags.ID, schema.DrillTags.TagID,
		schema.DrillTags.OwnerID, d.ID,
		d.Table,
	)
}

func scanDrill(row pgx.Row) (*Drill, error) {
	var (
		d          = &Drill{}
		mediaFiles string
		history    string
	)
	err := row.Scan(&d.ID, &d.Title, &d.Description, &d.Category, &d.VideoURL,
		&mediaFiles, &history, &d.CreatedAt, &d.UpdatedAt, &d.Tags)
	if err != nil {
		return nil, err
	}

	d.MediaFiles = jsonlist.Decode[string]([]byte(mediaFiles))
	d.History = jsonlist.Decode[json.RawMessage]([]byte(history))
	return d, nil
}

func (repository *PostgresRepository) List(context context.Context, q postgres.DBTX, filter Filter) ([]*Drill, error) {
	d := schema.Drills
	query := selectDrill() + fmt.Sprintf(`
		WHERE ($1::text = '' OR d.%s ILIKE $1 OR COALESCE(d.%s, '') ILIKE $1)
		  AND ($2::text = '' OR d.%s = $2)
		  AND ($3::text = '' OR EXISTS (
		      SELECT 1 FROM %s dt JOIN %s t ON t.%s = dt.%s
		      WHERE dt.%s = d.%s AND t.%s = $3
		  ))
		ORDER BY d.%s ASC, d.%s ASC
	`,
		d.Title, d.Description,
		d.Category,
		schema.DrillTags.Table, schema.Tags.Table, schema.Tags.ID, schema.DrillTags.TagID,
		schema.DrillTags.OwnerID, d.ID, schema.Tags.Name,
		d.Title, d.ID,
	)

	rows, err := q.Query(context, query, schema.ContainsPattern(filter.Query), filter.Category, filter.Tag)
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	defer rows.Close()

	drills := make([]*Drill, 0)
	for rows.Next() {
		drill, err := scanDrill(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resource)
		}
		drills = append(drills, drill)
	}
	return drills, dberr.Wrap(rows.Err(), resource)
}

func (repository *PostgresRepository) FindByID(context context.Context, q postgres.DBTX, id string) (*Drill, error) {
	query := selectDrill() + fmt.Sprintf(`WHERE d.%s = $1`, schema.Drills.ID)

	drill, err := scanDrill(q.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	return drill, nil
}

func (repository *PostgresRepository) Create(context context.Context, q postgres.DBTX, drill *Drill) error {
	d := schema.Drills
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s
	`,
		d.Table, d.ID, d.Title, d.Description, d.Category, d.VideoURL, d.MediaFiles, d.History,
		d.CreatedAt, d.UpdatedAt,
	)

	err := q.QueryRow(context, query,
		drill.ID, drill.Title, drill.Description, drill.Category, drill.VideoURL,
		string(jsonlist.Encode(drill.MediaFiles)), string(jsonlist.Encode(drill.History)),
	).Scan(&drill.CreatedAt, &drill.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, q postgres.DBTX, drill *Drill) error {
	d := schema.Drills
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = now()
		WHERE %s = $1
		RETURNING %s
	`,
		d.Table,
		d.Title, d.Description, d.Category, d.VideoURL, d.MediaFiles, d.History, d.UpdatedAt,
		d.ID,
		d.UpdatedAt,
	)

	err := q.QueryRow(context, query,
		drill.ID, drill.Title, drill.Description, drill.Category, drill.VideoURL,
		string(jsonlist.Encode(drill.MediaFiles)), string(jsonlist.Encode(drill.History)),
	).Scan(&drill.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resource)
	}
	return nil
}

func (repository *PostgresRepository) Touch(context context.Context, q postgres.DBTX, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = now() WHERE %s = $1 RETURNING %s`,
		schema.Drills.Table, schema.Drills.UpdatedAt, schema.Drills.ID, schema.Drills.ID)

	var touched string
	if err := q.QueryRow(context, query, id).Scan(&touched); err != nil {
		return dberr.Wrap(err, resource)
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, q postgres.DBTX, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Drills.Table, schema.Drills.ID)

	tag, err := q.Exec(context, query, id)
	if err != nil {
		return false, dberr.Wrap(err, resource)
	}
	return tag.RowsAffected() > 0, nil
}
