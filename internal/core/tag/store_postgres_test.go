// Copyright (c) 2026 Dugout. All rights reserved.

package tag_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlab/dugout/internal/core/tag"
	"github.com/dugoutlab/dugout/internal/platform/apperr"
	"github.com/dugoutlab/dugout/internal/platform/migration"
	"github.com/dugoutlab/dugout/internal/platform/postgres"
	"github.com/dugoutlab/dugout/pkg/uuid"
)

// openTx migrates the database named by DUGOUT_TEST_DATABASE_URL and returns
// a transaction that is rolled back when the test ends.
func openTx(t *testing.T) postgres.DBTX {
	t.Helper()
	dsn := os.Getenv("DUGOUT_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("DUGOUT_TEST_DATABASE_URL not set")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, migration.RunUp(dsn, "../../../data/migrations", logger))

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, dsn, logger)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })
	return tx
}

func TestPostgresRepository_ResolveIsIdempotent(t *testing.T) {
	q := openTx(t)
	repo := tag.NewPostgresRepository()
	ctx := context.Background()
	suffix := uuid.New()

	first, err := repo.Resolve(ctx, q, []string{"hips-" + suffix, "tempo-" + suffix})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "hips-"+suffix, first[0].Name)

	second, err := repo.Resolve(ctx, q, []string{"tempo-" + suffix, "hips-" + suffix})
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, first[1].ID, second[0].ID)
	assert.Equal(t, first[0].ID, second[1].ID)
}

func TestPostgresRepository_DuplicateCreateConflicts(t *testing.T) {
	q := openTx(t)
	repo := tag.NewPostgresRepository()
	ctx := context.Background()
	name := "stride-" + uuid.New()

	require.NoError(t, repo.Create(ctx, q, &tag.Tag{ID: uuid.New(), Name: name}))

	err := repo.Create(ctx, q, &tag.Tag{ID: uuid.New(), Name: name})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
}
