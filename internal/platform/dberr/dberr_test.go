// Copyright (c) 2026 Dugout. All rights reserved.

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlab/dugout/internal/platform/apperr"
	"github.com/dugoutlab/dugout/internal/platform/dberr"
)

func TestWrap_Classification(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"no_rows", pgx.ErrNoRows, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped_no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), http.StatusNotFound, "NOT_FOUND"},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, http.StatusConflict, "CONFLICT"},
		{"foreign_key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, http.StatusConflict, "CONFLICT"},
		{"check", &pgconn.PgError{Code: pgerrcode.CheckViolation}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad_uuid", &pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad_date", &pgconn.PgError{Code: pgerrcode.InvalidDatetimeFormat}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"other_pg", &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"plain", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ae := apperr.As(dberr.Wrap(tt.err, "Player"))
			require.NotNil(t, ae)
			assert.Equal(t, tt.status, ae.HTTPStatus)
			assert.Equal(t, tt.code, ae.Code)
		})
	}
}

func TestWrap_NotFoundMessage(t *testing.T) {
	ae := apperr.As(dberr.Wrap(pgx.ErrNoRows, "Drill"))
	require.NotNil(t, ae)
	assert.Equal(t, "Drill not found", ae.Message)
}

func TestWrap_PassThrough(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "Player"))

	original := apperr.Conflict("taken")
	assert.Same(t, original, dberr.Wrap(original, "Tag"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, dberr.IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation})))
	assert.False(t, dberr.IsUniqueViolation(errors.New("boom")))
}
