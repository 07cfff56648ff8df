// Copyright (c) 2026 Dugout. All rights reserved.

package migration

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToPgx5DSN(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db:5432/dugout":   "pgx5://u:p@db:5432/dugout",
		"postgresql://u:p@db:5432/dugout": "pgx5://u:p@db:5432/dugout",
		"pgx5://u:p@db:5432/dugout":       "pgx5://u:p@db:5432/dugout",
		"host=db dbname=dugout":           "host=db dbname=dugout",
	}

	for input, want := range tests {
		assert.Equal(t, want, convertToPgx5DSN(input))
	}
}

func TestDown_RejectsNonPositiveSteps(t *testing.T) {
	runner := NewRunner("postgres://unused", "./missing", slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, runner.Down(0))
	assert.Error(t, runner.Down(-2))
}
