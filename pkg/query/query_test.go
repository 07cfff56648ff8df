// Copyright (c) 2026 Dugout. All rights reserved.

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlab/dugout/pkg/query"
)

func TestStringSlice(t *testing.T) {
	assert.Nil(t, query.StringSlice(""))
	assert.Equal(t, []string{"hitting", "mechanics"}, query.StringSlice(" hitting, ,mechanics,hitting "))
	assert.Equal(t, []string{"Hitting", "hitting"}, query.StringSlice("Hitting,hitting"))
}

func TestBool(t *testing.T) {
	for _, v := range []string{"true", "1", "TRUE", "yes", " on "} {
		assert.True(t, query.Bool(v), v)
	}
	for _, v := range []string{"", "0", "false", "maybe"} {
		assert.False(t, query.Bool(v), v)
	}
}

func TestTrimmed(t *testing.T) {
	assert.Nil(t, query.Trimmed("   "))
	got := query.Trimmed(" pitching ")
	require.NotNil(t, got)
	assert.Equal(t, "pitching", *got)
}
