// Copyright (c) 2026 Dugout. All rights reserved.

package jsonlist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dugoutlab/dugout/pkg/jsonlist"
)

type change struct {
	Date    string `json:"date"`
	Summary string `json:"summary"`
}

func TestEncode_EmptyIsArray(t *testing.T) {
	assert.Equal(t, "[]", string(jsonlist.Encode[string](nil)))
	assert.Equal(t, "[]", string(jsonlist.Encode([]string{})))
}

func TestRoundTrip_PreservesOrder(t *testing.T) {
	media := []string{"a", "b"}
	assert.Equal(t, media, jsonlist.Decode[string](jsonlist.Encode(media)))

	assert.Equal(t, []string{}, jsonlist.Decode[string](jsonlist.Encode([]string{})))

	history := []change{{"2024-03-01", "created"}, {"2024-03-09", "added cue words"}}
	assert.Equal(t, history, jsonlist.Decode[change](jsonlist.Encode(history)))
}

func TestDecode_Lenient(t *testing.T) {
	tests := map[string][]byte{
		"nil":       nil,
		"empty":     []byte(""),
		"blank":     []byte("   "),
		"null":      []byte("null"),
		"object":    []byte(`{"a":1}`),
		"truncated": []byte(`["a", "b"`),
		"wrong_type": []byte(`[1, 2]`),
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			got := jsonlist.Decode[string](raw)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "[]", string(jsonlist.Normalize[string]([]byte("garbage"))))
	assert.Equal(t, `["x"]`, string(jsonlist.Normalize[string]([]byte(` ["x"] `))))
}
