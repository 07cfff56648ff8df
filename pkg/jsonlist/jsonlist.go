// Copyright (c) 2026 Dugout. All rights reserved.

/*
Package jsonlist encodes and decodes the ordered list columns stored on
drills and concepts ("media_files", "history").

The pair is lenient by contract: Encode never produces null, and Decode never
fails. Legacy rows written by older clients (empty strings, "null", truncated
JSON) read back as an empty list.
*/
package jsonlist

import (
	"bytes"
	"encoding/json"
)

var emptyList = []byte("[]")

// Encode serializes items as a JSON array. Nil and empty input both yield "[]".
func Encode[T any](items []T) []byte {
	if len(items) == 0 {
		return append([]byte(nil), emptyList...)
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return append([]byte(nil), emptyList...)
	}
	return raw
}

// Decode parses a JSON array. Missing, null or malformed input yields an
// empty, non-nil slice.
func Decode[T any](raw []byte) []T {
	items := make([]T, 0)

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return items
	}

	if err := json.Unmarshal(trimmed, &items); err != nil || items == nil {
		return make([]T, 0)
	}
	return items
}

// Normalize re-encodes raw input so only a valid array reaches storage.
func Normalize[T any](raw []byte) []byte {
	return Encode(Decode[T](raw))
}
