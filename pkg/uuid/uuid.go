// Copyright (c) 2026 Dugout. All rights reserved.

/*
Package uuid mints Dugout's identifiers.

Players, sessions, drills, concepts and uploaded files all get a Version 7
UUID. IDs minted later sort later, so a player's newest sessions carry the
highest keys and uploads in the media directory list in arrival order.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
