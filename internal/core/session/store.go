// Copyright (c) 2026 Dugout. All rights reserved.

package session

import (
	"context"

	"github.com/dugoutlab/dugout/internal/platform/postgres"
)

// Repository defines the data access contract for sessions.
//
// Session rows are read without children; metrics and media are loaded in
// bulk for a set of sessions.
type Repository interface {
	PlayerExists(context context.Context, q postgres.DBTX, playerID string) (bool, error)

	// ListByPlayer returns the player's sessions, newest date first.
	ListByPlayer(context context.Context, q postgres.DBTX, playerID string) ([]*Session, error)
	FindByID(context context.Context, q postgres.DBTX, id string) (*Session, error)
	Create(context context.Context, q postgres.DBTX, session *Session) error
	Update(context context.Context, q postgres.DBTX, session *Session) error
	// Delete removes the session with its metrics and media.
	Delete(context context.Context, q postgres.DBTX, id string) (bool, error)

	// Metrics returns the stored rows per session id in insertion order.
	Metrics(context context.Context, q postgres.DBTX, sessionIDs []string) (map[string][]MetricRow, error)
	Media(context context.Context, q postgres.DBTX, sessionIDs []string) (map[string][]*Media, error)

	// ReplaceMetrics deletes every metric of the session and inserts rows.
	ReplaceMetrics(context context.Context, q postgres.DBTX, sessionID string, rows []MetricRow) error
	ReplaceMedia(context context.Context, q postgres.DBTX, sessionID string, media []*Media) error
}
