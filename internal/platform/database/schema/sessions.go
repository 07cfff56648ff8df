// Copyright (c) 2026 Dugout. All rights reserved.

package schema

// SessionsTable represents the 'sessions' table.
type SessionsTable struct {
	Table       string
	ID          string
	PlayerID    string
	Date        string
	SessionType string
	Notes       string
	CreatedAt   string
	UpdatedAt   string
}

// Sessions is the schema definition for sessions.
var Sessions = SessionsTable{
	Table:       "sessions",
	ID:          "id",
	PlayerID:    "player_id",
	Date:        "date",
	SessionType: "session_type",
	Notes:       "notes",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

// SessionMetricsTable represents the flat 'session_metrics' table.
type SessionMetricsTable struct {
	Table       string
	ID          string
	SessionID   string
	Position    string
	Source      string
	PitchType   string
	MetricName  string
	MetricValue string
	Unit        string
}

// SessionMetrics is the schema definition for session_metrics.
var SessionMetrics = SessionMetricsTable{
	Table:       "session_metrics",
	ID:          "id",
	SessionID:   "session_id",
	Position:    "position",
	Source:      "source",
	PitchType:   "pitch_type",
	MetricName:  "metric_name",
	MetricValue: "metric_value",
	Unit:        "unit",
}

// SessionMediaTable represents the 'session_media' table.
type SessionMediaTable struct {
	Table     string
	ID        string
	SessionID string
	Position  string
	FileURL   string
	MediaType string
}

// SessionMedia is the schema definition for session_media.
var SessionMedia = SessionMediaTable{
	Table:     "session_media",
	ID:        "id",
	SessionID: "session_id",
	Position:  "position",
	FileURL:   "file_url",
	MediaType: "media_type",
}
