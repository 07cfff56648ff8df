// Copyright (c) 2026 Dugout. All rights reserved.

package schema

// PlayersTable represents the 'players' table.
type PlayersTable struct {
	Table          string
	ID             string
	FirstName      string
	LastName       string
	DOB            string
	Position       string
	Team           string
	HeightFt       string
	HeightIn       string
	WeightLbs      string
	Bats           string
	Throws         string
	Notes          string
	NotesUpdatedAt string
	CreatedAt      string
	UpdatedAt      string
}

// Players is the schema definition for players.
var Players = PlayersTable{
	Table:          "players",
	ID:             "id",
	FirstName:      "first_name",
	LastName:       "last_name",
	DOB:            "dob",
	Position:       "position",
	Team:           "team",
	HeightFt:       "height_ft",
	HeightIn:       "height_in",
	WeightLbs:      "weight_lbs",
	Bats:           "bats",
	Throws:         "throws",
	Notes:          "notes",
	NotesUpdatedAt: "notes_updated_at",
	CreatedAt:      "created_at",
	UpdatedAt:      "updated_at",
}

// PlayerHistoryTable represents the 'player_history' table.
type PlayerHistoryTable struct {
	Table      string
	ID         string
	PlayerID   string
	Date       string
	ChangeType string
	Notes      string
	CreatedAt  string
}

// PlayerHistory is the schema definition for player_history.
var PlayerHistory = PlayerHistoryTable{
	Table:      "player_history",
	ID:         "id",
	PlayerID:   "player_id",
	Date:       "date",
	ChangeType: "change_type",
	Notes:      "notes",
	CreatedAt:  "created_at",
}

// PlayerDrillsTable represents the 'player_drills' assignment table.
type PlayerDrillsTable struct {
	Table         string
	PlayerID      string
	DrillID       string
	Notes         string
	DatePerformed string
	SessionID     string
	CreatedAt     string
}

// PlayerDrills is the schema definition for player_drills.
var PlayerDrills = PlayerDrillsTable{
	Table:         "player_drills",
	PlayerID:      "player_id",
	DrillID:       "drill_id",
	Notes:         "notes",
	DatePerformed: "date_performed",
	SessionID:     "session_id",
	CreatedAt:     "created_at",
}
