// Copyright (c) 2026 Dugout. All rights reserved.

package player

import (
	"time"

	"github.com/dugoutlab/dugout/internal/core/assignment"
)

// # Batting & Throwing Sides

const (
	SideRight  = "R"
	SideLeft   = "L"
	SideSwitch = "S"
)

// # Domain Models

// Player is a tracked athlete profile.
type Player struct {
	ID             string     `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	DOB            *string    `json:"dob"`
	Position       *string    `json:"position"`
	Team           *string    `json:"team"`
	HeightFt       *int       `json:"height_ft"`
	HeightIn       *int       `json:"height_in"`
	WeightLbs      *int       `json:"weight_lbs"`
	Bats           *string    `json:"bats"`
	Throws         *string    `json:"throws"`
	Notes          *string    `json:"notes"`
	NotesUpdatedAt *time.Time `json:"notes_updated_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// HistoryEntry records a development milestone, such as a position change.
type HistoryEntry struct {
	ID         string    `json:"id"`
	PlayerID   string    `json:"player_id"`
	Date       string    `json:"date"`
	ChangeType string    `json:"change_type"`
	Notes      *string   `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

// Detail is the read model of a single player: the profile, its timeline
// and the drills currently assigned.
type Detail struct {
	*Player
	History []*HistoryEntry             `json:"history"`
	Drills  []*assignment.AssignedDrill `json:"drills"`
}

// Assemble builds a [Detail]. Nil collections render as empty arrays.
func Assemble(player *Player, history []*HistoryEntry, drills []*assignment.AssignedDrill) *Detail {
	if history == nil {
		history = []*HistoryEntry{}
	}
	if drills == nil {
		drills = []*assignment.AssignedDrill{}
	}
	return &Detail{Player: player, History: history, Drills: drills}
}

// # Request Contracts

// HistoryInput is a history entry as submitted by clients.
type HistoryInput struct {
	ChangeType string  `json:"change_type"`
	Notes      *string `json:"notes"`
	Date       string  `json:"date"`
}

// CreateInput is the body of POST /players.
type CreateInput struct {
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	DOB       *string        `json:"dob"`
	Position  *string        `json:"position"`
	Team      *string        `json:"team"`
	HeightFt  *int           `json:"height_ft"`
	HeightIn  *int           `json:"height_in"`
	WeightLbs *int           `json:"weight_lbs"`
	Bats      *string        `json:"bats"`
	Throws    *string        `json:"throws"`
	Notes     *string        `json:"notes"`
	History   []HistoryInput `json:"history"`
}

// UpdateInput is the body of PUT /players/{id}. Absent fields are kept.
type UpdateInput struct {
	FirstName      *string    `json:"first_name"`
	LastName       *string    `json:"last_name"`
	DOB            *string    `json:"dob"`
	Position       *string    `json:"position"`
	Team           *string    `json:"team"`
	HeightFt       *int       `json:"height_ft"`
	HeightIn       *int       `json:"height_in"`
	WeightLbs      *int       `json:"weight_lbs"`
	Bats           *string    `json:"bats"`
	Throws         *string    `json:"throws"`
	Notes          *string    `json:"notes"`
	NotesUpdatedAt *time.Time `json:"notes_updated_at"`
}

// # Field Names

const (
	FieldFirstName  = "first_name"
	FieldLastName   = "last_name"
	FieldDOB        = "dob"
	FieldHeightFt   = "height_ft"
	FieldHeightIn   = "height_in"
	FieldWeightLbs  = "weight_lbs"
	FieldBats       = "bats"
	FieldThrows     = "throws"
	FieldChangeType = "change_type"
	FieldDate       = "date"
	FieldHistory    = "history"
)
