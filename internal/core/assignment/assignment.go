// Copyright (c) 2026 Dugout. All rights reserved.

package assignment

import "time"

// Assignment links one drill to one player. There is at most one row per pair.
type Assignment struct {
	PlayerID      string     `json:"player_id"`
	DrillID       string     `json:"drill_id"`
	Notes         *string    `json:"notes"`
	DatePerformed *time.Time `json:"date_performed"`
	SessionID     *string    `json:"session_id"`
	CreatedAt     time.Time  `json:"created_at"`
}

// SessionOrigin is the provenance of an assignment made from a session.
type SessionOrigin struct {
	SessionID   string    `json:"session_id"`
	SessionType string    `json:"session_type"`
	Date        time.Time `json:"date"`
}

// AssignedDrill is a drill as seen from a player's assignment list.
type AssignedDrill struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Category      *string        `json:"category"`
	AssignedDate  *time.Time     `json:"assigned_date"`
	Notes         *string        `json:"notes"`
	SessionOrigin *SessionOrigin `json:"session_origin"`
}

// AssignedPlayer is a player as seen from a drill's assignment list.
type AssignedPlayer struct {
	ID            string         `json:"id"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Position      *string        `json:"position"`
	Team          *string        `json:"team"`
	AssignedDate  *time.Time     `json:"assigned_date"`
	Notes         *string        `json:"notes"`
	SessionOrigin *SessionOrigin `json:"session_origin"`
}

// Input carries the optional query parameters of an assignment request.
type Input struct {
	SessionDate string
	SessionID   string
	Notes       string
}

// Result reports whether the pair was newly linked.
type Result struct {
	Assignment      *Assignment `json:"assignment"`
	AlreadyAssigned bool        `json:"already_assigned"`
}

const (
	FieldSessionDate = "session_date"
	FieldSessionID   = "session_id"
	FieldNotes       = "notes"
)
