// Copyright (c) 2026 Dugout. All rights reserved.

package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

// Session is one practice or assessment event of a player.
type Session struct {
	ID          string         `json:"id"`
	PlayerID    string         `json:"player_id"`
	Date        time.Time      `json:"date"`
	SessionType string         `json:"session_type"`
	Notes       *string        `json:"notes"`
	Metrics     []*MetricGroup `json:"metrics"`
	Media       []*Media       `json:"media"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// MetricGroup holds the metrics recorded for one (source, pitch type) pair.
type MetricGroup struct {
	Source    string    `json:"source"`
	PitchType *string   `json:"pitch_type"`
	Metrics   []*Metric `json:"metrics"`
}

// Metric is a single named measurement.
type Metric struct {
	MetricName  string  `json:"metric_name"`
	MetricValue Value   `json:"metric_value"`
	Unit        *string `json:"unit"`
}

// MetricRow is the flat storage shape of a metric.
type MetricRow struct {
	Source      string
	PitchType   *string
	MetricName  string
	MetricValue string
	Unit        *string
}

// Media is a file or link attached to a session.
type Media struct {
	ID        string  `json:"id"`
	FileURL   string  `json:"file_url"`
	MediaType *string `json:"media_type"`
}

var errUnsupportedValue = errors.New("session: metric_value must be a string, number or boolean")

// Value is a metric value kept as text. It decodes from a JSON string,
// number or boolean and always encodes as a string.
type Value string

// UnmarshalJSON normalizes scalar JSON values to their text form.
// Numbers keep their literal spelling.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errUnsupportedValue
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Value(strconv.FormatBool(b))
	case 'n', '{', '[':
		return errUnsupportedValue
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = Value(n.String())
	}
	return nil
}

// CreateInput is the body of POST /sessions.
type CreateInput struct {
	PlayerID    string         `json:"player_id"`
	Date        string         `json:"date"`
	SessionType string         `json:"session_type"`
	Notes       *string        `json:"notes"`
	Metrics     []*MetricGroup `json:"metrics"`
	Media       []*Media       `json:"media"`
}

// UpdateInput is the body of PUT /sessions/{id}. Metrics and media are
// replaced only when their key is present.
type UpdateInput struct {
	Date        *string         `json:"date"`
	SessionType *string         `json:"session_type"`
	Notes       *string         `json:"notes"`
	Metrics     *[]*MetricGroup `json:"metrics"`
	Media       *[]*Media       `json:"media"`
}

// # Field Names

const (
	FieldPlayerID    = "player_id"
	FieldDate        = "date"
	FieldSessionType = "session_type"
	FieldMetrics     = "metrics"
	FieldMedia       = "media"
	FieldFile        = "file"
)
