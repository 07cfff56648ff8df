// Copyright (c) 2026 Dugout. All rights reserved.

package session

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/dugoutlab/dugout/internal/platform/apperr"
)

// SourceRapsodo is the metric source of imported Rapsodo exports.
const SourceRapsodo = "rapsodo"

const (
	rapsodoPitchColumn  = "Pitch Type"
	rapsodoUnknownPitch = "Unknown"
)

// rapsodoColumns are the numeric columns averaged per pitch type.
var rapsodoColumns = []string{
	"Velocity",
	"Total Spin",
	"VB (spin)",
	"HB (trajectory)",
	"Spin Efficiency (release)",
	"Gyro Degree (deg)",
	"Spin Direction",
	"Release Angle",
	"Horizontal Angle",
	"Release Height",
	"Release Side",
}

// rapsodoPrecision is the number of decimals kept for a column.
func rapsodoPrecision(column string) int {
	if strings.Contains(column, "Height") || strings.Contains(column, "Side") {
		return 2
	}
	return 1
}

/*
ParseRapsodo reads a tab-separated Rapsodo export and averages every known
numeric column per pitch type.

Cells that are missing or not numbers are skipped; a column with no usable
cell averages to 0. Each group also carries the pitch type as a metric.
Groups follow the order in which pitch types first appear.

Returns:
  - []*MetricGroup: One group per pitch type, source "rapsodo"
  - error: VALIDATION_ERROR when the export has no header or no data rows
*/
func ParseRapsodo(r io.Reader) ([]*MetricGroup, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperr.ValidationError("The export is empty")
	}
	if err != nil {
		return nil, apperr.ValidationError("The export is not tab-separated text").WithCause(err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}

	var (
		order []string
		rows  = make(map[string][][]string)
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperr.ValidationError("The export is not tab-separated text").WithCause(err)
		}
		if blank(record) {
			continue
		}

		pitch := cell(record, columns, rapsodoPitchColumn)
		if pitch == "" {
			pitch = rapsodoUnknownPitch
		}
		if _, seen := rows[pitch]; !seen {
			order = append(order, pitch)
		}
		rows[pitch] = append(rows[pitch], record)
	}

	if len(order) == 0 {
		return nil, apperr.ValidationError("The export has no data rows")
	}

	groups := make([]*MetricGroup, 0, len(order))
	for _, pitch := range order {
		metrics := make([]*Metric, 0, len(rapsodoColumns)+1)
		for _, column := range rapsodoColumns {
			avg := average(rows[pitch], columns, column)
			metrics = append(metrics, &Metric{
				MetricName:  column,
				MetricValue: Value(strconv.FormatFloat(avg, 'f', rapsodoPrecision(column), 64)),
				Unit:        emptyUnit(),
			})
		}
		metrics = append(metrics, &Metric{MetricName: rapsodoPitchColumn, MetricValue: Value(pitch), Unit: emptyUnit()})

		pitchType := pitch
		groups = append(groups, &MetricGroup{Source: SourceRapsodo, PitchType: &pitchType, Metrics: metrics})
	}
	return groups, nil
}

func average(records [][]string, columns map[string]int, column string) float64 {
	var (
		sum   float64
		count int
	)
	for _, record := range records {
		value, err := strconv.ParseFloat(cell(record, columns, column), 64)
		if err != nil {
			continue
		}
		sum += value
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func cell(record []string, columns map[string]int, column string) string {
	i, ok := columns[column]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func blank(record []string) bool {
	for _, value := range record {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

func emptyUnit() *string {
	unit := ""
	return &unit
}

// ReplaceSource swaps every group of source for the given groups, keeping
// groups of other sources in place ahead of them.
func ReplaceSource(existing []*MetricGroup, source string, groups []*MetricGroup) []*MetricGroup {
	merged := make([]*MetricGroup, 0, len(existing)+len(groups))
	for _, group := range existing {
		if group.Source != source {
			merged = append(merged, group)
		}
	}
	return append(merged, groups...)
}

