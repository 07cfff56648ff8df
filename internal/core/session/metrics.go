// Copyright (c) 2026 Dugout. All rights reserved.

package session

// groupKey identifies a metric group. A nil pitch type is distinct from "".
type groupKey struct {
	source    string
	pitchType string
	hasPitch  bool
}

func keyOf(source string, pitchType *string) groupKey {
	if pitchType == nil {
		return groupKey{source: source}
	}
	return groupKey{source: source, pitchType: *pitchType, hasPitch: true}
}

// Flatten turns grouped metrics into storage rows, group by group, keeping
// the metric order inside each group.
func Flatten(groups []*MetricGroup) []MetricRow {
	rows := make([]MetricRow, 0)
	for _, group := range groups {
		if group == nil {
			continue
		}
		for _, metric := range group.Metrics {
			if metric == nil {
				continue
			}
			rows = append(rows, MetricRow{
				Source:      group.Source,
				PitchType:   group.PitchType,
				MetricName:  metric.MetricName,
				MetricValue: string(metric.MetricValue),
				Unit:        metric.Unit,
			})
		}
	}
	return rows
}

// Group rebuilds metric groups from storage rows. Groups appear in the
// order their first row appears.
func Group(rows []MetricRow) []*MetricGroup {
	groups := make([]*MetricGroup, 0)
	index := make(map[groupKey]*MetricGroup)

	for _, row := range rows {
		key := keyOf(row.Source, row.PitchType)
		group, ok := index[key]
		if !ok {
			group = &MetricGroup{Source: row.Source, PitchType: row.PitchType, Metrics: make([]*Metric, 0)}
			index[key] = group
			groups = append(groups, group)
		}
		group.Metrics = append(group.Metrics, &Metric{
			MetricName:  row.MetricName,
			MetricValue: Value(row.MetricValue),
			Unit:        row.Unit,
		})
	}
	return groups
}
