package core

import (
	"slices"
	"strings"

	"github.com/huangsam/covidash/schema"
)

// groupSeparator joins composite group keys. It cannot occur in dates or metric names.
const groupSeparator = "\x1f"

// Totals sums the metric columns of a slice. An empty slice sums to zero.
func Totals(slice []schema.Record) schema.Totals {
	var t schema.Totals
	for _, r := range slice {
		t.Cases += r.Cases
		t.Deaths += r.Deaths
		t.Recovered += r.Recovered
	}
	return t
}

// Melt expands every record into one row per metric. Rows are metric-major:
// all cases rows in source order, then all deaths rows, then all recovered rows.
func Melt(slice []schema.Record) []schema.MeltedRow {
	out := make([]schema.MeltedRow, 0, len(schema.AllMetrics)*len(slice))
	for _, m := range schema.AllMetrics {
		for _, r := range slice {
			out = append(out, schema.MeltedRow{Date: r.Date, Metric: m, Value: r.Value(m)})
		}
	}
	return out
}

// GroupSum partitions melted rows by the given keys and sums their values.
// Groups come out in order of first occurrence. Without keys, a non-empty input
// collapses into a single group holding the grand total.
func GroupSum(melted []schema.MeltedRow, keys ...schema.GroupKey) []schema.Group {
	index := make(map[string]int)
	groups := make([]schema.Group, 0)
	for _, m := range melted {
		values := make([]string, len(keys))
		for i, k := range keys {
			values[i] = m.KeyValue(k)
		}
		id := strings.Join(values, groupSeparator)
		if i, ok := index[id]; ok {
			groups[i].Value += m.Value
			continue
		}
		index[id] = len(groups)
		groups = append(groups, schema.Group{Keys: values, Value: m.Value})
	}
	return groups
}

// CountryValues sums one metric per country, in order of first occurrence.
func CountryValues(slice []schema.Record, metric schema.Metric) []schema.CountryValue {
	index := make(map[string]int)
	out := make([]schema.CountryValue, 0)
	for _, r := range slice {
		if i, ok := index[r.Country]; ok {
			out[i].Value += r.Value(metric)
			continue
		}
		index[r.Country] = len(out)
		out = append(out, schema.CountryValue{Country: r.Country, Value: r.Value(metric)})
	}
	return out
}

// PercentageContribution computes each country's share of the metric total of the slice.
// Countries come out in order of first occurrence. When the total is zero every
// country gets 0 rather than NaN.
func PercentageContribution(slice []schema.Record, metric schema.Metric) []schema.Contribution {
	values := CountryValues(slice, metric)
	var total int64
	for _, v := range values {
		total += v.Value
	}
	out := make([]schema.Contribution, 0, len(values))
	for _, v := range values {
		pct := 0.0
		if total != 0 {
			pct = 100 * float64(v.Value) / float64(total)
		}
		out = append(out, schema.Contribution{Country: v.Country, Percentage: pct})
	}
	return out
}

// MapFrames builds one frame per date, each holding the per-country sums of that date.
// Frames are in chronological order.
func MapFrames(slice []schema.Record, metric schema.Metric) []schema.MapFrame {
	byDate := make(map[string][]schema.Record)
	var order []schema.MapFrame
	for _, r := range slice {
		key := schema.FormatDate(r.Date)
		if _, ok := byDate[key]; !ok {
			order = append(order, schema.MapFrame{Date: schema.TruncateDay(r.Date)})
		}
		byDate[key] = append(byDate[key], r)
	}
	slices.SortStableFunc(order, func(a, b schema.MapFrame) int {
		return a.Date.Compare(b.Date)
	})
	frames := make([]schema.MapFrame, 0, len(order))
	for _, f := range order {
		f.Values = CountryValues(byDate[schema.FormatDate(f.Date)], metric)
		frames = append(frames, f)
	}
	return frames
}
