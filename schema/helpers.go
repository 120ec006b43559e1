package schema

import (
	"strings"
	"time"
)

// Value returns the column of the record that matches the metric.
// An unknown metric reads as zero.
func (r Record) Value(m Metric) int64 {
	switch m {
	case CasesMetric:
		return r.Cases
	case DeathsMetric:
		return r.Deaths
	case RecoveredMetric:
		return r.Recovered
	default:
		return 0
	}
}

// Value returns the total that matches the metric.
func (t Totals) Value(m Metric) int64 {
	switch m {
	case CasesMetric:
		return t.Cases
	case DeathsMetric:
		return t.Deaths
	case RecoveredMetric:
		return t.Recovered
	default:
		return 0
	}
}

// KeyValue returns the value of the melted row for a group key.
func (m MeltedRow) KeyValue(key GroupKey) string {
	switch key {
	case MetricKey:
		return string(m.Metric)
	case DateKey:
		return FormatDate(m.Date)
	default:
		return ""
	}
}

// Label returns the display label of a metric ("Cases", "Deaths", "Recovered").
func (m Metric) Label() string {
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

// ParseContributionType resolves a contribution type label case-insensitively.
// Metric names ("cases", "recovered") are accepted as aliases.
func ParseContributionType(s string) (ContributionType, bool) {
	needle := strings.TrimSpace(s)
	for _, ct := range AllContributionTypes {
		if strings.EqualFold(string(ct), needle) || strings.EqualFold(string(ValidContributionTypes[ct]), needle) {
			return ct, true
		}
	}
	return "", false
}

// FormatDate formats a calendar date with DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a DateLayout string into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

// TruncateDay strips the clock part of t, keeping its calendar date in UTC.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
