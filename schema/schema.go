// Package schema has models, enums and constants for all parts of covidash.
package schema

import "time"

// Record is one observation of the source dataset: a country on a calendar date.
// The metric columns are non-negative; ingestion rejects anything else.
type Record struct {
	Date      time.Time `json:"date"`
	Country   string    `json:"country"`
	Region    string    `json:"region"` // WHO region
	Cases     int64     `json:"cases"`
	Deaths    int64     `json:"deaths"`
	Recovered int64     `json:"recovered"`
}

// Selection holds every parameter that drives a recomputation of the derived views.
// Empty strings mean "no restriction". Start and End are inclusive calendar dates;
// an inverted range is valid and matches nothing.
type Selection struct {
	Start              time.Time `json:"start"`
	End                time.Time `json:"end"`
	Region             string    `json:"region,omitempty"`
	CountryPie         string    `json:"country_pie,omitempty"`
	CountryBar         string    `json:"country_bar,omitempty"`
	ShowContribution   bool      `json:"show_contribution"`
	ContributionMetric Metric    `json:"contribution_metric,omitempty"`
}

// MeltedRow is the narrow form of one metric of one Record.
type MeltedRow struct {
	Date   time.Time `json:"date"`
	Metric Metric    `json:"variable"`
	Value  int64     `json:"value"`
}

// Totals holds the summed metric columns of a slice.
type Totals struct {
	Cases     int64 `json:"cases"`
	Deaths    int64 `json:"deaths"`
	Recovered int64 `json:"recovered"`
}

// Group is one output row of a group-sum: the key values in key order and the summed value.
type Group struct {
	Keys  []string `json:"keys"`
	Value int64    `json:"value"`
}

// Contribution is the share of one country in a metric total, as a percentage.
type Contribution struct {
	Country    string  `json:"country"`
	Percentage float64 `json:"percentage"`
}

// CountryValue is the summed metric of one country, used as a map input.
type CountryValue struct {
	Country string `json:"country"`
	Value   int64  `json:"value"`
}

// MapFrame holds the per-country values of a single date of an animated map.
type MapFrame struct {
	Date   time.Time      `json:"date"`
	Values []CountryValue `json:"values"`
}

// Table is a flat table of strings. Column order is the order of construction.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ChartView is everything one chart needs: its filtered slice and the aggregates derived from it.
type ChartView struct {
	Country string      `json:"country,omitempty"`
	Rows    []Record    `json:"-"`
	Totals  Totals      `json:"totals"`
	Melted  []MeltedRow `json:"-"`
	Groups  []Group     `json:"groups"`
}

// MapViews holds the inputs of the three maps. Deaths and Recovered are static
// per-country sums; CasesFrames animates per-country cases over the dates of the slice.
type MapViews struct {
	Deaths      []CountryValue `json:"deaths"`
	Recovered   []CountryValue `json:"recovered"`
	CasesFrames []MapFrame     `json:"cases_frames"`
}

// DerivedViews is the result of one recomputation over a dataset and a selection.
// Contribution is nil unless the selection opts in.
type DerivedViews struct {
	Selection    Selection      `json:"selection"`
	DateRows     int            `json:"date_rows"`
	Pie          ChartView      `json:"pie"`
	Bar          ChartView      `json:"bar"`
	Maps         MapViews       `json:"maps"`
	Contribution []Contribution `json:"contribution,omitempty"`
}

// RegionSummary is one WHO region and its countries in order of first occurrence.
type RegionSummary struct {
	Region    string   `json:"region"`
	Countries []string `json:"countries"`
}
