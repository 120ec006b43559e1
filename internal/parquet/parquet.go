// Package parquet provides data structures and functions for exporting covidash
// derived views to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/covidash/schema"
	"github.com/parquet-go/parquet-go"
)

// MeltedRow is one (date, variable, value) row of the pie chart input.
// It has the same columns as the pie download file.
type MeltedRow struct {
	// Date is the calendar date of the source record
	Date time.Time `parquet:"date,snappy"`

	// Variable is the metric name: cases, deaths or recovered
	Variable string `parquet:"variable,snappy"`

	// Value is the metric value of the source record
	Value int64 `parquet:"value,snappy"`
}

// MetricDateRow is one group of the bar chart: the sum of a metric on a date.
type MetricDateRow struct {
	Metric string    `parquet:"metric,snappy"`
	Date   time.Time `parquet:"date,snappy"`
	Count  int64     `parquet:"count,snappy"`
}

// SummaryRow holds the totals of one chart selection.
type SummaryRow struct {
	// Chart is either "pie" or "bar"
	Chart string `parquet:"chart,snappy"`

	// Country is the effective country filter of the chart (nullable)
	Country *string `parquet:"country,optional,snappy"`

	Cases     int64 `parquet:"cases,snappy"`
	Deaths    int64 `parquet:"deaths,snappy"`
	Recovered int64 `parquet:"recovered,snappy"`
}

// ContributionRow is the percentage share of one country in a metric total.
type ContributionRow struct {
	Country                string  `parquet:"country,snappy"`
	Metric                 string  `parquet:"metric,snappy"`
	PercentageContribution float64 `parquet:"percentage_contribution,snappy"`
}

// MapRow is one country value of a map. Static maps have no date.
type MapRow struct {
	// Map is the metric shown by the map
	Map string `parquet:"map,snappy"`

	// Date is the frame date of the animated map (nullable)
	Date *time.Time `parquet:"date,optional,snappy"`

	Country string `parquet:"country,snappy"`
	Value   int64  `parquet:"value,snappy"`
}

// RegionRow is one WHO region with its number of countries.
type RegionRow struct {
	Region    string `parquet:"region,snappy"`
	Countries int32  `parquet:"countries,snappy"`
}

// RecordRow is one renamed source record.
type RecordRow struct {
	Date      time.Time `parquet:"date,snappy"`
	Country   string    `parquet:"country,snappy"`
	Region    string    `parquet:"region,snappy"`
	Cases     int64     `parquet:"cases,snappy"`
	Deaths    int64     `parquet:"deaths,snappy"`
	Recovered int64     `parquet:"recovered,snappy"`
}

// WriteRows writes a slice of row structs to a Parquet file.
// The schema is derived from the struct tags of T.
func WriteRows[T any](data []T, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}

	return nil
}

// ConvertMeltedRows converts melted rows for Parquet export.
func ConvertMeltedRows(melted []schema.MeltedRow) []MeltedRow {
	result := make([]MeltedRow, len(melted))
	for i, m := range melted {
		result[i] = MeltedRow{
			Date:     m.Date,
			Variable: string(m.Metric),
			Value:    m.Value,
		}
	}
	return result
}

// ConvertBarGroups converts groups keyed by (metric, date) for Parquet export.
// Groups with an unparsable date key are skipped.
func ConvertBarGroups(groups []schema.Group) []MetricDateRow {
	result := make([]MetricDateRow, 0, len(groups))
	for _, g := range groups {
		if len(g.Keys) < 2 {
			continue
		}
		date, err := schema.ParseDate(g.Keys[1])
		if err != nil {
			continue
		}
		result = append(result, MetricDateRow{Metric: g.Keys[0], Date: date, Count: g.Value})
	}
	return result
}

// ConvertSummary converts the totals of both chart selections for Parquet export.
func ConvertSummary(views schema.DerivedViews) []SummaryRow {
	row := func(chart string, v schema.ChartView) SummaryRow {
		var country *string
		if v.Country != "" {
			c := v.Country
			country = &c
		}
		return SummaryRow{
			Chart:     chart,
			Country:   country,
			Cases:     v.Totals.Cases,
			Deaths:    v.Totals.Deaths,
			Recovered: v.Totals.Recovered,
		}
	}
	return []SummaryRow{row("pie", views.Pie), row("bar", views.Bar)}
}

// ConvertContributions converts percentage contributions for Parquet export.
func ConvertContributions(contributions []schema.Contribution, metric schema.Metric) []ContributionRow {
	result := make([]ContributionRow, len(contributions))
	for i, c := range contributions {
		result[i] = ContributionRow{
			Country:                c.Country,
			Metric:                 string(metric),
			PercentageContribution: c.Percentage,
		}
	}
	return result
}

// ConvertMaps flattens the three map inputs for Parquet export:
// deaths, then recovered, then the cases frames in date order.
func ConvertMaps(maps schema.MapViews) []MapRow {
	var result []MapRow
	for _, v := range maps.Deaths {
		result = append(result, MapRow{Map: string(schema.DeathsMetric), Country: v.Country, Value: v.Value})
	}
	for _, v := range maps.Recovered {
		result = append(result, MapRow{Map: string(schema.RecoveredMetric), Country: v.Country, Value: v.Value})
	}
	for _, f := range maps.CasesFrames {
		date := f.Date
		for _, v := range f.Values {
			result = append(result, MapRow{Map: string(schema.CasesMetric), Date: &date, Country: v.Country, Value: v.Value})
		}
	}
	return result
}

// ConvertRegions converts region summaries for Parquet export.
func ConvertRegions(regions []schema.RegionSummary) []RegionRow {
	result := make([]RegionRow, len(regions))
	for i, r := range regions {
		result[i] = RegionRow{Region: r.Region, Countries: int32(len(r.Countries))}
	}
	return result
}

// ConvertRecords converts source records for Parquet export.
func ConvertRecords(records []schema.Record) []RecordRow {
	result := make([]RecordRow, len(records))
	for i, r := range records {
		result[i] = RecordRow{
			Date:      r.Date,
			Country:   r.Country,
			Region:    r.Region,
			Cases:     r.Cases,
			Deaths:    r.Deaths,
			Recovered: r.Recovered,
		}
	}
	return result
}
