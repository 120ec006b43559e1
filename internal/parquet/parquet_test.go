package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/covidash/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2020, time.January, d, 0, 0, 0, 0, time.UTC)
}

func readRows[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err, "Should be able to open output file")
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	return rows[:n]
}

func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		model   any
		columns []string
	}{
		{"melted", new(MeltedRow), []string{"date", "variable", "value"}},
		{"bar", new(MetricDateRow), []string{"metric", "date", "count"}},
		{"summary", new(SummaryRow), []string{"chart", "country", "cases", "deaths", "recovered"}},
		{"contribution", new(ContributionRow), []string{"country", "metric", "percentage_contribution"}},
		{"maps", new(MapRow), []string{"map", "date", "country", "value"}},
		{"regions", new(RegionRow), []string{"region", "countries"}},
		{"records", new(RecordRow), []string{"date", "country", "region", "cases", "deaths", "recovered"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parquet.SchemaOf(tt.model)
			require.NotNil(t, s)
			for _, colName := range tt.columns {
				col, ok := s.Lookup(colName)
				require.True(t, ok, "Column %s should exist in schema", colName)
				require.NotNil(t, col, "Column %s should not be nil", colName)
			}
		})
	}
}

func TestWriteRows_Melted(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "pie.parquet")

	data := ConvertMeltedRows([]schema.MeltedRow{
		{Date: day(22), Metric: schema.CasesMetric, Value: 10},
		{Date: day(22), Metric: schema.DeathsMetric, Value: 1},
		{Date: day(22), Metric: schema.RecoveredMetric, Value: 3},
	})
	require.NoError(t, WriteRows(data, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	readData := readRows[MeltedRow](t, outputPath)
	require.Len(t, readData, len(data))
	for i := range data {
		assert.Equal(t, data[i].Variable, readData[i].Variable)
		assert.Equal(t, data[i].Value, readData[i].Value)
		assert.WithinDuration(t, data[i].Date, readData[i].Date, time.Nanosecond)
	}
}

func TestWriteRows_NullableFields(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "maps.parquet")

	data := ConvertMaps(schema.MapViews{
		Deaths:      []schema.CountryValue{{Country: "US", Value: 4}},
		CasesFrames: []schema.MapFrame{{Date: day(23), Values: []schema.CountryValue{{Country: "US", Value: 7}}}},
	})
	require.NoError(t, WriteRows(data, outputPath))

	readData := readRows[MapRow](t, outputPath)
	require.Len(t, readData, 2)
	assert.Nil(t, readData[0].Date, "static maps have no date")
	require.NotNil(t, readData[1].Date)
	assert.WithinDuration(t, day(23), *readData[1].Date, time.Nanosecond)
	assert.Equal(t, "cases", readData[1].Map)
}

func TestWriteRows_InvalidPath(t *testing.T) {
	err := WriteRows([]RegionRow{{Region: "Europe", Countries: 1}}, filepath.Join(t.TempDir(), "missing", "out.parquet"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestConvertBarGroups(t *testing.T) {
	rows := ConvertBarGroups([]schema.Group{
		{Keys: []string{"cases", "2020-01-22"}, Value: 5},
		{Keys: []string{"cases", "not-a-date"}, Value: 1},
		{Keys: []string{"deaths"}, Value: 2},
	})
	require.Len(t, rows, 1)
	assert.Equal(t, MetricDateRow{Metric: "cases", Date: day(22), Count: 5}, rows[0])
}

func TestConvertSummary(t *testing.T) {
	rows := ConvertSummary(schema.DerivedViews{
		Pie: schema.ChartView{Country: "US", Totals: schema.Totals{Cases: 3, Deaths: 2, Recovered: 1}},
		Bar: schema.ChartView{Totals: schema.Totals{Cases: 9}},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "pie", rows[0].Chart)
	require.NotNil(t, rows[0].Country)
	assert.Equal(t, "US", *rows[0].Country)
	assert.Equal(t, int64(2), rows[0].Deaths)
	assert.Equal(t, "bar", rows[1].Chart)
	assert.Nil(t, rows[1].Country)
}

func TestConvertContributionsAndRegions(t *testing.T) {
	contrib := ConvertContributions([]schema.Contribution{{Country: "US", Percentage: 75}}, schema.DeathsMetric)
	assert.Equal(t, []ContributionRow{{Country: "US", Metric: "deaths", PercentageContribution: 75}}, contrib)

	regions := ConvertRegions([]schema.RegionSummary{{Region: "Europe", Countries: []string{"France", "Italy"}}})
	assert.Equal(t, []RegionRow{{Region: "Europe", Countries: 2}}, regions)

	records := ConvertRecords([]schema.Record{{Date: day(22), Country: "US", Region: "Americas", Cases: 1}})
	assert.Equal(t, []RecordRow{{Date: day(22), Country: "US", Region: "Americas", Cases: 1}}, records)
}
