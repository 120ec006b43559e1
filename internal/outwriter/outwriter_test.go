package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/covidash/internal/contract"
	"github.com/huangsam/covidash/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2020, time.January, d, 0, 0, 0, 0, time.UTC)
}

func textConfig() *contract.Config {
	return &contract.Config{Output: schema.TextOut, Precision: 2, Limit: 25, Width: 120}
}

func withOutput(cfg *contract.Config, output schema.OutputMode) *contract.Config {
	clone := cfg.Clone()
	clone.Output = output
	return clone
}

// pieView is the pie view of the two-row US scenario.
func pieView() schema.ChartView {
	return schema.ChartView{
		Country: "US",
		Totals:  schema.Totals{Cases: 3, Deaths: 1, Recovered: 1},
		Melted: []schema.MeltedRow{
			{Date: day(22), Metric: schema.CasesMetric, Value: 1},
			{Date: day(23), Metric: schema.CasesMetric, Value: 2},
			{Date: day(22), Metric: schema.DeathsMetric, Value: 0},
			{Date: day(23), Metric: schema.DeathsMetric, Value: 1},
			{Date: day(22), Metric: schema.RecoveredMetric, Value: 0},
			{Date: day(23), Metric: schema.RecoveredMetric, Value: 1},
		},
		Groups: []schema.Group{
			{Keys: []string{"cases"}, Value: 3},
			{Keys: []string{"deaths"}, Value: 1},
			{Keys: []string{"recovered"}, Value: 1},
		},
	}
}

// barView is the bar view of the two-row US scenario.
func barView() schema.ChartView {
	return schema.ChartView{
		Totals: schema.Totals{Cases: 3, Deaths: 1, Recovered: 1},
		Groups: []schema.Group{
			{Keys: []string{"cases", "2020-01-22"}, Value: 1},
			{Keys: []string{"cases", "2020-01-23"}, Value: 2},
			{Keys: []string{"deaths", "2020-01-22"}, Value: 0},
			{Keys: []string{"deaths", "2020-01-23"}, Value: 1},
			{Keys: []string{"recovered", "2020-01-22"}, Value: 0},
			{Keys: []string{"recovered", "2020-01-23"}, Value: 1},
		},
	}
}

func derivedViews() schema.DerivedViews {
	return schema.DerivedViews{
		Selection: schema.Selection{Start: day(22), End: day(23), Region: "Americas", CountryPie: "US"},
		DateRows:  2,
		Pie:       pieView(),
		Bar:       barView(),
	}
}

func TestWriteSummary(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteSummary(&buf, derivedViews(), textConfig()))
		output := buf.String()
		assert.Contains(t, output, "Pie")
		assert.Contains(t, output, "US")
		assert.Contains(t, output, "All")
		assert.Contains(t, output, "2 rows in date range")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteSummary(&buf, derivedViews(), withOutput(textConfig(), schema.CSVOut)))
		assert.Equal(t, "chart,country,cases,deaths,recovered\npie,US,3,1,1\nbar,,3,1,1\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteSummary(&buf, derivedViews(), withOutput(textConfig(), schema.JSONOut)))

		var result map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, "2020-01-22", result["start"])
		assert.Equal(t, "Americas", result["region"])
		assert.Equal(t, float64(2), result["date_rows"])
		pie := result["pie"].(map[string]any)
		assert.Equal(t, "US", pie["country"])
		assert.Equal(t, float64(3), pie["totals"].(map[string]any)["cases"])
	})
}

func TestWritePie(t *testing.T) {
	t.Run("text shows proportions", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WritePie(&buf, pieView(), textConfig()))
		output := buf.String()
		assert.Contains(t, output, "Cases")
		assert.Contains(t, output, "60.00%")
		assert.Contains(t, output, "20.00%")
	})

	t.Run("csv matches the download file", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WritePie(&buf, pieView(), withOutput(textConfig(), schema.CSVOut)))
		expected := "date,variable,value\n" +
			"2020-01-22,cases,1\n2020-01-23,cases,2\n" +
			"2020-01-22,deaths,0\n2020-01-23,deaths,1\n" +
			"2020-01-22,recovered,0\n2020-01-23,recovered,1\n"
		assert.Equal(t, expected, buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WritePie(&buf, pieView(), withOutput(textConfig(), schema.JSONOut)))

		var result struct {
			Country     string `json:"country"`
			Proportions []struct {
				Variable string  `json:"variable"`
				Label    string  `json:"label"`
				Value    int64   `json:"value"`
				Share    float64 `json:"share"`
			} `json:"proportions"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, "US", result.Country)
		require.Len(t, result.Proportions, 3)
		assert.Equal(t, "Cases", result.Proportions[0].Label)
		assert.InDelta(t, 60.0, result.Proportions[0].Share, 1e-9)
	})
}

func TestWriteBar(t *testing.T) {
	t.Run("text honors limit", func(t *testing.T) {
		cfg := textConfig()
		cfg.Limit = 2
		var buf bytes.Buffer
		require.NoError(t, WriteBar(&buf, barView(), cfg))
		output := buf.String()
		assert.Contains(t, output, "2020-01-23")
		assert.NotContains(t, output, "Deaths")
		assert.Contains(t, output, "Showing 2 of 6 bars")
	})

	t.Run("csv matches the download file", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteBar(&buf, barView(), withOutput(textConfig(), schema.CSVOut)))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 7)
		assert.Equal(t, "Metric,date,Count", lines[0])
		assert.Equal(t, "cases,2020-01-23,2", lines[2])
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteBar(&buf, barView(), withOutput(textConfig(), schema.JSONOut)))
		assert.Contains(t, buf.String(), `"metric": "recovered"`)
		assert.NotContains(t, buf.String(), `"country"`)
	})
}

func TestWriteMaps(t *testing.T) {
	maps := schema.MapViews{
		Deaths:    []schema.CountryValue{{Country: "US", Value: 1}, {Country: "France", Value: 3}},
		Recovered: []schema.CountryValue{{Country: "US", Value: 2}},
		CasesFrames: []schema.MapFrame{
			{Date: day(22), Values: []schema.CountryValue{{Country: "US", Value: 1}}},
			{Date: day(23), Values: []schema.CountryValue{{Country: "US", Value: 2}, {Country: "Brazil", Value: 5}}},
		},
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteMaps(&buf, maps, textConfig()))
		output := buf.String()
		assert.Contains(t, output, "Deaths by country")
		assert.Contains(t, output, "Cases by country on 2020-01-23")
		assert.Contains(t, output, "Cases map has 2 frames from 2020-01-22 to 2020-01-23")
		assert.Less(t, strings.Index(output, "France"), strings.Index(output, "Recovered by country"))
	})

	t.Run("text without frames", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteMaps(&buf, schema.MapViews{}, textConfig()))
		assert.Contains(t, buf.String(), "No case frames in date range")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteMaps(&buf, maps, withOutput(textConfig(), schema.CSVOut)))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		assert.Equal(t, "map,date,country,value", lines[0])
		assert.Equal(t, "deaths,,US,1", lines[1])
		assert.Equal(t, "cases,2020-01-23,Brazil,5", lines[len(lines)-1])
	})

	t.Run("json uses calendar dates", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteMaps(&buf, schema.MapViews{}, withOutput(textConfig(), schema.JSONOut)))
		assert.JSONEq(t, `{"deaths":[],"recovered":[],"cases_frames":[]}`, buf.String())

		buf.Reset()
		require.NoError(t, WriteMaps(&buf, maps, withOutput(textConfig(), schema.JSONOut)))
		assert.Contains(t, buf.String(), `"date": "2020-01-22"`)
	})
}

func TestSortedCountryValues(t *testing.T) {
	values := []schema.CountryValue{{Country: "A", Value: 1}, {Country: "B", Value: 5}, {Country: "C", Value: 1}}
	sorted := sortedCountryValues(values)
	assert.Equal(t, []string{"B", "A", "C"}, []string{sorted[0].Country, sorted[1].Country, sorted[2].Country})
	assert.Equal(t, "A", values[0].Country, "input is not reordered")
}

func TestWriteContribution(t *testing.T) {
	contributions := []schema.Contribution{
		{Country: "US", Percentage: 100.0 / 3},
		{Country: "France", Percentage: 200.0 / 3},
	}

	t.Run("text sorts by share", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteContribution(&buf, contributions, schema.CasesMetric, textConfig()))
		output := buf.String()
		assert.Contains(t, output, "Percentage contribution of Cases")
		assert.Contains(t, output, "66.67%")
		assert.Contains(t, output, "33.33%")
		assert.Less(t, strings.Index(output, "France"), strings.Index(output, "US"))
	})

	t.Run("csv keeps full precision", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteContribution(&buf, contributions, schema.CasesMetric, withOutput(textConfig(), schema.CSVOut)))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		assert.Equal(t, "country,percentage_contribution", lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "US,33.333333"))
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteContribution(&buf, nil, schema.DeathsMetric, withOutput(textConfig(), schema.JSONOut)))
		assert.JSONEq(t, `{"metric":"deaths","contributions":[]}`, buf.String())
	})
}

func TestWriteRegions(t *testing.T) {
	regions := []schema.RegionSummary{
		{Region: "Americas", Countries: []string{"US", "Brazil"}},
		{Region: "Europe", Countries: []string{"France"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRegions(&buf, regions, textConfig()))
	assert.Contains(t, buf.String(), "US, Brazil")
	assert.Contains(t, buf.String(), "Showing 2 regions")

	buf.Reset()
	require.NoError(t, WriteRegions(&buf, regions, withOutput(textConfig(), schema.CSVOut)))
	assert.Equal(t, "region,countries\nAmericas,2\nEurope,1\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteRegions(&buf, nil, withOutput(textConfig(), schema.JSONOut)))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteRecords(t *testing.T) {
	records := []schema.Record{
		{Date: day(22), Country: "US", Region: "Americas", Cases: 1234},
		{Date: day(23), Country: "US", Region: "Americas", Cases: 2, Deaths: 1, Recovered: 1},
	}

	cfg := textConfig()
	cfg.Limit = 1
	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, records, cfg))
	assert.Contains(t, buf.String(), "1,234")
	assert.Contains(t, buf.String(), "Showing 1 of 2 records")

	buf.Reset()
	require.NoError(t, WriteRecords(&buf, records, withOutput(cfg, schema.CSVOut)))
	assert.Equal(t, "date,country,region,cases,deaths,recovered\n2020-01-22,US,Americas,1234,0,0\n2020-01-23,US,Americas,2,1,1\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteRecords(&buf, records, withOutput(cfg, schema.JSONOut)))
	assert.Contains(t, buf.String(), `"date": "2020-01-23"`)
}

func TestPrintToFile(t *testing.T) {
	dir := t.TempDir()

	csvFile := filepath.Join(dir, "pie.csv")
	cfg := withOutput(textConfig(), schema.CSVOut)
	cfg.OutputFile = csvFile
	require.NoError(t, NewOutWriter().WritePie(pieView(), cfg))
	content, err := os.ReadFile(csvFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "date,variable,value\n"))

	parquetFile := filepath.Join(dir, "bar.parquet")
	cfg = withOutput(textConfig(), schema.ParquetOut)
	cfg.OutputFile = parquetFile
	require.NoError(t, NewOutWriter().WriteBar(barView(), cfg))
	info, err := os.Stat(parquetFile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestLogDatasetHeader(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{InputPath: "/data/covid_19_clean_complete.csv", Source: schema.FileSource}
	LogDatasetHeader(&buf, cfg, schema.Selection{Start: day(22), End: day(23)})
	assert.Equal(t, "🦠 Dataset: covid_19_clean_complete.csv (Region: all regions)\n📅 Range: 2020-01-22 → 2020-01-23\n", buf.String())

	buf.Reset()
	cfg = &contract.Config{Source: schema.StoreSource, StoreBackend: schema.SQLiteBackend}
	LogDatasetHeader(&buf, cfg, schema.Selection{Region: "Europe"})
	assert.Contains(t, buf.String(), "store (sqlite)")
	assert.Contains(t, buf.String(), "Region: Europe")
}
