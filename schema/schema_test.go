package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2020, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestPieTable(t *testing.T) {
	melted := []MeltedRow{
		{Date: day(22), Metric: CasesMetric, Value: 1},
		{Date: day(22), Metric: DeathsMetric, Value: 0},
		{Date: day(22), Metric: RecoveredMetric, Value: 0},
	}

	table := PieTable(melted)
	assert.Equal(t, []string{"date", "variable", "value"}, table.Columns)
	assert.Equal(t, [][]string{
		{"2020-01-22", "cases", "1"},
		{"2020-01-22", "deaths", "0"},
		{"2020-01-22", "recovered", "0"},
	}, table.Rows)

	// Columns must be a copy, not the shared header slice.
	table.Columns[0] = "changed"
	assert.Equal(t, "date", PieExportColumns[0])
}

func TestBarTable(t *testing.T) {
	groups := []Group{
		{Keys: []string{"cases", "2020-01-22"}, Value: 1},
		{Keys: []string{"cases", "2020-01-23"}, Value: 2},
	}
	table := BarTable(groups)
	assert.Equal(t, []string{"Metric", "date", "Count"}, table.Columns)
	assert.Equal(t, [][]string{
		{"cases", "2020-01-22", "1"},
		{"cases", "2020-01-23", "2"},
	}, table.Rows)
}

func TestBarTable_Empty(t *testing.T) {
	table := BarTable(nil)
	assert.Equal(t, BarExportColumns, table.Columns)
	assert.Empty(t, table.Rows)
}

func TestProportionsTable(t *testing.T) {
	table := ProportionsTable([]Group{
		{Keys: []string{"cases"}, Value: 3},
		{Keys: []string{"deaths"}, Value: 1},
		{Keys: []string{"recovered"}, Value: 0},
	})
	assert.Equal(t, []string{"variable", "value", "share"}, table.Columns)
	assert.Equal(t, []string{"cases", "3", "75"}, table.Rows[0])
	assert.Equal(t, []string{"deaths", "1", "25"}, table.Rows[1])
	assert.Equal(t, []string{"recovered", "0", "0"}, table.Rows[2])
}

func TestProportionsTable_ZeroTotal(t *testing.T) {
	table := ProportionsTable([]Group{{Keys: []string{"cases"}, Value: 0}})
	assert.Equal(t, []string{"cases", "0", "0"}, table.Rows[0])
}

func TestSummaryTable(t *testing.T) {
	views := DerivedViews{
		Pie: ChartView{Country: "US", Totals: Totals{Cases: 3, Deaths: 1, Recovered: 1}},
		Bar: ChartView{Totals: Totals{Cases: 4}},
	}
	table := SummaryTable(views)
	assert.Equal(t, [][]string{
		{"pie", "US", "3", "1", "1"},
		{"bar", "", "4", "0", "0"},
	}, table.Rows)
}

func TestContributionTable(t *testing.T) {
	table := ContributionTable([]Contribution{{Country: "US", Percentage: 75}, {Country: "FR", Percentage: 12.5}})
	assert.Equal(t, []string{"country", "percentage_contribution"}, table.Columns)
	assert.Equal(t, [][]string{{"US", "75"}, {"FR", "12.5"}}, table.Rows)
}

func TestMapTables(t *testing.T) {
	values := []CountryValue{{Country: "US", Value: 9}}
	assert.Equal(t, []string{"country", "deaths"}, CountryValuesTable(values, DeathsMetric).Columns)

	frames := []MapFrame{
		{Date: day(22), Values: []CountryValue{{Country: "US", Value: 1}, {Country: "FR", Value: 2}}},
		{Date: day(23), Values: []CountryValue{{Country: "US", Value: 3}}},
	}
	table := MapFramesTable(frames, CasesMetric)
	assert.Equal(t, []string{"date", "country", "cases"}, table.Columns)
	assert.Equal(t, [][]string{
		{"2020-01-22", "US", "1"},
		{"2020-01-22", "FR", "2"},
		{"2020-01-23", "US", "3"},
	}, table.Rows)
}

func TestRecordsTable(t *testing.T) {
	table := RecordsTable([]Record{{Date: day(22), Country: "US", Region: "Americas", Cases: 1}})
	assert.Equal(t, []string{"date", "country", "region", "cases", "deaths", "recovered"}, table.Columns)
	assert.Equal(t, []string{"2020-01-22", "US", "Americas", "1", "0", "0"}, table.Rows[0])
}

func TestMapsTable(t *testing.T) {
	maps := MapViews{
		Deaths:      []CountryValue{{Country: "US", Value: 4}},
		Recovered:   []CountryValue{{Country: "FR", Value: 2}},
		CasesFrames: []MapFrame{{Date: day(22), Values: []CountryValue{{Country: "US", Value: 1}}}},
	}
	table := MapsTable(maps)
	assert.Equal(t, []string{"map", "date", "country", "value"}, table.Columns)
	assert.Equal(t, [][]string{
		{"deaths", "", "US", "4"},
		{"recovered", "", "FR", "2"},
		{"cases", "2020-01-22", "US", "1"},
	}, table.Rows)

	assert.Empty(t, MapsTable(MapViews{}).Rows)
}

func TestRegionsTable(t *testing.T) {
	table := RegionsTable([]RegionSummary{
		{Region: "Americas", Countries: []string{"US", "Brazil"}},
		{Region: "Europe", Countries: []string{"France"}},
	})
	assert.Equal(t, []string{"region", "countries"}, table.Columns)
	assert.Equal(t, [][]string{{"Americas", "2"}, {"Europe", "1"}}, table.Rows)
}
