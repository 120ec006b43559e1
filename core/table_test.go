package core

import (
	"testing"

	"github.com/huangsam/covidash/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCSVBytes_PieExport(t *testing.T) {
	table := schema.PieTable(Melt(scenarioDataset()))
	data, err := ToCSVBytes(table)
	require.NoError(t, err)

	expected := "date,variable,value\n" +
		"2020-01-22,cases,1\n" +
		"2020-01-23,cases,2\n" +
		"2020-01-22,deaths,0\n" +
		"2020-01-23,deaths,1\n" +
		"2020-01-22,recovered,0\n" +
		"2020-01-23,recovered,1\n"
	assert.Equal(t, expected, string(data))
}

func TestToCSVBytes_BarExport(t *testing.T) {
	groups := GroupSum(Melt(scenarioDataset()), schema.MetricKey, schema.DateKey)
	data, err := ToCSVBytes(schema.BarTable(groups))
	require.NoError(t, err)

	expected := "Metric,date,Count\n" +
		"cases,2020-01-22,1\n" +
		"cases,2020-01-23,2\n" +
		"deaths,2020-01-22,0\n" +
		"deaths,2020-01-23,1\n" +
		"recovered,2020-01-22,0\n" +
		"recovered,2020-01-23,1\n"
	assert.Equal(t, expected, string(data))
}

func TestToCSVBytes_HeaderOnly(t *testing.T) {
	data, err := ToCSVBytes(schema.PieTable(nil))
	require.NoError(t, err)
	assert.Equal(t, "date,variable,value\n", string(data))
}

func TestToCSVBytes_QuotesAndUnicode(t *testing.T) {
	table := schema.Table{
		Columns: []string{"country", "note"},
		Rows: [][]string{
			{"Côte d'Ivoire", "plain"},
			{"Korea, South", `said "hi"`},
			{"Türkiye", "line\nbreak"},
		},
	}
	data, err := ToCSVBytes(table)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Korea, South","said ""hi"""`)
	assert.Contains(t, string(data), "Côte d'Ivoire")
}

func TestCSVRoundTrip(t *testing.T) {
	tables := []schema.Table{
		schema.PieTable(Melt(multiRegionDataset())),
		schema.BarTable(GroupSum(Melt(multiRegionDataset()), schema.MetricKey, schema.DateKey)),
		schema.ContributionTable(PercentageContribution(multiRegionDataset(), schema.CasesMetric)),
		schema.RecordsTable(multiRegionDataset()),
		schema.PieTable(nil),
		{
			Columns: []string{"a", "b"},
			Rows:    [][]string{{"x,y", `"q"`}, {"", ""}, {" lead", "tail "}},
		},
	}

	for _, table := range tables {
		data, err := ToCSVBytes(table)
		require.NoError(t, err)

		parsed, err := ParseCSVTable(data)
		require.NoError(t, err)
		assert.Equal(t, table.Columns, parsed.Columns)
		assert.Equal(t, table.Rows, parsed.Rows)
	}
}

func TestCSVRoundTrip_SingleEmptyField(t *testing.T) {
	table := schema.Table{
		Columns: []string{"country"},
		Rows:    [][]string{{"US"}, {""}, {"Brazil"}},
	}
	data, err := ToCSVBytes(table)
	require.NoError(t, err)
	assert.Equal(t, "country\nUS\n\"\"\nBrazil\n", string(data))

	parsed, err := ParseCSVTable(data)
	require.NoError(t, err)
	assert.Equal(t, table.Rows, parsed.Rows)
}

func TestParseCSVTable_CRLFInField(t *testing.T) {
	data, err := ToCSVBytes(schema.Table{Columns: []string{"a", "b"}, Rows: [][]string{{"x\r\ny", "z"}}})
	require.NoError(t, err)

	parsed, err := ParseCSVTable(data)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"x\ny", "z"}}, parsed.Rows)
}

func TestParseCSVTable_Errors(t *testing.T) {
	_, err := ParseCSVTable(nil)
	assert.Error(t, err)

	_, err = ParseCSVTable([]byte("a,b\n1,2,3\n"))
	assert.Error(t, err)
}
