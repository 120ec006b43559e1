package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/covidash/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

const sampleCSV = `Date,Country/Region,Confirmed,Deaths,Recovered,Active,WHO Region
2020-01-22,Afghanistan,0,0,0,0,Eastern Mediterranean
2020-01-22,US,1,0,0,1,Americas
2020-01-23,US,1,0,0,1,Americas
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func createTestXLSX(t *testing.T, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("full_grouped")
	require.NoError(t, err)
	for _, rowData := range rows {
		row := sheet.AddRow()
		for _, cellData := range rowData {
			cell := row.AddCell()
			cell.SetString(cellData)
		}
	}
	path := filepath.Join(t.TempDir(), "covid.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestLoadFile_CSV(t *testing.T) {
	path := writeFile(t, "covid.csv", sampleCSV)

	records, err := LoadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, schema.Record{
		Date:    time.Date(2020, 1, 22, 0, 0, 0, 0, time.UTC),
		Country: "US",
		Region:  "Americas",
		Cases:   1,
	}, records[1])
	assert.Equal(t, "Eastern Mediterranean", records[0].Region)
	assert.Equal(t, time.Date(2020, 1, 23, 0, 0, 0, 0, time.UTC), records[2].Date)
}

func TestLoadFile_XLSX(t *testing.T) {
	path := createTestXLSX(t, [][]string{
		{"Date", "Country/Region", "Confirmed", "Deaths", "Recovered", "WHO Region"},
		{"2020-07-27", "France", "220352", "30212", "81212", "Europe"},
		{"2020-07-27", "Brazil", "2442375", "87618", "1846641", "Americas"},
	})

	records, err := LoadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "France", records[0].Country)
	assert.Equal(t, int64(220352), records[0].Cases)
	assert.Equal(t, int64(1846641), records[1].Recovered)
}

func TestLoadFile_XLSXDateCells(t *testing.T) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("full_grouped")
	require.NoError(t, err)
	header := sheet.AddRow()
	for _, name := range []string{"Date", "Country/Region", "Confirmed", "Deaths", "Recovered", "WHO Region"} {
		header.AddCell().SetString(name)
	}
	row := sheet.AddRow()
	row.AddCell().SetDate(time.Date(2020, 1, 22, 0, 0, 0, 0, time.UTC))
	row.AddCell().SetString("Italy")
	row.AddCell().SetInt(12)
	row.AddCell().SetInt(1)
	row.AddCell().SetInt(0)
	row.AddCell().SetString("Europe")
	path := filepath.Join(t.TempDir(), "dated.xlsx")
	require.NoError(t, f.Save(path))

	records, err := LoadFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, schema.Record{
		Date:    time.Date(2020, 1, 22, 0, 0, 0, 0, time.UTC),
		Country: "Italy",
		Region:  "Europe",
		Cases:   12,
		Deaths:  1,
	}, records[0])
}

func TestLoadFile_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, "covid.json", "{}")
		_, err := LoadFile(ctx, path)
		assert.ErrorContains(t, err, "unsupported file extension")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(ctx, filepath.Join(t.TempDir(), "none.csv"))
		assert.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeFile(t, "empty.csv", "")
		_, err := LoadFile(ctx, path)
		assert.ErrorContains(t, err, "no header row")
	})

	t.Run("missing sheet", func(t *testing.T) {
		path := createTestXLSX(t, [][]string{{"Date"}})
		_, err := ReadXLSX(ctx, path, XLSXOptions{SheetName: "Sheet9"})
		assert.ErrorContains(t, err, "not found")
		_, err = ReadXLSX(ctx, path, XLSXOptions{SheetIndex: 3})
		assert.ErrorContains(t, err, "out of range")
	})

	t.Run("cancelled context", func(t *testing.T) {
		path := writeFile(t, "covid.csv", sampleCSV)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := LoadFile(cancelled, path)
		assert.Error(t, err)
	})
}

func TestParseRows_ColumnAliases(t *testing.T) {
	header := []string{"\ufeffdate", "COUNTRY", "cases", "DEATHS", "recovered", "region"}
	rows := [][]string{{"1/22/20", " Italy ", "3", "1", "", "Europe"}}

	records, err := ParseRows(header, rows)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, schema.Record{
		Date:    time.Date(2020, 1, 22, 0, 0, 0, 0, time.UTC),
		Country: "Italy",
		Region:  "Europe",
		Cases:   3,
		Deaths:  1,
	}, records[0])
}

func TestParseRows_MissingColumn(t *testing.T) {
	header := []string{"Date", "Country/Region", "Confirmed", "Deaths", "WHO Region"}
	_, err := ParseRows(header, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"recovered"`)
}

func TestParseRows_Values(t *testing.T) {
	header := []string{"Date", "Country/Region", "Confirmed", "Deaths", "Recovered", "WHO Region"}

	tests := []struct {
		name        string
		row         []string
		expected    schema.Record
		expectError string
	}{
		{
			name: "float formatted integers",
			row:  []string{"2020-03-01", "Spain", "12.0", "1.0", "0", "Europe"},
			expected: schema.Record{
				Date: time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), Country: "Spain", Region: "Europe",
				Cases: 12, Deaths: 1,
			},
		},
		{
			name: "long year date",
			row:  []string{"3/1/2020", "Spain", "1", "0", "0", "Europe"},
			expected: schema.Record{
				Date: time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), Country: "Spain", Region: "Europe", Cases: 1,
			},
		},
		{
			name: "rfc3339 date",
			row:  []string{"2020-03-01T15:04:05Z", "Spain", "1", "0", "0", "Europe"},
			expected: schema.Record{
				Date: time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), Country: "Spain", Region: "Europe", Cases: 1,
			},
		},
		{
			name: "short row reads missing cells as zero",
			row:  []string{"2020-03-01", "Spain", "4"},
			expected: schema.Record{
				Date: time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), Country: "Spain", Cases: 4,
			},
		},
		{name: "negative value", row: []string{"2020-03-01", "Spain", "-1", "0", "0", "Europe"}, expectError: "negative cases"},
		{name: "value past int64", row: []string{"2020-03-01", "Spain", "9223372036854775808", "0", "0", "Europe"}, expectError: "out of range"},
		{name: "fractional value", row: []string{"2020-03-01", "Spain", "1.5", "0", "0", "Europe"}, expectError: "invalid cases"},
		{name: "text value", row: []string{"2020-03-01", "Spain", "1", "many", "0", "Europe"}, expectError: "invalid deaths"},
		{name: "bad date", row: []string{"March 1", "Spain", "1", "0", "0", "Europe"}, expectError: "invalid date"},
		{name: "empty country", row: []string{"2020-03-01", " ", "1", "0", "0", "Europe"}, expectError: "empty country"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseRows(header, [][]string{tt.row})
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				assert.Contains(t, err.Error(), "row 2")
				return
			}
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, tt.expected, records[0])
		})
	}
}

func TestParseRows_SkipsBlankRows(t *testing.T) {
	header := []string{"Date", "Country", "Cases", "Deaths", "Recovered", "Region"}
	rows := [][]string{
		{"2020-01-22", "US", "1", "0", "0", "Americas"},
		{"", "", "", "", "", ""},
		{"2020-01-23", "US", "2", "0", "0", "Americas"},
	}
	records, err := ParseRows(header, rows)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestReadCSV_VariableFields(t *testing.T) {
	rows, err := ReadCSV(context.Background(), strings.NewReader("a,b,c\n1,2\n\"x, y\",z,w\n"))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1", "2"}, rows[1])
	assert.Equal(t, "x, y", rows[2][0])
}
