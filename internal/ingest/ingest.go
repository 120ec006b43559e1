// Package ingest loads COVID time-series datasets from CSV and XLSX files.
package ingest

import (
	"context"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/covidash/schema"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Canonical column names after renaming.
const (
	colDate      = "date"
	colCountry   = "country"
	colRegion    = "region"
	colCases     = "cases"
	colDeaths    = "deaths"
	colRecovered = "recovered"
)

// requiredColumns lists the canonical columns every dataset must carry, in error order.
var requiredColumns = []string{colDate, colCountry, colRegion, colCases, colDeaths, colRecovered}

// columnAliases maps lower-cased source headers to canonical column names.
var columnAliases = map[string]string{
	"date":           colDate,
	"country/region": colCountry,
	"country":        colCountry,
	"who region":     colRegion,
	"region":         colRegion,
	"confirmed":      colCases,
	"cases":          colCases,
	"deaths":         colDeaths,
	"recovered":      colRecovered,
}

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{
	schema.DateLayout,
	"1/2/06",
	"1/2/2006",
	time.RFC3339,
}

// LoadFile reads a dataset from path, choosing the parser by file extension.
func LoadFile(ctx context.Context, path string) ([]schema.Record, error) {
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err = ReadCSVFile(ctx, path)
	case ".xlsx":
		rows, err = ReadXLSX(ctx, path, XLSXOptions{})
	default:
		return nil, eris.Errorf("ingest: unsupported file extension %q (expected .csv or .xlsx)", ext)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, eris.Errorf("ingest: %s has no header row", filepath.Base(path))
	}

	records, err := ParseRows(rows[0], rows[1:])
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: parse %s", filepath.Base(path))
	}
	zap.L().Debug("dataset loaded",
		zap.String("path", path),
		zap.Int("records", len(records)))
	return records, nil
}

// ParseRows converts a header and data rows into records.
// Row numbers in errors are 1-based and count the header as row 1.
func ParseRows(header []string, rows [][]string) ([]schema.Record, error) {
	index, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	records := make([]schema.Record, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 2
		if isBlank(row) {
			continue
		}
		rec, err := parseRecord(row, index)
		if err != nil {
			return nil, eris.Wrapf(err, "row %d", rowNum)
		}
		records = append(records, rec)
	}
	return records, nil
}

// resolveColumns maps each canonical column to its position in header.
func resolveColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(requiredColumns))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		canonical, ok := columnAliases[key]
		if !ok {
			continue
		}
		if _, seen := index[canonical]; !seen {
			index[canonical] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, eris.Errorf("missing required column %q", col)
		}
	}
	return index, nil
}

func parseRecord(row []string, index map[string]int) (schema.Record, error) {
	cell := func(col string) string {
		pos := index[col]
		if pos >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[pos])
	}

	date, err := parseDate(cell(colDate))
	if err != nil {
		return schema.Record{}, err
	}
	country := cell(colCountry)
	if country == "" {
		return schema.Record{}, eris.New("empty country")
	}

	rec := schema.Record{
		Date:    date,
		Country: country,
		Region:  cell(colRegion),
	}
	if rec.Cases, err = parseCount(colCases, cell(colCases)); err != nil {
		return schema.Record{}, err
	}
	if rec.Deaths, err = parseCount(colDeaths, cell(colDeaths)); err != nil {
		return schema.Record{}, err
	}
	if rec.Recovered, err = parseCount(colRecovered, cell(colRecovered)); err != nil {
		return schema.Record{}, err
	}
	return rec, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return schema.TruncateDay(t), nil
		}
	}
	return time.Time{}, eris.Errorf("invalid date %q", s)
}

// parseCount reads a non-negative integer. Empty cells read as zero.
func parseCount(col, s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, eris.Errorf("negative %s value %d", col, n)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, eris.Errorf("invalid %s value %q", col, s)
	}
	if f < 0 {
		return 0, eris.Errorf("negative %s value %q", col, s)
	}
	if f >= 1<<63 {
		return 0, eris.Errorf("%s value %q out of range", col, s)
	}
	return int64(f), nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
