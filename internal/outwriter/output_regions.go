package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/covidash/internal/contract"
	"github.com/huangsam/covidash/internal/parquet"
	"github.com/huangsam/covidash/schema"
)

// PrintRegions outputs the region selector choices, dispatching based on the output format configured.
func PrintRegions(regions []schema.RegionSummary, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return writeParquet(cfg.OutputFile, func(path string) error {
			return parquet.WriteRows(parquet.ConvertRegions(regions), path)
		})
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteRegions(w, regions, cfg)
	}, successMessage(cfg.Output))
}

// WriteRegions writes the regions and their countries.
func WriteRegions(w io.Writer, regions []schema.RegionSummary, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if regions == nil {
			regions = []schema.RegionSummary{}
		}
		return writeJSON(w, regions)
	case schema.CSVOut:
		return writeCSVTable(w, schema.RegionsTable(regions))
	default:
		return writeRegionsTable(w, regions, cfg)
	}
}

func writeRegionsTable(w io.Writer, regions []schema.RegionSummary, cfg *contract.Config) error {
	nameWidth := GetMaxTableNameWidth(cfg, 2)
	data := make([][]string, 0, len(regions))
	for _, r := range regions {
		data = append(data, []string{
			r.Region,
			fmt.Sprintf("%d", len(r.Countries)),
			contract.TruncateText(strings.Join(r.Countries, ", "), nameWidth),
		})
	}
	if err := renderTable(w, []string{"Region", "Countries", "Examples"}, data); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Showing %d regions\n", len(regions))
	return nil
}

// recordJSON is the JSON form of one source record with a calendar date.
type recordJSON struct {
	Date      string `json:"date"`
	Country   string `json:"country"`
	Region    string `json:"region"`
	Cases     int64  `json:"cases"`
	Deaths    int64  `json:"deaths"`
	Recovered int64  `json:"recovered"`
}

// PrintRecords outputs filtered source records, dispatching based on the output format configured.
func PrintRecords(records []schema.Record, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return writeParquet(cfg.OutputFile, func(path string) error {
			return parquet.WriteRows(parquet.ConvertRecords(records), path)
		})
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteRecords(w, records, cfg)
	}, successMessage(cfg.Output))
}

// WriteRecords writes filtered source records with the renamed columns.
func WriteRecords(w io.Writer, records []schema.Record, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		out := make([]recordJSON, 0, len(records))
		for _, r := range records {
			out = append(out, recordJSON{
				Date:      schema.FormatDate(r.Date),
				Country:   r.Country,
				Region:    r.Region,
				Cases:     r.Cases,
				Deaths:    r.Deaths,
				Recovered: r.Recovered,
			})
		}
		return writeJSON(w, out)
	case schema.CSVOut:
		return writeCSVTable(w, schema.RecordsTable(records))
	default:
		return writeRecordsTable(w, records, cfg)
	}
}

func writeRecordsTable(w io.Writer, records []schema.Record, cfg *contract.Config) error {
	_, fmtCount := createFormatters(cfg.Precision)
	nameWidth := GetMaxTableNameWidth(cfg, 5)

	headers := []string{"Date", "Country", "Region"}
	for _, m := range schema.AllMetrics {
		headers = append(headers, metricLabel(m, cfg))
	}

	shown := limitRows(records, cfg.Limit)
	data := make([][]string, 0, len(shown))
	for _, r := range shown {
		data = append(data, []string{
			schema.FormatDate(r.Date),
			contract.TruncateText(r.Country, nameWidth),
			r.Region,
			fmtCount(r.Cases),
			fmtCount(r.Deaths),
			fmtCount(r.Recovered),
		})
	}
	if err := renderTable(w, headers, data); err != nil {
		return err
	}
	showingFooter(w, len(shown), len(records), "records")
	return nil
}
