package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/covidash/internal/contract"
	"github.com/huangsam/covidash/internal/parquet"
	"github.com/huangsam/covidash/schema"
)

// chartSummaryJSON is the JSON form of one chart selection's totals.
type chartSummaryJSON struct {
	Country string        `json:"country,omitempty"`
	Totals  schema.Totals `json:"totals"`
}

// summaryJSON is the JSON form of the summary view.
type summaryJSON struct {
	Start    string           `json:"start"`
	End      string           `json:"end"`
	Region   string           `json:"region,omitempty"`
	DateRows int              `json:"date_rows"`
	Pie      chartSummaryJSON `json:"pie"`
	Bar      chartSummaryJSON `json:"bar"`
}

// NewSummaryJSON builds the JSON summary of derived views.
func NewSummaryJSON(views schema.DerivedViews) any {
	return summaryJSON{
		Start:    schema.FormatDate(views.Selection.Start),
		End:      schema.FormatDate(views.Selection.End),
		Region:   views.Selection.Region,
		DateRows: views.DateRows,
		Pie:      chartSummaryJSON{Country: views.Pie.Country, Totals: views.Pie.Totals},
		Bar:      chartSummaryJSON{Country: views.Bar.Country, Totals: views.Bar.Totals},
	}
}

// PrintSummary outputs the summary counters, dispatching based on the output format configured.
func PrintSummary(views schema.DerivedViews, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return writeParquet(cfg.OutputFile, func(path string) error {
			return parquet.WriteRows(parquet.ConvertSummary(views), path)
		})
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteSummary(w, views, cfg)
	}, successMessage(cfg.Output))
}

// WriteSummary writes the summary counters of both chart selections.
func WriteSummary(w io.Writer, views schema.DerivedViews, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, NewSummaryJSON(views))
	case schema.CSVOut:
		return writeCSVTable(w, schema.SummaryTable(views))
	default:
		return writeSummaryTable(w, views, cfg)
	}
}

func writeSummaryTable(w io.Writer, views schema.DerivedViews, cfg *contract.Config) error {
	headers := []string{"Chart", "Country"}
	for _, m := range schema.AllMetrics {
		headers = append(headers, metricLabel(m, cfg))
	}

	_, fmtCount := createFormatters(cfg.Precision)
	nameWidth := GetMaxTableNameWidth(cfg, len(schema.AllMetrics))
	row := func(chart string, v schema.ChartView) []string {
		country := v.Country
		if country == "" {
			country = "All"
		}
		return []string{
			chart,
			contract.TruncateText(country, nameWidth),
			fmtCount(v.Totals.Cases),
			fmtCount(v.Totals.Deaths),
			fmtCount(v.Totals.Recovered),
		}
	}

	if err := renderTable(w, headers, [][]string{row("Pie", views.Pie), row("Bar", views.Bar)}); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "%s rows in date range\n", fmtCount(int64(views.DateRows)))
	return nil
}

// successMessage returns the message printed after writing to a file.
func successMessage(output schema.OutputMode) string {
	switch output {
	case schema.JSONOut:
		return "Wrote JSON"
	case schema.CSVOut:
		return "Wrote CSV"
	default:
		return "Wrote table"
	}
}
