package outwriter

import (
	"io"

	"github.com/huangsam/covidash/internal/contract"
	"github.com/huangsam/covidash/internal/parquet"
	"github.com/huangsam/covidash/schema"
)

// proportionJSON is one slice of the pie chart.
type proportionJSON struct {
	Variable string  `json:"variable"`
	Label    string  `json:"label"`
	Value    int64   `json:"value"`
	Share    float64 `json:"share"`
}

// pieJSON is the JSON form of the pie chart view.
type pieJSON struct {
	Country     string           `json:"country,omitempty"`
	Totals      schema.Totals    `json:"totals"`
	Proportions []proportionJSON `json:"proportions"`
}

// barGroupJSON is one bar of the bar chart.
type barGroupJSON struct {
	Metric string `json:"metric"`
	Date   string `json:"date"`
	Count  int64  `json:"count"`
}

// barJSON is the JSON form of the bar chart view.
type barJSON struct {
	Country string         `json:"country,omitempty"`
	Totals  schema.Totals  `json:"totals"`
	Groups  []barGroupJSON `json:"groups"`
}

// NewPieJSON builds the JSON form of a pie chart view.
func NewPieJSON(view schema.ChartView) any {
	table := schema.ProportionsTable(view.Groups)
	proportions := make([]proportionJSON, 0, len(table.Rows))
	for _, row := range table.Rows {
		proportions = append(proportions, proportionJSON{
			Variable: row[0],
			Label:    schema.Metric(row[0]).Label(),
			Value:    parseTableInt(row[1]),
			Share:    parseTableFloat(row[2]),
		})
	}
	return pieJSON{Country: view.Country, Totals: view.Totals, Proportions: proportions}
}

// NewBarJSON builds the JSON form of a bar chart view.
func NewBarJSON(view schema.ChartView) any {
	groups := make([]barGroupJSON, 0, len(view.Groups))
	for _, g := range view.Groups {
		if len(g.Keys) < 2 {
			continue
		}
		groups = append(groups, barGroupJSON{Metric: g.Keys[0], Date: g.Keys[1], Count: g.Value})
	}
	return barJSON{Country: view.Country, Totals: view.Totals, Groups: groups}
}

// PrintPie outputs the pie chart view, dispatching based on the output format configured.
// CSV output has the columns of the pie download file.
func PrintPie(view schema.ChartView, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return writeParquet(cfg.OutputFile, func(path string) error {
			return parquet.WriteRows(parquet.ConvertMeltedRows(view.Melted), path)
		})
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WritePie(w, view, cfg)
	}, successMessage(cfg.Output))
}

// WritePie writes the pie chart view.
func WritePie(w io.Writer, view schema.ChartView, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, NewPieJSON(view))
	case schema.CSVOut:
		return writeCSVTable(w, schema.PieTable(view.Melted))
	default:
		return writePieTable(w, view, cfg)
	}
}

func writePieTable(w io.Writer, view schema.ChartView, cfg *contract.Config) error {
	fmtFloat, fmtCount := createFormatters(cfg.Precision)
	table := schema.ProportionsTable(view.Groups)

	data := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		data = append(data, []string{
			metricLabel(schema.Metric(row[0]), cfg),
			fmtCount(parseTableInt(row[1])),
			fmtFloat(parseTableFloat(row[2])) + "%",
		})
	}
	return renderTable(w, []string{"Variable", "Value", "Share"}, data)
}

// PrintBar outputs the bar chart view, dispatching based on the output format configured.
// CSV output has the columns of the bar download file.
func PrintBar(view schema.ChartView, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return writeParquet(cfg.OutputFile, func(path string) error {
			return parquet.WriteRows(parquet.ConvertBarGroups(view.Groups), path)
		})
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteBar(w, view, cfg)
	}, successMessage(cfg.Output))
}

// WriteBar writes the bar chart view.
func WriteBar(w io.Writer, view schema.ChartView, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, NewBarJSON(view))
	case schema.CSVOut:
		return writeCSVTable(w, schema.BarTable(view.Groups))
	default:
		return writeBarTable(w, view, cfg)
	}
}

func writeBarTable(w io.Writer, view schema.ChartView, cfg *contract.Config) error {
	_, fmtCount := createFormatters(cfg.Precision)

	shown := limitRows(view.Groups, cfg.Limit)
	data := make([][]string, 0, len(shown))
	for _, g := range shown {
		if len(g.Keys) < 2 {
			continue
		}
		data = append(data, []string{metricLabel(schema.Metric(g.Keys[0]), cfg), g.Keys[1], fmtCount(g.Value)})
	}
	if err := renderTable(w, []string{"Metric", "Date", "Count"}, data); err != nil {
		return err
	}
	showingFooter(w, len(shown), len(view.Groups), "bars")
	return nil
}
