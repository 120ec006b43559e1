package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/huangsam/covidash/internal/contract"
	"github.com/huangsam/covidash/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeParquet writes rows with the Parquet writer and reports the file, like writeWithFile.
func writeParquet(outputFile string, write func(string) error) error {
	if outputFile == "" {
		return fmt.Errorf("parquet output requires an output file")
	}
	if err := write(outputFile); err != nil {
		return fmt.Errorf("error writing Parquet output: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", outputFile)
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// writeCSVTable writes a flat table with its header row.
func writeCSVTable(w io.Writer, table schema.Table) error {
	return writeCSVWithHeader(w, table.Columns, func(cw *csv.Writer) error {
		return cw.WriteAll(table.Rows)
	})
}

// renderTable renders rows as a right-aligned text table.
func renderTable(w io.Writer, headers []string, data [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, fmtCount func(int64) string) {
	numFmt := "%.*f"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	return fmtFloat, contract.FormatCount
}

// metricLabel returns the display label of a metric, colored when the config asks for it.
func metricLabel(m schema.Metric, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(m)
	}
	return contract.GetPlainLabel(m)
}

// limitRows caps the rows shown in a text table. A non-positive limit shows everything.
func limitRows[T any](rows []T, limit int) []T {
	if limit <= 0 || len(rows) <= limit {
		return rows
	}
	return rows[:limit]
}

// showingFooter reports how many rows a text table left out.
func showingFooter(w io.Writer, shown, total int, noun string) {
	if shown < total {
		_, _ = fmt.Fprintf(w, "Showing %d of %d %s (use --limit to see more)\n", shown, total, noun)
		return
	}
	_, _ = fmt.Fprintf(w, "Showing %d %s\n", total, noun)
}

// parseTableInt parses an integer cell of a schema table.
func parseTableInt(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

// parseTableFloat parses a float cell of a schema table.
func parseTableFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
