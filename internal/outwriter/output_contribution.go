package outwriter

import (
	"fmt"
	"io"
	"sort"

	"github.com/huangsam/covidash/internal/contract"
	"github.com/huangsam/covidash/internal/parquet"
	"github.com/huangsam/covidash/schema"
)

// contributionJSON is the JSON form of the percentage contribution view.
type contributionJSON struct {
	Metric        string                `json:"metric"`
	Contributions []schema.Contribution `json:"contributions"`
}

// NewContributionJSON builds the JSON form of a percentage contribution.
func NewContributionJSON(contributions []schema.Contribution, metric schema.Metric) any {
	if contributions == nil {
		contributions = []schema.Contribution{}
	}
	return contributionJSON{Metric: string(metric), Contributions: contributions}
}

// PrintContribution outputs the percentage contribution, dispatching based on the output format configured.
func PrintContribution(contributions []schema.Contribution, metric schema.Metric, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return writeParquet(cfg.OutputFile, func(path string) error {
			return parquet.WriteRows(parquet.ConvertContributions(contributions, metric), path)
		})
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteContribution(w, contributions, metric, cfg)
	}, successMessage(cfg.Output))
}

// WriteContribution writes the percentage contribution of every country.
// CSV and JSON keep full precision and first-occurrence order; the text table
// sorts by share and honors the precision and limit settings.
func WriteContribution(w io.Writer, contributions []schema.Contribution, metric schema.Metric, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, NewContributionJSON(contributions, metric))
	case schema.CSVOut:
		return writeCSVTable(w, schema.ContributionTable(contributions))
	default:
		return writeContributionTable(w, contributions, metric, cfg)
	}
}

func writeContributionTable(w io.Writer, contributions []schema.Contribution, metric schema.Metric, cfg *contract.Config) error {
	sorted := append([]schema.Contribution(nil), contributions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Percentage > sorted[j].Percentage
	})
	shown := limitRows(sorted, cfg.Limit)

	fmtFloat, _ := createFormatters(cfg.Precision)
	nameWidth := GetMaxTableNameWidth(cfg, 1)
	data := make([][]string, 0, len(shown))
	for i, c := range shown {
		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			contract.TruncateText(c.Country, nameWidth),
			fmtFloat(c.Percentage) + "%",
		})
	}

	_, _ = fmt.Fprintf(w, "Percentage contribution of %s\n", metricLabel(metric, cfg))
	if err := renderTable(w, []string{"Rank", "Country", "Contribution"}, data); err != nil {
		return err
	}
	showingFooter(w, len(shown), len(sorted), "countries")
	return nil
}
