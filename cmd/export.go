package cmd

import (
	"github.com/huangsam/covidash/core"
	"github.com/huangsam/covidash/internal/contract"
	"github.com/spf13/cobra"
)

// exportCmd writes the chart download files.
var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the pie and bar chart downloads as CSV files.",
	Long: `Write the download files of the current selection to --output-dir:

- pie_chart_data.csv with the columns date, variable, value
- bar_chart_data.csv with the columns Metric, date, Count
- contribution_data.csv when --contribution is set

Examples:
  # Downloads for one region
  covidash export covid.csv --region Europe --output-dir downloads

  # Include the contribution of every country
  covidash export covid.csv --contribution --contribution-type Recoveries`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExport(rootCtx, cfg, datasetManager); err != nil {
			contract.LogFatal("Cannot export downloads", err)
		}
	},
}

// renderCmd draws the charts as images.
var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render the pie, bar, timeline and contribution charts as PNG or SVG.",
	Long: `Draw the charts of the current selection and write them to --output-dir.

The pie chart shows the proportions of the pie selection, the bar chart the
daily values of the bar selection. The contribution chart is drawn when
--contribution is set. Charts without data are skipped with a warning.

Examples:
  # PNG charts for one country
  covidash render covid.csv --country Germany

  # Larger SVG charts
  covidash render covid.csv --format svg --chart-width 1600 --chart-height 900`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRender(rootCtx, cfg, datasetManager); err != nil {
			contract.LogFatal("Cannot render charts", err)
		}
	},
}
