package cmd

import (
	"github.com/huangsam/covidash/core"
	"github.com/huangsam/covidash/internal/contract"
	"github.com/spf13/cobra"
)

// newViewCommand builds a command that runs one executor against the shared setup.
func newViewCommand(use, short, long, failure string, exec core.ExecutorFunc) *cobra.Command {
	return &cobra.Command{
		Use:     use,
		Short:   short,
		Long:    long,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: sharedSetupWrapper,
		Run: func(_ *cobra.Command, _ []string) {
			if err := exec(rootCtx, cfg, datasetManager); err != nil {
				contract.LogFatal(failure, err)
			}
		},
	}
}

// summaryCmd shows the totals of both chart selections.
var summaryCmd = newViewCommand(
	"summary [file]",
	"Show cases, deaths and recovered totals for the current selection.",
	`Slice the dataset by date range, region and country and show the totals
behind the pie and the bar chart.

The pie and bar chart each have their own country. When a country does not
occur in the selected region, only the region narrows that chart.

Examples:
  # Totals over the whole dataset
  covidash summary covid_19_clean_complete.csv

  # A single month of the Americas
  covidash summary covid.csv --start 2020-03-01 --end 2020-03-31 --region Americas

  # Compare two countries side by side
  covidash summary covid.csv --country-pie Italy --country-bar Spain

  # Read the dataset imported with 'covidash store import'
  covidash summary --source store --output json`,
	"Cannot compute summary",
	core.ExecuteSummary,
)

// pieCmd shows the pie chart proportions.
var pieCmd = newViewCommand(
	"pie [file]",
	"Show the proportions of cases, deaths and recovered.",
	`Show the share of cases, deaths and recovered in the pie selection.

The csv output is the pie chart download: one row per record and metric
with the columns date, variable, value.

Examples:
  # Proportions for one country
  covidash pie covid.csv --country India

  # Write the pie download table
  covidash pie covid.csv --output csv --output-file pie.csv`,
	"Cannot compute pie chart data",
	core.ExecutePie,
)

// barCmd shows the daily bar chart values.
var barCmd = newViewCommand(
	"bar [file]",
	"Show the daily cases, deaths and recovered of the bar selection.",
	`Group the bar selection by metric and date and show the summed counts.

The csv output is the bar chart download with the columns Metric, date, Count.

Examples:
  # Daily values of a country
  covidash bar covid.csv --country-bar Brazil --limit 60

  # Export as parquet for analysis in pandas/DuckDB
  covidash bar covid.csv --output parquet --output-file bar.parquet`,
	"Cannot compute bar chart data",
	core.ExecuteBar,
)

// mapsCmd shows the per-country map inputs.
var mapsCmd = newViewCommand(
	"maps [file]",
	"Show the per-country deaths, recovered and daily cases behind the maps.",
	`Sum deaths and recovered per country over the date range and build one
frame of per-country cases for every date.

Maps ignore the region and country selection.

Examples:
  # Countries with the most deaths in 2020
  covidash maps covid.csv --end 2020-12-31 --limit 10

  # All frames as json
  covidash maps covid.csv --output json`,
	"Cannot compute map data",
	core.ExecuteMaps,
)

// contributionCmd shows the percentage contribution of every country.
var contributionCmd = newViewCommand(
	"contribution [file]",
	"Show the percentage contribution of every country to a metric.",
	`Compute the share of every country in the total of one metric over the date range.

Examples:
  # Share of cases
  covidash contribution covid.csv

  # Share of deaths with more precision
  covidash contribution covid.csv --contribution-type Deaths --precision 4`,
	"Cannot compute percentage contribution",
	core.ExecuteContribution,
)

// recordsCmd shows the records of the pie selection.
var recordsCmd = newViewCommand(
	"records [file]",
	"Show the records of the current selection.",
	`Print the filtered source records of the pie selection with the renamed columns.

Examples:
  # The records of one country in a week
  covidash records covid.csv --country Japan --start 2020-04-01 --end 2020-04-07`,
	"Cannot list records",
	core.ExecuteRecords,
)

// regionsCmd lists the region selector choices.
var regionsCmd = newViewCommand(
	"regions [file]",
	"List the WHO regions and their countries.",
	`List every WHO region of the dataset with the countries that belong to it.

Examples:
  covidash regions covid.csv
  covidash regions --source store --output json`,
	"Cannot list regions",
	core.ExecuteRegions,
)
