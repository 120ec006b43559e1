// Package cmd defines the command-line interface for covidash.
package cmd

import (
	"github.com/huangsam/covidash/internal/contract"
	"github.com/huangsam/covidash/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(pieCmd)
	rootCmd.AddCommand(barCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(contributionCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(storeCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeImportCmd)
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("start", "", "First date of the range in YYYY-MM-DD (default: first date of the dataset)")
	rootCmd.PersistentFlags().String("end", "", "Last date of the range in YYYY-MM-DD (default: last date of the dataset)")
	rootCmd.PersistentFlags().StringP("region", "r", "", "WHO region to narrow both charts to")
	rootCmd.PersistentFlags().StringP("country", "c", "", "Country for both the pie and the bar chart")
	rootCmd.PersistentFlags().String("country-pie", "", "Country for the pie chart (overrides --country)")
	rootCmd.PersistentFlags().String("country-bar", "", "Country for the bar chart (overrides --country)")
	rootCmd.PersistentFlags().Bool("contribution", false, "Compute the percentage contribution of every country")
	rootCmd.PersistentFlags().String("contribution-type", string(schema.CasesContribution), "Contribution metric: Cases or Deaths or Recoveries")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of rows to display in text tables")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for percentage columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("output-dir", ".", "Directory for the files of export and render")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("source", string(schema.FileSource), "Dataset source: file or store")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-format", contract.DefaultLogFormat, "Log format: console or json")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of renderCmd to Viper
	renderCmd.Flags().String("format", string(schema.PNGChart), "Chart format: png or svg")
	renderCmd.Flags().Int("chart-width", contract.DefaultChartWidth, "Chart width in pixels")
	renderCmd.Flags().Int("chart-height", contract.DefaultChartHeight, "Chart height in pixels")
	if err := viper.BindPFlags(renderCmd.Flags()); err != nil {
		contract.LogFatal("Error binding render flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
