package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/covidash/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 10000
	DefaultPrecision   = 2
	MaxPrecision       = 6
	DefaultChartWidth  = 1024
	DefaultChartHeight = 512
	MinChartSize       = 128
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "console"
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for every command.
// This struct is the "final, validated" config.
type Config struct {
	InputPath string
	Source    schema.SourceKind

	// StartDate and EndDate are zero when the dataset bounds should be used.
	StartDate time.Time
	EndDate   time.Time

	Region           string
	CountryPie       string
	CountryBar       string
	ShowContribution bool
	ContributionType schema.ContributionType

	Limit      int
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	OutputDir  string
	Width      int // Terminal width override (0 = auto-detect)

	ChartFormat schema.ChartFormat
	ChartWidth  int
	ChartHeight int

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	LogLevel  string
	LogFormat string

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Start            string `mapstructure:"start"`
	End              string `mapstructure:"end"`
	Region           string `mapstructure:"region"`
	Country          string `mapstructure:"country"`
	CountryPie       string `mapstructure:"country-pie"`
	CountryBar       string `mapstructure:"country-bar"`
	Contribution     bool   `mapstructure:"contribution"`
	ContributionType string `mapstructure:"contribution-type"`
	Limit            int    `mapstructure:"limit"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	Source           string `mapstructure:"source"`
	StoreBackend     string `mapstructure:"store-backend"`
	StoreDBConnect   string `mapstructure:"store-db-connect"`
	LogLevel         string `mapstructure:"log-level"`
	LogFormat        string `mapstructure:"log-format"`

	// --- Fields from exportCmd.Flags() and renderCmd.Flags() ---
	OutputDir   string `mapstructure:"output-dir"`
	Format      string `mapstructure:"format"`
	ChartWidth  int    `mapstructure:"chart-width"`
	ChartHeight int    `mapstructure:"chart-height"`
}

// Clone returns a copy of the Config struct. Config holds no reference types.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ContributionMetric returns the metric summed by the configured contribution type.
func (c *Config) ContributionMetric() schema.Metric {
	if m, ok := schema.ValidContributionTypes[c.ContributionType]; ok {
		return m
	}
	return schema.CasesMetric
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processDateRange(cfg, input); err != nil {
		return err
	}
	if err := processSelection(cfg, input); err != nil {
		return err
	}
	if err := processChartOptions(cfg, input); err != nil {
		return err
	}
	if err := resolveSource(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ValidateStoreBackend parses and validates a store backend name together with its connection string.
func ValidateStoreBackend(backendStr, connStr string) (schema.DatabaseBackend, error) {
	backend := schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(backendStr)))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", backendStr)
	}
	if err := ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", err
	}
	return backend, nil
}

// validateSimpleInputs processes and validates all fields that need no cross-checks.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.LogLevel = input.LogLevel
	cfg.LogFormat = input.LogFormat

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Limit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.Limit = input.Limit

	// --- 2. Precision and Output Validation ---
	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required when using parquet output")
	}

	// --- 3. Logging Validation ---
	if cfg.LogFormat != "console" && cfg.LogFormat != "json" {
		return fmt.Errorf("invalid log format '%s'. must be console, json", input.LogFormat)
	}

	// --- 4. Backend Validation ---
	backend, err := ValidateStoreBackend(input.StoreBackend, input.StoreDBConnect)
	if err != nil {
		return err
	}
	cfg.StoreBackend = backend
	cfg.StoreDBConnect = input.StoreDBConnect

	return nil
}

// processDateRange parses the optional start and end dates.
// An inverted range is accepted; it selects no rows.
func processDateRange(cfg *Config, input *ConfigRawInput) error {
	cfg.StartDate = time.Time{}
	cfg.EndDate = time.Time{}

	if input.Start != "" {
		start, err := schema.ParseDate(input.Start)
		if err != nil {
			return fmt.Errorf("invalid --start date '%s'. must be YYYY-MM-DD: %w", input.Start, err)
		}
		cfg.StartDate = start
	}
	if input.End != "" {
		end, err := schema.ParseDate(input.End)
		if err != nil {
			return fmt.Errorf("invalid --end date '%s'. must be YYYY-MM-DD: %w", input.End, err)
		}
		cfg.EndDate = end
	}
	return nil
}

// processSelection resolves region, per-chart countries and the contribution toggle.
// --country sets both chart countries unless a chart-specific flag overrides it.
func processSelection(cfg *Config, input *ConfigRawInput) error {
	cfg.Region = strings.TrimSpace(input.Region)

	country := strings.TrimSpace(input.Country)
	cfg.CountryPie = country
	cfg.CountryBar = country
	if v := strings.TrimSpace(input.CountryPie); v != "" {
		cfg.CountryPie = v
	}
	if v := strings.TrimSpace(input.CountryBar); v != "" {
		cfg.CountryBar = v
	}

	cfg.ShowContribution = input.Contribution
	cfg.ContributionType = schema.CasesContribution
	if input.ContributionType != "" {
		ct, ok := schema.ParseContributionType(input.ContributionType)
		if !ok {
			return fmt.Errorf("invalid contribution type '%s'. must be Cases, Deaths, Recoveries", input.ContributionType)
		}
		cfg.ContributionType = ct
	}
	return nil
}

// SelectionArgs holds selection overrides from a single request, such as an MCP tool call.
// Empty fields keep the value of the config they are applied to.
type SelectionArgs struct {
	Start            string
	End              string
	Region           string
	Country          string
	CountryPie       string
	CountryBar       string
	ContributionType string
}

// RevalidateSelection applies selection overrides to an already validated config.
// The region "all" clears the region filter.
func RevalidateSelection(cfg *Config, args SelectionArgs) error {
	start, end := cfg.StartDate, cfg.EndDate
	if err := processDateRange(cfg, &ConfigRawInput{Start: args.Start, End: args.End}); err != nil {
		return err
	}
	if args.Start == "" {
		cfg.StartDate = start
	}
	if args.End == "" {
		cfg.EndDate = end
	}

	switch region := strings.TrimSpace(args.Region); {
	case strings.EqualFold(region, "all"):
		cfg.Region = ""
	case region != "":
		cfg.Region = region
	}

	if v := strings.TrimSpace(args.Country); v != "" {
		cfg.CountryPie = v
		cfg.CountryBar = v
	}
	if v := strings.TrimSpace(args.CountryPie); v != "" {
		cfg.CountryPie = v
	}
	if v := strings.TrimSpace(args.CountryBar); v != "" {
		cfg.CountryBar = v
	}

	if args.ContributionType != "" {
		ct, ok := schema.ParseContributionType(args.ContributionType)
		if !ok {
			return fmt.Errorf("invalid contribution type '%s'. must be Cases, Deaths, Recoveries", args.ContributionType)
		}
		cfg.ContributionType = ct
	}
	return nil
}

// processChartOptions validates the options of the export and render commands.
func processChartOptions(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputDir = input.OutputDir
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}

	cfg.ChartFormat = schema.ChartFormat(strings.ToLower(input.Format))
	if cfg.ChartFormat == "" {
		cfg.ChartFormat = schema.PNGChart
	}
	if _, ok := schema.ValidChartFormats[cfg.ChartFormat]; !ok {
		return fmt.Errorf("invalid chart format '%s'. must be png, svg", input.Format)
	}

	cfg.ChartWidth = input.ChartWidth
	if cfg.ChartWidth == 0 {
		cfg.ChartWidth = DefaultChartWidth
	}
	cfg.ChartHeight = input.ChartHeight
	if cfg.ChartHeight == 0 {
		cfg.ChartHeight = DefaultChartHeight
	}
	if cfg.ChartWidth < MinChartSize || cfg.ChartHeight < MinChartSize {
		return fmt.Errorf("chart size must be at least %dx%d (received %dx%d)", MinChartSize, MinChartSize, cfg.ChartWidth, cfg.ChartHeight)
	}
	return nil
}

// resolveSource checks that the dataset can be reached from the configured source.
func resolveSource(cfg *Config, input *ConfigRawInput) error {
	cfg.Source = schema.SourceKind(strings.ToLower(input.Source))
	if cfg.Source == "" {
		cfg.Source = schema.FileSource
	}
	if _, ok := schema.ValidSourceKinds[cfg.Source]; !ok {
		return fmt.Errorf("invalid source '%s'. must be file, store", input.Source)
	}

	if cfg.Source == schema.StoreSource {
		if cfg.StoreBackend == schema.NoneBackend {
			return fmt.Errorf("--source store requires a store backend other than none")
		}
		return nil
	}

	if input.InputPathStr == "" {
		return fmt.Errorf("a dataset file is required (csv or xlsx), or use --source store")
	}
	absPath, err := filepath.Abs(input.InputPathStr)
	if err != nil {
		return err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("cannot read dataset file %q: %w", input.InputPathStr, err)
	}
	if info.IsDir() {
		return fmt.Errorf("dataset path %q is a directory", input.InputPathStr)
	}
	cfg.InputPath = absPath
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
