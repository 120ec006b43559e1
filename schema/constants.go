package schema

// Custom string types for type safety.
type (
	// Metric represents one of the numeric columns of a Record.
	Metric string

	// ContributionType represents the label used to pick a contribution metric.
	ContributionType string

	// GroupKey represents a key column that melted rows can be grouped by.
	GroupKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// SourceKind represents where the dataset is loaded from.
	SourceKind string

	// ChartFormat represents the image format of rendered charts.
	ChartFormat string

	// DatabaseBackend represents the database backend for the dataset store.
	DatabaseBackend string
)

// All metrics supported.
const (
	CasesMetric     Metric = "cases"
	DeathsMetric    Metric = "deaths"
	RecoveredMetric Metric = "recovered"
)

// All contribution types supported.
const (
	CasesContribution      ContributionType = "Cases" // default
	DeathsContribution     ContributionType = "Deaths"
	RecoveriesContribution ContributionType = "Recoveries"
)

// All group keys supported.
const (
	MetricKey GroupKey = "metric"
	DateKey   GroupKey = "date"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All dataset sources supported.
const (
	FileSource  SourceKind = "file" // default
	StoreSource SourceKind = "store"
)

// All chart formats supported.
const (
	PNGChart ChartFormat = "png" // default
	SVGChart ChartFormat = "svg"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// DateLayout is the calendar date representation used in tables and exports.
const DateLayout = "2006-01-02"

// Export file names used by the download feature.
const (
	PieExportFile = "pie_chart_data.csv"
	BarExportFile = "bar_chart_data.csv"

	ContributionExportFile = "contribution_data.csv"
)

// AllMetrics lists the metrics in column order. Melt and every per-metric table follow it.
var AllMetrics = []Metric{CasesMetric, DeathsMetric, RecoveredMetric}

// AllContributionTypes lists the contribution types in display order.
var AllContributionTypes = []ContributionType{CasesContribution, DeathsContribution, RecoveriesContribution}

// ValidMetrics lists all valid metrics.
var ValidMetrics = map[Metric]struct{}{
	CasesMetric:     {},
	DeathsMetric:    {},
	RecoveredMetric: {},
}

// ValidContributionTypes maps each contribution type to the metric it sums.
var ValidContributionTypes = map[ContributionType]Metric{
	CasesContribution:      CasesMetric,
	DeathsContribution:     DeathsMetric,
	RecoveriesContribution: RecoveredMetric,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidSourceKinds lists all valid dataset sources.
var ValidSourceKinds = map[SourceKind]struct{}{
	FileSource:  {},
	StoreSource: {},
}

// ValidChartFormats lists all valid chart formats.
var ValidChartFormats = map[ChartFormat]struct{}{
	PNGChart: {},
	SVGChart: {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// MetricColors is the chart palette keyed by metric.
var MetricColors = map[Metric]string{
	CasesMetric:     "#4dd2ff",
	DeathsMetric:    "#ff8080",
	RecoveredMetric: "#4dffb8",
}
