// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/huangsam/covidash/internal/contract"
	"github.com/huangsam/covidash/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSummary prints the summary counters using the configured output format.
func (ow *OutWriter) WriteSummary(views schema.DerivedViews, cfg *contract.Config) error {
	return PrintSummary(views, cfg)
}

// WritePie prints the pie chart view using the configured output format.
func (ow *OutWriter) WritePie(view schema.ChartView, cfg *contract.Config) error {
	return PrintPie(view, cfg)
}

// WriteBar prints the bar chart view using the configured output format.
func (ow *OutWriter) WriteBar(view schema.ChartView, cfg *contract.Config) error {
	return PrintBar(view, cfg)
}

// WriteMaps prints the map views using the configured output format.
func (ow *OutWriter) WriteMaps(maps schema.MapViews, cfg *contract.Config) error {
	return PrintMaps(maps, cfg)
}

// WriteContribution prints the percentage contribution using the configured output format.
func (ow *OutWriter) WriteContribution(contributions []schema.Contribution, metric schema.Metric, cfg *contract.Config) error {
	return PrintContribution(contributions, metric, cfg)
}

// WriteRegions prints the region selector choices using the configured output format.
func (ow *OutWriter) WriteRegions(regions []schema.RegionSummary, cfg *contract.Config) error {
	return PrintRegions(regions, cfg)
}

// WriteRecords prints filtered source records using the configured output format.
func (ow *OutWriter) WriteRecords(records []schema.Record, cfg *contract.Config) error {
	return PrintRecords(records, cfg)
}
