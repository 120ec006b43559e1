// Package core has the filter/aggregate engine and the execution entry points of covidash.
package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/huangsam/covidash/internal/chart"
	"github.com/huangsam/covidash/internal/contract"
	"github.com/huangsam/covidash/internal/ingest"
	"github.com/huangsam/covidash/internal/outwriter"
	"github.com/huangsam/covidash/schema"
	"go.uber.org/zap"
)

// ExecutorFunc defines the function signature for executing the different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.DatasetManager) error

// ErrEmptyStore is returned when the store holds no dataset yet.
var ErrEmptyStore = errors.New("dataset store is empty; run 'covidash store import <file>' first")

// LoadDataset reads the dataset from the configured source. A dataset attached
// to the context with WithDataset takes precedence.
func LoadDataset(ctx context.Context, cfg *contract.Config, mgr contract.DatasetManager) ([]schema.Record, error) {
	if dataset, ok := datasetFromContext(ctx); ok {
		return dataset, nil
	}

	if cfg.Source != schema.StoreSource {
		return ingest.LoadFile(ctx, cfg.InputPath)
	}

	store, err := datasetStore(mgr)
	if err != nil {
		return nil, err
	}
	records, err := store.LoadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset from store: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyStore
	}
	return records, nil
}

// SelectionFromConfig builds the selection of a config. Unset dates fall back
// to the bounds of the dataset.
func SelectionFromConfig(dataset []schema.Record, cfg *contract.Config) schema.Selection {
	sel := DefaultSelection(dataset)
	if !cfg.StartDate.IsZero() {
		sel.Start = schema.TruncateDay(cfg.StartDate)
	}
	if !cfg.EndDate.IsZero() {
		sel.End = schema.TruncateDay(cfg.EndDate)
	}
	sel.Region = cfg.Region
	sel.CountryPie = cfg.CountryPie
	sel.CountryBar = cfg.CountryBar
	sel.ShowContribution = cfg.ShowContribution
	sel.ContributionMetric = cfg.ContributionMetric()
	return sel
}

// GetDerivedViews loads the dataset and recomputes every view for the config, without printing.
func GetDerivedViews(ctx context.Context, cfg *contract.Config, mgr contract.DatasetManager) (schema.DerivedViews, error) {
	dataset, err := LoadDataset(ctx, cfg, mgr)
	if err != nil {
		return schema.DerivedViews{}, err
	}
	sel := SelectionFromConfig(dataset, cfg)
	if sel.Start.After(sel.End) {
		zap.L().Warn("Start date is after end date; the selection is empty",
			zap.String("start", schema.FormatDate(sel.Start)),
			zap.String("end", schema.FormatDate(sel.End)))
	}
	views := Recompute(dataset, sel)
	zap.L().Debug("Recomputed derived views",
		zap.Int("dataset_rows", len(dataset)),
		zap.Int("date_rows", views.DateRows),
		zap.Int("pie_rows", len(views.Pie.Rows)),
		zap.Int("bar_rows", len(views.Bar.Rows)))
	return views, nil
}

// prepareViews computes the views and prints the dataset header for text output.
func prepareViews(ctx context.Context, cfg *contract.Config, mgr contract.DatasetManager) (schema.DerivedViews, error) {
	views, err := GetDerivedViews(ctx, cfg, mgr)
	if err != nil {
		return views, err
	}
	if cfg.Output == schema.TextOut {
		outwriter.LogDatasetHeader(headerOut, cfg, views.Selection)
	}
	return views, nil
}

// ExecuteSummary prints the totals of the pie and bar selections.
func ExecuteSummary(ctx context.Context, cfg *contract.Config, mgr contract.DatasetManager) error {
	views, err := prepareViews(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outWriter.WriteSummary(views, cfg)
}

// ExecutePie prints the pie chart view.
func ExecutePie(ctx context.Context, cfg *contract.Config, mgr contract.DatasetManager) error {
	views, err := prepareViews(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outWriter.WritePie(views.Pie, cfg)
}

// ExecuteBar prints the bar chart view.
func ExecuteBar(ctx context.Context, cfg *contract.Config, mgr contract.DatasetManager) error {
	views, err := prepareViews(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outWriter.WriteBar(views.Bar, cfg)
}

// ExecuteMaps prints the inputs of the three maps.
func ExecuteMaps(ctx context.Context, cfg *contract.Config, mgr contract.DatasetManager) error {
	views, err := prepareViews(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outWriter.WriteMaps(views.Maps, cfg)
}

// ExecuteContribution prints the percentage contribution of every country.
// The contribution is always computed, whatever the config toggle says.
func ExecuteContribution(ctx context.Context, cfg *contract.Config, mgr contract.DatasetManager) error {
	withContribution := cfg.Clone()
	withContribution.ShowContribution = true

	views, err := prepareViews(ctx, withContribution, mgr)
	if err != nil {
		return err
	}
	return outWriter.WriteContribution(views.Contribution, views.Selection.ContributionMetric, withContribution)
}

// ExecuteRecords prints the source records of the pie selection.
func ExecuteRecords(ctx context.Context, cfg *contract.Config, mgr contract.DatasetManager) error {
	views, err := prepareViews(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outWriter.WriteRecords(views.Pie.Rows, cfg)
}

// ExecuteRegions prints the regions of the dataset with their countries.
func ExecuteRegions(ctx context.Context, cfg *contract.Config, mgr contract.DatasetManager) error {
	dataset, err := LoadDataset(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outWriter.WriteRegions(RegionSummaries(dataset), cfg)
}

// ExecuteExport writes the pie and bar download files into the output directory.
// The contribution table is written too when it is enabled.
func ExecuteExport(ctx context.Context, cfg *contract.Config, mgr contract.DatasetManager) error {
	views, err := GetDerivedViews(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	exports := []struct {
		name  string
		table schema.Table
	}{
		{schema.PieExportFile, schema.PieTable(views.Pie.Melted)},
		{schema.BarExportFile, schema.BarTable(views.Bar.Groups)},
	}
	if views.Selection.ShowContribution {
		exports = append(exports, struct {
			name  string
			table schema.Table
		}{schema.ContributionExportFile, schema.ContributionTable(views.Contribution)})
	}

	for _, export := range exports {
		data, err := ToCSVBytes(export.table)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", export.name, err)
		}
		path := filepath.Join(cfg.OutputDir, export.name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", export.name, err)
		}
		_, _ = fmt.Fprintf(statusOut, "💾 Wrote %d rows to %s\n", len(export.table.Rows), path)
	}
	return nil
}

// ExecuteRender draws the pie, bar, timeline and (when enabled) contribution charts
// into the output directory. Charts without data are skipped with a warning.
func ExecuteRender(ctx context.Context, cfg *contract.Config, mgr contract.DatasetManager) error {
	views, err := GetDerivedViews(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	opts := chart.Options{Format: cfg.ChartFormat, Width: cfg.ChartWidth, Height: cfg.ChartHeight, Limit: cfg.Limit}
	renders := []struct {
		name   string
		render func(*bytes.Buffer) error
	}{
		{chart.PieChartName, func(buf *bytes.Buffer) error { return chart.RenderPie(buf, views.Pie, opts) }},
		{chart.BarChartName, func(buf *bytes.Buffer) error { return chart.RenderBar(buf, views.Bar, opts) }},
		{chart.TimelineChartName, func(buf *bytes.Buffer) error { return chart.RenderTimeline(buf, views.Bar, opts) }},
	}
	if views.Selection.ShowContribution {
		renders = append(renders, struct {
			name   string
			render func(*bytes.Buffer) error
		}{chart.ContributionChartName, func(buf *bytes.Buffer) error {
			return chart.RenderContribution(buf, views.Contribution, views.Selection.ContributionMetric, opts)
		}})
	}

	for _, r := range renders {
		var buf bytes.Buffer
		err := r.render(&buf)
		if errors.Is(err, chart.ErrNoData) {
			contract.LogWarn(fmt.Sprintf("Skipping %s", r.name), err)
			continue
		}
		if err != nil {
			return err
		}
		path := filepath.Join(cfg.OutputDir, chart.FileName(r.name, cfg.ChartFormat))
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		_, _ = fmt.Fprintf(statusOut, "🖼️  Rendered %s\n", path)
	}
	return nil
}

// ExecuteStoreImport reads the input file and replaces the dataset held by the store.
func ExecuteStoreImport(ctx context.Context, cfg *contract.Config, mgr contract.DatasetManager) error {
	store, err := datasetStore(mgr)
	if err != nil {
		return err
	}
	records, err := ingest.LoadFile(ctx, cfg.InputPath)
	if err != nil {
		return err
	}
	sourceName := filepath.Base(cfg.InputPath)
	if err := store.ReplaceRecords(ctx, sourceName, records); err != nil {
		return fmt.Errorf("failed to import dataset: %w", err)
	}
	_, _ = fmt.Fprintf(statusOut, "✅ Imported %s records from %s into %s store\n",
		contract.FormatCount(int64(len(records))), sourceName, cfg.StoreBackend)
	return nil
}

// datasetStore returns the store of the manager or an error when none is configured.
func datasetStore(mgr contract.DatasetManager) (contract.DatasetStore, error) {
	if mgr == nil {
		return nil, errors.New("dataset store is not initialized")
	}
	store := mgr.GetDatasetStore()
	if store == nil {
		return nil, errors.New("dataset store is not initialized")
	}
	return store, nil
}
