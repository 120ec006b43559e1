// Package chart renders the pie, bar, timeline and contribution charts to PNG or SVG
// using github.com/wcharczuk/go-chart/v2.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/huangsam/covidash/schema"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when a chart has nothing to draw.
var ErrNoData = errors.New("chart has no non-zero values")

// Chart file names, without the format extension.
const (
	PieChartName          = "pie_chart"
	BarChartName          = "bar_chart"
	TimelineChartName     = "timeline_chart"
	ContributionChartName = "contribution_chart"
)

// Options controls the size and format of a rendered chart.
type Options struct {
	Format schema.ChartFormat
	Width  int
	Height int
	Limit  int // Maximum number of bars in the contribution chart (0 = all)
}

// FileName returns the file name of a chart for the given format.
func FileName(name string, format schema.ChartFormat) string {
	return fmt.Sprintf("%s.%s", name, format)
}

// metricColor returns the palette color of a metric.
func metricColor(m schema.Metric) drawing.Color {
	hex, ok := schema.MetricColors[m]
	if !ok {
		return chart.ColorAlternateGray
	}
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// provider returns the go-chart renderer of a chart format.
func provider(format schema.ChartFormat) chart.RendererProvider {
	if format == schema.SVGChart {
		return chart.SVG
	}
	return chart.PNG
}

// RenderPie draws the metric proportions of a chart view as a pie.
func RenderPie(w io.Writer, view schema.ChartView, opts Options) error {
	var total int64
	for _, g := range view.Groups {
		total += g.Value
	}
	if total == 0 {
		return ErrNoData
	}

	values := make([]chart.Value, 0, len(view.Groups))
	for _, g := range view.Groups {
		if g.Value == 0 || len(g.Keys) == 0 {
			continue
		}
		m := schema.Metric(g.Keys[0])
		share := 100 * float64(g.Value) / float64(total)
		col := metricColor(m)
		values = append(values, chart.Value{
			Value: float64(g.Value),
			Label: fmt.Sprintf("%s %.1f%%", m.Label(), share),
			Style: chart.Style{FillColor: col, StrokeColor: drawing.ColorWhite, StrokeWidth: 2},
		})
	}

	pie := chart.PieChart{
		Title:  chartTitle("Proportions", view.Country),
		Width:  opts.Width,
		Height: opts.Height,
		Values: values,
	}
	if err := pie.Render(provider(opts.Format), w); err != nil {
		return fmt.Errorf("failed to render pie chart: %w", err)
	}
	return nil
}

// RenderBar draws one bar per metric from the totals of a bar view.
func RenderBar(w io.Writer, view schema.ChartView, opts Options) error {
	var maxY int64
	bars := make([]chart.Value, 0, len(schema.AllMetrics))
	for _, m := range schema.AllMetrics {
		v := view.Totals.Value(m)
		maxY = max(maxY, v)
		col := metricColor(m)
		bars = append(bars, chart.Value{
			Value: float64(v),
			Label: m.Label(),
			Style: chart.Style{FillColor: col, StrokeColor: col},
		})
	}
	if maxY == 0 {
		return ErrNoData
	}

	bc := chart.BarChart{
		Title:      chartTitle("Totals", view.Country),
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		BarWidth:   max(8, opts.Width/(2*len(bars)+2)),
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: float64(maxY)}},
		Bars:       bars,
	}
	if err := bc.Render(provider(opts.Format), w); err != nil {
		return fmt.Errorf("failed to render bar chart: %w", err)
	}
	return nil
}

// RenderTimeline draws one series per metric over the dates of a bar view.
// The view groups must be keyed by (metric, date).
func RenderTimeline(w io.Writer, view schema.ChartView, opts Options) error {
	dates := map[schema.Metric][]time.Time{}
	counts := map[schema.Metric][]float64{}
	var maxY float64
	for _, g := range view.Groups {
		if len(g.Keys) < 2 {
			continue
		}
		date, err := schema.ParseDate(g.Keys[1])
		if err != nil {
			continue
		}
		m := schema.Metric(g.Keys[0])
		dates[m] = append(dates[m], date)
		counts[m] = append(counts[m], float64(g.Value))
		maxY = math.Max(maxY, float64(g.Value))
	}
	if len(dates) == 0 {
		return ErrNoData
	}

	var series []chart.Series
	for _, m := range schema.AllMetrics {
		xs, ys := dates[m], counts[m]
		if len(xs) == 0 {
			continue
		}
		// A single point has no x range, so it is widened by one day
		if len(xs) == 1 {
			xs = []time.Time{xs[0], xs[0].AddDate(0, 0, 1)}
			ys = []float64{ys[0], ys[0]}
		}
		col := metricColor(m)
		series = append(series, chart.TimeSeries{
			Name:    m.Label(),
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: col, FillColor: col.WithAlpha(64), StrokeWidth: 2},
		})
	}

	ch := chart.Chart{
		Title:      chartTitle("Evolution", view.Country),
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "Date", ValueFormatter: chart.TimeDateValueFormatter},
		YAxis:      chart.YAxis{Name: "Count", Range: &chart.ContinuousRange{Min: 0, Max: math.Max(1, maxY)}},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(provider(opts.Format), w); err != nil {
		return fmt.Errorf("failed to render timeline chart: %w", err)
	}
	return nil
}

// RenderContribution draws the largest percentage contributions as bars.
func RenderContribution(w io.Writer, contributions []schema.Contribution, metric schema.Metric, opts Options) error {
	sorted := append([]schema.Contribution(nil), contributions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Percentage > sorted[j].Percentage
	})
	if opts.Limit > 0 && len(sorted) > opts.Limit {
		sorted = sorted[:opts.Limit]
	}
	if len(sorted) == 0 || sorted[0].Percentage <= 0 {
		return ErrNoData
	}

	col := metricColor(metric)
	bars := make([]chart.Value, 0, len(sorted))
	for _, c := range sorted {
		bars = append(bars, chart.Value{
			Value: c.Percentage,
			Label: c.Country,
			Style: chart.Style{FillColor: col, StrokeColor: col},
		})
	}

	bc := chart.BarChart{
		Title:      fmt.Sprintf("Percentage contribution of %s", metric.Label()),
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		BarWidth:   max(8, opts.Width/(2*len(bars)+2)),
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: math.Ceil(sorted[0].Percentage)}},
		Bars:       bars,
	}
	if err := bc.Render(provider(opts.Format), w); err != nil {
		return fmt.Errorf("failed to render contribution chart: %w", err)
	}
	return nil
}

func chartTitle(prefix, country string) string {
	if country == "" {
		return prefix
	}
	return fmt.Sprintf("%s in %s", prefix, country)
}
