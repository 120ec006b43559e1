package core

import (
	"github.com/huangsam/covidash/schema"
)

// DefaultSelection returns the selection used before any narrowing: the full date range
// of the dataset, no region, no countries and no contribution breakdown.
func DefaultSelection(dataset []schema.Record) schema.Selection {
	start, end, _ := DateBounds(dataset)
	return schema.Selection{
		Start:              start,
		End:                end,
		ContributionMetric: schema.CasesMetric,
	}
}

// Recompute runs the whole pipeline for one selection and returns every derived view.
// It holds no state between calls; the dataset is only read.
func Recompute(dataset []schema.Record, sel schema.Selection) schema.DerivedViews {
	dated := FilterByDate(dataset, sel.Start, sel.End)

	views := schema.DerivedViews{
		Selection: sel,
		DateRows:  len(dated),
		Pie:       buildChartView(dated, sel.Region, sel.CountryPie, schema.MetricKey),
		Bar:       buildChartView(dated, sel.Region, sel.CountryBar, schema.MetricKey, schema.DateKey),
		Maps: schema.MapViews{
			Deaths:      CountryValues(dated, schema.DeathsMetric),
			Recovered:   CountryValues(dated, schema.RecoveredMetric),
			CasesFrames: MapFrames(dated, schema.CasesMetric),
		},
	}

	if sel.ShowContribution {
		metric := sel.ContributionMetric
		if _, ok := schema.ValidMetrics[metric]; !ok {
			metric = schema.CasesMetric
		}
		views.Selection.ContributionMetric = metric
		views.Contribution = PercentageContribution(dated, metric)
	}

	return views
}

// buildChartView filters the date slice for one chart and derives its aggregates.
func buildChartView(dated []schema.Record, region, country string, keys ...schema.GroupKey) schema.ChartView {
	rows := FilterByRegionCountry(dated, region, country)
	melted := Melt(rows)
	return schema.ChartView{
		Country: ResolveCountry(dated, region, country),
		Rows:    rows,
		Totals:  Totals(rows),
		Melted:  melted,
		Groups:  GroupSum(melted, keys...),
	}
}
