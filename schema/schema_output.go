package schema

import "strconv"

// Column headers of the two download files.
var (
	PieExportColumns = []string{"date", "variable", "value"}
	BarExportColumns = []string{"Metric", "date", "Count"}
)

// PieTable builds the pie download table from melted rows.
func PieTable(melted []MeltedRow) Table {
	rows := make([][]string, 0, len(melted))
	for _, m := range melted {
		rows = append(rows, []string{FormatDate(m.Date), string(m.Metric), strconv.FormatInt(m.Value, 10)})
	}
	return Table{Columns: append([]string(nil), PieExportColumns...), Rows: rows}
}

// BarTable builds the bar download table from groups keyed by (metric, date).
func BarTable(groups []Group) Table {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		row := make([]string, 0, len(g.Keys)+1)
		row = append(row, g.Keys...)
		row = append(row, strconv.FormatInt(g.Value, 10))
		rows = append(rows, row)
	}
	return Table{Columns: append([]string(nil), BarExportColumns...), Rows: rows}
}

// ProportionsTable builds the per-metric proportions of the pie chart from groups keyed by metric.
func ProportionsTable(groups []Group) Table {
	var total int64
	for _, g := range groups {
		total += g.Value
	}
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		share := 0.0
		if total > 0 {
			share = 100 * float64(g.Value) / float64(total)
		}
		rows = append(rows, []string{
			firstKey(g),
			strconv.FormatInt(g.Value, 10),
			strconv.FormatFloat(share, 'f', -1, 64),
		})
	}
	return Table{Columns: []string{"variable", "value", "share"}, Rows: rows}
}

// SummaryTable builds the summary counters of both chart selections.
func SummaryTable(views DerivedViews) Table {
	row := func(chart string, v ChartView) []string {
		return []string{
			chart,
			v.Country,
			strconv.FormatInt(v.Totals.Cases, 10),
			strconv.FormatInt(v.Totals.Deaths, 10),
			strconv.FormatInt(v.Totals.Recovered, 10),
		}
	}
	return Table{
		Columns: []string{"chart", "country", "cases", "deaths", "recovered"},
		Rows:    [][]string{row("pie", views.Pie), row("bar", views.Bar)},
	}
}

// ContributionTable builds the percentage contribution table.
func ContributionTable(contributions []Contribution) Table {
	rows := make([][]string, 0, len(contributions))
	for _, c := range contributions {
		rows = append(rows, []string{c.Country, strconv.FormatFloat(c.Percentage, 'f', -1, 64)})
	}
	return Table{Columns: []string{"country", "percentage_contribution"}, Rows: rows}
}

// CountryValuesTable builds a static map table for one metric.
func CountryValuesTable(values []CountryValue, m Metric) Table {
	rows := make([][]string, 0, len(values))
	for _, v := range values {
		rows = append(rows, []string{v.Country, strconv.FormatInt(v.Value, 10)})
	}
	return Table{Columns: []string{"country", string(m)}, Rows: rows}
}

// MapFramesTable flattens the animated map frames into one row per (date, country).
func MapFramesTable(frames []MapFrame, m Metric) Table {
	var rows [][]string
	for _, f := range frames {
		date := FormatDate(f.Date)
		for _, v := range f.Values {
			rows = append(rows, []string{date, v.Country, strconv.FormatInt(v.Value, 10)})
		}
	}
	return Table{Columns: []string{"date", "country", string(m)}, Rows: rows}
}

// RegionsTable builds the region selector table with the number of countries per region.
func RegionsTable(regions []RegionSummary) Table {
	rows := make([][]string, 0, len(regions))
	for _, r := range regions {
		rows = append(rows, []string{r.Region, strconv.Itoa(len(r.Countries))})
	}
	return Table{Columns: []string{"region", "countries"}, Rows: rows}
}

// MapsTable flattens the three map inputs into one table. Static maps leave the date empty.
func MapsTable(maps MapViews) Table {
	var rows [][]string
	for _, v := range maps.Deaths {
		rows = append(rows, []string{string(DeathsMetric), "", v.Country, strconv.FormatInt(v.Value, 10)})
	}
	for _, v := range maps.Recovered {
		rows = append(rows, []string{string(RecoveredMetric), "", v.Country, strconv.FormatInt(v.Value, 10)})
	}
	for _, f := range maps.CasesFrames {
		date := FormatDate(f.Date)
		for _, v := range f.Values {
			rows = append(rows, []string{string(CasesMetric), date, v.Country, strconv.FormatInt(v.Value, 10)})
		}
	}
	return Table{Columns: []string{"map", "date", "country", "value"}, Rows: rows}
}

// RecordsTable builds a table with the renamed columns of the source dataset.
func RecordsTable(records []Record) Table {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			FormatDate(r.Date),
			r.Country,
			r.Region,
			strconv.FormatInt(r.Cases, 10),
			strconv.FormatInt(r.Deaths, 10),
			strconv.FormatInt(r.Recovered, 10),
		})
	}
	return Table{Columns: []string{"date", "country", "region", "cases", "deaths", "recovered"}, Rows: rows}
}

func firstKey(g Group) string {
	if len(g.Keys) == 0 {
		return ""
	}
	return g.Keys[0]
}
