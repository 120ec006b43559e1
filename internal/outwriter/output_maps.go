package outwriter

import (
	"fmt"
	"io"
	"sort"

	"github.com/huangsam/covidash/internal/contract"
	"github.com/huangsam/covidash/internal/parquet"
	"github.com/huangsam/covidash/schema"
)

// mapFrameJSON is one date of the animated cases map.
type mapFrameJSON struct {
	Date   string                `json:"date"`
	Values []schema.CountryValue `json:"values"`
}

// mapsJSON is the JSON form of the map views.
type mapsJSON struct {
	Deaths      []schema.CountryValue `json:"deaths"`
	Recovered   []schema.CountryValue `json:"recovered"`
	CasesFrames []mapFrameJSON        `json:"cases_frames"`
}

// NewMapsJSON builds the JSON form of the map views with calendar dates.
func NewMapsJSON(maps schema.MapViews) any {
	frames := make([]mapFrameJSON, 0, len(maps.CasesFrames))
	for _, f := range maps.CasesFrames {
		frames = append(frames, mapFrameJSON{Date: schema.FormatDate(f.Date), Values: f.Values})
	}
	return mapsJSON{
		Deaths:      nonNilValues(maps.Deaths),
		Recovered:   nonNilValues(maps.Recovered),
		CasesFrames: frames,
	}
}

// PrintMaps outputs the map views, dispatching based on the output format configured.
func PrintMaps(maps schema.MapViews, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		return writeParquet(cfg.OutputFile, func(path string) error {
			return parquet.WriteRows(parquet.ConvertMaps(maps), path)
		})
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteMaps(w, maps, cfg)
	}, successMessage(cfg.Output))
}

// WriteMaps writes the map views.
func WriteMaps(w io.Writer, maps schema.MapViews, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, NewMapsJSON(maps))
	case schema.CSVOut:
		return writeCSVTable(w, schema.MapsTable(maps))
	default:
		return writeMapsTables(w, maps, cfg)
	}
}

// writeMapsTables prints the largest countries of each map, one table per map.
// The animated cases map is shown at its last frame.
func writeMapsTables(w io.Writer, maps schema.MapViews, cfg *contract.Config) error {
	if err := writeCountryValuesTable(w, maps.Deaths, schema.DeathsMetric, "", cfg); err != nil {
		return err
	}
	if err := writeCountryValuesTable(w, maps.Recovered, schema.RecoveredMetric, "", cfg); err != nil {
		return err
	}

	if len(maps.CasesFrames) == 0 {
		_, _ = fmt.Fprintln(w, "No case frames in date range")
		return nil
	}
	last := maps.CasesFrames[len(maps.CasesFrames)-1]
	if err := writeCountryValuesTable(w, last.Values, schema.CasesMetric, schema.FormatDate(last.Date), cfg); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Cases map has %d frames from %s to %s\n",
		len(maps.CasesFrames), schema.FormatDate(maps.CasesFrames[0].Date), schema.FormatDate(last.Date))
	return nil
}

func writeCountryValuesTable(w io.Writer, values []schema.CountryValue, m schema.Metric, date string, cfg *contract.Config) error {
	title := fmt.Sprintf("%s by country", metricLabel(m, cfg))
	if date != "" {
		title = fmt.Sprintf("%s on %s", title, date)
	}
	_, _ = fmt.Fprintln(w, title)

	sorted := sortedCountryValues(values)
	shown := limitRows(sorted, cfg.Limit)

	_, fmtCount := createFormatters(cfg.Precision)
	nameWidth := GetMaxTableNameWidth(cfg, 2)
	data := make([][]string, 0, len(shown))
	for i, v := range shown {
		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			contract.TruncateText(v.Country, nameWidth),
			fmtCount(v.Value),
		})
	}
	if err := renderTable(w, []string{"Rank", "Country", metricLabel(m, cfg)}, data); err != nil {
		return err
	}
	showingFooter(w, len(shown), len(sorted), "countries")
	return nil
}

// sortedCountryValues orders countries by descending value, keeping first-occurrence order on ties.
func sortedCountryValues(values []schema.CountryValue) []schema.CountryValue {
	sorted := append([]schema.CountryValue(nil), values...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value > sorted[j].Value
	})
	return sorted
}

func nonNilValues(values []schema.CountryValue) []schema.CountryValue {
	if values == nil {
		return []schema.CountryValue{}
	}
	return values
}
