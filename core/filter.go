package core

import (
	"time"

	"github.com/huangsam/covidash/schema"
)

// FilterByDate keeps the records whose calendar date lies in [start, end], both ends inclusive.
// Relative order is preserved. An inverted range matches nothing.
func FilterByDate(dataset []schema.Record, start, end time.Time) []schema.Record {
	lo, hi := schema.TruncateDay(start), schema.TruncateDay(end)
	out := make([]schema.Record, 0)
	if lo.After(hi) {
		return out
	}
	for _, r := range dataset {
		d := schema.TruncateDay(r.Date)
		if d.Before(lo) || d.After(hi) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ResolveCountry returns the country constraint that FilterByRegionCountry applies.
// When a region is given and the country never appears with that region in the slice,
// the country constraint is dropped and only the region narrows the slice.
func ResolveCountry(slice []schema.Record, region, country string) string {
	if region == "" || country == "" {
		return country
	}
	for _, r := range slice {
		if r.Region == region && r.Country == country {
			return country
		}
	}
	return ""
}

// FilterByRegionCountry narrows a slice by WHO region and country. Either may be empty,
// meaning no restriction. See ResolveCountry for the fallback when they disagree.
func FilterByRegionCountry(slice []schema.Record, region, country string) []schema.Record {
	country = ResolveCountry(slice, region, country)
	out := make([]schema.Record, 0)
	for _, r := range slice {
		if region != "" && r.Region != region {
			continue
		}
		if country != "" && r.Country != country {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Regions lists the distinct WHO regions of the dataset in order of first occurrence.
func Regions(dataset []schema.Record) []string {
	return distinct(dataset, func(r schema.Record) (string, bool) {
		return r.Region, r.Region != ""
	})
}

// CountriesInRegion lists the distinct countries of a region in order of first occurrence.
// An empty region lists every country.
func CountriesInRegion(dataset []schema.Record, region string) []string {
	return distinct(dataset, func(r schema.Record) (string, bool) {
		return r.Country, r.Country != "" && (region == "" || r.Region == region)
	})
}

// RegionSummaries lists every region with its countries, both in order of first occurrence.
func RegionSummaries(dataset []schema.Record) []schema.RegionSummary {
	regions := Regions(dataset)
	out := make([]schema.RegionSummary, 0, len(regions))
	for _, region := range regions {
		out = append(out, schema.RegionSummary{Region: region, Countries: CountriesInRegion(dataset, region)})
	}
	return out
}

// DateBounds returns the earliest and latest dates of the dataset.
// ok is false for an empty dataset.
func DateBounds(dataset []schema.Record) (minDate, maxDate time.Time, ok bool) {
	for i, r := range dataset {
		d := schema.TruncateDay(r.Date)
		if i == 0 || d.Before(minDate) {
			minDate = d
		}
		if i == 0 || d.After(maxDate) {
			maxDate = d
		}
	}
	return minDate, maxDate, len(dataset) > 0
}

func distinct(dataset []schema.Record, pick func(schema.Record) (string, bool)) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range dataset {
		v, ok := pick(r)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
