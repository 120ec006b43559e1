package core

import (
	"time"

	"github.com/huangsam/covidash/schema"
)

// day returns a UTC calendar date in January 2020.
func day(d int) time.Time {
	return time.Date(2020, 1, d, 0, 0, 0, 0, time.UTC)
}

// scenarioDataset is the two-row US dataset used throughout the engine tests.
func scenarioDataset() []schema.Record {
	return []schema.Record{
		{Date: day(22), Country: "US", Region: "Americas", Cases: 1, Deaths: 0, Recovered: 0},
		{Date: day(23), Country: "US", Region: "Americas", Cases: 2, Deaths: 1, Recovered: 1},
	}
}

// multiRegionDataset spans two regions and three countries over three days.
func multiRegionDataset() []schema.Record {
	return []schema.Record{
		{Date: day(22), Country: "US", Region: "Americas", Cases: 1, Deaths: 0, Recovered: 0},
		{Date: day(22), Country: "France", Region: "Europe", Cases: 4, Deaths: 1, Recovered: 0},
		{Date: day(23), Country: "US", Region: "Americas", Cases: 2, Deaths: 1, Recovered: 1},
		{Date: day(23), Country: "Brazil", Region: "Americas", Cases: 5, Deaths: 0, Recovered: 2},
		{Date: day(24), Country: "France", Region: "Europe", Cases: 6, Deaths: 2, Recovered: 3},
		{Date: day(24), Country: "US", Region: "Americas", Cases: 3, Deaths: 1, Recovered: 2},
	}
}
