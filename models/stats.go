package models

import (
	"math"
)

// PriceStats summarizes the price entries currently shown to a user.
type PriceStats struct {
	Min   int64 `json:"min"`
	Max   int64 `json:"max"`
	Avg   int64 `json:"avg"`
	Count int   `json:"count"`
}

// SummarizePrices computes min/max/average over the given entries. The
// average is the arithmetic mean rounded to the nearest Kama. ok is false
// when there are no entries; callers render a "no data" state in that case,
// never zero values.
func SummarizePrices(entries []PriceEntry) (stats PriceStats, ok bool) {
	if len(entries) == 0 {
		return PriceStats{}, false
	}
	stats.Min = entries[0].Price
	stats.Max = entries[0].Price
	var sum int64
	for _, e := range entries {
		if e.Price < stats.Min {
			stats.Min = e.Price
		}
		if e.Price > stats.Max {
			stats.Max = e.Price
		}
		sum += e.Price
	}
	stats.Count = len(entries)
	stats.Avg = int64(math.Round(float64(sum) / float64(len(entries))))
	return stats, true
}
