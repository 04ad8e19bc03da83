package savings

import (
	"sort"
	"time"

	"solar-savings/internal/model"
)

// DedupSortSamples collapses concatenated multi-file input into one chronological
// sequence. Duplicate timestamps are resolved last-wins, so when overlapping
// files are loaded in order the most recently loaded file takes precedence.
// Keys are instants, not wall clocks, so the same moment parsed from files in
// different zones still collapses.
func DedupSortSamples(samples []model.EnergySample) []model.EnergySample {
	byTime := make(map[int64]model.EnergySample, len(samples))
	for _, s := range samples {
		byTime[s.Time.UnixNano()] = s
	}
	out := make([]model.EnergySample, 0, len(byTime))
	for _, s := range byTime {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}

// DedupSortPrices does the same for price intervals, keyed by ValidFrom.
func DedupSortPrices(prices []model.PriceInterval) []model.PriceInterval {
	byFrom := make(map[int64]model.PriceInterval, len(prices))
	for _, p := range prices {
		byFrom[p.ValidFrom.UnixNano()] = p
	}
	out := make([]model.PriceInterval, 0, len(byFrom))
	for _, p := range byFrom {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ValidFrom.Before(out[j].ValidFrom) })
	return out
}

// Merge produces one enriched sample per energy sample by locating the price
// interval whose window contains the sample's timestamp. Price intervals are
// hourly and aligned to the hour, so the lookup is a single map access on the
// hour-truncated timestamp.
//
// Merge fails closed: samples covered by no interval are collected and
// returned together in a MissingPriceError, never silently dropped.
func Merge(samples []model.EnergySample, prices []model.PriceInterval, interval time.Duration) ([]model.EnrichedSample, error) {
	byHour := make(map[int64]model.PriceInterval, len(prices))
	for _, p := range prices {
		byHour[p.ValidFrom.Truncate(time.Hour).UnixNano()] = p
	}

	out := make([]model.EnrichedSample, 0, len(samples))
	var gaps []time.Time
	for _, s := range samples {
		p, ok := byHour[s.Time.Truncate(time.Hour).UnixNano()]
		if !ok || !p.Contains(s.Time) {
			gaps = append(gaps, s.Time)
			continue
		}
		enriched, err := Enrich(s, p, interval)
		if err != nil {
			return nil, err
		}
		out = append(out, enriched)
	}
	if len(gaps) > 0 {
		return nil, &MissingPriceError{Timestamps: gaps}
	}
	return out, nil
}
