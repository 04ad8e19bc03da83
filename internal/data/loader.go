package data

import (
	"time"
)

// Source names the raw input files for one load pass.
type Source struct {
	Dir        string
	EnergyGlob string
	PricesGlob string
	// Location used to interpret naive timestamps.
	Location *time.Location
}

// Load discovers and reads all matching energy and price files, going
// through the cache when one is provided. The returned snapshot is shared
// between cache hits; callers must treat it as read-only.
func Load(src Source, cache *LoadCache) (*Snapshot, error) {
	loc := src.Location
	if loc == nil {
		loc = time.UTC
	}

	energyPaths, err := Discover(src.Dir, src.EnergyGlob)
	if err != nil {
		return nil, err
	}
	pricePaths, err := Discover(src.Dir, src.PricesGlob)
	if err != nil {
		return nil, err
	}

	var key string
	if cache != nil {
		key, err = cache.Key(append(append([]string(nil), energyPaths...), pricePaths...))
		if err != nil {
			return nil, err
		}
		if snap, ok := cache.Get(key); ok {
			return snap, nil
		}
	}

	samples, energyReport, err := LoadEnergyFiles(energyPaths, loc)
	if err != nil {
		return nil, err
	}
	prices, priceReport, err := LoadPriceFiles(pricePaths, loc)
	if err != nil {
		return nil, err
	}
	energyReport.Merge(priceReport)

	snap := &Snapshot{
		Samples: samples,
		Prices:  prices,
		Report:  energyReport,
		Loaded:  time.Now(),
	}
	if cache != nil {
		cache.Set(key, snap)
	}
	return snap, nil
}
