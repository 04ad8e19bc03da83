package model

import (
	"fmt"
	"math"
	"time"
)

// DefaultSampleInterval is the cadence the inverter exports at. The kWh
// conversion divisor is always derived from the configured interval rather
// than baked in, so a source sampling at a different cadence stays correct.
const DefaultSampleInterval = 10 * time.Minute

// KWhDivisor returns the divisor converting a watt-hour reading measured
// over the given interval into kWh: 1000 * 3600 / interval_seconds.
// For the default 10-minute cadence this is 6000.
func KWhDivisor(interval time.Duration) float64 {
	return 1000 * 3600 / interval.Seconds()
}

// WhToKWh converts a raw watt-hour interval reading to kWh. Negative or
// non-finite values are rejected instead of being coerced.
func WhToKWh(wh float64, interval time.Duration) (float64, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("sample interval must be positive, got %s", interval)
	}
	if math.IsNaN(wh) || math.IsInf(wh, 0) {
		return 0, fmt.Errorf("energy value is not a number")
	}
	if wh < 0 {
		return 0, fmt.Errorf("energy value is negative: %g", wh)
	}
	return wh / KWhDivisor(interval), nil
}
