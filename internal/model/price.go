package model

import "time"

// PriceInterval is one hourly spot-price window [ValidFrom, ValidTo).
// Prices are currency units per kWh; SellPrice may be negative.
type PriceInterval struct {
	ValidFrom time.Time
	ValidTo   time.Time

	PurchasePrice float64
	SellPrice     float64
}

// Contains reports whether t falls inside [ValidFrom, ValidTo).
func (p PriceInterval) Contains(t time.Time) bool {
	return !t.Before(p.ValidFrom) && t.Before(p.ValidTo)
}

func (p PriceInterval) Duration() time.Duration {
	return p.ValidTo.Sub(p.ValidFrom)
}
