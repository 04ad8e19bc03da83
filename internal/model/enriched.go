package model

// EnrichedSample is an EnergySample joined with the price interval covering
// its timestamp, plus the derived per-sample financial fields. Instances are
// immutable once produced by the merge stage.
type EnrichedSample struct {
	EnergySample

	PurchasePrice float64
	SellPrice     float64
	// EffectiveSellPrice is SellPrice floored at zero: exporting during
	// negative-price hours earns nothing and costs nothing.
	EffectiveSellPrice float64

	ConsumptionKWh      float64
	PVKWh               float64
	GridImportKWh       float64
	GridExportKWh       float64
	BatteryChargeKWh    float64
	BatteryDischargeKWh float64

	// SelfConsumedKWh = min(consumption, pv + battery discharge); the
	// portion of consumption that never touched the grid.
	SelfConsumedKWh float64

	ActualCost             float64
	HypotheticalCost       float64
	SelfSufficiencySavings float64
	ExportRevenue          float64
	// TotalSavings == HypotheticalCost - ActualCost.
	TotalSavings float64
}
