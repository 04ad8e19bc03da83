package savings

import (
	"math"
	"time"

	"solar-savings/internal/model"
)

// Enrich joins one energy sample with its covering price interval and
// derives the per-sample financial fields.
//
// Self-consumed energy is min(consumption, pv + battery discharge), a
// conservative estimate of kWh avoided from grid purchase. It counts battery
// discharge as self-generated even when the battery was charged from the
// grid, so self-sufficiency savings can be slightly optimistic during
// grid-charging periods.
func Enrich(s model.EnergySample, price model.PriceInterval, interval time.Duration) (model.EnrichedSample, error) {
	for _, f := range s.EnergyFields() {
		if _, err := model.WhToKWh(f.Value, interval); err != nil {
			return model.EnrichedSample{}, &DataIntegrityError{Time: s.Time, Field: f.Name, Value: f.Value}
		}
	}

	div := model.KWhDivisor(interval)
	out := model.EnrichedSample{
		EnergySample: s,

		PurchasePrice:      price.PurchasePrice,
		SellPrice:          price.SellPrice,
		EffectiveSellPrice: math.Max(price.SellPrice, 0),

		ConsumptionKWh:      s.ConsumptionWh / div,
		PVKWh:               s.PVWh / div,
		GridImportKWh:       s.GridImportWh / div,
		GridExportKWh:       s.GridExportWh / div,
		BatteryChargeKWh:    s.BatteryChargeWh / div,
		BatteryDischargeKWh: s.BatteryDischargeWh / div,
	}

	out.SelfConsumedKWh = math.Min(out.ConsumptionKWh, out.PVKWh+out.BatteryDischargeKWh)

	out.ActualCost = out.GridImportKWh*out.PurchasePrice - out.GridExportKWh*out.EffectiveSellPrice
	out.HypotheticalCost = out.ConsumptionKWh * out.PurchasePrice
	out.SelfSufficiencySavings = out.SelfConsumedKWh * out.PurchasePrice
	out.ExportRevenue = out.GridExportKWh * out.EffectiveSellPrice
	out.TotalSavings = out.HypotheticalCost - out.ActualCost

	return out, nil
}
