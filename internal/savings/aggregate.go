package savings

import (
	"sort"
	"time"

	"solar-savings/internal/model"
)

// AggregateMonthly groups enriched samples by calendar month in loc and sums
// each energy and cost field. Months come out in chronological order with a
// running cumulative-savings total.
func AggregateMonthly(samples []model.EnrichedSample, loc *time.Location) []model.MonthlySummary {
	byMonth := make(map[time.Time]*model.MonthlySummary)
	priceSums := make(map[time.Time]float64)

	for _, s := range samples {
		local := s.Time.In(loc)
		start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)

		m := byMonth[start]
		if m == nil {
			m = &model.MonthlySummary{
				Month:      start.Format("2006-01"),
				MonthStart: start,
			}
			byMonth[start] = m
		}

		m.SampleCount++
		m.TotalConsumptionKWh += s.ConsumptionKWh
		m.TotalPVKWh += s.PVKWh
		m.TotalImportKWh += s.GridImportKWh
		m.TotalExportKWh += s.GridExportKWh
		m.SelfConsumedKWh += s.SelfConsumedKWh
		m.ActualCost += s.ActualCost
		m.HypotheticalCost += s.HypotheticalCost
		m.SelfSufficiencySavings += s.SelfSufficiencySavings
		m.ExportRevenue += s.ExportRevenue
		m.TotalSavings += s.TotalSavings
		priceSums[start] += s.PurchasePrice
	}

	out := make([]model.MonthlySummary, 0, len(byMonth))
	for start, m := range byMonth {
		if m.SampleCount > 0 {
			m.AveragePurchasePrice = priceSums[start] / float64(m.SampleCount)
		}
		m.SelfSufficiencyRate = safeRatio(m.SelfConsumedKWh, m.TotalConsumptionKWh)
		m.SavingsRate = safeRatio(m.TotalSavings, m.HypotheticalCost)
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MonthStart.Before(out[j].MonthStart) })

	cum := 0.0
	for i := range out {
		cum += out[i].TotalSavings
		out[i].CumulativeSavings = cum
	}
	return out
}

// Summarize reduces the full range into one overall summary. Samples must be
// chronologically sorted (the merge stage guarantees this).
func Summarize(samples []model.EnrichedSample, interval time.Duration) model.OverallSummary {
	var o model.OverallSummary
	if len(samples) == 0 {
		return o
	}

	o.From = samples[0].Time
	// The last sample covers one sampling interval past its start.
	o.To = samples[len(samples)-1].Time.Add(interval)
	o.SampleCount = len(samples)
	o.DaysCovered = o.To.Sub(o.From).Hours() / 24

	priceSum := 0.0
	for _, s := range samples {
		o.TotalConsumptionKWh += s.ConsumptionKWh
		o.TotalPVKWh += s.PVKWh
		o.TotalImportKWh += s.GridImportKWh
		o.TotalExportKWh += s.GridExportKWh
		o.SelfConsumedKWh += s.SelfConsumedKWh
		o.ActualCost += s.ActualCost
		o.HypotheticalCost += s.HypotheticalCost
		o.SelfSufficiencySavings += s.SelfSufficiencySavings
		o.ExportRevenue += s.ExportRevenue
		o.TotalSavings += s.TotalSavings
		priceSum += s.PurchasePrice

		if s.SellPrice > 0 {
			o.ExportedAtPositiveKWh += s.GridExportKWh
		} else {
			o.ExportedAtNonPositiveKWh += s.GridExportKWh
		}
	}

	o.AveragePurchasePrice = priceSum / float64(len(samples))
	o.SelfSufficiencyRate = safeRatio(o.SelfConsumedKWh, o.TotalConsumptionKWh)
	o.SavingsRate = safeRatio(o.TotalSavings, o.HypotheticalCost)
	o.EffectiveCostPerKWh = safeRatio(o.ActualCost, o.TotalConsumptionKWh)
	o.GridOnlyCostPerKWh = safeRatio(o.HypotheticalCost, o.TotalConsumptionKWh)
	o.AverageExportPrice = safeRatio(o.ExportRevenue, o.ExportedAtPositiveKWh)
	if o.DaysCovered > 0 {
		o.AnnualProjection = o.TotalSavings / o.DaysCovered * 365.25
	}
	return o
}

// HourlyProfile averages each energy field per hour of day in loc, matching
// the daily-pattern view of the dashboard. Hours with no samples stay zero.
func HourlyProfile(samples []model.EnrichedSample, loc *time.Location) []model.HourlyAverage {
	var sums [24]model.HourlyAverage
	var counts [24]int

	for _, s := range samples {
		h := s.Time.In(loc).Hour()
		sums[h].ConsumptionKWh += s.ConsumptionKWh
		sums[h].PVKWh += s.PVKWh
		sums[h].GridImportKWh += s.GridImportKWh
		sums[h].GridExportKWh += s.GridExportKWh
		counts[h]++
	}

	out := make([]model.HourlyAverage, 24)
	for h := 0; h < 24; h++ {
		out[h].Hour = h
		if counts[h] == 0 {
			continue
		}
		n := float64(counts[h])
		out[h].ConsumptionKWh = sums[h].ConsumptionKWh / n
		out[h].PVKWh = sums[h].PVKWh / n
		out[h].GridImportKWh = sums[h].GridImportKWh / n
		out[h].GridExportKWh = sums[h].GridExportKWh / n
	}
	return out
}

func safeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
