package model

import "time"

// MonthlySummary aggregates enriched samples over one calendar month in the
// data's local timezone. Recomputed fully on each run.
type MonthlySummary struct {
	// Month in "2006-01" form; MonthStart is the first instant of the month
	// in the aggregation timezone.
	Month      string
	MonthStart time.Time

	SampleCount int

	TotalConsumptionKWh float64
	TotalPVKWh          float64
	TotalImportKWh      float64
	TotalExportKWh      float64
	SelfConsumedKWh     float64

	ActualCost             float64
	HypotheticalCost       float64
	SelfSufficiencySavings float64
	ExportRevenue          float64
	TotalSavings           float64
	// CumulativeSavings is the running total of TotalSavings up to and
	// including this month.
	CumulativeSavings float64

	AveragePurchasePrice float64

	// SelfSufficiencyRate and SavingsRate are in [0,1]; both are 0 when
	// their denominator is 0.
	SelfSufficiencyRate float64
	SavingsRate         float64
}

// OverallSummary aggregates the whole analyzed range.
type OverallSummary struct {
	From        time.Time
	To          time.Time
	SampleCount int
	// DaysCovered is the fractional number of days between the first sample
	// start and the last sample end.
	DaysCovered float64

	TotalConsumptionKWh float64
	TotalPVKWh          float64
	TotalImportKWh      float64
	TotalExportKWh      float64
	SelfConsumedKWh     float64

	ActualCost             float64
	HypotheticalCost       float64
	SelfSufficiencySavings float64
	ExportRevenue          float64
	TotalSavings           float64

	SelfSufficiencyRate float64
	SavingsRate         float64

	// AnnualProjection normalizes savings by DaysCovered and scales to a
	// 365.25-day year, so partial periods project correctly.
	AnnualProjection float64

	// Cost-per-kWh comparison between the two scenarios.
	EffectiveCostPerKWh float64
	GridOnlyCostPerKWh  float64

	AveragePurchasePrice float64

	// Export statistics split by the sign of the raw sell price.
	ExportedAtPositiveKWh    float64
	ExportedAtNonPositiveKWh float64
	// AverageExportPrice is revenue per kWh exported at positive prices.
	AverageExportPrice float64
}

// HourlyAverage is the mean energy per sample for one hour of the day,
// across the analyzed range.
type HourlyAverage struct {
	Hour int

	ConsumptionKWh float64
	PVKWh          float64
	GridImportKWh  float64
	GridExportKWh  float64
}
