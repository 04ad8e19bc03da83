package models

import (
	"time"

	"solar-savings/internal/model"
	"solar-savings/internal/savings"
)

// AnalysisResponse is returned by POST /api/v1/analysis and
// GET /api/v1/analysis/:id.
type AnalysisResponse struct {
	ID       string           `json:"id"`
	Status   string           `json:"status"`
	Currency string           `json:"currency"`
	Overall  OverallSummary   `json:"overall"`
	Monthly  []MonthlySummary `json:"monthly"`
	Profile  []HourlyAverage  `json:"profile,omitempty"`
	// ParseIssues lists rows that were skipped under best-effort policy.
	ParseIssues []ParseIssue `json:"parse_issues,omitempty"`
}

type MonthlySummary struct {
	Month                  string  `json:"month"`
	SampleCount            int     `json:"sample_count"`
	TotalConsumptionKWh    float64 `json:"total_consumption_kwh"`
	TotalPVKWh             float64 `json:"total_pv_kwh"`
	TotalImportKWh         float64 `json:"total_import_kwh"`
	TotalExportKWh         float64 `json:"total_export_kwh"`
	SelfConsumedKWh        float64 `json:"self_consumed_kwh"`
	ActualCost             float64 `json:"actual_cost"`
	HypotheticalCost       float64 `json:"hypothetical_cost"`
	SelfSufficiencySavings float64 `json:"self_sufficiency_savings"`
	ExportRevenue          float64 `json:"export_revenue"`
	TotalSavings           float64 `json:"total_savings"`
	CumulativeSavings      float64 `json:"cumulative_savings"`
	AveragePurchasePrice   float64 `json:"average_purchase_price"`
	SelfSufficiencyRate    float64 `json:"self_sufficiency_rate"`
	SavingsRate            float64 `json:"savings_rate"`
}

type OverallSummary struct {
	From        time.Time `json:"from"`
	To          time.Time `json:"to"`
	SampleCount int       `json:"sample_count"`
	DaysCovered float64   `json:"days_covered"`

	TotalConsumptionKWh float64 `json:"total_consumption_kwh"`
	TotalPVKWh          float64 `json:"total_pv_kwh"`
	TotalImportKWh      float64 `json:"total_import_kwh"`
	TotalExportKWh      float64 `json:"total_export_kwh"`
	SelfConsumedKWh     float64 `json:"self_consumed_kwh"`

	ActualCost             float64 `json:"actual_cost"`
	HypotheticalCost       float64 `json:"hypothetical_cost"`
	SelfSufficiencySavings float64 `json:"self_sufficiency_savings"`
	ExportRevenue          float64 `json:"export_revenue"`
	TotalSavings           float64 `json:"total_savings"`

	SelfSufficiencyRate float64 `json:"self_sufficiency_rate"`
	SavingsRate         float64 `json:"savings_rate"`
	AnnualProjection    float64 `json:"annual_projection"`

	EffectiveCostPerKWh  float64 `json:"effective_cost_per_kwh"`
	GridOnlyCostPerKWh   float64 `json:"grid_only_cost_per_kwh"`
	AveragePurchasePrice float64 `json:"average_purchase_price"`

	ExportedAtPositiveKWh    float64 `json:"exported_at_positive_kwh"`
	ExportedAtNonPositiveKWh float64 `json:"exported_at_non_positive_kwh"`
	AverageExportPrice       float64 `json:"average_export_price"`
}

type HourlyAverage struct {
	Hour           int     `json:"hour"`
	ConsumptionKWh float64 `json:"consumption_kwh"`
	PVKWh          float64 `json:"pv_kwh"`
	GridImportKWh  float64 `json:"grid_import_kwh"`
	GridExportKWh  float64 `json:"grid_export_kwh"`
}

type ParseIssue struct {
	File   string `json:"file"`
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// DatasetInfo describes one discovered input file, including the span of
// valid rows it holds. Files that fail to parse list zero rows.
type DatasetInfo struct {
	Name     string    `json:"name"`
	Kind     string    `json:"kind"` // "energy" or "prices"
	Size     int64     `json:"size_bytes"`
	Modified time.Time `json:"modified"`

	Rows int       `json:"rows"`
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// FromMonthly converts engine output to the wire shape.
func FromMonthly(in []model.MonthlySummary) []MonthlySummary {
	out := make([]MonthlySummary, 0, len(in))
	for _, m := range in {
		out = append(out, MonthlySummary{
			Month:                  m.Month,
			SampleCount:            m.SampleCount,
			TotalConsumptionKWh:    m.TotalConsumptionKWh,
			TotalPVKWh:             m.TotalPVKWh,
			TotalImportKWh:         m.TotalImportKWh,
			TotalExportKWh:         m.TotalExportKWh,
			SelfConsumedKWh:        m.SelfConsumedKWh,
			ActualCost:             m.ActualCost,
			HypotheticalCost:       m.HypotheticalCost,
			SelfSufficiencySavings: m.SelfSufficiencySavings,
			ExportRevenue:          m.ExportRevenue,
			TotalSavings:           m.TotalSavings,
			CumulativeSavings:      m.CumulativeSavings,
			AveragePurchasePrice:   m.AveragePurchasePrice,
			SelfSufficiencyRate:    m.SelfSufficiencyRate,
			SavingsRate:            m.SavingsRate,
		})
	}
	return out
}

func FromOverall(o model.OverallSummary) OverallSummary {
	return OverallSummary{
		From:                     o.From,
		To:                       o.To,
		SampleCount:              o.SampleCount,
		DaysCovered:              o.DaysCovered,
		TotalConsumptionKWh:      o.TotalConsumptionKWh,
		TotalPVKWh:               o.TotalPVKWh,
		TotalImportKWh:           o.TotalImportKWh,
		TotalExportKWh:           o.TotalExportKWh,
		SelfConsumedKWh:          o.SelfConsumedKWh,
		ActualCost:               o.ActualCost,
		HypotheticalCost:         o.HypotheticalCost,
		SelfSufficiencySavings:   o.SelfSufficiencySavings,
		ExportRevenue:            o.ExportRevenue,
		TotalSavings:             o.TotalSavings,
		SelfSufficiencyRate:      o.SelfSufficiencyRate,
		SavingsRate:              o.SavingsRate,
		AnnualProjection:         o.AnnualProjection,
		EffectiveCostPerKWh:      o.EffectiveCostPerKWh,
		GridOnlyCostPerKWh:       o.GridOnlyCostPerKWh,
		AveragePurchasePrice:     o.AveragePurchasePrice,
		ExportedAtPositiveKWh:    o.ExportedAtPositiveKWh,
		ExportedAtNonPositiveKWh: o.ExportedAtNonPositiveKWh,
		AverageExportPrice:       o.AverageExportPrice,
	}
}

func FromProfile(in []model.HourlyAverage) []HourlyAverage {
	out := make([]HourlyAverage, 0, len(in))
	for _, h := range in {
		out = append(out, HourlyAverage{
			Hour:           h.Hour,
			ConsumptionKWh: h.ConsumptionKWh,
			PVKWh:          h.PVKWh,
			GridImportKWh:  h.GridImportKWh,
			GridExportKWh:  h.GridExportKWh,
		})
	}
	return out
}

func FromParseReport(r *savings.ParseReport) []ParseIssue {
	if r.Empty() {
		return nil
	}
	out := make([]ParseIssue, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, ParseIssue{File: e.File, Row: e.Row, Reason: e.Reason})
	}
	return out
}
