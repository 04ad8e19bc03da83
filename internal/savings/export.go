package savings

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"solar-savings/internal/model"
)

// BuildReportXLSX renders the overall summary and monthly table as a
// two-sheet workbook.
func BuildReportXLSX(overall model.OverallSummary, monthly []model.MonthlySummary, currency string) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	monthlySheet := "monthly"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(monthlySheet); err != nil {
		return nil, err
	}

	summaryRows := []struct {
		label string
		value any
	}{
		{"Solar Savings Report", nil},
		{"", nil},
		{"Period start", overall.From.Format(time.RFC3339)},
		{"Period end", overall.To.Format(time.RFC3339)},
		{"Days covered", overall.DaysCovered},
		{"Currency", currency},
		{"", nil},
		{"Total consumption (kWh)", overall.TotalConsumptionKWh},
		{"Total PV generation (kWh)", overall.TotalPVKWh},
		{"Total grid import (kWh)", overall.TotalImportKWh},
		{"Total grid export (kWh)", overall.TotalExportKWh},
		{"Self-consumed (kWh)", overall.SelfConsumedKWh},
		{"", nil},
		{"Hypothetical cost", overall.HypotheticalCost},
		{"Actual cost", overall.ActualCost},
		{"Self-sufficiency savings", overall.SelfSufficiencySavings},
		{"Export revenue", overall.ExportRevenue},
		{"Total savings", overall.TotalSavings},
		{"Savings rate", overall.SavingsRate},
		{"Self-sufficiency rate", overall.SelfSufficiencyRate},
		{"Projected annual savings", overall.AnnualProjection},
		{"", nil},
		{"Grid-only cost per kWh", overall.GridOnlyCostPerKWh},
		{"Effective cost per kWh", overall.EffectiveCostPerKWh},
		{"Exported at positive prices (kWh)", overall.ExportedAtPositiveKWh},
		{"Exported at zero/negative prices (kWh)", overall.ExportedAtNonPositiveKWh},
	}
	for i, r := range summaryRows {
		row := i + 1
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), r.label)
		if r.value != nil {
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), r.value)
		}
	}

	headers := []string{
		"Month", "Consumption (kWh)", "PV (kWh)", "Import (kWh)", "Export (kWh)",
		"Actual cost", "Hypothetical cost", "Self-sufficiency savings",
		"Export revenue", "Total savings", "Cumulative savings",
		"Self-sufficiency rate", "Savings rate",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(monthlySheet, cell, h)
	}
	for i, m := range monthly {
		values := []any{
			m.Month, m.TotalConsumptionKWh, m.TotalPVKWh, m.TotalImportKWh,
			m.TotalExportKWh, m.ActualCost, m.HypotheticalCost,
			m.SelfSufficiencySavings, m.ExportRevenue, m.TotalSavings,
			m.CumulativeSavings, m.SelfSufficiencyRate, m.SavingsRate,
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			_ = f.SetCellValue(monthlySheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildReportPDF renders a compact monthly savings statement.
func BuildReportPDF(overall model.OverallSummary, monthly []model.MonthlySummary, currency string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, "Solar Savings Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s to %s",
		overall.From.Format("2006-01-02"), overall.To.Format("2006-01-02")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total consumption: %.1f kWh (%.1f kWh self-consumed)",
		overall.TotalConsumptionKWh, overall.SelfConsumedKWh))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Hypothetical cost: %.2f %s", overall.HypotheticalCost, currency))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Actual cost: %.2f %s", overall.ActualCost, currency))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total savings: %.2f %s (%.1f%% savings rate)",
		overall.TotalSavings, currency, overall.SavingsRate*100))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Projected annual savings: %.2f %s", overall.AnnualProjection, currency))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(20, 6, "Month", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Consumption", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Actual", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Hypothetical", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Savings", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Self-suff.", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, m := range monthly {
		pdf.CellFormat(20, 6, m.Month, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.1f kWh", m.TotalConsumptionKWh), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", m.ActualCost), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", m.HypotheticalCost), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", m.TotalSavings), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.1f%%", m.SelfSufficiencyRate*100), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
