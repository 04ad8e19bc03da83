package savings

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"solar-savings/internal/model"
)

// WriteMonthlySummaryCSV writes one row per month in chronological order
// with fixed numeric formatting, so identical inputs always produce
// byte-identical output.
func WriteMonthlySummaryCSV(w io.Writer, monthly []model.MonthlySummary) error {
	cw := csv.NewWriter(w)

	header := []string{
		"month",
		"total_consumption_kwh",
		"total_pv_kwh",
		"total_import_kwh",
		"total_export_kwh",
		"actual_cost",
		"hypothetical_cost",
		"self_sufficiency_savings",
		"export_revenue",
		"total_savings",
		"self_sufficiency_rate",
		"savings_rate",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, m := range monthly {
		row := []string{
			m.Month,
			fmtFloat(m.TotalConsumptionKWh),
			fmtFloat(m.TotalPVKWh),
			fmtFloat(m.TotalImportKWh),
			fmtFloat(m.TotalExportKWh),
			fmtFloat(m.ActualCost),
			fmtFloat(m.HypotheticalCost),
			fmtFloat(m.SelfSufficiencySavings),
			fmtFloat(m.ExportRevenue),
			fmtFloat(m.TotalSavings),
			fmtFloat(m.SelfSufficiencyRate),
			fmtFloat(m.SavingsRate),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteMonthlySummaryFile(path string, monthly []model.MonthlySummary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteMonthlySummaryCSV(f, monthly)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
