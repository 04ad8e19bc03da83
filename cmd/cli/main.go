package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"solar-savings/internal/config"
	"solar-savings/internal/data"
	"solar-savings/internal/savings"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "analyze":
		cmdAnalyze(os.Args[2:])
	case "profile":
		cmdProfile(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli analyze --config config.yaml [--from 2025-01-01 --to 2025-09-30] [--out summary.csv]")
	fmt.Println("  cli profile --config config.yaml")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - analyze prints the monthly savings breakdown and writes the summary CSV")
	fmt.Println("  - profile prints average energy per hour of day")
}

func cmdAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	from := fs.String("from", "", "Start date YYYY-MM-DD (inclusive)")
	to := fs.String("to", "", "End date YYYY-MM-DD (inclusive)")
	outPath := fs.String("out", "", "Output CSV path (overrides config)")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	result := run(cfg, *from, *to)

	printReport(result, cfg.Currency)

	path := cfg.Output.SummaryPath
	if *outPath != "" {
		path = *outPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatal(err)
		}
	}
	if err := savings.WriteMonthlySummaryFile(path, result.Monthly); err != nil {
		fatal(err)
	}
	fmt.Printf("Wrote %d monthly rows to %s\n", len(result.Monthly), path)
}

func cmdProfile(args []string) {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	from := fs.String("from", "", "Start date YYYY-MM-DD (inclusive)")
	to := fs.String("to", "", "End date YYYY-MM-DD (inclusive)")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	result := run(cfg, *from, *to)

	fmt.Printf("%-5s %-14s %-14s %-14s %-14s\n", "hour", "consumption", "pv", "import", "export")
	for _, h := range result.Profile {
		fmt.Printf("%-5d %-14.4f %-14.4f %-14.4f %-14.4f\n",
			h.Hour, h.ConsumptionKWh, h.PVKWh, h.GridImportKWh, h.GridExportKWh)
	}
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fatal(err)
	}
	return cfg
}

func run(cfg *config.Config, from, to string) *savings.Result {
	loc, err := cfg.Location()
	if err != nil {
		fatal(err)
	}

	snap, err := data.Load(data.Source{
		Dir:        cfg.DataDir,
		EnergyGlob: cfg.EnergyGlob,
		PricesGlob: cfg.PricesGlob,
		Location:   loc,
	}, nil)
	if err != nil {
		fatal(err)
	}

	if !snap.Report.Empty() {
		fmt.Fprintln(os.Stderr, snap.Report.Error())
		if cfg.ParsePolicy == config.PolicyStrict {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "continuing without the rows above (best-effort policy)")
	}

	opts := savings.Options{
		SampleInterval: cfg.SampleInterval.Std(),
		Location:       loc,
	}
	if from != "" {
		t, err := time.ParseInLocation("2006-01-02", from, loc)
		if err != nil {
			fatal(fmt.Errorf("--from: %w", err))
		}
		opts.From = t
	}
	if to != "" {
		t, err := time.ParseInLocation("2006-01-02", to, loc)
		if err != nil {
			fatal(fmt.Errorf("--to: %w", err))
		}
		opts.To = t.AddDate(0, 0, 1)
	}

	result, err := savings.New().Run(snap.Samples, snap.Prices, opts)
	if err != nil {
		fatal(err)
	}
	return result
}

func printReport(result *savings.Result, currency string) {
	o := result.Overall

	fmt.Printf("Analyzed %d samples covering %.1f days (%s to %s)\n\n",
		o.SampleCount, o.DaysCovered,
		o.From.Format("2006-01-02"), o.To.Format("2006-01-02"))

	for _, m := range result.Monthly {
		fmt.Printf("Month: %s\n", m.Month)
		fmt.Printf("  Consumption:        %10.1f kWh\n", m.TotalConsumptionKWh)
		fmt.Printf("  Grid import:        %10.1f kWh\n", m.TotalImportKWh)
		fmt.Printf("  Grid export:        %10.1f kWh\n", m.TotalExportKWh)
		fmt.Printf("  Self-sufficiency:   %10.1f %%\n", m.SelfSufficiencyRate*100)
		fmt.Printf("  Avg purchase price: %10.3f %s/kWh\n", m.AveragePurchasePrice, currency)
		fmt.Printf("  Hypothetical cost:  %10.2f %s\n", m.HypotheticalCost, currency)
		fmt.Printf("  Actual cost:        %10.2f %s\n", m.ActualCost, currency)
		fmt.Printf("  Savings:            %10.2f %s (%.1f%% rate, %.2f cumulative)\n\n",
			m.TotalSavings, currency, m.SavingsRate*100, m.CumulativeSavings)
	}

	fmt.Println("Totals:")
	fmt.Printf("  Consumption:          %10.1f kWh (%.1f kWh self-consumed)\n",
		o.TotalConsumptionKWh, o.SelfConsumedKWh)
	fmt.Printf("  PV generation:        %10.1f kWh\n", o.TotalPVKWh)
	fmt.Printf("  Hypothetical cost:    %10.2f %s\n", o.HypotheticalCost, currency)
	fmt.Printf("  Actual cost:          %10.2f %s\n", o.ActualCost, currency)
	fmt.Printf("  Self-suff. savings:   %10.2f %s\n", o.SelfSufficiencySavings, currency)
	fmt.Printf("  Export revenue:       %10.2f %s (%.1f kWh at positive prices, %.1f kWh at <=0)\n",
		o.ExportRevenue, currency, o.ExportedAtPositiveKWh, o.ExportedAtNonPositiveKWh)
	fmt.Printf("  TOTAL SAVINGS:        %10.2f %s (%.1f%% rate)\n",
		o.TotalSavings, currency, o.SavingsRate*100)
	fmt.Printf("  Projected annual:     %10.2f %s\n", o.AnnualProjection, currency)
	fmt.Printf("  Cost per kWh:         grid-only %.3f vs effective %.3f %s/kWh\n",
		o.GridOnlyCostPerKWh, o.EffectiveCostPerKWh, currency)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
