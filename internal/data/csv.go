package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"solar-savings/internal/model"
	"solar-savings/internal/savings"
)

// ErrNoFiles is returned when a discovery pattern matches nothing.
var ErrNoFiles = errors.New("no input files matched")

// Timestamp layouts accepted in input files. Naive forms (no offset) are
// interpreted in the caller-provided location.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Discover returns the files matching pattern under dir, sorted by name so
// that multi-file load order (and therefore duplicate precedence) is
// deterministic.
func Discover(dir, pattern string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrNoFiles, pattern, dir)
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadEnergyFiles loads and concatenates every file in order. Parse errors
// are collected into the report rather than aborting on the first bad row.
func LoadEnergyFiles(paths []string, loc *time.Location) ([]model.EnergySample, *savings.ParseReport, error) {
	var all []model.EnergySample
	report := &savings.ParseReport{}
	for _, p := range paths {
		samples, r, err := LoadEnergyCSV(p, loc)
		if err != nil {
			return nil, nil, err
		}
		all = append(all, samples...)
		report.Merge(r)
	}
	return all, report, nil
}

// LoadPriceFiles is the price-side counterpart of LoadEnergyFiles.
func LoadPriceFiles(paths []string, loc *time.Location) ([]model.PriceInterval, *savings.ParseReport, error) {
	var all []model.PriceInterval
	report := &savings.ParseReport{}
	for _, p := range paths {
		prices, r, err := LoadPriceCSV(p, loc)
		if err != nil {
			return nil, nil, err
		}
		all = append(all, prices...)
		report.Merge(r)
	}
	return all, report, nil
}

// LoadEnergyCSV reads one inverter file. Columns are located by header name,
// so column order may vary between exports. Malformed rows go into the
// report; the returned error is reserved for file-level failures.
func LoadEnergyCSV(path string, loc *time.Location) ([]model.EnergySample, *savings.ParseReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return readEnergyCSV(f, filepath.Base(path), loc)
}

func readEnergyCSV(r io.Reader, name string, loc *time.Location) ([]model.EnergySample, *savings.ParseReport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: read header: %w", name, err)
	}
	cols, err := indexColumns(header, []string{
		"time", "consumption", "pv", "grid_import", "grid_export",
		"battery_charge", "battery_discharge", "soc",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}

	report := &savings.ParseReport{}
	var samples []model.EnergySample
	var lastTime time.Time
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.Add(name, row, err.Error())
			continue
		}

		ts, err := parseTime(field(rec, cols["time"]), loc)
		if err != nil {
			report.Add(name, row, "time: "+err.Error())
			continue
		}
		if !lastTime.IsZero() && !ts.After(lastTime) {
			report.Add(name, row, fmt.Sprintf("timestamp %s not after previous row", ts.Format(time.RFC3339)))
			continue
		}

		s := model.EnergySample{Time: ts}
		ok := true
		for _, col := range []struct {
			name string
			dst  *float64
		}{
			{"consumption", &s.ConsumptionWh},
			{"pv", &s.PVWh},
			{"grid_import", &s.GridImportWh},
			{"grid_export", &s.GridExportWh},
			{"battery_charge", &s.BatteryChargeWh},
			{"battery_discharge", &s.BatteryDischargeWh},
		} {
			v, err := parseEnergy(field(rec, cols[col.name]))
			if err != nil {
				report.Add(name, row, col.name+": "+err.Error())
				ok = false
				break
			}
			*col.dst = v
		}
		if !ok {
			continue
		}

		soc, err := parseFloat(field(rec, cols["soc"]))
		if err != nil {
			report.Add(name, row, "soc: "+err.Error())
			continue
		}
		if soc < 0 || soc > 100 {
			report.Add(name, row, fmt.Sprintf("soc %g outside [0,100]", soc))
			continue
		}
		s.SOCPercent = soc

		lastTime = ts
		samples = append(samples, s)
	}
	return samples, report, nil
}

// LoadPriceCSV reads one hourly price file.
func LoadPriceCSV(path string, loc *time.Location) ([]model.PriceInterval, *savings.ParseReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return readPriceCSV(f, filepath.Base(path), loc)
}

func readPriceCSV(r io.Reader, name string, loc *time.Location) ([]model.PriceInterval, *savings.ParseReport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: read header: %w", name, err)
	}
	cols, err := indexColumns(header, []string{"valid_from", "valid_to", "purchase_price", "sell_price"})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}

	report := &savings.ParseReport{}
	var prices []model.PriceInterval
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.Add(name, row, err.Error())
			continue
		}

		from, err := parseTime(field(rec, cols["valid_from"]), loc)
		if err != nil {
			report.Add(name, row, "valid_from: "+err.Error())
			continue
		}
		to, err := parseTime(field(rec, cols["valid_to"]), loc)
		if err != nil {
			report.Add(name, row, "valid_to: "+err.Error())
			continue
		}
		if !to.After(from) {
			report.Add(name, row, "valid_to must be after valid_from")
			continue
		}
		purchase, err := parseFloat(field(rec, cols["purchase_price"]))
		if err != nil {
			report.Add(name, row, "purchase_price: "+err.Error())
			continue
		}
		// Sell price may legitimately be negative; only reject non-numbers.
		sell, err := parseFloat(field(rec, cols["sell_price"]))
		if err != nil {
			report.Add(name, row, "sell_price: "+err.Error())
			continue
		}

		prices = append(prices, model.PriceInterval{
			ValidFrom:     from,
			ValidTo:       to,
			PurchasePrice: purchase,
			SellPrice:     sell,
		})
	}
	return prices, report, nil
}

func indexColumns(header, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return idx, nil
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func parseTime(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range timeLayouts {
		if layout == time.RFC3339 {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", s)
}

// parseFloat rejects the NaN/Inf literals strconv accepts; pandas exports
// write empty cells as NaN and those must never reach the cost math.
func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}

func parseEnergy(s string) (float64, error) {
	v, err := parseFloat(s)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative energy value %g", v)
	}
	return v, nil
}
