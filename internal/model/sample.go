package model

import "time"

// EnergySample is one inverter reading covering a single sampling interval.
// Time is the start of the interval; energy fields are watt-hours measured
// over that interval and must be non-negative.
type EnergySample struct {
	Time time.Time

	ConsumptionWh      float64
	PVWh               float64
	GridImportWh       float64
	GridExportWh       float64
	BatteryChargeWh    float64
	BatteryDischargeWh float64

	// State of charge of the battery in percent [0,100].
	SOCPercent float64
}

// EnergyFields returns the named energy values of the sample. Used by
// validation stages that need to report which field is out of range.
func (s EnergySample) EnergyFields() []NamedValue {
	return []NamedValue{
		{"consumption", s.ConsumptionWh},
		{"pv", s.PVWh},
		{"grid_import", s.GridImportWh},
		{"grid_export", s.GridExportWh},
		{"battery_charge", s.BatteryChargeWh},
		{"battery_discharge", s.BatteryDischargeWh},
	}
}

// NamedValue pairs a column name with its value.
type NamedValue struct {
	Name  string
	Value float64
}
