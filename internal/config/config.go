package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Parse policies for malformed input rows.
const (
	PolicyStrict     = "strict"      // collect all parse errors, then abort
	PolicyBestEffort = "best-effort" // report bad rows but analyze the rest
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// DataDir holds the raw CSV exports.
	DataDir    string `yaml:"data_dir"`
	EnergyGlob string `yaml:"energy_glob"`
	PricesGlob string `yaml:"prices_glob"`

	// SampleInterval is the inverter cadence the energy files were exported
	// at. The kWh conversion divisor is derived from it.
	SampleInterval Duration `yaml:"sample_interval"`

	// Timezone the data was recorded in; months are grouped on its wall
	// clock. IANA name, default UTC.
	Timezone string `yaml:"timezone"`

	Currency    string `yaml:"currency"`
	ParsePolicy string `yaml:"parse_policy"`

	Output OutputConfig `yaml:"output"`
}

type OutputConfig struct {
	// SummaryPath is where the CLI writes the monthly summary CSV.
	SummaryPath string `yaml:"summary_path"`
}

// Duration wraps time.Duration with YAML decoding from strings like "10m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		DataDir:        ".",
		EnergyGlob:     "inverter_data*.csv",
		PricesGlob:     "prices_data*.csv",
		SampleInterval: Duration(10 * time.Minute),
		Timezone:       "UTC",
		Currency:       "DKK",
		ParsePolicy:    PolicyStrict,
		Output: OutputConfig{
			SummaryPath: "monthly_savings_summary.csv",
		},
	}
}

// Load reads path, fills unset fields from Default, and validates.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.DataDir == "" {
		return errors.New("data_dir is required")
	}
	if c.EnergyGlob == "" || c.PricesGlob == "" {
		return errors.New("energy_glob and prices_glob are required")
	}
	if c.SampleInterval.Std() <= 0 {
		return errors.New("sample_interval must be positive")
	}
	if c.ParsePolicy != PolicyStrict && c.ParsePolicy != PolicyBestEffort {
		return fmt.Errorf("parse_policy must be %q or %q, got %q", PolicyStrict, PolicyBestEffort, c.ParsePolicy)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
