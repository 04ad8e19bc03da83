package models

// AnalysisRequest is the body for POST /api/v1/analysis. Every field is
// optional; unset fields fall back to the server's configuration.
type AnalysisRequest struct {
	DataDir    string `json:"data_dir,omitempty"`
	EnergyGlob string `json:"energy_glob,omitempty"`
	PricesGlob string `json:"prices_glob,omitempty"`

	// From and To are inclusive dates, YYYY-MM-DD, in the data timezone.
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`

	// SampleInterval like "10m"; Timezone as an IANA name.
	SampleInterval string `json:"sample_interval,omitempty"`
	Timezone       string `json:"timezone,omitempty"`

	ParsePolicy string `json:"parse_policy,omitempty"`

	// IncludeProfile adds the hourly averages to the response.
	IncludeProfile bool `json:"include_profile,omitempty"`
}
