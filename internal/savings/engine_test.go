package savings

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineRun_FullPipeline(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	samples := tenMinuteSamples(start, 144, 500)
	prices := hourlyPrices(start, 24, 2.0, 0.3)

	res, err := New().Run(samples, prices, Options{})
	require.NoError(t, err)
	assert.Len(t, res.Samples, 144)
	assert.Len(t, res.Monthly, 1)
	assert.Len(t, res.Profile, 24)
	assert.Equal(t, 144, res.Overall.SampleCount)
}

func TestEngineRun_DateRangeFilter(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	samples := tenMinuteSamples(start, 144, 500)
	prices := hourlyPrices(start, 24, 2.0, 0.3)

	opts := Options{
		From: start.Add(6 * time.Hour),
		To:   start.Add(12 * time.Hour),
	}
	res, err := New().Run(samples, prices, opts)
	require.NoError(t, err)
	assert.Len(t, res.Samples, 36)
	assert.Equal(t, opts.From, res.Samples[0].Time)
	assert.True(t, res.Samples[len(res.Samples)-1].Time.Before(opts.To))
}

func TestEngineRun_EmptyRange(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	samples := tenMinuteSamples(start, 6, 500)
	prices := hourlyPrices(start, 1, 2.0, 0.3)

	_, err := New().Run(samples, prices, Options{From: start.AddDate(1, 0, 0)})
	var empty *EmptyInputError
	require.ErrorAs(t, err, &empty)
}

func TestEngineRun_NoSamples(t *testing.T) {
	_, err := New().Run(nil, nil, Options{})
	var empty *EmptyInputError
	require.ErrorAs(t, err, &empty)
}

func TestEngineRun_PropagatesMissingPrices(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	samples := tenMinuteSamples(start, 12, 500)
	prices := hourlyPrices(start, 1, 2.0, 0.3) // second hour uncovered

	_, err := New().Run(samples, prices, Options{})
	var missing *MissingPriceError
	require.True(t, errors.As(err, &missing))
	assert.Len(t, missing.Timestamps, 6)
}

func TestEngineRun_Deterministic(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	samples := tenMinuteSamples(start, 144, 500)
	prices := hourlyPrices(start, 24, 2.0, 0.3)

	first, err := New().Run(samples, prices, Options{})
	require.NoError(t, err)
	second, err := New().Run(samples, prices, Options{})
	require.NoError(t, err)

	var a, b bytes.Buffer
	require.NoError(t, WriteMonthlySummaryCSV(&a, first.Monthly))
	require.NoError(t, WriteMonthlySummaryCSV(&b, second.Monthly))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestWriteMonthlySummaryCSV_Format(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	samples := tenMinuteSamples(start, 6, 600)
	prices := hourlyPrices(start, 1, 2.0, 0.3)

	res, err := New().Run(samples, prices, Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteMonthlySummaryCSV(&buf, res.Monthly))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		"month,total_consumption_kwh,total_pv_kwh,total_import_kwh,total_export_kwh,"+
			"actual_cost,hypothetical_cost,self_sufficiency_savings,export_revenue,"+
			"total_savings,self_sufficiency_rate,savings_rate",
		lines[0])
	fields := strings.Split(lines[1], ",")
	require.Len(t, fields, 12)
	assert.Equal(t, "2025-06", fields[0])
	// 6 samples of 600 Wh = 0.6 kWh, fixed six-decimal formatting.
	assert.Equal(t, "0.600000", fields[1])
}
