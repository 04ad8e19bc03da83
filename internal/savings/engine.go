package savings

import (
	"time"

	"solar-savings/internal/model"
)

// Options control one engine run.
type Options struct {
	// From (inclusive) and To (exclusive) bound the sample timestamps.
	// Zero values leave that side unbounded.
	From time.Time
	To   time.Time

	// SampleInterval is the inverter cadence; defaults to
	// model.DefaultSampleInterval.
	SampleInterval time.Duration

	// Location used for month grouping and the hourly profile; defaults
	// to UTC.
	Location *time.Location
}

// Result is everything one run produces. All slices are chronological and
// immutable once returned.
type Result struct {
	Samples []model.EnrichedSample
	Monthly []model.MonthlySummary
	Overall model.OverallSummary
	Profile []model.HourlyAverage
}

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run executes the full pipeline: dedup/sort, date-range filter, price
// merge, per-sample calculation, monthly and overall aggregation. It is a
// pure function of its inputs; running it twice over the same rows and
// options yields identical results.
func (e *Engine) Run(samples []model.EnergySample, prices []model.PriceInterval, opts Options) (*Result, error) {
	if opts.SampleInterval <= 0 {
		opts.SampleInterval = model.DefaultSampleInterval
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	sorted := DedupSortSamples(samples)
	filtered := sorted[:0:0]
	for _, s := range sorted {
		if !opts.From.IsZero() && s.Time.Before(opts.From) {
			continue
		}
		if !opts.To.IsZero() && !s.Time.Before(opts.To) {
			continue
		}
		filtered = append(filtered, s)
	}
	if len(filtered) == 0 {
		return nil, &EmptyInputError{Reason: "no energy samples in the selected date range"}
	}

	enriched, err := Merge(filtered, DedupSortPrices(prices), opts.SampleInterval)
	if err != nil {
		return nil, err
	}

	return &Result{
		Samples: enriched,
		Monthly: AggregateMonthly(enriched, opts.Location),
		Overall: Summarize(enriched, opts.SampleInterval),
		Profile: HourlyProfile(enriched, opts.Location),
	}, nil
}
