// Package dashboard wires the pipeline: fetch raw bars, normalize,
// summarize, compute indicator columns. Each run builds a fresh
// snapshot; nothing is cached or shared between runs.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bethvourc/stockPriceDashboard/indicators"
	"github.com/bethvourc/stockPriceDashboard/market"
	"github.com/bethvourc/stockPriceDashboard/yahoo"
)

// Request captures everything one dashboard update needs. It replaces
// the widget-level state the original UI kept globally.
type Request struct {
	Symbol     string
	Period     string
	Interval   string   // empty = derived from Period
	ChartType  string   // "candlestick" or "line"; presentation hint only
	Indicators []string // indicator columns the caller wants displayed
}

// Snapshot is the result of one pipeline run, aligned column-for-column
// with Series. It is handed to the presentation layer and discarded.
type Snapshot struct {
	Request    Request
	Series     market.Series
	Metrics    market.SummaryMetrics
	Indicators indicators.Set
}

// Runner owns the pipeline configuration. It holds no per-request
// state, so one Runner may serve concurrent runs.
type Runner struct {
	Fetcher yahoo.Fetcher
	Source  *time.Location
	Target  *time.Location
	Params  indicators.Params
	Logger  zerolog.Logger
}

// NewRunner creates a runner with the default UTC -> America/New_York
// timezone mapping and standard indicator parameters.
func NewRunner(fetcher yahoo.Fetcher, logger zerolog.Logger) (*Runner, error) {
	eastern, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("load target timezone: %w", err)
	}
	return &Runner{
		Fetcher: fetcher,
		Source:  time.UTC,
		Target:  eastern,
		Params:  indicators.DefaultParams(),
		Logger:  logger,
	}, nil
}

// Run executes fetch -> normalize -> summarize -> compute for one
// request and returns the snapshot.
func (r *Runner) Run(ctx context.Context, req Request) (*Snapshot, error) {
	if req.Symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if req.Interval == "" {
		req.Interval = yahoo.IntervalFor(req.Period)
	}

	start := time.Now()
	raw, err := r.Fetcher.Fetch(ctx, req.Symbol, req.Period, req.Interval)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", req.Symbol, err)
	}

	series, err := market.Normalize(raw, r.Source, r.Target)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", req.Symbol, err)
	}

	metrics, err := market.Summarize(series)
	if err != nil {
		return nil, fmt.Errorf("summarize %s: %w", req.Symbol, err)
	}

	set, err := indicators.Compute(series, r.Params)
	if err != nil {
		return nil, fmt.Errorf("compute indicators for %s: %w", req.Symbol, err)
	}

	r.Logger.Debug().
		Str("symbol", req.Symbol).
		Str("period", req.Period).
		Str("interval", req.Interval).
		Int("bars", series.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("pipeline run complete")

	return &Snapshot{
		Request:    req,
		Series:     series,
		Metrics:    metrics,
		Indicators: set,
	}, nil
}
