package dashboard

import (
	"context"
	"math"
	"sync"

	"github.com/bethvourc/stockPriceDashboard/indicators"
	"github.com/bethvourc/stockPriceDashboard/market"
)

// WatchEntry is one watchlist row: the latest intraday price, its move
// since the session's first bar, and a streaming RSI reading.
type WatchEntry struct {
	Symbol    string
	LastPrice float64
	Change    float64
	PctChange float64
	RSI       float64 // NaN until the RSI warmup completes
	Err       error
}

// Watch computes one entry per symbol using the session's 1-minute
// bars. Symbols are fetched concurrently; every goroutine owns its own
// series, so no locking is needed beyond the join.
//
// The change baseline here is the OPEN of the first session bar, as the
// original watchlist did it, unlike Summarize's first-close baseline.
func (r *Runner) Watch(ctx context.Context, symbols []string) []WatchEntry {
	entries := make([]WatchEntry, len(symbols))

	var wg sync.WaitGroup
	for i, symbol := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			entries[i] = r.watchOne(ctx, symbol)
		}(i, symbol)
	}
	wg.Wait()

	return entries
}

func (r *Runner) watchOne(ctx context.Context, symbol string) WatchEntry {
	entry := WatchEntry{Symbol: symbol, RSI: math.NaN()}

	raw, err := r.Fetcher.Fetch(ctx, symbol, "1d", "1m")
	if err != nil {
		entry.Err = err
		return entry
	}

	series, err := market.Normalize(raw, r.Source, r.Target)
	if err != nil {
		entry.Err = err
		return entry
	}

	// Normalize rejects empty input, so the series has at least one bar.
	last := series.Bars[series.Len()-1]
	open := series.Bars[0].Open

	entry.LastPrice = last.Close
	entry.Change = last.Close - open
	if open != 0 {
		entry.PctChange = entry.Change / open * 100
	} else {
		entry.PctChange = math.NaN()
	}

	rsi := indicators.NewRelativeStrength(r.Params.RSIWindow)
	for _, b := range series.Bars {
		if math.IsNaN(b.Close) {
			continue
		}
		rsi.Update(b)
	}
	entry.RSI = rsi.Value()

	return entry
}
