package yahoo

import (
	"context"
	"fmt"
	"sync"

	"github.com/bethvourc/stockPriceDashboard/market"
)

// Mock is a canned Fetcher for tests and offline runs. It is safe for
// concurrent use; the watchlist fetches symbols from parallel
// goroutines.
type Mock struct {
	// Bars holds the canned response per symbol.
	Bars map[string][]market.Bar

	// Err, when set, is returned for every call.
	Err error

	mu sync.Mutex

	// Calls records the (symbol, period, interval) of each Fetch.
	// Guarded by mu.
	Calls [][3]string
}

func (m *Mock) Fetch(ctx context.Context, symbol, period, interval string) ([]market.Bar, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, [3]string{symbol, period, interval})
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	bars, ok := m.Bars[symbol]
	if !ok || len(bars) == 0 {
		return nil, fmt.Errorf("%w for %s (period %s)", ErrNoData, symbol, period)
	}
	return bars, nil
}
