package history

import (
	"context"

	"github.com/bethvourc/stockPriceDashboard/market"
)

// Fetcher adapts the archive to the pipeline's fetch interface so
// analyses can run offline from previously stored bars. The period and
// interval arguments are ignored; the latest stored fetch wins.
type Fetcher struct {
	Store *Store
}

func (f Fetcher) Fetch(ctx context.Context, symbol, period, interval string) ([]market.Bar, error) {
	bars, _, err := f.Store.Bars(ctx, symbol)
	return bars, err
}
