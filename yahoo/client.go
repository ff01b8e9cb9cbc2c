// Package yahoo fetches historical OHLCV bars from the Yahoo Finance
// chart API. It is the data-fetch collaborator for the dashboard
// pipeline; callers only depend on the Fetcher interface.
package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/bethvourc/stockPriceDashboard/market"
)

// BaseURL is the Yahoo Finance v8 chart endpoint.
const BaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// ErrNoData is returned when the API answers successfully but carries no
// bars for the requested symbol and range.
var ErrNoData = errors.New("no data")

// Fetcher retrieves bars for a symbol over a period at a sampling
// interval (e.g. period "1d" at "1m" granularity).
type Fetcher interface {
	Fetch(ctx context.Context, symbol, period, interval string) ([]market.Bar, error)
}

// Intervals maps dashboard periods to their sampling intervals.
var Intervals = map[string]string{
	"1d":  "1m",
	"1wk": "30m",
	"1mo": "1d",
	"1y":  "1wk",
	"max": "1wk",
}

// IntervalFor returns the sampling interval for a period, defaulting to
// daily bars for unknown periods.
func IntervalFor(period string) string {
	if iv, ok := Intervals[period]; ok {
		return iv
	}
	return "1d"
}

// Client is an HTTP client for the Yahoo Finance chart API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a Yahoo Finance client.
func NewClient(logger zerolog.Logger) *Client {
	return &Client{
		baseURL: BaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// chartResponse mirrors the v8 chart API payload. Quote values are
// pointers because the API reports missing observations as JSON nulls.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Fetch retrieves bars for symbol over the given period and interval.
// Bars arrive as UTC instants, ordered by timestamp. Bars whose OHL
// values are null are skipped entirely; a null close with valid OHL
// becomes a NaN close for the normalizer to forward-fill.
func (c *Client) Fetch(ctx context.Context, symbol, period, interval string) ([]market.Bar, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if interval == "" {
		interval = IntervalFor(period)
	}

	apiURL := fmt.Sprintf("%s/%s?interval=%s&range=%s",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(interval), url.QueryEscape(period))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; stockPriceDashboard/1.0)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chart chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error %s: %s",
			chart.Chart.Error.Code, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 ||
		len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w for %s (period %s)", ErrNoData, symbol, period)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	bars := make([]market.Bar, 0, len(result.Timestamp))
	skipped := 0
	for i, ts := range result.Timestamp {
		o := deref(quote.Open, i)
		h := deref(quote.High, i)
		l := deref(quote.Low, i)
		if math.IsNaN(o) || math.IsNaN(h) || math.IsNaN(l) {
			skipped++
			continue
		}
		v := deref(quote.Volume, i)
		if math.IsNaN(v) {
			v = 0
		}
		bars = append(bars, market.Bar{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  deref(quote.Close, i),
			Volume: v,
		})
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("%w for %s (period %s)", ErrNoData, symbol, period)
	}

	c.logger.Debug().
		Str("symbol", symbol).
		Str("period", period).
		Str("interval", interval).
		Int("bars", len(bars)).
		Int("skipped", skipped).
		Msg("fetched chart")

	return bars, nil
}

// deref reads col[i], treating a missing entry or JSON null as NaN.
func deref(col []*float64, i int) float64 {
	if i >= len(col) || col[i] == nil {
		return math.NaN()
	}
	return *col[i]
}
