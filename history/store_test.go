package history

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethvourc/stockPriceDashboard/market"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func testBars(n int) []market.Bar {
	t0 := time.Date(2024, 6, 3, 13, 30, 0, 0, time.UTC)
	bars := make([]market.Bar, n)
	for i := range bars {
		c := 100 + float64(i)
		bars[i] = market.Bar{
			Time:   t0.Add(time.Duration(i) * time.Minute),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func TestSaveAndLoadBars(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	in := testBars(5)
	in[2].Close = math.NaN()

	id, err := s.SaveFetch(ctx, "AAPL", "1d", "1m", in)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	out, rec, err := s.Bars(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, "1d", rec.Period)
	assert.Equal(t, "1m", rec.Interval)

	require.Len(t, out, 5)
	for i := range in {
		assert.True(t, in[i].Time.Equal(out[i].Time), "index %d", i)
		assert.Equal(t, in[i].Open, out[i].Open)
		assert.Equal(t, in[i].Volume, out[i].Volume)
	}
	assert.True(t, math.IsNaN(out[2].Close), "NULL close round-trips as NaN")
	assert.Equal(t, 104.0, out[4].Close)
}

func TestBarsReturnsLatestFetch(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.SaveFetch(ctx, "AAPL", "1d", "1m", testBars(3))
	require.NoError(t, err)
	second, err := s.SaveFetch(ctx, "AAPL", "1mo", "1d", testBars(7))
	require.NoError(t, err)

	bars, rec, err := s.Bars(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, second, rec.ID, "ULIDs break fetched_at ties in favor of the newest")
	assert.Len(t, bars, 7)

	recs, err := s.Fetches(ctx, "AAPL")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, second, recs[0].ID)
}

func TestBarsUnknownSymbol(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, _, err := s.Bars(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetcherServesStoredBars(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.SaveFetch(ctx, "MSFT", "1mo", "1d", testBars(10))
	require.NoError(t, err)

	f := Fetcher{Store: s}
	bars, err := f.Fetch(ctx, "MSFT", "ignored", "ignored")
	require.NoError(t, err)
	assert.Len(t, bars, 10)

	_, err = f.Fetch(ctx, "NOPE", "1d", "1m")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveFetchRejectsEmpty(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.SaveFetch(context.Background(), "AAPL", "1d", "1m", nil)
	assert.ErrorIs(t, err, market.ErrEmptyInput)
}
