// Package indicators computes technical-analysis indicators over a
// normalized close-price series.
//
// Two styles are provided: column functions that map a whole close
// column to an aligned output column (NaN marks the warm-up prefix),
// and streaming indicators that consume one bar at a time.
package indicators

import (
	"math"

	"github.com/bethvourc/stockPriceDashboard/market"
)

// Indicator computes a single streaming value from bars.
type Indicator interface {
	// Name returns a stable identifier like "EMA(20)" or "RSI(14)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next closed bar and updates internal state.
	Update(b market.Bar)

	// Ready reports whether Value() is meaningful (warmup completed).
	Ready() bool

	// Value returns the current indicator value. If !Ready() it returns
	// NaN; callers should always check Ready().
	Value() float64
}

// Defined reports whether v is a computed value rather than part of the
// warm-up (undefined) prefix.
func Defined(v float64) bool {
	return !math.IsNaN(v)
}

// undefined returns a column of n NaNs.
func undefined(n int) []float64 {
	col := make([]float64, n)
	for i := range col {
		col[i] = math.NaN()
	}
	return col
}

// firstDefined returns the index of the first non-NaN value, or -1.
func firstDefined(col []float64) int {
	for i, v := range col {
		if !math.IsNaN(v) {
			return i
		}
	}
	return -1
}
