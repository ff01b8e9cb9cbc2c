// Package market defines the price series model: OHLCV bars, timezone
// normalization, and whole-range summary metrics.
package market

import (
	"math"
	"time"
)

// Bar represents one time-stamped OHLCV observation. A missing close is
// encoded as NaN and is filled in by Normalize; open, high and low must
// always be finite.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// validOHLC reports whether the bar honors low <= open, close <= high
// and volume >= 0. A NaN close is allowed (missing observation); an
// infinite close is not.
func (b Bar) validOHLC() bool {
	for _, v := range []float64{b.Open, b.High, b.Low, b.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	if b.Volume < 0 {
		return false
	}
	if b.Low > b.High {
		return false
	}
	if b.Open < b.Low || b.Open > b.High {
		return false
	}
	if math.IsInf(b.Close, 0) {
		return false
	}
	if !math.IsNaN(b.Close) && (b.Close < b.Low || b.Close > b.High) {
		return false
	}
	return true
}

// Series is an ordered sequence of bars, strictly ascending by
// timestamp, with every timestamp expressed in Location.
type Series struct {
	Location *time.Location
	Bars     []Bar
}

func (s Series) Len() int {
	return len(s.Bars)
}

// Closes returns the close column, positionally aligned with Bars.
// Undefined closes (the leading prefix before the first valid
// observation) come back as NaN.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}
