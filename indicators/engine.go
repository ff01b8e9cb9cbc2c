package indicators

import (
	"errors"
	"fmt"
	"math"

	"github.com/bethvourc/stockPriceDashboard/market"
)

// ErrNonFinite is returned when a NaN or infinite close reaches the
// engine past the undefined prefix. The normalizer contract makes this
// unreachable in practice; the check is kept anyway.
var ErrNonFinite = errors.New("non-finite close")

// Params holds the indicator windows. Zero values disable nothing; use
// DefaultParams for the standard configuration.
type Params struct {
	SMAWindow  int
	EMAWindow  int
	RSIWindow  int
	MACDFast   int
	MACDSlow   int
	MACDSignal int
	BBWindow   int
	BBK        float64
}

// DefaultParams matches the dashboard's standard configuration:
// SMA/EMA 20, RSI 14, MACD 12/26/9, Bollinger 20 at 2 standard
// deviations.
func DefaultParams() Params {
	return Params{
		SMAWindow:  20,
		EMAWindow:  20,
		RSIWindow:  14,
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
		BBWindow:   20,
		BBK:        2,
	}
}

func (p Params) SMAName() string { return fmt.Sprintf("SMA_%d", p.SMAWindow) }
func (p Params) EMAName() string { return fmt.Sprintf("EMA_%d", p.EMAWindow) }

// Fixed column names for the non-parameterized indicators.
const (
	ColRSI        = "RSI"
	ColMACD       = "MACD"
	ColMACDSignal = "MACD_Signal"
	ColBBUpper    = "BB_Upper"
	ColBBMiddle   = "BB_Middle"
	ColBBLower    = "BB_Lower"
)

// Set maps an indicator name to its output column. Every column has the
// same length as the series it was computed from.
type Set map[string][]float64

// Names returns the column names in a stable display order.
func (p Params) Names() []string {
	return []string{
		p.SMAName(), p.EMAName(),
		ColRSI,
		ColMACD, ColMACDSignal,
		ColBBUpper, ColBBMiddle, ColBBLower,
	}
}

// Compute builds the full indicator set over the series' close column.
//
// A series shorter than a window is not an error; the affected columns
// simply stay all-NaN. NaN closes are tolerated only in the leading
// prefix left by the normalizer; any non-finite close after the first
// valid observation fails with ErrNonFinite.
func Compute(s market.Series, p Params) (Set, error) {
	closes := s.Closes()

	start := firstDefined(closes)
	if start >= 0 {
		for i := start; i < len(closes); i++ {
			if math.IsNaN(closes[i]) || math.IsInf(closes[i], 0) {
				return nil, fmt.Errorf("%w at index %d", ErrNonFinite, i)
			}
		}
	}

	macd, signal := MACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)
	upper, middle, lower := Bollinger(closes, p.BBWindow, p.BBK)

	return Set{
		p.SMAName():    SMA(closes, p.SMAWindow),
		p.EMAName():    EMA(closes, p.EMAWindow),
		ColRSI:         RSI(closes, p.RSIWindow),
		ColMACD:        macd,
		ColMACDSignal:  signal,
		ColBBUpper:     upper,
		ColBBMiddle:    middle,
		ColBBLower:     lower,
	}, nil
}
