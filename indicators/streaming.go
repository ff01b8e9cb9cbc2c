package indicators

import (
	"fmt"
	"math"

	"github.com/bethvourc/stockPriceDashboard/market"
)

// SimpleMA is a streaming simple moving average over bar closes.
type SimpleMA struct {
	window int
	closes []float64
}

// NewSimpleMA creates a streaming SMA with the given window.
func NewSimpleMA(window int) *SimpleMA {
	return &SimpleMA{
		window: window,
		closes: make([]float64, 0, window),
	}
}

func (m *SimpleMA) Name() string {
	return fmt.Sprintf("SMA(%d)", m.window)
}

func (m *SimpleMA) Warmup() int {
	return m.window
}

func (m *SimpleMA) Reset() {
	m.closes = m.closes[:0]
}

func (m *SimpleMA) Update(b market.Bar) {
	m.closes = append(m.closes, b.Close)
	if len(m.closes) > m.window {
		m.closes = m.closes[1:]
	}
}

func (m *SimpleMA) Ready() bool {
	return len(m.closes) >= m.window
}

func (m *SimpleMA) Value() float64 {
	if !m.Ready() {
		return math.NaN()
	}
	sum := 0.0
	for _, c := range m.closes {
		sum += c
	}
	return sum / float64(len(m.closes))
}

// ExponentialMA is a streaming exponential moving average over bar
// closes, seeded with the SMA of the first full window.
type ExponentialMA struct {
	window    int
	alpha     float64
	ema       float64
	count     int
	warmupSum float64
}

// NewExponentialMA creates a streaming EMA with the given window.
func NewExponentialMA(window int) *ExponentialMA {
	return &ExponentialMA{
		window: window,
		alpha:  2.0 / float64(window+1),
	}
}

func (e *ExponentialMA) Name() string {
	return fmt.Sprintf("EMA(%d)", e.window)
}

func (e *ExponentialMA) Warmup() int {
	return e.window
}

func (e *ExponentialMA) Reset() {
	e.ema = 0
	e.count = 0
	e.warmupSum = 0
}

func (e *ExponentialMA) Update(b market.Bar) {
	if e.count < e.window {
		e.warmupSum += b.Close
		e.count++
		if e.count == e.window {
			e.ema = e.warmupSum / float64(e.window)
		}
		return
	}
	e.ema = e.alpha*b.Close + (1-e.alpha)*e.ema
}

func (e *ExponentialMA) Ready() bool {
	return e.count >= e.window
}

func (e *ExponentialMA) Value() float64 {
	if !e.Ready() {
		return math.NaN()
	}
	return e.ema
}

// RelativeStrength is a streaming Wilder RSI over bar closes.
type RelativeStrength struct {
	window    int
	avgGain   float64
	avgLoss   float64
	deltas    int
	prevClose float64
	hasPrev   bool
}

// NewRelativeStrength creates a streaming RSI with the given window.
func NewRelativeStrength(window int) *RelativeStrength {
	return &RelativeStrength{window: window}
}

func (r *RelativeStrength) Name() string {
	return fmt.Sprintf("RSI(%d)", r.window)
}

func (r *RelativeStrength) Warmup() int {
	// One extra bar: the first close only establishes the delta base.
	return r.window + 1
}

func (r *RelativeStrength) Reset() {
	r.avgGain = 0
	r.avgLoss = 0
	r.deltas = 0
	r.prevClose = 0
	r.hasPrev = false
}

func (r *RelativeStrength) Update(b market.Bar) {
	if !r.hasPrev {
		r.prevClose = b.Close
		r.hasPrev = true
		return
	}

	gain, loss := 0.0, 0.0
	if d := b.Close - r.prevClose; d > 0 {
		gain = d
	} else {
		loss = -d
	}
	r.prevClose = b.Close

	if r.deltas < r.window {
		// Seed averages with simple means over the first window deltas.
		r.avgGain += gain
		r.avgLoss += loss
		r.deltas++
		if r.deltas == r.window {
			r.avgGain /= float64(r.window)
			r.avgLoss /= float64(r.window)
		}
		return
	}

	r.avgGain = (r.avgGain*float64(r.window-1) + gain) / float64(r.window)
	r.avgLoss = (r.avgLoss*float64(r.window-1) + loss) / float64(r.window)
}

func (r *RelativeStrength) Ready() bool {
	return r.deltas >= r.window
}

func (r *RelativeStrength) Value() float64 {
	if !r.Ready() {
		return math.NaN()
	}
	return rsiValue(r.avgGain, r.avgLoss)
}
