package indicators

import "math"

// SMA returns the simple moving average column for the given window.
// Output[i] is the arithmetic mean of closes[i-window+1..i]; indexes
// whose window has not filled, or whose window overlaps the undefined
// prefix, stay NaN.
func SMA(closes []float64, window int) []float64 {
	out := undefined(len(closes))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(closes); i++ {
		sum := 0.0
		ok := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(closes[j]) {
				ok = false
				break
			}
			sum += closes[j]
		}
		if ok {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// EMA returns the exponential moving average column for the given
// window, seeded with the SMA of the first full window and smoothed with
// alpha = 2/(window+1) from there on. A NaN prefix in the input shifts
// the seed right; it never contributes zeros.
func EMA(closes []float64, window int) []float64 {
	out := undefined(len(closes))
	if window <= 0 {
		return out
	}
	p := firstDefined(closes)
	if p < 0 || len(closes)-p < window {
		return out
	}

	sum := 0.0
	for j := p; j < p+window; j++ {
		sum += closes[j]
	}
	seed := p + window - 1
	out[seed] = sum / float64(window)

	alpha := 2.0 / float64(window+1)
	for i := seed + 1; i < len(closes); i++ {
		out[i] = alpha*closes[i] + (1-alpha)*out[i-1]
	}
	return out
}

// RSI returns the Wilder relative strength index column. The seed
// averages use simple means over the first window deltas; subsequent
// averages use Wilder's smoothing. A flat window (avgGain == avgLoss ==
// 0) yields the neutral value 50; a zero avgLoss with gains yields 100.
func RSI(closes []float64, window int) []float64 {
	out := undefined(len(closes))
	if window <= 0 {
		return out
	}
	p := firstDefined(closes)
	if p < 0 || len(closes)-p < window+1 {
		return out
	}

	avgGain, avgLoss := 0.0, 0.0
	for i := p + 1; i <= p+window; i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			avgGain += d
		} else {
			avgLoss += -d
		}
	}
	avgGain /= float64(window)
	avgLoss /= float64(window)
	out[p+window] = rsiValue(avgGain, avgLoss)

	for i := p + window + 1; i < len(closes); i++ {
		gain, loss := 0.0, 0.0
		if d := closes[i] - closes[i-1]; d > 0 {
			gain = d
		} else {
			loss = -d
		}
		avgGain = (avgGain*float64(window-1) + gain) / float64(window)
		avgLoss = (avgLoss*float64(window-1) + loss) / float64(window)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	switch {
	case avgGain == 0 && avgLoss == 0:
		return 50
	case avgLoss == 0:
		return 100
	default:
		rs := avgGain / avgLoss
		return 100 - 100/(1+rs)
	}
}

// MACD returns the MACD line (fast EMA minus slow EMA) and its signal
// line (an EMA of the MACD line itself). Undefined points in either EMA
// propagate as NaN into the line; the signal's warm-up starts where the
// line becomes defined.
func MACD(closes []float64, fast, slow, signal int) (line, sig []float64) {
	fastEMA := EMA(closes, fast)
	slowEMA := EMA(closes, slow)

	line = undefined(len(closes))
	for i := range line {
		if Defined(fastEMA[i]) && Defined(slowEMA[i]) {
			line[i] = fastEMA[i] - slowEMA[i]
		}
	}
	sig = EMA(line, signal)
	return line, sig
}

// Bollinger returns the upper, middle and lower band columns. Middle is
// the SMA of the window; the bands sit k population standard deviations
// (ddof=0) away from it.
func Bollinger(closes []float64, window int, k float64) (upper, middle, lower []float64) {
	middle = SMA(closes, window)
	upper = undefined(len(closes))
	lower = undefined(len(closes))
	if window <= 0 {
		return upper, middle, lower
	}

	for i := window - 1; i < len(closes); i++ {
		m := middle[i]
		if !Defined(m) {
			continue
		}
		ss := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := closes[j] - m
			ss += d * d
		}
		sd := math.Sqrt(ss / float64(window))
		upper[i] = m + k*sd
		lower[i] = m - k*sd
	}
	return upper, middle, lower
}
