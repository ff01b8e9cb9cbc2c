package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constant(n int, v float64) []float64 {
	c := make([]float64, n)
	for i := range c {
		c[i] = v
	}
	return c
}

func ramp(n int, step float64) []float64 {
	c := make([]float64, n)
	for i := range c {
		c[i] = 100 + float64(i)*step
	}
	return c
}

func countDefined(col []float64) int {
	n := 0
	for _, v := range col {
		if Defined(v) {
			n++
		}
	}
	return n
}

func TestSMAWarmupLength(t *testing.T) {
	t.Parallel()

	closes := ramp(30, 1)
	out := SMA(closes, 20)

	require.Len(t, out, 30)
	assert.Equal(t, 30-20+1, countDefined(out))
	for i := 0; i < 19; i++ {
		assert.False(t, Defined(out[i]), "index %d should be undefined", i)
	}
	for i := 19; i < 30; i++ {
		assert.True(t, Defined(out[i]), "index %d should be defined", i)
	}
}

func TestSMAConstantSeries(t *testing.T) {
	t.Parallel()

	out := SMA(constant(25, 100), 20)
	for i := 19; i < 25; i++ {
		assert.InDelta(t, 100.0, out[i], 1e-12)
	}
}

func TestSMAHandValues(t *testing.T) {
	t.Parallel()

	closes := []float64{1, 2, 3, 4, 5}
	out := SMA(closes, 3)

	assert.False(t, Defined(out[0]))
	assert.False(t, Defined(out[1]))
	assert.InDelta(t, 2.0, out[2], 1e-12)
	assert.InDelta(t, 3.0, out[3], 1e-12)
	assert.InDelta(t, 4.0, out[4], 1e-12)
}

func TestEMAWarmupLength(t *testing.T) {
	t.Parallel()

	closes := ramp(30, 1)
	out := EMA(closes, 20)

	assert.Equal(t, 30-20+1, countDefined(out))
	assert.True(t, Defined(out[19]))
	assert.False(t, Defined(out[18]))
}

func TestEMAConstantSeries(t *testing.T) {
	t.Parallel()

	out := EMA(constant(25, 100), 20)
	for i := 19; i < 25; i++ {
		assert.InDelta(t, 100.0, out[i], 1e-12)
	}
}

func TestEMASeededWithSMA(t *testing.T) {
	t.Parallel()

	closes := []float64{1, 2, 3, 4, 10}
	out := EMA(closes, 4)

	// Seed = mean(1..4) = 2.5; alpha = 2/5.
	assert.InDelta(t, 2.5, out[3], 1e-12)
	assert.InDelta(t, 0.4*10+0.6*2.5, out[4], 1e-12)
}

func TestEMASkipsUndefinedPrefix(t *testing.T) {
	t.Parallel()

	closes := []float64{math.NaN(), math.NaN(), 1, 2, 3, 4, 10}
	out := EMA(closes, 4)

	for i := 0; i < 5; i++ {
		assert.False(t, Defined(out[i]), "index %d", i)
	}
	assert.InDelta(t, 2.5, out[5], 1e-12)
	assert.InDelta(t, 0.4*10+0.6*2.5, out[6], 1e-12)
}

func TestRSIAllGains(t *testing.T) {
	t.Parallel()

	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = float64(i)
	}
	out := RSI(closes, 14)

	for i := 0; i < 14; i++ {
		assert.False(t, Defined(out[i]), "index %d", i)
	}
	for i := 14; i < 30; i++ {
		assert.InDelta(t, 100.0, out[i], 1e-12, "index %d", i)
	}
}

func TestRSIAllLosses(t *testing.T) {
	t.Parallel()

	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 1000 - float64(i)
	}
	out := RSI(closes, 14)

	for i := 14; i < 30; i++ {
		assert.InDelta(t, 0.0, out[i], 1e-12, "index %d", i)
	}
}

func TestRSIFlatSeriesNeutral(t *testing.T) {
	t.Parallel()

	out := RSI(constant(25, 50), 14)
	for i := 14; i < 25; i++ {
		assert.InDelta(t, 50.0, out[i], 1e-12, "flat series is neutral by convention")
	}
}

func TestMACDWarmup(t *testing.T) {
	t.Parallel()

	closes := ramp(60, 0.5)
	line, sig := MACD(closes, 12, 26, 9)

	require.Len(t, line, 60)
	require.Len(t, sig, 60)

	// Line defined once the slow EMA is (index 25); signal 8 points later.
	assert.False(t, Defined(line[24]))
	assert.True(t, Defined(line[25]))
	assert.False(t, Defined(sig[32]))
	assert.True(t, Defined(sig[33]))
}

func TestMACDConstantSeriesIsZero(t *testing.T) {
	t.Parallel()

	line, sig := MACD(constant(60, 100), 12, 26, 9)
	for i := 25; i < 60; i++ {
		assert.InDelta(t, 0.0, line[i], 1e-9)
	}
	for i := 33; i < 60; i++ {
		assert.InDelta(t, 0.0, sig[i], 1e-9)
	}
}

func TestBollingerBandsAroundSMA(t *testing.T) {
	t.Parallel()

	closes := []float64{2, 4, 6, 8, 10, 4, 6, 8, 2, 10}
	upper, middle, lower := Bollinger(closes, 5, 2)
	sma := SMA(closes, 5)

	for i := range closes {
		if !Defined(middle[i]) {
			assert.False(t, Defined(sma[i]))
			continue
		}
		assert.Equal(t, sma[i], middle[i], "middle equals SMA bit-for-bit at %d", i)

		// Upper - Lower = 2*k*sigma with population stddev.
		mean := middle[i]
		ss := 0.0
		for j := i - 4; j <= i; j++ {
			d := closes[j] - mean
			ss += d * d
		}
		sigma := math.Sqrt(ss / 5)
		assert.InDelta(t, 2*2*sigma, upper[i]-lower[i], 1e-12)
		assert.InDelta(t, mean+2*sigma, upper[i], 1e-12)
		assert.InDelta(t, mean-2*sigma, lower[i], 1e-12)
	}
}

func TestBollingerHandFixture(t *testing.T) {
	t.Parallel()

	// Window of 1,2,3,4,5: mean 3, population variance 2.
	closes := []float64{1, 2, 3, 4, 5}
	upper, middle, lower := Bollinger(closes, 5, 2)

	sigma := math.Sqrt(2.0)
	assert.InDelta(t, 3.0, middle[4], 1e-12)
	assert.InDelta(t, 3+2*sigma, upper[4], 1e-12)
	assert.InDelta(t, 3-2*sigma, lower[4], 1e-12)
}

func TestColumnsShortInput(t *testing.T) {
	t.Parallel()

	closes := []float64{1, 2, 3}
	assert.Equal(t, 0, countDefined(SMA(closes, 20)))
	assert.Equal(t, 0, countDefined(EMA(closes, 20)))
	assert.Equal(t, 0, countDefined(RSI(closes, 14)))

	line, sig := MACD(closes, 12, 26, 9)
	assert.Equal(t, 0, countDefined(line))
	assert.Equal(t, 0, countDefined(sig))
}
