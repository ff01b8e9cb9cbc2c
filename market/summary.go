package market

import "math"

// SummaryMetrics holds whole-range aggregates for one series snapshot.
// Immutable after Summarize returns it.
type SummaryMetrics struct {
	LastClose   float64
	Change      float64
	PctChange   float64
	High        float64
	Low         float64
	TotalVolume float64
	AvgVolume   float64
}

// Summarize computes the summary metrics in a single pass.
//
// Change and PctChange use the close of the FIRST bar in the requested
// window as the baseline, not the prior session's close. That is a known
// deviation from standard daily-change semantics, preserved from the
// reference behavior on purpose. A zero first close yields a NaN
// PctChange rather than an infinity or an error.
func Summarize(s Series) (SummaryMetrics, error) {
	if len(s.Bars) == 0 {
		return SummaryMetrics{}, ErrEmptyInput
	}

	first := s.Bars[0].Close
	m := SummaryMetrics{
		LastClose: s.Bars[len(s.Bars)-1].Close,
		High:      math.Inf(-1),
		Low:       math.Inf(1),
	}

	for _, b := range s.Bars {
		if b.High > m.High {
			m.High = b.High
		}
		if b.Low < m.Low {
			m.Low = b.Low
		}
		m.TotalVolume += b.Volume
	}
	m.AvgVolume = m.TotalVolume / float64(len(s.Bars))

	m.Change = m.LastClose - first
	if first == 0 {
		m.PctChange = math.NaN()
	} else {
		m.PctChange = m.Change / first * 100
	}

	return m, nil
}
