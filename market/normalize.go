package market

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

var (
	// ErrEmptyInput is returned when a pipeline stage receives no bars.
	ErrEmptyInput = errors.New("empty input: no bars")

	// ErrInvalidBar is returned when a bar violates the OHLC ordering
	// invariant or duplicates another bar's timestamp. Invalid bars are
	// rejected outright, never clipped.
	ErrInvalidBar = errors.New("invalid bar")
)

// Normalize converts raw bars into a Series expressed in target.
//
// Feeds that deliver zone-less wall clocks materialize them in UTC by
// convention; source names the zone those wall clocks were actually
// recorded in, so bars carrying UTC are re-localized into source before
// conversion. Bars already tagged with a real zone are treated as
// instants. The result is sorted ascending, duplicate timestamps are
// rejected, and missing closes are forward-filled from the most recent
// prior valid close. Closes before the first valid observation stay NaN.
func Normalize(raw []Bar, source, target *time.Location) (Series, error) {
	if len(raw) == 0 {
		return Series{}, ErrEmptyInput
	}
	if source == nil {
		source = time.UTC
	}
	if target == nil {
		target = source
	}

	bars := make([]Bar, len(raw))
	copy(bars, raw)

	for i := range bars {
		if !bars[i].validOHLC() {
			return Series{}, fmt.Errorf("%w: index %d at %s", ErrInvalidBar, i, bars[i].Time)
		}
		t := bars[i].Time
		if t.Location() == time.UTC && source != time.UTC {
			t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), source)
		}
		bars[i].Time = t.In(target)
	}

	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Time.Before(bars[j].Time)
	})

	for i := 1; i < len(bars); i++ {
		if bars[i].Time.Equal(bars[i-1].Time) {
			return Series{}, fmt.Errorf("%w: duplicate timestamp %s", ErrInvalidBar, bars[i].Time)
		}
	}

	last := math.NaN()
	for i := range bars {
		if math.IsNaN(bars[i].Close) {
			bars[i].Close = last
		} else {
			last = bars[i].Close
		}
	}

	return Series{Location: target, Bars: bars}, nil
}
