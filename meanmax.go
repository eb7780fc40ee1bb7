package pdcurve

import (
	"math"
	"sort"
	"time"

	"github.com/tormoder/fit"
)

// maxGapFillSeconds bounds how many missing 1 Hz samples are filled with
// the last known power; longer dropouts (auto-pause, sensor loss) are left
// as a discontinuity rather than inventing half a minute of effort.
const maxGapFillSeconds = 30

// MeanMaxCurve computes the mean-maximal power curve from decoded FIT
// activity records: for each requested duration, the best average power
// held over any contiguous window of that length. Records are resampled
// to a 1 Hz series first, short recording gaps filled with the last known
// power. Durations the ride is too short to cover are skipped.
func MeanMaxCurve(records []*fit.RecordMsg, durations []int) Curve {
	series := powerSeries(records)
	out := Curve{}
	if len(series) == 0 {
		return out
	}

	for _, d := range durations {
		if d <= 0 || d > len(series) {
			continue
		}
		best := bestRollingAverage(series, d)
		out.Durations = append(out.Durations, float64(d))
		out.Powers = append(out.Powers, best)
	}
	return out
}

// powerSeries flattens FIT records into an approximately 1 Hz power
// series ordered by timestamp.
func powerSeries(records []*fit.RecordMsg) []float64 {
	type row struct {
		ts    time.Time
		power float64
	}

	rows := make([]row, 0, len(records))
	for _, rec := range records {
		if rec == nil || rec.Power == math.MaxUint16 {
			continue
		}
		ts := rec.Timestamp
		if ts.IsZero() || fit.IsBaseTime(ts) {
			continue
		}
		rows = append(rows, row{ts: ts, power: float64(rec.Power)})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].ts.Before(rows[j].ts)
	})

	var (
		series    []float64
		lastTS    time.Time
		lastPower float64
		havePrev  bool
	)
	for _, r := range rows {
		if havePrev && r.ts.After(lastTS) {
			missing := int(math.Round(r.ts.Sub(lastTS).Seconds())) - 1
			if missing > 0 && missing <= maxGapFillSeconds {
				for i := 0; i < missing; i++ {
					series = append(series, lastPower)
				}
			}
		}
		series = append(series, r.power)
		lastTS = r.ts
		lastPower = r.power
		havePrev = true
	}
	return series
}

// bestRollingAverage returns the highest mean over any window of exactly
// seconds samples. Callers guarantee 0 < seconds <= len(series).
func bestRollingAverage(series []float64, seconds int) float64 {
	sum := 0.0
	for i := 0; i < seconds; i++ {
		sum += series[i]
	}
	best := sum / float64(seconds)
	for i := seconds; i < len(series); i++ {
		sum += series[i] - series[i-seconds]
		if current := sum / float64(seconds); current > best {
			best = current
		}
	}
	return best
}
