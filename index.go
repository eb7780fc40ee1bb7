package pdcurve

import (
	"math"
	"sort"
)

// CurveIndex maps integer durations to the best power observed at that
// duration. Built once per input curve, immutable afterward.
type CurveIndex struct {
	keys   []int
	powers map[int]float64
}

// BuildIndex constructs a CurveIndex from raw samples. Samples whose
// duration or power is not finite are dropped; durations are floored to an
// integer and clamped to at least 1 second. When several samples land on
// the same duration the maximum power wins, so a noisy or sub-sampled
// repeat never overwrites a better effort.
func BuildIndex(samples []Sample) *CurveIndex {
	powers := make(map[int]float64, len(samples))
	for _, s := range samples {
		if !isFinite(s.Duration) || !isFinite(s.Power) {
			continue
		}
		d := int(math.Floor(s.Duration))
		if d < 1 {
			d = 1
		}
		if existing, ok := powers[d]; !ok || s.Power > existing {
			powers[d] = s.Power
		}
	}

	keys := make([]int, 0, len(powers))
	for d := range powers {
		keys = append(keys, d)
	}
	sort.Ints(keys)

	return &CurveIndex{keys: keys, powers: powers}
}

// IndexFromCurve builds an index from the upstream parallel-array shape.
// The arrays are paired by position; a length mismatch truncates to the
// shorter one rather than erroring, since partial curves still render.
func IndexFromCurve(c Curve) *CurveIndex {
	n := len(c.Durations)
	if len(c.Powers) < n {
		n = len(c.Powers)
	}
	samples := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		samples = append(samples, Sample{Duration: c.Durations[i], Power: c.Powers[i]})
	}
	return BuildIndex(samples)
}

// Lookup returns the power recorded at exactly duration.
func (ix *CurveIndex) Lookup(duration int) (float64, bool) {
	p, ok := ix.powers[duration]
	return p, ok
}

// Keys returns the indexed durations in ascending order. The returned
// slice is the index's own and must not be modified.
func (ix *CurveIndex) Keys() []int {
	return ix.keys
}

// Len returns the number of distinct durations in the index.
func (ix *CurveIndex) Len() int {
	return len(ix.keys)
}

// MinDuration returns the smallest indexed duration, if any.
func (ix *CurveIndex) MinDuration() (int, bool) {
	if len(ix.keys) == 0 {
		return 0, false
	}
	return ix.keys[0], true
}

// ResolveNearest looks up duration in the index, accepting the first key
// within tolerance seconds when there is no exact hit. The scan runs in
// ascending duration order and the first key within tolerance wins even if
// a later key is closer; this tie-break matches historical chart output
// and is intentional. Returns ok=false when nothing is within tolerance.
func ResolveNearest(ix *CurveIndex, duration, tolerance int) (float64, bool) {
	if p, ok := ix.Lookup(duration); ok {
		return p, true
	}
	for _, k := range ix.keys {
		delta := k - duration
		if delta < 0 {
			delta = -delta
		}
		if delta <= tolerance {
			return ix.powers[k], true
		}
	}
	return 0, false
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
