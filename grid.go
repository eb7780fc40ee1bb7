package pdcurve

import "sort"

// Thinning thresholds for the sample grid: keep a duration when it grew at
// least 8% over the last kept one (even spacing on a log axis) or when the
// absolute gap reaches 30 s (keeps the long tail from thinning to nothing).
const (
	thinGrowthRatio = 1.08
	thinAbsoluteGap = 30
)

// fallbackGrid is used when planning yields nothing renderable.
var fallbackGrid = []int{1, 5, 60, 300, 1200}

// canonicalDurations is the reference ladder of standard report durations,
// 1 second through 1 hour.
var canonicalDurations = []int{
	1, 2, 3, 5, 10, 15, 20, 30, 45,
	60, 90, 120, 180, 240, 300, 420, 600, 900,
	1200, 1800, 2400, 3600,
}

// CanonicalDurations returns the standard duration ladder used for grid
// planning and axis ticks.
func CanonicalDurations() []int {
	return append([]int(nil), canonicalDurations...)
}

// PlanGrid derives the durations at which the comparison is evaluated:
// the union of the canonical ladder and both indices' keys, floored at the
// earliest duration either curve covers, then thinned for even density on
// a logarithmic axis. Always returns a non-empty, strictly increasing
// grid; degenerate input falls back to a fixed minimal grid.
func PlanGrid(canonical []int, measured, model *CurveIndex) []int {
	earliest := 1
	if m, ok := measured.MinDuration(); ok {
		earliest = m
	}
	if m, ok := model.MinDuration(); ok && (measured.Len() == 0 || m < earliest) {
		earliest = m
	}
	floor := earliest
	if floor < 1 {
		floor = 1
	}

	seen := make(map[int]struct{})
	union := make([]int, 0, len(canonical)+measured.Len()+model.Len())
	add := func(d int) {
		if d < floor {
			return
		}
		if _, ok := seen[d]; ok {
			return
		}
		seen[d] = struct{}{}
		union = append(union, d)
	}
	for _, d := range canonical {
		add(d)
	}
	for _, d := range measured.Keys() {
		add(d)
	}
	for _, d := range model.Keys() {
		add(d)
	}
	sort.Ints(union)

	grid := make([]int, 0, len(union))
	for _, d := range union {
		if len(grid) == 0 {
			grid = append(grid, d)
			continue
		}
		prev := grid[len(grid)-1]
		if float64(d)/float64(prev) >= thinGrowthRatio || d-prev >= thinAbsoluteGap {
			grid = append(grid, d)
		}
	}

	if len(grid) == 0 {
		return append([]int(nil), fallbackGrid...)
	}
	return grid
}
