package pdcurve

import "sort"

// tickHeadroom extends the tick range 5% past the grid maximum so the
// rightmost label is not clipped.
const tickHeadroom = 1.05

// PlanTicks derives label positions for a logarithmic time axis covering
// the grid. The canonical ladder is extended by geometric doubling until
// it reaches the grid maximum, filtered to the grid's range, and the grid
// endpoints are always included.
func PlanTicks(grid []int) []int {
	if len(grid) == 0 {
		return nil
	}
	gridMin := grid[0]
	gridMax := grid[len(grid)-1]

	ladder := CanonicalDurations()
	for ladder[len(ladder)-1] < gridMax {
		ladder = append(ladder, ladder[len(ladder)-1]*2)
	}

	limit := float64(gridMax) * tickHeadroom
	seen := make(map[int]struct{})
	ticks := make([]int, 0, len(ladder)+2)
	add := func(d int) {
		if _, ok := seen[d]; ok {
			return
		}
		seen[d] = struct{}{}
		ticks = append(ticks, d)
	}
	for _, d := range ladder {
		if d >= gridMin && float64(d) <= limit {
			add(d)
		}
	}
	add(gridMin)
	add(gridMax)
	sort.Ints(ticks)

	return ticks
}
