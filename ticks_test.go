package pdcurve

import "testing"

func TestPlanTicksIncludesGridEndpoints(t *testing.T) {
	grid := []int{7, 60, 300, 2500}
	ticks := PlanTicks(grid)

	if len(ticks) == 0 {
		t.Fatal("expected ticks")
	}
	if ticks[0] != 7 {
		t.Fatalf("expected first tick at grid min 7, got %d", ticks[0])
	}
	if ticks[len(ticks)-1] != 2500 {
		t.Fatalf("expected last tick at grid max 2500, got %d", ticks[len(ticks)-1])
	}
}

func TestPlanTicksAscendingUnique(t *testing.T) {
	ticks := PlanTicks([]int{1, 5, 60, 300, 1200, 3600})

	for i := 1; i < len(ticks); i++ {
		if ticks[i] <= ticks[i-1] {
			t.Fatalf("ticks not strictly ascending: %v", ticks)
		}
	}
}

func TestPlanTicksExtendsLadderByDoubling(t *testing.T) {
	// Grid max beyond the canonical ladder forces a doubled 7200 entry,
	// which the 5% headroom then admits.
	ticks := PlanTicks([]int{60, 7100})

	found := false
	for _, tick := range ticks {
		if tick == 7200 {
			found = true
		}
		if float64(tick) > 7100*1.05 {
			t.Fatalf("tick %d beyond headroom limit", tick)
		}
	}
	if !found {
		t.Fatalf("expected doubled ladder tick 7200 in %v", ticks)
	}
}

func TestPlanTicksDropsLadderEntriesBelowGridMin(t *testing.T) {
	ticks := PlanTicks([]int{120, 3600})

	for _, tick := range ticks {
		if tick < 120 {
			t.Fatalf("tick %d below grid min", tick)
		}
	}
}

func TestPlanTicksEmptyGrid(t *testing.T) {
	if ticks := PlanTicks(nil); ticks != nil {
		t.Fatalf("expected no ticks for empty grid, got %v", ticks)
	}
}
