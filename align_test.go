package pdcurve

import "testing"

func TestAlignReferenceScenario(t *testing.T) {
	measured := IndexFromCurve(Curve{
		Durations: []float64{1, 5, 60},
		Powers:    []float64{1000, 900, 350},
	})
	model := BuildIndex(nil)
	grid := []int{1, 5, 60}

	series := Align(grid, measured, model, 250, 20000)

	if len(series.Actual) != 3 || len(series.Model) != 3 || len(series.Difference) != 3 {
		t.Fatalf("expected series aligned to grid length 3")
	}

	// d=1: raw model 20250 clamps to actual*1.5 = 1500.
	if y := series.Actual[0].Y; y == nil || *y != 1000 {
		t.Fatalf("expected actual 1000 at 1 s, got %v", y)
	}
	if y := series.Model[0].Y; y == nil || *y != 1500 {
		t.Fatalf("expected model 1500 at 1 s, got %v", y)
	}
	if series.Difference[0] != 500 {
		t.Fatalf("expected difference 500 at 1 s, got %v", series.Difference[0])
	}

	// d=60: raw 583.33 clamps to [175, 525].
	if y := series.Actual[2].Y; y == nil || *y != 350 {
		t.Fatalf("expected actual 350 at 60 s, got %v", y)
	}
	if y := series.Model[2].Y; y == nil || *y != 525 {
		t.Fatalf("expected model 525 at 60 s, got %v", y)
	}
	if series.Difference[2] != 175 {
		t.Fatalf("expected difference 175 at 60 s, got %v", series.Difference[2])
	}

	for i, m := range series.ActualMeasured {
		if !m {
			t.Fatalf("expected every grid point measured, position %d was not", i)
		}
	}
}

func TestAlignDifferenceFloor(t *testing.T) {
	// cp + wPrime/100 = 300 + 10000/100 = 400 matches the actual exactly;
	// the difference must still be the 0.5 floor, not 0.
	measured := BuildIndex([]Sample{{Duration: 100, Power: 400}})

	series := Align([]int{100}, measured, BuildIndex(nil), 300, 10000)

	if series.Difference[0] != 0.5 {
		t.Fatalf("expected floored difference 0.5, got %v", series.Difference[0])
	}
}

func TestAlignForwardFillsActualPastLastSample(t *testing.T) {
	measured := BuildIndex([]Sample{{Duration: 60, Power: 350}})
	grid := []int{60, 300, 1200}

	series := Align(grid, measured, BuildIndex(nil), 250, 20000)

	for i := 1; i < len(grid); i++ {
		if y := series.Actual[i].Y; y == nil || *y != 350 {
			t.Fatalf("expected actual forward-filled to 350 at %d s, got %v", grid[i], y)
		}
		if series.ActualMeasured[i] {
			t.Fatalf("forward-filled point at %d s must not be marked measured", grid[i])
		}
	}
	// Unclamped model past the measured sample's tolerance window.
	want := 250 + 20000.0/300.0
	if y := series.Model[1].Y; y == nil || *y != want {
		t.Fatalf("expected model %v at 300 s, got %v", want, y)
	}
}

func TestAlignFallsBackToModelWhenNoSamplesExist(t *testing.T) {
	series := Align([]int{1, 60, 300}, BuildIndex(nil), BuildIndex(nil), 250, 20000)

	for i := range series.Grid {
		a, m := series.Actual[i].Y, series.Model[i].Y
		if a == nil || m == nil {
			t.Fatalf("expected model-backed values at position %d", i)
		}
		if *a != *m {
			t.Fatalf("expected actual to mirror model at position %d: %v vs %v", i, *a, *m)
		}
		if series.ActualMeasured[i] {
			t.Fatalf("synthetic point at position %d must not be marked measured", i)
		}
	}
}

func TestAlignBoundsModelWithWideToleranceWhenActualMisses(t *testing.T) {
	// At 100 s the 5 s lookup misses the 60 s sample, so the actual series
	// forward-fills; the sample is still within the wide tolerance and
	// must bound the model (raw 250 + 40000/100 = 650, clamped to 525).
	measured := BuildIndex([]Sample{{Duration: 60, Power: 350}})

	series := Align([]int{60, 100}, measured, BuildIndex(nil), 250, 40000)

	if y := series.Actual[1].Y; y == nil || *y != 350 {
		t.Fatalf("expected forward-filled actual 350 at 100 s, got %v", y)
	}
	if series.ActualMeasured[1] {
		t.Fatal("forward-filled point must not be marked measured")
	}
	if y := series.Model[1].Y; y == nil || *y != 525 {
		t.Fatalf("expected wide-tolerance bound 525 at 100 s, got %v", y)
	}
}

func TestAlignUsesModelCurveFallbackResolution(t *testing.T) {
	// No measured sample within 5 s of 200, but the model-derived curve
	// has one within 120 s.
	measured := BuildIndex([]Sample{{Duration: 1, Power: 1000}})
	model := BuildIndex([]Sample{{Duration: 290, Power: 310}})

	series := Align([]int{200}, measured, model, 250, 20000)

	if y := series.Actual[0].Y; y == nil || *y != 310 {
		t.Fatalf("expected actual resolved from model curve (310), got %v", y)
	}
	if !series.ActualMeasured[0] {
		t.Fatal("model-curve resolution still counts as a resolved sample")
	}
}
