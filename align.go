package pdcurve

import "math"

// Resolution tolerances: tight against the dense measured curve, wide
// against the sparser model-derived fallback curve.
const (
	measuredTolerance = 5
	modelTolerance    = 120
)

// differenceFloor keeps zero-crossings visible on area charts.
const differenceFloor = 0.5

// Align walks the grid once, producing the actual, model, and difference
// series. At each duration the measured curve is tried first (5 s
// tolerance), then the model-derived curve (120 s). Gaps forward-fill from
// the last known value in each series; when the actual series has never
// resolved it falls back to the model value, so the comparison renders as
// a continuous pair of lines rather than scattered points. The difference
// is |actual - model| floored at 0.5 when both are defined, else 0.
func Align(grid []int, measured, model *CurveIndex, cp, wPrime float64) ComparisonSeries {
	out := ComparisonSeries{
		Grid:           grid,
		Actual:         make([]Point, 0, len(grid)),
		Model:          make([]Point, 0, len(grid)),
		Difference:     make([]float64, 0, len(grid)),
		ActualMeasured: make([]bool, 0, len(grid)),
	}

	var lastActual, lastModel *float64
	for _, d := range grid {
		var resolved *float64
		if p, ok := ResolveNearest(measured, d, measuredTolerance); ok {
			resolved = &p
		} else if p, ok := ResolveNearest(model, d, modelTolerance); ok {
			resolved = &p
		}

		// The prediction bound is more permissive than the actual series:
		// when the tight lookup missed, a measured sample within the wide
		// tolerance still reins in the model.
		nearby := resolved
		if nearby == nil {
			if p, ok := ResolveNearest(measured, d, modelTolerance); ok {
				nearby = &p
			}
		}

		modelVal := lastModel
		if p, ok := Predict(float64(d), cp, wPrime, nearby); ok {
			modelVal = &p
		}

		actualVal := resolved
		if actualVal == nil {
			actualVal = lastActual
		}
		if actualVal == nil {
			actualVal = modelVal
		}

		if actualVal != nil {
			lastActual = actualVal
		}
		if modelVal != nil {
			lastModel = modelVal
		}

		diff := 0.0
		if actualVal != nil && modelVal != nil {
			diff = math.Abs(*actualVal - *modelVal)
			if diff < differenceFloor {
				diff = differenceFloor
			}
		}

		out.Actual = append(out.Actual, Point{X: d, Y: actualVal})
		out.Model = append(out.Model, Point{X: d, Y: modelVal})
		out.Difference = append(out.Difference, diff)
		out.ActualMeasured = append(out.ActualMeasured, resolved != nil)
	}

	return out
}
