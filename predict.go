package pdcurve

// Empirical bounds applied to the raw model value when a nearby measured
// power is known. The hyperbola diverges as duration approaches zero, so
// short-duration predictions are held within half to 1.5x of what the
// athlete actually produced nearby.
const (
	boundLowFactor  = 0.5
	boundHighFactor = 1.5
)

// Predict evaluates the two-parameter CP model at duration seconds:
// cp + wPrime/max(1, duration). When nearbyActual is non-nil the raw value
// is clamped to [max(0, nearbyActual*0.5), nearbyActual*1.5]; the result
// is never negative. Returns ok=false for a non-positive or non-finite
// duration instead of letting NaN or Inf reach a chart.
func Predict(duration, cp, wPrime float64, nearbyActual *float64) (float64, bool) {
	if !isFinite(duration) || duration <= 0 {
		return 0, false
	}

	d := duration
	if d < 1 {
		d = 1
	}
	predicted := cp + wPrime/d

	if nearbyActual != nil {
		low := *nearbyActual * boundLowFactor
		if low < 0 {
			low = 0
		}
		high := *nearbyActual * boundHighFactor
		if predicted < low {
			predicted = low
		}
		if predicted > high {
			predicted = high
		}
	}

	if predicted < 0 {
		predicted = 0
	}
	return predicted, true
}
